// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package io

import (
	"time"
)

// Default width of the step pulse.
const DefaultPulse = 10 * time.Microsecond

// StepDir represents a stepper motor behind a driver with step and
// direction inputs, such as an A4988 or DRV8825.
type StepDir struct {
	step, dir Setter
	pulse     time.Duration // Width of step pulse
	last      int           // Last direction output, -1 if unset
}

// NewStepDir creates a StepDir driver using the step and direction pins.
func NewStepDir(step, dir Setter, pulse time.Duration) *StepDir {
	if pulse <= 0 {
		pulse = DefaultPulse
	}
	return &StepDir{step: step, dir: dir, pulse: pulse, last: -1}
}

// OneStep pulses the step input once, changing the direction
// input first if required.
func (s *StepDir) OneStep(forward bool) {
	d := 0
	if forward {
		d = 1
	}
	if d != s.last {
		s.dir.Set(d)
		s.last = d
	}
	s.step.Set(1)
	time.Sleep(s.pulse)
	s.step.Set(0)
}

// Off leaves the step input low. The driver's enable input is not managed.
func (s *StepDir) Off() {
	s.step.Set(0)
}
