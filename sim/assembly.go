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

// Package sim simulates a stepper motor assembly with a home sensor,
// one step per unit of position.

package sim

import (
	"sync"
)

// Range is an inclusive range of positions where the sensor is active.
type Range struct {
	Lo, Hi int
}

// Assembly acts as both a stepper motor and a home sensor.
// If rev is non-zero, the position wraps so that it is held in [0, rev].
// Both 0 and rev label the same physical position: moving forward from
// rev-1 gives rev, and moving backward from 1 gives 0. Sensor ranges
// covering that position must include both labels.
type Assembly struct {
	mu     sync.Mutex
	pos    int
	rev    int
	ranges []Range
	Steps  int // Number of steps taken
}

// NewAssembly creates a simulated assembly starting at the position given.
func NewAssembly(start, rev int, ranges ...Range) *Assembly {
	return &Assembly{pos: start, rev: rev, ranges: ranges}
}

// OneStep moves the assembly one unit.
func (a *Assembly) OneStep(forward bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if forward {
		a.pos++
	} else {
		a.pos--
	}
	if a.rev != 0 {
		if a.pos < 0 {
			a.pos += a.rev
		}
		if a.pos > a.rev {
			a.pos -= a.rev
		}
	}
	a.Steps++
}

// Sensing returns true if the position is within one of the sensor ranges.
func (a *Assembly) Sensing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, r := range a.ranges {
		if r.Lo <= a.pos && a.pos <= r.Hi {
			return true
		}
	}
	return false
}

// Position returns the current position.
func (a *Assembly) Position() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pos
}
