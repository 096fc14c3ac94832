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

// Package io drives stepper motors and reads home sensors via GPIO pins.
package io

// Setter is an interface for setting an output value on a GPIO
type Setter interface {
	Set(int) error
}

// Stepper represents a unipolar stepper motor driven by 4 GPIO pins,
// such as a 28BYJ-48 with a ULN2003 driver.
// All step values assume half-steps.
type Stepper struct {
	pin1, pin2, pin3, pin4 Setter // Pins for controlling outputs
	index                  int    // Index to step sequence
	on                     bool   // true if motor drivers on
}

// Half step sequence of outputs.
var sequence = [][]int{
	[]int{1, 0, 0, 0},
	[]int{1, 1, 0, 0},
	[]int{0, 1, 0, 0},
	[]int{0, 1, 1, 0},
	[]int{0, 0, 1, 0},
	[]int{0, 0, 1, 1},
	[]int{0, 0, 0, 1},
	[]int{1, 0, 0, 1},
}

// NewStepper creates and initialises a Stepper struct, representing
// a stepper motor controlled by 4 GPIO pins.
func NewStepper(pin1, pin2, pin3, pin4 Setter) *Stepper {
	return &Stepper{pin1: pin1, pin2: pin2, pin3: pin3, pin4: pin4}
}

// OneStep moves the motor a single half-step. Forward is counter-clockwise
// when looking down on the shaft.
func (s *Stepper) OneStep(forward bool) {
	inc := 1
	if !forward {
		inc = -1
	}
	s.index = (s.index + inc) & 7
	s.output()
	s.on = true
}

// State returns the current sequence index, so that the current state
// of the motor can be saved and then restored in a new instance.
func (s *Stepper) State() int {
	return s.index
}

// Restore initialises the sequence index to this value.
func (s *Stepper) Restore(i int) {
	s.index = i & 7
}

// Off turns off the GPIOs to remove the power from the motor.
func (s *Stepper) Off() {
	if s.on {
		s.pin1.Set(0)
		s.pin2.Set(0)
		s.pin3.Set(0)
		s.pin4.Set(0)
		s.on = false
	}
}

// Set the GPIO outputs according to the current sequence index.
func (s *Stepper) output() {
	seq := sequence[s.index]
	s.pin1.Set(seq[0])
	s.pin2.Set(seq[1])
	s.pin3.Set(seq[2])
	s.pin4.Set(seq[3])
}
