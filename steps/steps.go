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

// Package steps converts angles to stepper motor steps, and provides
// a step offset value that optionally wraps around a revolution.
package steps

import (
	"fmt"
)

// Degrees in a revolution.
const Degrees = 360

// Units holds the number of steps in a single revolution.
// A Units value is shared by every StepCount that refers to the same
// physical revolution size.
type Units struct {
	rev int
}

// NewUnits creates a Units for a revolution of rev steps.
func NewUnits(rev int) *Units {
	if rev <= 0 {
		panic(fmt.Sprintf("steps: invalid steps per revolution %d", rev))
	}
	return &Units{rev: rev}
}

// Rev returns the number of steps in a revolution.
func (u *Units) Rev() int {
	return u.rev
}

// Half returns the number of steps in half a revolution.
func (u *Units) Half() int {
	return u.rev / 2
}

// Quarter returns the number of steps in a quarter revolution.
func (u *Units) Quarter() int {
	return u.rev / 4
}

// DegreesPerStep returns the angle covered by a single step.
func (u *Units) DegreesPerStep() float64 {
	return float64(Degrees) / float64(u.rev)
}

// Steps converts degrees to a whole number of steps, truncating towards zero.
func (u *Units) Steps(degrees float64) int {
	return int(degrees / u.DegreesPerStep())
}

// StepCount is a signed step offset.
// If wrap is set, the offset represents a position on a full circle and
// is always held in [0, rev). Get then reduces it to the shortest
// movement. If wrap is not set, the offset is held exactly as given
// and never takes a shortcut around the circle.
type StepCount struct {
	units *Units
	n     int
	wrap  bool
}

// New returns a StepCount of n steps.
func New(u *Units, n int, wrap bool) StepCount {
	return StepCount{units: u, wrap: wrap}.Add(n, true)
}

// FromDegrees returns a StepCount for the angle.
func FromDegrees(u *Units, degrees float64, wrap bool) StepCount {
	return New(u, u.Steps(degrees), wrap)
}

// Add returns the StepCount moved n steps in the direction given.
func (s StepCount) Add(n int, forward bool) StepCount {
	if forward {
		s.n += n
	} else {
		s.n -= n
	}
	if s.wrap {
		s.n %= s.units.rev
		if s.n < 0 {
			s.n += s.units.rev
		}
	}
	return s
}

// AddDegrees returns the StepCount moved by the angle.
func (s StepCount) AddDegrees(degrees float64) StepCount {
	return s.Add(s.units.Steps(degrees), true)
}

// Get returns the direction and number of steps to move.
// A wrapping StepCount never returns more than half a revolution.
func (s StepCount) Get() (bool, uint32) {
	n := s.n
	fwd := n >= 0
	if !fwd {
		n = -n
	}
	if !s.wrap || n <= s.units.Half() {
		return fwd, uint32(n)
	}
	return !fwd, uint32(s.units.rev - n)
}

// Signed returns Get as a signed number of steps.
func (s StepCount) Signed() int {
	fwd, n := s.Get()
	if fwd {
		return int(n)
	}
	return -int(n)
}

// Raw returns the stored offset.
func (s StepCount) Raw() int {
	return s.n
}

// Wraps returns true if the StepCount wraps around a revolution.
func (s StepCount) Wraps() bool {
	return s.wrap
}

// Units returns the units of the StepCount.
func (s StepCount) Units() *Units {
	return s.units
}

// Degrees returns the angle that Signed represents.
func (s StepCount) Degrees() float64 {
	return float64(s.Signed()) * s.units.DegreesPerStep()
}

// Empty returns true if there is no movement.
func (s StepCount) Empty() bool {
	_, n := s.Get()
	return n == 0
}

// Plus returns the sum of two StepCounts.
func (s StepCount) Plus(o StepCount) StepCount {
	s.check(o)
	return New(s.units, s.n+o.n, s.wrap)
}

// Minus returns the difference of two StepCounts.
func (s StepCount) Minus(o StepCount) StepCount {
	s.check(o)
	return New(s.units, s.n-o.n, s.wrap)
}

// Reverse returns the StepCount with the sign flipped.
func (s StepCount) Reverse() StepCount {
	return New(s.units, -s.n, s.wrap)
}

// Wrapped returns the same offset as a wrapping StepCount.
func (s StepCount) Wrapped() StepCount {
	return New(s.units, s.n, true)
}

// Equal returns true if both StepCounts result in the same movement.
func (s StepCount) Equal(o StepCount) bool {
	f1, n1 := s.Get()
	f2, n2 := o.Get()
	return f1 == f2 && n1 == n2
}

func (s StepCount) String() string {
	return fmt.Sprintf("%+d", s.Signed())
}

// Both operands of a sum must describe the same kind of revolution.
func (s StepCount) check(o StepCount) {
	if s.wrap != o.wrap {
		panic("steps: mixed wrap policy")
	}
	if s.units.rev != o.units.rev {
		panic(fmt.Sprintf("steps: mixed units (%d, %d)", s.units.rev, o.units.rev))
	}
}
