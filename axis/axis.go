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

// Package axis drives a single stepper motor stage that has a home sensor.

package axis

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// ErrSafetyLimit is returned when a step would move an axis beyond
// its configured bound.
var ErrSafetyLimit = errors.New("safety limit exceeded")

// Actuator moves a stepper motor by a single step.
type Actuator interface {
	OneStep(forward bool)
}

// Sensor reports whether the home mark is under the sensor.
type Sensor interface {
	Sensing() bool
}

// Axis couples a stepper motor with a home sensor.
// The net position is a signed step count relative to where the axis was
// when the program started, and total is the absolute number of steps taken.
// Both counters may be read while the axis is moving.
type Axis struct {
	Name     string
	actuator Actuator
	sensor   Sensor
	delay    time.Duration // Pause after each step
	limit    int64         // Bound on the net position, 0 if none
	position int64
	total    int64
}

// New creates an Axis. If limit is non-zero, the net position
// of the axis is not permitted to exceed +/- limit.
func New(name string, actuator Actuator, sensor Sensor, delay time.Duration, limit int) *Axis {
	return &Axis{
		Name:     name,
		actuator: actuator,
		sensor:   sensor,
		delay:    delay,
		limit:    int64(limit),
	}
}

// Position returns the signed net position.
func (a *Axis) Position() int64 {
	return atomic.LoadInt64(&a.position)
}

// Total returns the number of steps taken in either direction.
func (a *Axis) Total() int64 {
	return atomic.LoadInt64(&a.total)
}

// Sensing returns the current state of the home sensor.
func (a *Axis) Sensing() bool {
	return a.sensor.Sensing()
}

// Step moves the axis n steps. Steps already taken are not undone
// if the safety limit is reached part way through.
func (a *Axis) Step(forward bool, n uint32) error {
	for i := uint32(0); i < n; i++ {
		if err := a.onestep(forward); err != nil {
			return err
		}
	}
	return nil
}

func (a *Axis) onestep(forward bool) error {
	inc := int64(1)
	if !forward {
		inc = -1
	}
	p := a.Position() + inc
	if a.limit != 0 && (p > a.limit || p < -a.limit) {
		return fmt.Errorf("%s: step to %d: %w (limit %d)", a.Name, p, ErrSafetyLimit, a.limit)
	}
	a.actuator.OneStep(forward)
	atomic.StoreInt64(&a.position, p)
	atomic.AddInt64(&a.total, 1)
	if a.delay != 0 {
		time.Sleep(a.delay)
	}
	return nil
}

// stepUntil steps until the sensor reads the target value, or max steps
// have been taken. The sensor is checked before each step, so the result is
// only found if the transition is seen within the step budget.
func (a *Axis) stepUntil(forward bool, max int, target bool) (bool, int, error) {
	n := 0
	for n < max {
		if a.sensor.Sensing() == target {
			return true, n, nil
		}
		if err := a.onestep(forward); err != nil {
			return false, n, err
		}
		n++
	}
	return false, n, nil
}

// Scan moves the axis to the middle of the sensor's active zone.
//  1. Step backward off the zone if already over it.
//  2. Step forward until the zone is reached.
//  3. Step forward until the zone is left, measuring its width.
//  4. Step backward half the width.
//
// Each phase is bounded by a step budget: maxScan for phase 2,
// maxSensor for phases 1 and 3. The steps taken in each completed or failed
// phase are returned, signed so that positive is towards forward.
// The sum of the steps is the displacement since the scan started.
func (a *Axis) Scan(forward bool, maxScan, maxSensor int) (bool, []int, error) {
	var all []int
	found, n, err := a.stepUntil(!forward, maxSensor, false)
	all = append(all, -n)
	if err != nil || !found {
		return false, all, err
	}
	found, n, err = a.stepUntil(forward, maxScan, true)
	all = append(all, n)
	if err != nil || !found {
		return false, all, err
	}
	found, n, err = a.stepUntil(forward, maxSensor, false)
	all = append(all, n)
	if err != nil || !found {
		return false, all, err
	}
	// 0123456789
	// ---@@@@---
	//    <------ width 4 from the first active step, back 2 to position 5.
	// An odd width lands on the step past the midpoint.
	half := (n + 1) / 2
	all = append(all, -half)
	if err := a.Step(!forward, uint32(half)); err != nil {
		return false, all, err
	}
	return true, all, nil
}
