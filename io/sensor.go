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
	"log"
)

// Getter is an interface for reading an input value from a GPIO
type Getter interface {
	Get() (int, error)
}

// HallSensor is a Hall effect sensor detecting a magnet at the home mark.
// The sensor output is open collector with a pull-up, so is low when
// the magnet is present, unless ActiveHigh is set.
type HallSensor struct {
	Name       string
	ActiveHigh bool
	OnFatal    func() // Called before exiting on a read failure
	pin        Getter
}

// Exit on an unrecoverable input error.
var fatalf = log.Fatalf

// NewHallSensor creates a HallSensor reading from the pin.
func NewHallSensor(name string, pin Getter) *HallSensor {
	return &HallSensor{Name: name, pin: pin}
}

// Sensing returns true when the magnet is over the sensor.
// A read failure is not recoverable, since homing and tracking both
// depend on the sensor.
func (h *HallSensor) Sensing() bool {
	v, err := h.pin.Get()
	if err != nil {
		if h.OnFatal != nil {
			h.OnFatal()
		}
		fatalf("%s: sensor input: %v", h.Name, err)
	}
	return (v != 0) == h.ActiveHigh
}
