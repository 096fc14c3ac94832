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
	"fmt"
	"time"

	gpio "github.com/aamcrae/gpio"
)

// Driver moves a stepper motor one step at a time.
type Driver interface {
	OneStep(forward bool)
	Off()
}

// Motor is a stepper motor driver attached to GPIO pins.
type Motor struct {
	Driver
	pins []*gpio.Gpio
}

// OpenMotor opens the GPIO pins for a motor. 4 pins select a
// half-step unipolar driver, 2 pins select a step/direction driver
// (step pin first).
func OpenMotor(pins []int, pulse time.Duration) (*Motor, error) {
	if len(pins) != 4 && len(pins) != 2 {
		return nil, fmt.Errorf("motor needs 2 or 4 pins, not %d", len(pins))
	}
	m := new(Motor)
	for _, p := range pins {
		g, err := gpio.OutputPin(p)
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("Pin %d: %v", p, err)
		}
		m.pins = append(m.pins, g)
	}
	if len(pins) == 4 {
		m.Driver = NewStepper(m.pins[0], m.pins[1], m.pins[2], m.pins[3])
	} else {
		m.Driver = NewStepDir(m.pins[0], m.pins[1], pulse)
	}
	return m, nil
}

// Close turns the motor off and releases the pins.
func (m *Motor) Close() {
	if m.Driver != nil {
		m.Off()
	}
	for _, p := range m.pins {
		p.Close()
	}
}

// Sensor is a Hall effect sensor attached to a GPIO pin.
type Sensor struct {
	*HallSensor
	pin *gpio.Gpio
}

// OpenSensor opens the GPIO input pin for a sensor.
func OpenSensor(name string, pin int, activeHigh bool) (*Sensor, error) {
	g, err := gpio.Pin(pin)
	if err != nil {
		return nil, fmt.Errorf("Pin %d: %v", pin, err)
	}
	s := &Sensor{HallSensor: NewHallSensor(name, g), pin: g}
	s.ActiveHigh = activeHigh
	return s, nil
}

// Close releases the pin.
func (s *Sensor) Close() {
	s.pin.Close()
}
