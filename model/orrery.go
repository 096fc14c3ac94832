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

package model

import (
	"fmt"

	"github.com/aamcrae/orrery/axis"
	"github.com/aamcrae/orrery/io"
	"github.com/aamcrae/orrery/steps"
)

// Orrery combines the model with the motors and sensors driving it.
type Orrery struct {
	Model   *Model
	Config  *OrreryConfig
	motors  []*io.Motor
	sensors []*io.Sensor
}

// NewOrrery opens the I/O for each axis, and creates the model.
func NewOrrery(oc *OrreryConfig, log Logger) (*Orrery, error) {
	o := &Orrery{Config: oc}
	var axes []*axis.Axis
	for _, ac := range []*AxisConfig{oc.Orbit, oc.Rotation, oc.Moon} {
		a, err := o.open(ac)
		if err != nil {
			o.Close()
			return nil, err
		}
		axes = append(axes, a)
	}
	o.Model = New(axes[0], axes[1], axes[2], steps.NewUnits(oc.Steps), log)
	return o, nil
}

// OpenAxis opens the I/O for a single axis. The returned Orrery
// has no model, and is used to release the I/O.
func OpenAxis(ac *AxisConfig) (*axis.Axis, *Orrery, error) {
	o := new(Orrery)
	a, err := o.open(ac)
	if err != nil {
		o.Close()
		return nil, nil, err
	}
	return a, o, nil
}

func (o *Orrery) open(ac *AxisConfig) (*axis.Axis, error) {
	m, err := io.OpenMotor(ac.Pins, ac.Pulse)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", ac.Name, err)
	}
	o.motors = append(o.motors, m)
	s, err := io.OpenSensor(ac.Name, ac.Sensor, ac.ActiveHigh)
	if err != nil {
		return nil, fmt.Errorf("%s: sensor %v", ac.Name, err)
	}
	o.sensors = append(o.sensors, s)
	// Turn the motors off if the sensor fails, since the process exits.
	s.OnFatal = o.Off
	return axis.New(ac.Name, m, s, ac.Delay, ac.Limit), nil
}

// Off turns off the motors.
func (o *Orrery) Off() {
	for _, m := range o.motors {
		m.Off()
	}
}

// Close turns off the motors and releases the I/O.
func (o *Orrery) Close() {
	for _, m := range o.motors {
		m.Close()
	}
	for _, s := range o.sensors {
		s.Close()
	}
}
