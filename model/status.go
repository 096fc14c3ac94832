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
	"github.com/aamcrae/orrery/axis"
	"github.com/aamcrae/orrery/steps"
)

// AxisStatus is the state of one axis.
type AxisStatus struct {
	Name     string  `json:"name"`
	Position int64   `json:"position"` // Net steps since start
	Total    int64   `json:"total"`    // Absolute steps since start
	Target   int     `json:"target"`   // Steps from the home mark
	Degrees  float64 `json:"degrees"`  // Target as an angle
}

// Status is a snapshot of the orrery.
type Status struct {
	Initialised bool         `json:"initialised"`
	Position    Position     `json:"position"`
	Axes        []AxisStatus `json:"axes"`
}

// Status returns the current state of the model. It may be called while
// the axes are moving; the target is the one most recently reached.
func (m *Model) Status() Status {
	m.smu.Lock()
	last := m.last
	st := Status{Initialised: last != nil, Position: m.position}
	m.smu.Unlock()
	for i, a := range []*axis.Axis{m.Orbit, m.Rotation, m.Moon} {
		as := AxisStatus{Name: a.Name, Position: a.Position(), Total: a.Total()}
		if last != nil {
			t := []steps.StepCount{last.orbit, last.rotation, last.moon}[i]
			as.Target = t.Signed()
			as.Degrees = t.Degrees()
		}
		st.Axes = append(st.Axes, as)
	}
	return st
}
