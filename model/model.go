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

// Orrery synchronisation model

package model

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/aamcrae/orrery/axis"
	"github.com/aamcrae/orrery/steps"
)

var (
	// ErrHoming is returned when an axis cannot find its home mark.
	ErrHoming = errors.New("unable to locate reference position")
	// ErrNotInitialised is returned if Next is called before Init.
	ErrNotInitialised = errors.New("model not initialised")
)

// Position holds the target angles of the orrery, in degrees.
// Orbit uses the absolute scale, from 0 at the northern winter solstice
// through to 360. Rotation is 0 at solar noon on the prime meridian, and
// Moon is 0 at new moon.
type Position struct {
	Orbit    float64 `json:"orbit"`
	Rotation float64 `json:"rotation"`
	Moon     float64 `json:"moon"`
}

// Provider returns the target position of the orrery.
type Provider interface {
	Now() Position
}

// Logger is used to report progress. *log.Logger satisfies this interface.
type Logger interface {
	Printf(format string, v ...interface{})
}

// targets are the step offsets of each axis from its home mark.
type targets struct {
	orbit, rotation, moon steps.StepCount
}

// Model drives the three axes of the orrery. The orbit axis is the lowest
// stage, and turning it turns the rotation and moon stages with it, so
// these are driven in the opposite sense to hold their orientation.
// The moon stage is mounted inverted relative to the rotation stage.
type Model struct {
	Orbit    *axis.Axis
	Rotation *axis.Axis
	Moon     *axis.Axis
	units    *steps.Units
	log      Logger
	mu       sync.Mutex // Serialises Init and Next
	smu      sync.Mutex // Guards last and position
	last     *targets
	position Position
}

// New creates a Model from the three axes, which share the same
// number of steps in a revolution.
func New(orbit, rotation, moon *axis.Axis, units *steps.Units, log Logger) *Model {
	return &Model{
		Orbit:    orbit,
		Rotation: rotation,
		Moon:     moon,
		units:    units,
		log:      log,
	}
}

// Units returns the step units of the model.
func (m *Model) Units() *steps.Units {
	return m.units
}

// Init homes each axis and then moves the orrery to the position given.
func (m *Model) Init(p Position) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.home(); err != nil {
		return err
	}
	zero := targets{
		orbit:    steps.New(m.units, 0, false),
		rotation: steps.New(m.units, 0, true),
		moon:     steps.New(m.units, 0, true),
	}
	return m.next(p, &zero)
}

// Next moves the orrery from the last position to the position given.
func (m *Model) Next(p Position) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.smu.Lock()
	last := m.last
	m.smu.Unlock()
	if last == nil {
		return ErrNotInitialised
	}
	return m.next(p, last)
}

// Initialised returns true once Init has completed.
func (m *Model) Initialised() bool {
	m.smu.Lock()
	defer m.smu.Unlock()
	return m.last != nil
}

// home scans each axis to its home mark.
// The orbit axis is scanned clockwise (looking from above) first, and if
// the mark is not found it is returned to where it started and scanned
// counter-clockwise. When the magnet is over the sensor it is the northern
// winter solstice. The rotation and moon axes are only scanned forward;
// at their marks the prime meridian faces the sun and the moon is new.
func (m *Model) home() error {
	found, st, err := m.Orbit.Scan(false, m.units.Half(), m.units.Quarter())
	m.log.Printf("scanned back, motor=%s, success=%v, steps=%s", m.Orbit.Name, found, fmtSteps(st))
	if err != nil {
		return err
	}
	if !found {
		// Reverse the steps taken in the failed scan.
		total := 0
		for _, s := range st {
			total += s
		}
		fwd, n := total > 0, total
		if total < 0 {
			n = -total
		}
		if err := m.Orbit.Step(fwd, uint32(n)); err != nil {
			return err
		}
		m.log.Printf("reset position, motor=%s, steps=%d", m.Orbit.Name, n)
		found, st, err = m.Orbit.Scan(true, m.units.Half(), m.units.Quarter())
		m.log.Printf("scanned forward, motor=%s, success=%v, steps=%s", m.Orbit.Name, found, fmtSteps(st))
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%s: %w", m.Orbit.Name, ErrHoming)
		}
	}
	for _, a := range []*axis.Axis{m.Rotation, m.Moon} {
		found, st, err := a.Scan(true, m.units.Rev(), m.units.Quarter())
		m.log.Printf("scanned forward, motor=%s, success=%v, steps=%s", a.Name, found, fmtSteps(st))
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%s: %w", a.Name, ErrHoming)
		}
	}
	return nil
}

// next moves each axis from the last targets to the targets for p.
func (m *Model) next(p Position, last *targets) error {
	t := m.targets(p)
	m.log.Printf("%s[degrees=%.4f, steps=%s], %s[degrees=%.4f, steps=%s], %s[degrees=%.4f, steps=%s]",
		m.Orbit.Name, p.Orbit, t.orbit, m.Rotation.Name, p.Rotation, t.rotation, m.Moon.Name, p.Moon, t.moon)
	orbit := t.orbit.Minus(last.orbit)
	// Turning the orbit stage turns the stages above it by the same amount.
	rotation := t.rotation.Minus(last.rotation).Plus(orbit.Reverse().Wrapped())
	moon := t.moon.Minus(last.moon).Plus(orbit.Wrapped())
	if err := m.move(m.Orbit, orbit); err != nil {
		return err
	}
	if err := m.move(m.Rotation, rotation); err != nil {
		return err
	}
	// The moon offset is held in the frame of the inverted mount.
	if err := m.move(m.Moon, moon.Reverse()); err != nil {
		return err
	}
	m.smu.Lock()
	m.last = &t
	m.position = p
	m.smu.Unlock()
	return nil
}

func (m *Model) move(a *axis.Axis, s steps.StepCount) error {
	fwd, n := s.Get()
	if n == 0 {
		return nil
	}
	m.log.Printf("op=move, motor=%s, fwd=%v, steps=%d", a.Name, fwd, n)
	return a.Step(fwd, n)
}

// targets converts a position to step offsets from the home marks.
func (m *Model) targets(p Position) targets {
	return targets{
		orbit:    steps.FromDegrees(m.units, Mirror(p.Orbit), false),
		rotation: steps.FromDegrees(m.units, p.Rotation, true),
		moon:     steps.FromDegrees(m.units, p.Moon, true).Reverse(),
	}
}

// Mirror folds the absolute orbit angle onto the range of the orbit stage,
// which is tethered and cannot turn past half a revolution either way.
// [0, 180] maps to [0, -180], and (180, 360] maps to (180, 0].
func Mirror(degrees float64) float64 {
	if degrees <= 180 {
		return -degrees
	}
	return 180 - (degrees - 180)
}

func fmtSteps(st []int) string {
	s := make([]string, len(st))
	for i, v := range st {
		s[i] = fmt.Sprint(v)
	}
	return strings.Join(s, "/")
}
