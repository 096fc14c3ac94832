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
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aamcrae/orrery/axis"
	"github.com/aamcrae/orrery/sim"
	"github.com/aamcrae/orrery/steps"
)

type testLogger struct {
	messages []string
}

func (l *testLogger) Printf(format string, v ...interface{}) {
	l.messages = append(l.messages, fmt.Sprintf(format, v...))
}

func (l *testLogger) contains(s string) bool {
	for _, m := range l.messages {
		if strings.Contains(m, s) {
			return true
		}
	}
	return false
}

// Sensor active either side of 0 on a 360 step revolution.
var home = []sim.Range{{Lo: 350, Hi: 360}, {Lo: 0, Hi: 10}}

type rig struct {
	model                  *Model
	log                    *testLogger
	orbit, rotation, moon  *sim.Assembly
	orbitAx, rotAx, moonAx *axis.Axis
}

func newRig(eo, er, mo int, ranges ...[]sim.Range) *rig {
	r := &rig{log: new(testLogger)}
	rg := [][]sim.Range{home, home, home}
	for i := range ranges {
		rg[i] = ranges[i]
	}
	r.orbit = sim.NewAssembly(eo, 360, rg[0]...)
	r.rotation = sim.NewAssembly(er, 360, rg[1]...)
	r.moon = sim.NewAssembly(mo, 360, rg[2]...)
	r.orbitAx = axis.New("earth_orbit", r.orbit, r.orbit, 0, 0)
	r.rotAx = axis.New("earth_rotation", r.rotation, r.rotation, 0, 0)
	r.moonAx = axis.New("moon_orbit", r.moon, r.moon, 0, 0)
	r.model = New(r.orbitAx, r.rotAx, r.moonAx, steps.NewUnits(360), r.log)
	return r
}

func (r *rig) positions() []int64 {
	return []int64{r.orbitAx.Position(), r.rotAx.Position(), r.moonAx.Position()}
}

func TestModel(t *testing.T) {
	r := newRig(100, 200, 300)
	require.NoError(t, r.model.Init(Position{}))
	assert.Equal(t, []int64{-100, 160, 60}, r.positions())
	assert.Equal(t, 360, r.orbit.Position())
	assert.Equal(t, 0, r.rotation.Position())
	assert.Equal(t, 0, r.moon.Position())

	require.NoError(t, r.model.Next(Position{90, 30, 60}))
	assert.Equal(t, []int64{-100 - 90, 160 + 90 + 30, 60 + 90 + 60}, r.positions())

	require.NoError(t, r.model.Next(Position{95, 40, 80})) // +5, +10, +20
	assert.Equal(t, []int64{-100 - 90 - 5, 160 + 90 + 30 + 5 + 10, 60 + 90 + 60 + 5 + 20}, r.positions())

	// 190 maps to 170, so the orbit axis moves +265 steps without wrapping,
	// and the stages above take the shorter reverse of +95.
	require.NoError(t, r.model.Next(Position{190, 40, 80}))
	assert.Equal(t, []int64{-100 - 90 - 5 + 265, 160 + 90 + 30 + 5 + 10 + 95, 60 + 90 + 60 + 5 + 20 + 95}, r.positions())
}

func TestMultiScan(t *testing.T) {
	r := newRig(200, 0, 355)
	require.NoError(t, r.model.Init(Position{}))
	assert.Equal(t, []int64{160, 0, 5}, r.positions())
	assert.True(t, r.log.contains("reset position, motor=earth_orbit, steps=180"))

	require.NoError(t, r.model.Next(Position{25, 0, 330}))
	// Shortest path for +330 is -30.
	assert.Equal(t, []int64{160 - 25, 25, 5 + 25 - 30}, r.positions())

	require.NoError(t, r.model.Next(Position{25, 0, 5}))
	assert.Equal(t, []int64{160 - 25, 25, 5 + 25 - 30 + 35}, r.positions())
}

func TestInitPosition(t *testing.T) {
	r := newRig(100, 200, 300)
	require.NoError(t, r.model.Init(Position{90, 30, 60}))
	assert.Equal(t, []int64{-100 - 90, 160 + 90 + 30, 60 + 90 + 60}, r.positions())
	assert.True(t, r.model.Initialised())
}

func TestIdempotent(t *testing.T) {
	r := newRig(100, 200, 300)
	p := Position{123.4, 271.9, 14.2}
	require.NoError(t, r.model.Init(p))
	before := []int64{r.orbitAx.Total(), r.rotAx.Total(), r.moonAx.Total()}
	require.NoError(t, r.model.Next(p))
	require.NoError(t, r.model.Next(p))
	assert.Equal(t, before, []int64{r.orbitAx.Total(), r.rotAx.Total(), r.moonAx.Total()})
}

func TestReturnHome(t *testing.T) {
	r := newRig(100, 200, 300)
	require.NoError(t, r.model.Init(Position{}))
	start := r.positions()
	for _, p := range []Position{{45, 100, 200}, {270, 359, 1}, {359, 180, 180}, {0, 0, 0}} {
		require.NoError(t, r.model.Next(p))
	}
	// Each stage holds its world orientation, so the physical assemblies
	// return to where they were homed.
	assert.Equal(t, start[0], r.orbitAx.Position())
	assert.True(t, r.orbit.Position()%360 == 0)
	assert.True(t, r.rotation.Position()%360 == 0)
	assert.True(t, r.moon.Position()%360 == 0)
}

func TestNotInitialised(t *testing.T) {
	r := newRig(100, 200, 300)
	assert.False(t, r.model.Initialised())
	err := r.model.Next(Position{})
	assert.True(t, errors.Is(err, ErrNotInitialised))
}

func TestOrbitHomingFailure(t *testing.T) {
	r := newRig(100, 200, 300, []sim.Range{})
	err := r.model.Init(Position{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHoming)
	assert.Contains(t, err.Error(), "earth_orbit")
	// Back 180, reset forward 180, then forward 180.
	assert.Equal(t, int64(180), r.orbitAx.Position())
	assert.Equal(t, int64(540), r.orbitAx.Total())
	assert.Equal(t, 0, r.rotation.Steps)
	assert.False(t, r.model.Initialised())
}

func TestRotationHomingFailure(t *testing.T) {
	r := newRig(100, 200, 300, home, []sim.Range{})
	err := r.model.Init(Position{})
	assert.ErrorIs(t, err, ErrHoming)
	assert.Contains(t, err.Error(), "earth_rotation")
	// No retry in the other direction.
	assert.Equal(t, int64(360), r.rotAx.Total())
	assert.Equal(t, 0, r.moon.Steps)
}

func TestMoonHomingFailure(t *testing.T) {
	r := newRig(100, 200, 300, home, home, []sim.Range{})
	err := r.model.Init(Position{})
	assert.ErrorIs(t, err, ErrHoming)
	assert.Contains(t, err.Error(), "moon_orbit")
}

func TestSafetyLimit(t *testing.T) {
	r := newRig(100, 200, 300)
	r.orbitAx = axis.New("earth_orbit", r.orbit, r.orbit, 0, 200)
	r.model.Orbit = r.orbitAx
	require.NoError(t, r.model.Init(Position{}))
	require.NoError(t, r.model.Next(Position{Orbit: 90}))
	assert.Equal(t, int64(-190), r.orbitAx.Position())
	err := r.model.Next(Position{Orbit: 180})
	assert.ErrorIs(t, err, axis.ErrSafetyLimit)
	assert.Equal(t, int64(-200), r.orbitAx.Position())
}

func TestTelemetry(t *testing.T) {
	r := newRig(100, 200, 300)
	require.NoError(t, r.model.Init(Position{}))
	require.NoError(t, r.model.Next(Position{90, 30, 60}))
	assert.True(t, r.log.contains("scanned back, motor=earth_orbit, success=true, steps=0/90/21/-11"))
	assert.True(t, r.log.contains("earth_orbit[degrees=90.0000, steps=-90]"))
	assert.True(t, r.log.contains("op=move, motor=moon_orbit, fwd=true, steps=150"))
}

func TestStatus(t *testing.T) {
	r := newRig(100, 200, 300)
	st := r.model.Status()
	assert.False(t, st.Initialised)
	require.Len(t, st.Axes, 3)
	assert.Equal(t, 0, st.Axes[0].Target)
	require.NoError(t, r.model.Init(Position{}))
	require.NoError(t, r.model.Next(Position{90, 30, 60}))
	st = r.model.Status()
	assert.True(t, st.Initialised)
	assert.Equal(t, Position{90, 30, 60}, st.Position)
	assert.Equal(t, "earth_orbit", st.Axes[0].Name)
	assert.Equal(t, int64(-190), st.Axes[0].Position)
	assert.Equal(t, -90, st.Axes[0].Target)
	assert.Equal(t, 30, st.Axes[1].Target)
	assert.Equal(t, -60, st.Axes[2].Target)
	assert.InDelta(t, -60.0, st.Axes[2].Degrees, 1e-9)
}

func TestMirror(t *testing.T) {
	for _, tc := range []struct{ in, out float64 }{
		{0, 0}, {90, -90}, {180, -180}, {190, 170}, {270, 90}, {360, 0},
	} {
		assert.Equal(t, tc.out, Mirror(tc.in), "mirror %v", tc.in)
	}
}
