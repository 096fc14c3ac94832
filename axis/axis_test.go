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

package axis

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aamcrae/orrery/sim"
)

func TestScan(t *testing.T) {
	ma := sim.NewAssembly(0, 0, sim.Range{Lo: 60, Hi: 79})
	a := New("test", ma, ma, 0, 0)
	found, steps, err := a.Scan(true, 100, 50)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []int{0, 60, 20, -10}, steps)
	assert.Equal(t, 70, ma.Position())
	assert.Equal(t, int64(70), a.Position())
	assert.Equal(t, int64(90), a.Total())
}

func TestScanNotFound(t *testing.T) {
	ma := sim.NewAssembly(0, 0, sim.Range{Lo: 60, Hi: 79})
	a := New("test", ma, ma, 0, 0)
	found, steps, err := a.Scan(true, 50, 50)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, []int{0, 50}, steps)
	assert.Equal(t, 50, ma.Position())
}

func TestScanZoneTooLarge(t *testing.T) {
	ma := sim.NewAssembly(100, 0, sim.Range{Lo: 0, Hi: 200})
	a := New("test", ma, ma, 0, 0)
	found, steps, err := a.Scan(true, 50, 50)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, []int{-50}, steps)
	assert.Equal(t, 50, ma.Position())
}

func TestScanExitTooWide(t *testing.T) {
	ma := sim.NewAssembly(0, 0, sim.Range{Lo: 10, Hi: 100})
	a := New("test", ma, ma, 0, 0)
	found, steps, err := a.Scan(true, 50, 50)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, []int{0, 10, 50}, steps)
	assert.Equal(t, 60, ma.Position())
}

func TestScanBackward(t *testing.T) {
	// Starts inside the zone, so phase 1 moves forward off it first.
	ma := sim.NewAssembly(25, 0, sim.Range{Lo: 20, Hi: 29})
	a := New("test", ma, ma, 0, 0)
	found, steps, err := a.Scan(false, 100, 50)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []int{-5, 1, 10, -5}, steps)
	assert.Equal(t, 24, ma.Position())
	sum := 0
	for _, s := range steps {
		sum += s
	}
	// Displacement is measured in the scan direction.
	assert.Equal(t, int64(-sum), a.Position())
}

func TestScanOddWidth(t *testing.T) {
	ma := sim.NewAssembly(0, 0, sim.Range{Lo: 10, Hi: 20})
	a := New("test", ma, ma, 0, 0)
	found, steps, err := a.Scan(true, 100, 50)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []int{0, 10, 11, -6}, steps)
	assert.Equal(t, 15, ma.Position())
}

func TestStep(t *testing.T) {
	ma := sim.NewAssembly(0, 0)
	a := New("test", ma, ma, time.Microsecond, 0)
	require.NoError(t, a.Step(true, 10))
	require.NoError(t, a.Step(false, 25))
	assert.Equal(t, int64(-15), a.Position())
	assert.Equal(t, int64(35), a.Total())
	assert.Equal(t, -15, ma.Position())
	require.NoError(t, a.Step(true, 0))
	assert.Equal(t, int64(35), a.Total())
}

func TestSafetyLimit(t *testing.T) {
	ma := sim.NewAssembly(0, 0)
	a := New("test", ma, ma, 0, 20)
	require.NoError(t, a.Step(true, 15))
	err := a.Step(true, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSafetyLimit))
	// The steps up to the limit have been taken.
	assert.Equal(t, int64(20), a.Position())
	assert.Equal(t, 20, ma.Position())
	// Moving back within the limit is allowed.
	require.NoError(t, a.Step(false, 40))
	assert.Equal(t, int64(-20), a.Position())
	assert.ErrorIs(t, a.Step(false, 1), ErrSafetyLimit)
}

func TestScanSafetyLimit(t *testing.T) {
	ma := sim.NewAssembly(0, 0, sim.Range{Lo: 60, Hi: 79})
	a := New("test", ma, ma, 0, 30)
	found, steps, err := a.Scan(true, 100, 50)
	assert.False(t, found)
	assert.ErrorIs(t, err, ErrSafetyLimit)
	assert.Equal(t, []int{0, 30}, steps)
}
