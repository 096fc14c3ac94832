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

// Package ephem provides approximate orrery positions from the time,
// using the mean motion of the earth and moon. The result is accurate
// to within a degree or so, which is finer than a step on most rigs.
package ephem

import (
	"math"
	"sync"
	"time"

	"github.com/aamcrae/orrery/model"
)

// Reference events and mean periods.
var (
	winterSolstice = time.Date(2021, time.December, 21, 15, 59, 0, 0, time.UTC)
	newMoon        = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)
)

const (
	tropicalYear = 365.24219    // days
	synodicMonth = 29.530588853 // days
)

// At returns the position of the orrery at the time.
// Orbit is 0 at the northern winter solstice, increasing through the
// vernal equinox (90), summer solstice (180) and autumnal equinox (270).
// Rotation is 0 at solar noon in Greenwich, and Moon is 0 at new moon.
func At(t time.Time) model.Position {
	return model.Position{
		Orbit:    Orbit(t),
		Rotation: Rotation(t),
		Moon:     Moon(t),
	}
}

// Orbit returns the orbit angle of the earth from the winter solstice.
func Orbit(t time.Time) float64 {
	return fraction(t.Sub(winterSolstice), tropicalYear) * 360
}

// Moon returns the lunar phase angle, 0 at new moon and 180 at full moon.
func Moon(t time.Time) float64 {
	return fraction(t.Sub(newMoon), synodicMonth) * 360
}

// Rotation returns the rotation angle of the earth from solar noon in
// Greenwich, using apparent solar time.
func Rotation(t time.Time) float64 {
	u := t.UTC()
	midnight := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	solar := u.Sub(midnight) + EquationOfTime(u) - 12*time.Hour
	return fraction(solar, 1) * 360
}

// EquationOfTime returns the difference between apparent and mean solar time.
func EquationOfTime(t time.Time) time.Duration {
	b := 2 * math.Pi * float64(t.UTC().YearDay()-81) / 365
	m := 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)
	return time.Duration(m * float64(time.Minute))
}

// fraction returns the fractional part of d measured in periods of days,
// in the range [0, 1).
func fraction(d time.Duration, days float64) float64 {
	f := math.Mod(d.Hours()/24/days, 1)
	if f < 0 {
		f++
	}
	if f >= 1 {
		f = 0
	}
	return f
}

// Provider returns the position of the orrery for the current time.
type Provider struct {
	now func() time.Time
}

// NewProvider returns a Provider using the system clock.
func NewProvider() *Provider {
	return &Provider{now: time.Now}
}

// Now returns the current position.
func (p *Provider) Now() model.Position {
	return At(p.now())
}

// Stepped is a Provider that advances time by a fixed amount each time it is
// asked for a position. It is used to run the orrery faster than real time.
type Stepped struct {
	mu   sync.Mutex
	t    time.Time
	leap time.Duration
}

// NewStepped returns a Stepped provider whose first position is at start.
func NewStepped(start time.Time, leap time.Duration) *Stepped {
	return &Stepped{t: start, leap: leap}
}

// Now returns the position at the current simulated time, and advances it.
func (s *Stepped) Now() model.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := At(s.t)
	s.t = s.t.Add(s.leap)
	return p
}

// Time returns the simulated time of the next position.
func (s *Stepped) Time() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t
}
