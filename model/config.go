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
	"strconv"
	"strings"
	"time"

	"github.com/aamcrae/config"
)

// Defaults for optional configuration values.
const (
	defaultUpdate = time.Minute
	defaultPort   = 8080
)

// Section provides the values from a config file section.
// *config.Section satisfies this interface.
type Section interface {
	GetArg(string) (string, error)
}

// AxisConfig is the configuration of a single axis.
type AxisConfig struct {
	Name       string
	Pins       []int         // 4 pins for a half-step driver, or step and direction pins
	Sensor     int           // GPIO for home sensor
	ActiveHigh bool          // Sensor is active high
	Delay      time.Duration // Pause after each step
	Pulse      time.Duration // Step pulse width for step/dir drivers
	Limit      int           // Bound on net steps, 0 for none
}

// OrreryConfig is the configuration of the orrery, read from a config file.
type OrreryConfig struct {
	Steps    int           // Steps in a revolution, the same for all axes
	Update   time.Duration // Tracking update interval
	Port     int           // Status server port, 0 to disable
	Orbit    *AxisConfig
	Rotation *AxisConfig
	Moon     *AxisConfig
}

// Config reads and validates the orrery configuration.
// Sample config:
//
//	[orrery]
//	steps=200               # Steps in a revolution
//	update=60s              # Interval between updates
//	port=8080               # Status server port
//	[orbit]
//	stepper=4,17,27,22      # GPIOs for stepper motor, or step,dir GPIOs
//	sensor=23               # GPIO for home sensor
//	delay=10ms              # Pause after each step
//	limit=200               # Maximum net steps either way
//	[rotation]
//	...
//	[moon]
//	...
//
// The orbit axis is tethered, so its limit defaults to one revolution.
func Config(conf *config.Config) (*OrreryConfig, error) {
	get := func(name string) (Section, error) {
		s := conf.GetSection(name)
		if s == nil {
			return nil, fmt.Errorf("no config for %s", name)
		}
		return s, nil
	}
	return ParseConfig(get)
}

// ParseConfig builds the configuration from the sections returned by get.
func ParseConfig(get func(string) (Section, error)) (*OrreryConfig, error) {
	s, err := get("orrery")
	if err != nil {
		return nil, err
	}
	var oc OrreryConfig
	if oc.Steps, err = intArg(s, "steps", 0); err != nil {
		return nil, err
	}
	if oc.Steps <= 0 {
		return nil, fmt.Errorf("steps: must be positive")
	}
	if oc.Update, err = durationArg(s, "update", defaultUpdate); err != nil {
		return nil, err
	}
	if oc.Port, err = intArg(s, "port", defaultPort); err != nil {
		return nil, err
	}
	for _, a := range []struct {
		name  string
		ac    **AxisConfig
		limit int
	}{
		{"orbit", &oc.Orbit, oc.Steps},
		{"rotation", &oc.Rotation, 0},
		{"moon", &oc.Moon, 0},
	} {
		s, err := get(a.name)
		if err != nil {
			return nil, err
		}
		if *a.ac, err = AxisConf(a.name, s, a.limit); err != nil {
			return nil, fmt.Errorf("%s: %v", a.name, err)
		}
	}
	return &oc, nil
}

// AxisConf reads the configuration of a single axis.
func AxisConf(name string, s Section, limit int) (*AxisConfig, error) {
	ac := &AxisConfig{Name: name}
	p, err := s.GetArg("stepper")
	if err != nil {
		return nil, fmt.Errorf("stepper: %v", err)
	}
	for _, f := range strings.Split(p, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("stepper: %v", err)
		}
		ac.Pins = append(ac.Pins, v)
	}
	if len(ac.Pins) != 4 && len(ac.Pins) != 2 {
		return nil, fmt.Errorf("stepper: invalid pin count %d", len(ac.Pins))
	}
	if ac.Sensor, err = intArg(s, "sensor", -1); err != nil {
		return nil, err
	}
	if ac.Sensor < 0 {
		return nil, fmt.Errorf("sensor: missing")
	}
	if ac.Delay, err = durationArg(s, "delay", 0); err != nil {
		return nil, err
	}
	if ac.Pulse, err = durationArg(s, "pulse", 0); err != nil {
		return nil, err
	}
	if ac.Limit, err = intArg(s, "limit", limit); err != nil {
		return nil, err
	}
	if ac.Limit < 0 {
		return nil, fmt.Errorf("limit: must not be negative")
	}
	h, err := intArg(s, "active-high", 0)
	if err != nil {
		return nil, err
	}
	ac.ActiveHigh = h != 0
	return ac, nil
}

// arg returns the value for the key, or false if it is not present.
func arg(s Section, key string) (string, bool) {
	v, err := s.GetArg(key)
	if err != nil || v == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func intArg(s Section, key string, def int) (int, error) {
	v, ok := arg(s, key)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", key, err)
	}
	return n, nil
}

func durationArg(s Section, key string, def time.Duration) (time.Duration, error) {
	v, ok := arg(s, key)
	if !ok {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", key, err)
	}
	return d, nil
}
