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

// Simulator orrery program

package main

import (
	"flag"
	"log"
	"time"

	"github.com/aamcrae/orrery/axis"
	"github.com/aamcrae/orrery/ephem"
	"github.com/aamcrae/orrery/model"
	"github.com/aamcrae/orrery/sim"
	"github.com/aamcrae/orrery/steps"
)

// Simulated axes, one step per degree.
var params = []struct {
	name  string
	start int
	limit int
	delay time.Duration
}{
	{"earth_orbit", 100, 360, 2 * time.Millisecond},
	{"earth_rotation", 200, 0, time.Millisecond},
	{"moon_orbit", 300, 0, time.Millisecond},
}

const rev = 360

var home = []sim.Range{{Lo: 345, Hi: 360}, {Lo: 0, Hi: 15}}

var port = flag.Int("port", 8080, "Web server port number, 0 to disable")
var iterations = flag.Int("iterations", 50, "Number of updates, 0 to run forever")
var leap = flag.Duration("leap", time.Hour, "Simulated time between updates")
var interval = flag.Duration("interval", time.Second, "Real time between updates")
var start = flag.String("start", "", "Simulated start time (RFC3339), default now")

func main() {
	flag.Parse()
	t := time.Now()
	if *start != "" {
		var err error
		t, err = time.Parse(time.RFC3339, *start)
		if err != nil {
			log.Fatalf("%s: %v", *start, err)
		}
	}
	var axes []*axis.Axis
	var asm []*sim.Assembly
	for _, p := range params {
		a := sim.NewAssembly(p.start, rev, home...)
		asm = append(asm, a)
		axes = append(axes, axis.New(p.name, a, a, p.delay, p.limit))
	}
	m := model.New(axes[0], axes[1], axes[2], steps.NewUnits(rev), log.Default())
	if *port != 0 {
		go func() {
			log.Printf("Status server: %v", model.Serve(m, *port))
		}()
	}
	pr := ephem.NewStepped(t, *leap)
	log.Printf("Simulated time %s", pr.Time().Format(time.RFC3339))
	if err := m.Init(pr.Now()); err != nil {
		log.Fatalf("Init: %v", err)
	}
	for i := 0; *iterations == 0 || i < *iterations; i++ {
		time.Sleep(*interval)
		log.Printf("Simulated time %s", pr.Time().Format(time.RFC3339))
		if err := m.Next(pr.Now()); err != nil {
			log.Fatalf("Next: %v", err)
		}
		for j, a := range asm {
			log.Printf("%s: assembly at %d", params[j].name, a.Position())
		}
	}
}
