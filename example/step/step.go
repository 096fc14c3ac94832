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

// Program to demonstrate how to drive a stepper motor one step at a time.

package main

import (
	"flag"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/aamcrae/orrery/io"
)

var pins = flag.String("pins", "4,17,27,22", "GPIO pins for the motor (4 for half-step, or step,dir)")
var delay = flag.Duration("delay", 5*time.Millisecond, "Delay between steps")
var steps = flag.Int("steps", 200, "Steps")
var repeat = flag.Int("repeat", 4, "Number of back and forth movements")

func main() {
	flag.Parse()
	var p []int
	for _, s := range strings.Split(*pins, ",") {
		v, err := strconv.Atoi(s)
		if err != nil {
			log.Fatalf("%s: %v", *pins, err)
		}
		p = append(p, v)
	}
	m, err := io.OpenMotor(p, 0)
	if err != nil {
		log.Fatalf("Motor: %v", err)
	}
	defer m.Close()
	now := time.Now()
	fwd := true
	for i := 0; i < *repeat; i++ {
		for s := 0; s < *steps; s++ {
			m.OneStep(fwd)
			time.Sleep(*delay)
		}
		fwd = !fwd
	}
	log.Printf("Elapsed = %s", time.Now().Sub(now))
}
