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

// Program to demonstrate how to watch a home sensor

package main

import (
	"flag"
	"log"
	"time"

	"github.com/aamcrae/orrery/io"
)

var gpio = flag.Int("gpio", 23, "GPIO pin for the home sensor")
var activeHigh = flag.Bool("active-high", false, "Sensor is active high")
var poll = flag.Duration("poll", 20*time.Millisecond, "Poll interval")

func main() {
	flag.Parse()
	s, err := io.OpenSensor("sensor", *gpio, *activeHigh)
	if err != nil {
		log.Fatalf("Pin %d: %v", *gpio, err)
	}
	defer s.Close()
	last := s.Sensing()
	log.Printf("pin %d sensing = %v\n", *gpio, last)
	for {
		time.Sleep(*poll)
		if v := s.Sensing(); v != last {
			log.Printf("pin %d sensing = %v\n", *gpio, v)
			last = v
		}
	}
}
