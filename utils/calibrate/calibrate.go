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

// Calibration utility. Homes a single axis, and then allows the axis
// to be stepped manually to check the home mark and the step direction.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aamcrae/config"
	"github.com/aamcrae/orrery/axis"
	"github.com/aamcrae/orrery/model"
	"github.com/aamcrae/orrery/steps"
)

var configFile = flag.String("config", "orrery.conf", "Configuration file")
var section = flag.String("axis", "", "Axis to calibrate e.g orbit, rotation, moon")
var back = flag.Bool("back", false, "Scan backward")

func main() {
	flag.Parse()
	conf, err := config.ParseFile(*configFile)
	if err != nil {
		log.Fatalf("%s: %v", *configFile, err)
	}
	oc, err := model.Config(conf)
	if err != nil {
		log.Fatalf("%s: %v", *configFile, err)
	}
	var ac *model.AxisConfig
	switch *section {
	case "orbit":
		ac = oc.Orbit
	case "rotation":
		ac = oc.Rotation
	case "moon":
		ac = oc.Moon
	default:
		log.Fatalf("Unknown axis %q", *section)
	}
	a, o, err := model.OpenAxis(ac)
	if err != nil {
		log.Fatalf("Axis: %s %v", *section, err)
	}
	defer o.Close()
	u := steps.NewUnits(oc.Steps)
	scan(a, u)
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("Position %d, sensor %v\n", a.Position(), a.Sensing())
		fmt.Print("Enter steps or command ('help' for help) ")
		text, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		text = strings.TrimSpace(text)
		switch text {
		case "help":
			fmt.Println("  help - print help")
			fmt.Println("  [-]NNN move steps")
			fmt.Println("  s - scan to home mark")
			fmt.Println("  q - quit")
		case "q":
			return
		case "s":
			scan(a, u)
		default:
			var n int
			c, err := fmt.Sscanf(text, "%d", &n)
			if err != nil || c != 1 {
				fmt.Printf("Unrecognised input\n")
				break
			}
			fmt.Printf("Moving %d steps\n", n)
			fwd := n >= 0
			if !fwd {
				n = -n
			}
			if err := a.Step(fwd, uint32(n)); err != nil {
				fmt.Printf("Step: %v\n", err)
			}
		}
	}
}

func scan(a *axis.Axis, u *steps.Units) {
	found, st, err := a.Scan(!*back, u.Rev(), u.Quarter())
	if err != nil {
		log.Fatalf("%s: scan: %v", a.Name, err)
	}
	if !found {
		fmt.Printf("%s: home mark not found, steps %v\n", a.Name, st)
		return
	}
	// The width of the mark is the third phase of the scan.
	fmt.Printf("%s: at home mark, steps %v, mark width %d\n", a.Name, st, st[2])
}
