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

// Time travel utility. Reads RFC3339 timestamps from stdin, one per line,
// and moves the orrery to the position for each.

package main

import (
	"bufio"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aamcrae/config"
	"github.com/aamcrae/orrery/ephem"
	"github.com/aamcrae/orrery/model"
)

var configFile = flag.String("config", "orrery.conf", "Configuration file")

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
	o, err := model.NewOrrery(oc, log.Default())
	if err != nil {
		log.Fatalf("Orrery: %v", err)
	}
	defer o.Close()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, line)
		if err != nil {
			log.Printf("%s: %v", line, err)
			continue
		}
		log.Printf("Moving to %s", t.Format(time.RFC3339))
		if !o.Model.Initialised() {
			err = o.Model.Init(ephem.At(t))
		} else {
			err = o.Model.Next(ephem.At(t))
		}
		if err != nil {
			o.Close()
			log.Fatalf("%s: %v", line, err)
		}
	}
}
