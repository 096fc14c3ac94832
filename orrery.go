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

// Orrery program

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aamcrae/config"
	"github.com/aamcrae/orrery/ephem"
	"github.com/aamcrae/orrery/model"
)

var configFile = flag.String("config", "orrery.conf", "Configuration file")
var port = flag.Int("port", -1, "Status server port (overrides config, 0 disables)")
var update = flag.Duration("update", 0, "Update interval (overrides config)")

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
	if *port >= 0 {
		oc.Port = *port
	}
	if *update > 0 {
		oc.Update = *update
	}
	o, err := model.NewOrrery(oc, log.Default())
	if err != nil {
		log.Fatalf("Orrery: %v", err)
	}
	defer o.Close()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if oc.Port != 0 {
		go func() {
			log.Printf("Starting status server on port %d", oc.Port)
			log.Printf("Status server: %v", model.Serve(o.Model, oc.Port))
		}()
	}
	if err := run(ctx, o.Model, ephem.NewProvider(), oc.Update); err != nil {
		// Release the motors before exiting.
		o.Close()
		log.Fatalf("Orrery: %v", err)
	}
	log.Printf("Shutting down")
}

// run homes the orrery, and then updates it on each interval
// until the context is cancelled.
func run(ctx context.Context, m *model.Model, p model.Provider, interval time.Duration) error {
	if err := m.Init(p.Now()); err != nil {
		return err
	}
	// Start the ticker on an interval boundary.
	select {
	case <-ctx.Done():
		return nil
	case <-time.After(untilBoundary(time.Now(), interval)):
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := m.Next(p.Now()); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// untilBoundary returns the time until the next multiple of the interval
// e.g if the interval is 1 minute, the ticker starts on the minute.
func untilBoundary(n time.Time, interval time.Duration) time.Duration {
	adj := n.UTC()
	return adj.Truncate(interval).Add(interval).Sub(adj)
}
