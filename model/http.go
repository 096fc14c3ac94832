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

// HTTP server for orrery status and images
package model

import (
	"bytes"
	"fmt"
	"math"
	"net/http"

	"github.com/fogleman/gg"
	"github.com/labstack/echo/v4"
)

// Image layout.
const (
	imageSize   = 600
	orbitRadius = 220
	earthRadius = 30
	moonOrbit   = 60
	sunRadius   = 40
	moonRadius  = 10
)

// Server creates the status server for the model.
//
//	GET /status      JSON status of the model
//	GET /orrery.png  diagram of the orrery as seen from above
func Server(m *Model) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.GET("/status", func(c echo.Context) error {
		return c.JSON(http.StatusOK, m.Status())
	})
	e.GET("/orrery.png", func(c echo.Context) error {
		var b bytes.Buffer
		if err := Draw(m.Status()).EncodePNG(&b); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.Blob(http.StatusOK, "image/png", b.Bytes())
	})
	return e
}

// Serve runs the status server on the port.
func Serve(m *Model, port int) error {
	return Server(m).Start(fmt.Sprintf(":%d", port))
}

// Draw renders the orrery as seen from above, with the sun in the middle.
// The winter solstice is at the bottom of the image; the meridian line
// on the earth points to the sun at solar noon, and the moon sits between
// the earth and the sun at new moon.
func Draw(st Status) *gg.Context {
	c := gg.NewContext(imageSize, imageSize)
	c.SetRGB(0, 0, 0)
	c.Clear()
	mid := float64(imageSize / 2)
	// Orbit path.
	c.SetRGB(0.3, 0.3, 0.3)
	c.SetLineWidth(1)
	c.DrawCircle(mid, mid, orbitRadius)
	c.Stroke()
	c.SetRGB(1, 0.8, 0)
	c.DrawCircle(mid, mid, sunRadius)
	c.Fill()
	if !st.Initialised {
		c.DrawStringAnchored("homing", mid, mid+2*sunRadius, 0.5, 0.5)
		return c
	}
	p := st.Position
	// Counter-clockwise from the bottom of the image.
	ex, ey := polar(mid, mid, orbitRadius, p.Orbit-90)
	sun := p.Orbit + 90 // Direction from the earth to the sun
	c.SetRGB(0.3, 0.3, 0.3)
	c.DrawCircle(ex, ey, moonOrbit)
	c.Stroke()
	c.SetRGB(0.2, 0.4, 1)
	c.DrawCircle(ex, ey, earthRadius)
	c.Fill()
	// Prime meridian.
	mx, my := polar(ex, ey, earthRadius, sun+p.Rotation)
	c.SetRGB(1, 1, 1)
	c.SetLineWidth(3)
	c.DrawLine(ex, ey, mx, my)
	c.Stroke()
	c.SetRGB(0.8, 0.8, 0.8)
	lx, ly := polar(ex, ey, moonOrbit, sun+p.Moon)
	c.DrawCircle(lx, ly, moonRadius)
	c.Fill()
	y := float64(20)
	for _, a := range st.Axes {
		c.DrawString(fmt.Sprintf("%s: %.1f deg (%d steps, %d moved)", a.Name, a.Degrees, a.Target, a.Total), 10, y)
		y += 18
	}
	return c
}

// polar returns the point at the angle (degrees counter-clockwise from
// the positive x axis) and distance from x, y in image coordinates.
func polar(x, y, r, degrees float64) (float64, float64) {
	rad := gg.Radians(degrees)
	return x + r*math.Cos(rad), y - r*math.Sin(rad)
}
