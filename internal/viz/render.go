package viz

import (
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
)

// Projection maps track metres onto canvas pixels. The track runs along a
// horizontal line through the middle of the canvas.
type Projection struct {
	Track  float64
	Width  int
	Height int
}

func (p Projection) scale() float64 {
	if p.Track <= 0 {
		return 1
	}
	return float64(p.Width-1) / p.Track
}

func (p Projection) X(x float64) int { return int(math.Round(x * p.scale())) }
func (p Projection) Y() int          { return p.Height / 2 }

func (p Projection) Radius(r float64) int {
	return int(math.Round(r * p.scale()))
}

// DrawFrame clears c and draws the track line plus every body. Massless
// bodies labelled mirror are drawn as a vertical bar.
func DrawFrame(c *Canvas, bodies []dynamo.Body, track float64) {
	c.Clear()
	p := Projection{Track: track, Width: c.PixelWidth(), Height: c.PixelHeight()}
	base := p.Y()
	for x := 0; x < p.Width; x += 2 {
		c.Set(x, base+p.Height/4)
	}
	for _, b := range bodies {
		if !b.Position.IsValid() {
			continue
		}
		cx := p.X(b.Position.X)
		if b.Label == "mirror" {
			h := p.Height / 4
			c.DrawLine(cx, base-h, cx, base+h)
			continue
		}
		r := p.Radius(b.Radius)
		if r > p.Height/4 {
			r = p.Height / 4
		}
		c.FillCircle(cx, base, r)
	}
}
