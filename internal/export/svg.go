// Package export writes diagrams and traces as standalone SVG documents.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/physlab/internal/anim"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/viz"
)

const (
	frameWidth  = 800
	frameHeight = 200
	background  = "#0a0a0a"
)

var bodyColors = []string{"#00ccff", "#ff66aa", "#ffcc00", "#00ff88"}

func header(sb *strings.Builder, w, h int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, background)
}

// CanvasToSVG converts a Braille canvas to SVG, one dot per lit pixel.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}
	w := int(float64(canvas.PixelWidth()) * scale)
	h := int(float64(canvas.PixelHeight()) * scale)

	var sb strings.Builder
	header(&sb, w, h)
	sb.WriteString(`<g fill="#00ff00">` + "\n")
	dot := scale * 0.4
	for y := 0; y < canvas.PixelHeight(); y++ {
		for x := 0; x < canvas.PixelWidth(); x++ {
			if canvas.IsSet(x, y) {
				fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n",
					float64(x)*scale+scale/2, float64(y)*scale+scale/2, dot)
			}
		}
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// FrameToSVG draws one frame of a diagram: the track, every body at its
// position and a velocity arrow for moving bodies.
func FrameToSVG(bodies []dynamo.Body, track float64) string {
	if track <= 0 {
		track = anim.DefaultTrackLength
	}
	const margin = 20.0
	scale := (frameWidth - 2*margin) / track
	mid := frameHeight / 2.0
	x := func(v float64) float64 { return margin + v*scale }

	var sb strings.Builder
	header(&sb, frameWidth, frameHeight)
	fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#444466" stroke-width="2"/>`+"\n",
		x(0), mid+60, x(track), mid+60)

	for i, b := range bodies {
		if !b.Position.IsValid() {
			continue
		}
		color := bodyColors[i%len(bodyColors)]
		cx := x(b.Position.X)
		if b.Label == "mirror" {
			fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="4"/>`+"\n",
				cx, mid-50, cx, mid+50, color)
			continue
		}
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"><title>%s</title></circle>`+"\n",
			cx, mid, b.Radius*scale, color, b.Label)
		if v := b.Velocity.X; v != 0 {
			tip := cx + v*scale*0.5
			fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2" marker-end="url(#arrow)"/>`+"\n",
				cx, mid-b.Radius*scale-10, tip, mid-b.Radius*scale-10, color)
		}
	}
	sb.WriteString(`<defs><marker id="arrow" markerWidth="8" markerHeight="8" refX="6" refY="4" orient="auto"><path d="M0,0 L8,4 L0,8 z" fill="#ffffff"/></marker></defs>` + "\n")
	sb.WriteString("</svg>")
	return sb.String()
}

// TraceToSVG plots each body's position against time over a recorded trace.
func TraceToSVG(frames []anim.Frame, width, height int) string {
	if len(frames) < 2 {
		return ""
	}
	nb := len(frames[0].Bodies)
	series := make([][]point, nb)
	for _, f := range frames {
		for i := 0; i < nb && i < len(f.Bodies); i++ {
			series[i] = append(series[i], point{X: f.State.Elapsed, Y: f.Bodies[i].Position.X})
		}
	}

	minX, maxX, minY, maxY := bounds(series)
	rangeX, rangeY := pad(&minX, &maxX), pad(&minY, &maxY)

	var sb strings.Builder
	header(&sb, width, height)
	for i, pts := range series {
		if len(pts) < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, bodyColors[i%len(bodyColors)])
		for j, p := range pts {
			px := (p.X - minX) / rangeX * float64(width)
			py := float64(height) - (p.Y-minY)/rangeY*float64(height)
			if j == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", px, py)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", px, py)
			}
		}
		sb.WriteString(`"/>` + "\n")
	}
	sb.WriteString("</svg>")
	return sb.String()
}

type point struct{ X, Y float64 }

func bounds(series [][]point) (minX, maxX, minY, maxY float64) {
	first := true
	for _, pts := range series {
		for _, p := range pts {
			if first {
				minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
				first = false
				continue
			}
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
	}
	return
}

// pad widens [lo, hi] by 10% on each side and returns the new range.
func pad(lo, hi *float64) float64 {
	r := *hi - *lo
	if r == 0 {
		r = 1
	}
	*lo -= r * 0.1
	*hi += r * 0.1
	return *hi - *lo
}
