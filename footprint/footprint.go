// Package footprint draws the top view of a fan base: body outline, inner
// ring, post triangle and screw posts.
package footprint

import (
	"fmt"
	"image/color"
	"math"

	"github.com/fanparts/fanbase"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// circleSegments is the number of line segments used to draw a full circle.
const circleSegments = 180

var (
	bodyColor   = color.RGBA{R: 70, G: 70, B: 70, A: 255}
	ringColor   = color.RGBA{R: 70, G: 137, B: 102, A: 255}
	postColor   = color.RGBA{R: 182, G: 73, B: 38, A: 255}
	constrColor = color.RGBA{R: 150, G: 150, B: 150, A: 255}
)

// Plot returns a top view drawing of the base in millimeters.
func Plot(p fanbase.Params) (*plot.Plot, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	centers, err := p.PostCenters()
	if err != nil {
		return nil, err
	}
	plt := plot.New()
	plt.Title.Text = fmt.Sprintf("Fan base Ø%g mm", p.BodyDiameter)
	plt.X.Label.Text = "x [mm]"
	plt.Y.Label.Text = "y [mm]"
	plt.Add(plotter.NewGrid())

	body, err := outline(circle(0, 0, p.BodyDiameter/2), bodyColor, 1.5, false)
	if err != nil {
		return nil, err
	}
	inner, err := outline(circle(0, 0, p.InnerRingRadius()), ringColor, 1, false)
	if err != nil {
		return nil, err
	}
	tri := make(plotter.XYs, 0, len(centers)+1)
	for _, c := range append(centers, centers[0]) {
		tri = append(tri, plotter.XY{X: c.X, Y: c.Y})
	}
	triangle, err := outline(tri, constrColor, 0.75, true)
	if err != nil {
		return nil, err
	}
	plt.Add(body, inner, triangle)
	plt.Legend.Add("body", body)
	plt.Legend.Add("inner ring", inner)
	plt.Legend.Add(fmt.Sprintf("triangle %g mm", p.TriangleSide), triangle)

	for i, c := range centers {
		po, err := outline(circle(c.X, c.Y, p.PostOuterDiameter/2), postColor, 1, false)
		if err != nil {
			return nil, err
		}
		pi, err := outline(circle(c.X, c.Y, p.PostInnerDiameter/2), postColor, 0.5, false)
		if err != nil {
			return nil, err
		}
		plt.Add(po, pi)
		if i == 0 {
			plt.Legend.Add("screw post", po)
		}
	}
	plt.Legend.Top = true

	// Equal axes so circles stay round on a square canvas.
	lim := p.BodyDiameter/2 + 2
	plt.X.Min, plt.X.Max = -lim, lim
	plt.Y.Min, plt.Y.Max = -lim, lim
	return plt, nil
}

// Save draws the footprint to path. The file extension selects the format
// (png, svg, pdf, ...).
func Save(p fanbase.Params, path string, size vg.Length) error {
	plt, err := Plot(p)
	if err != nil {
		return err
	}
	return plt.Save(size, size, path)
}

func circle(cx, cy, r float64) plotter.XYs {
	pts := make(plotter.XYs, circleSegments+1)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = plotter.XY{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return pts
}

func outline(pts plotter.XYs, c color.Color, width vg.Length, dashed bool) (*plotter.Line, error) {
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.LineStyle = draw.LineStyle{Color: c, Width: vg.Points(float64(width))}
	if dashed {
		l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	}
	return l, nil
}
