package render

import (
	"bytes"
	"image/color"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"velocity/pkg/domain/model"
)

var lineColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}

// newPlot builds the velocity line chart. Points are connected in the order
// given; no sorting happens here.
func newPlot(points []model.Point, loc *time.Location, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Tweets received"
	p.X.Tick.Marker = plot.TimeTicks{
		Format: TickLayout,
		Time: func(t float64) time.Time {
			return time.Unix(int64(t), 0).In(loc)
		},
	}
	p.Add(plotter.NewGrid())

	if len(points) == 0 {
		return p, nil
	}

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = float64(pt.Time.Unix())
		xys[i].Y = float64(pt.Count)
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build line series", goerr.V("points", len(points)))
	}
	line.Color = lineColor
	line.Width = vg.Points(1)
	p.Add(line)

	return p, nil
}

// encodePNG draws p onto a width x height canvas and returns the PNG bytes.
func encodePNG(p *plot.Plot, width, height vg.Length) ([]byte, error) {
	w, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create PNG canvas")
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, goerr.Wrap(err, "failed to encode PNG")
	}
	return buf.Bytes(), nil
}
