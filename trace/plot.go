// SPDX-License-Identifier: MIT
// Package trace: PNG diagnostics via gonum/plot. One parameter element per
// image; callers compose multi-panel reports themselves.

package trace

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotTrace renders the per-iteration evolution of element elem of
// parameter name as a line plot and saves it as a PNG at path.
func (s *Samples) PlotTrace(name string, elem int, path string) error {
	series, err := s.Element(name, elem)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Trace of %s[%d]", name, elem)
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Value"

	pts := make(plotter.XYs, len(series))
	for i, v := range series {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("trace: building line plot: %w", err)
	}
	p.Add(line)

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

// PlotHistogram renders the marginal posterior of element elem of
// parameter name as a 50-bin histogram and saves it as a PNG at path.
func (s *Samples) PlotHistogram(name string, elem int, path string) error {
	series, err := s.Element(name, elem)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Posterior of %s[%d]", name, elem)
	p.X.Label.Text = "Value"
	p.Y.Label.Text = "Density"

	hist, err := plotter.NewHist(plotter.Values(series), 50)
	if err != nil {
		return fmt.Errorf("trace: building histogram: %w", err)
	}
	hist.Normalize(1)
	p.Add(hist)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
