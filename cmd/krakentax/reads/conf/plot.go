// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package conf

import (
	"fmt"

	"github.com/js-arias/blind"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// number of bins of the histogram
const numBins = 10

// Histogram writes a histogram of confidence values
// as an image file.
func histogram(vals []float64, name string) error {
	bins := make([]float64, numBins)
	for _, v := range vals {
		i := int(v * numBins)
		if i >= numBins {
			i = numBins - 1
		}
		if i < 0 {
			i = 0
		}
		bins[i]++
	}

	p := plot.New()
	p.X.Label.Text = "confidence"
	p.Y.Label.Text = "reads"

	w := vg.Points(20)
	labels := make([]string, numBins)
	for i := range bins {
		labels[i] = fmt.Sprintf("%.1f", float64(i)/numBins)

		// each bin is a chart with a single non-zero bar
		// to set the colour of the bar
		vs := make(plotter.Values, numBins)
		vs[i] = bins[i]
		bars, err := plotter.NewBarChart(vs, w)
		if err != nil {
			return fmt.Errorf("while building chart: %v", err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = blind.Sequential(blind.Iridescent, float64(i)/(numBins-1))
		p.Add(bars)
	}
	p.NominalX(labels...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, name); err != nil {
		return err
	}
	return nil
}
