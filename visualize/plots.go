// Package visualize renders the walkthrough plots: explained-variance
// charts for PCA and 2-D decision regions for a fitted classifier.
// Plots are pure renderings of already-computed values; nothing here
// fits or mutates a model.
package visualize

import (
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/vinum/core/model"
	"github.com/YuminosukeSato/vinum/pkg/errors"
)

// classColors are the marker colors used for up to six classes.
var classColors = []color.RGBA{
	{R: 214, G: 39, B: 40, A: 255},  // red
	{R: 31, G: 119, B: 180, A: 255}, // blue
	{R: 44, G: 160, B: 44, A: 255},  // green
	{R: 255, G: 127, B: 14, A: 255}, // orange
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
}

// regionColors are pale versions of classColors for the background grid.
var regionColors = []color.RGBA{
	{R: 244, G: 204, B: 204, A: 255},
	{R: 204, G: 221, B: 240, A: 255},
	{R: 206, G: 235, B: 206, A: 255},
	{R: 250, G: 226, B: 196, A: 255},
	{R: 228, G: 218, B: 238, A: 255},
	{R: 226, G: 213, B: 210, A: 255},
}

// ExplainedVariance writes a bar chart of the per-component
// explained-variance ratios with a step line for their cumulative sum.
func ExplainedVariance(ratios []float64, path string) error {
	if len(ratios) == 0 {
		return errors.NewValueError("visualize.ExplainedVariance", "no ratios to plot")
	}

	p := plot.New()
	p.Title.Text = "Explained variance by principal component"
	p.X.Label.Text = "Principal component"
	p.Y.Label.Text = "Explained variance ratio"
	p.Y.Min = 0

	values := make(plotter.Values, len(ratios))
	copy(values, ratios)
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return errors.Wrap(err, "building bar chart")
	}
	bars.Color = classColors[1]
	bars.LineStyle.Width = 0
	p.Add(bars)

	cumulative := make(plotter.XYs, len(ratios))
	sum := 0.0
	for i, ratio := range ratios {
		sum += ratio
		cumulative[i] = plotter.XY{X: float64(i), Y: sum}
	}
	line, err := plotter.NewLine(cumulative)
	if err != nil {
		return errors.Wrap(err, "building cumulative line")
	}
	line.StepStyle = plotter.PostStep
	line.Color = classColors[0]
	line.Width = vg.Points(1.5)
	p.Add(line)

	p.Legend.Add("individual", bars)
	p.Legend.Add("cumulative", line)
	p.Legend.Top = true
	p.Legend.Left = true

	labels := make([]string, len(ratios))
	for i := range labels {
		labels[i] = fmt.Sprintf("PC%d", i+1)
	}
	p.NominalX(labels...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "saving plot to %s", path)
	}
	return nil
}

// RegionOption configures DecisionRegions.
type RegionOption func(*regionConfig)

type regionConfig struct {
	resolution int
	title      string
}

// WithResolution sets the number of grid points per axis. Default: 200.
func WithResolution(n int) RegionOption {
	return func(c *regionConfig) {
		c.resolution = n
	}
}

// WithTitle overrides the plot title.
func WithTitle(title string) RegionOption {
	return func(c *regionConfig) {
		c.title = title
	}
}

// DecisionRegions writes a plot of the classifier's predicted-label
// regions over the plane spanned by the two columns of X, with the
// samples scattered on top colored by their true label in y.
func DecisionRegions(clf model.Predictor, X, y *mat.Dense, path string, opts ...RegionOption) error {
	cfg := regionConfig{
		resolution: 200,
		title:      "Decision regions",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	n, d := X.Dims()
	if d != 2 {
		return errors.NewDimensionError("visualize.DecisionRegions", 2, d, 1)
	}
	yRows, _ := y.Dims()
	if yRows != n {
		return errors.NewDimensionError("visualize.DecisionRegions", n, yRows, 0)
	}
	if cfg.resolution < 2 {
		return errors.NewValueError("visualize.DecisionRegions", "resolution must be at least 2")
	}

	xMin, xMax := columnRange(X, 0)
	yMin, yMax := columnRange(X, 1)

	// Predict the class over a dense grid covering the padded range.
	res := cfg.resolution
	grid := mat.NewDense(res*res, 2, nil)
	xStep := (xMax - xMin) / float64(res-1)
	yStep := (yMax - yMin) / float64(res-1)
	for gy := 0; gy < res; gy++ {
		for gx := 0; gx < res; gx++ {
			row := gy*res + gx
			grid.Set(row, 0, xMin+float64(gx)*xStep)
			grid.Set(row, 1, yMin+float64(gy)*yStep)
		}
	}
	predicted, err := clf.Predict(grid)
	if err != nil {
		return errors.Wrap(err, "predicting decision grid")
	}

	classLabels, classIndex := collectClasses(y, predicted)
	if len(classIndex) > len(classColors) {
		return errors.NewValueError("visualize.DecisionRegions",
			fmt.Sprintf("at most %d classes supported, got %d", len(classColors), len(classIndex)))
	}

	p := plot.New()
	p.Title.Text = cfg.title
	p.X.Label.Text = "PC 1"
	p.Y.Label.Text = "PC 2"

	// Background: one scatter of small boxes per predicted class.
	regionPoints := make(map[int]plotter.XYs)
	for row := 0; row < res*res; row++ {
		idx := classIndex[int(predicted.At(row, 0))]
		regionPoints[idx] = append(regionPoints[idx], plotter.XY{
			X: grid.At(row, 0),
			Y: grid.At(row, 1),
		})
	}
	for idx, pts := range regionPoints {
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return errors.Wrap(err, "building region scatter")
		}
		s.GlyphStyle.Shape = draw.BoxGlyph{}
		s.GlyphStyle.Radius = vg.Points(1.2)
		s.GlyphStyle.Color = regionColors[idx]
		p.Add(s)
	}

	// Foreground: the actual samples, colored by true label.
	samplePoints := make(map[int]plotter.XYs)
	for i := 0; i < n; i++ {
		idx := classIndex[int(y.At(i, 0))]
		samplePoints[idx] = append(samplePoints[idx], plotter.XY{
			X: X.At(i, 0),
			Y: X.At(i, 1),
		})
	}
	for idx, label := range classLabels {
		pts, ok := samplePoints[idx]
		if !ok {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return errors.Wrap(err, "building sample scatter")
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(2.5)
		s.GlyphStyle.Color = classColors[idx]
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("class %d", label), s)
	}
	p.Legend.Top = true

	if err := p.Save(6*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "saving plot to %s", path)
	}
	return nil
}

// columnRange returns the padded min and max of column j.
func columnRange(X *mat.Dense, j int) (lo, hi float64) {
	r, _ := X.Dims()
	lo, hi = X.At(0, j), X.At(0, j)
	for i := 1; i < r; i++ {
		v := X.At(i, j)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = 1
	}
	return lo - pad, hi + pad
}

// collectClasses assigns a stable index to every label appearing in the
// true labels or the grid predictions, returning the labels in sorted
// order alongside the label-to-index mapping.
func collectClasses(y, predicted mat.Matrix) ([]int, map[int]int) {
	seen := make(map[int]bool)
	var labels []int
	collect := func(m mat.Matrix) {
		r, _ := m.Dims()
		for i := 0; i < r; i++ {
			label := int(m.At(i, 0))
			if !seen[label] {
				seen[label] = true
				labels = append(labels, label)
			}
		}
	}
	collect(y)
	collect(predicted)

	// Sort so colors are assigned deterministically.
	sort.Ints(labels)
	index := make(map[int]int, len(labels))
	for i, label := range labels {
		index[label] = i
	}
	return labels, index
}
