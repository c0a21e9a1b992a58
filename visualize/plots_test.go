package visualize

import (
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// stripes is a trivial predictor that labels by the sign of the first
// coordinate.
type stripes struct{}

func (stripes) Predict(X mat.Matrix) (mat.Matrix, error) {
	r, _ := X.Dims()
	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		if X.At(i, 0) >= 0 {
			out.Set(i, 0, 2)
		} else {
			out.Set(i, 0, 1)
		}
	}
	return out, nil
}

func requirePNG(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("plot file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("plot file is empty")
	}
}

func TestExplainedVariance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "variance.png")

	if err := ExplainedVariance([]float64{0.45, 0.25, 0.15, 0.1, 0.05}, path); err != nil {
		t.Fatalf("ExplainedVariance failed: %v", err)
	}
	requirePNG(t, path)

	if err := ExplainedVariance(nil, path); err == nil {
		t.Error("empty ratios should fail")
	}
}

func TestDecisionRegions(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		-1, -1,
		-1, 1,
		1, -1,
		1, 1,
	})
	y := mat.NewDense(4, 1, []float64{1, 1, 2, 2})

	path := filepath.Join(t.TempDir(), "regions.png")
	err := DecisionRegions(stripes{}, X, y, path, WithResolution(20), WithTitle("stripes"))
	if err != nil {
		t.Fatalf("DecisionRegions failed: %v", err)
	}
	requirePNG(t, path)
}

func TestDecisionRegionsErrors(t *testing.T) {
	y := mat.NewDense(2, 1, []float64{1, 2})
	path := filepath.Join(t.TempDir(), "bad.png")

	// Only 2-D inputs are plottable.
	X3 := mat.NewDense(2, 3, nil)
	if err := DecisionRegions(stripes{}, X3, y, path); err == nil {
		t.Error("3-column input should fail")
	}

	// Row mismatch between X and y.
	X := mat.NewDense(3, 2, nil)
	if err := DecisionRegions(stripes{}, X, y, path); err == nil {
		t.Error("row mismatch should fail")
	}
}
