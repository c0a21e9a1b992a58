package decomposition

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// randomData builds an r x c matrix with correlated columns so the
// covariance matrix has a non-trivial spectrum.
func randomData(r, c int, seed int64) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	X := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		base := rng.NormFloat64()
		for j := 0; j < c; j++ {
			X.Set(i, j, base*float64(j+1)+rng.NormFloat64())
		}
	}
	return X
}

func TestEigenvaluesSumToTrace(t *testing.T) {
	X := randomData(60, 5, 1)

	cov, err := CovarianceMatrix(X)
	if err != nil {
		t.Fatalf("CovarianceMatrix failed: %v", err)
	}
	pairs, err := EigenPairs(cov)
	if err != nil {
		t.Fatalf("EigenPairs failed: %v", err)
	}

	sum := 0.0
	for _, p := range pairs {
		sum += p.Value
	}
	trace := mat.Trace(cov)
	if math.Abs(sum-trace) > 1e-9*math.Abs(trace) {
		t.Errorf("eigenvalue sum %v != trace %v", sum, trace)
	}
}

func TestProjectionMatrixOrthonormal(t *testing.T) {
	X := randomData(80, 6, 2)

	cov, err := CovarianceMatrix(X)
	if err != nil {
		t.Fatalf("CovarianceMatrix failed: %v", err)
	}
	pairs, err := EigenPairs(cov)
	if err != nil {
		t.Fatalf("EigenPairs failed: %v", err)
	}
	SortEigenPairs(pairs)

	W, err := ProjectionMatrix(pairs, 3)
	if err != nil {
		t.Fatalf("ProjectionMatrix failed: %v", err)
	}

	// W^T W must be the identity for eigenvectors of a real symmetric
	// matrix.
	var gram mat.Dense
	gram.Mul(W.T(), W)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(gram.At(i, j)-want) > 1e-10 {
				t.Errorf("W^T W at (%d,%d) = %v, want %v", i, j, gram.At(i, j), want)
			}
		}
	}
}

func TestSortEigenPairs(t *testing.T) {
	pairs := []EigenPair{
		{Value: 0.5, Vector: []float64{1, 0}},
		{Value: -3.0, Vector: []float64{0, 1}},
		{Value: 2.0, Vector: []float64{1, 1}},
	}

	SortEigenPairs(pairs)

	// Descending by absolute value: -3.0, 2.0, 0.5.
	wantOrder := []float64{-3.0, 2.0, 0.5}
	for i, want := range wantOrder {
		if pairs[i].Value != want {
			t.Errorf("position %d: got %v, want %v", i, pairs[i].Value, want)
		}
	}

	// Sorting again must not change anything.
	before := make([]EigenPair, len(pairs))
	copy(before, pairs)
	SortEigenPairs(pairs)
	for i := range pairs {
		if pairs[i].Value != before[i].Value {
			t.Errorf("re-sort changed position %d: %v -> %v", i, before[i].Value, pairs[i].Value)
		}
	}
}

func TestProjectionMatrixErrors(t *testing.T) {
	pairs := []EigenPair{
		{Value: 1, Vector: []float64{1, 0}},
		{Value: 0.5, Vector: []float64{0, 1}},
	}

	if _, err := ProjectionMatrix(pairs, 0); err == nil {
		t.Error("k=0 should fail")
	}
	if _, err := ProjectionMatrix(pairs, 3); err == nil {
		t.Error("k beyond available pairs should fail")
	}
}

func TestProject(t *testing.T) {
	X := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	// Projection onto the first two coordinate axes.
	W := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		0, 0,
	})

	out, err := Project(X, W)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	want := mat.NewDense(2, 2, []float64{1, 2, 4, 5})
	if !mat.EqualApprox(out, want, 1e-12) {
		t.Errorf("projection mismatch:\ngot  %v\nwant %v", mat.Formatted(out), mat.Formatted(want))
	}

	// Width mismatch must be an error, not a panic.
	WBad := mat.NewDense(5, 2, nil)
	if _, err := Project(X, WBad); err == nil {
		t.Error("mismatched widths should fail")
	}
}
