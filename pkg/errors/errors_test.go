package errors

import (
	"math"
	"strings"
	"testing"
)

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("PCA", "Transform")

	var nfe *NotFittedError
	if !As(err, &nfe) {
		t.Fatalf("expected NotFittedError in chain, got %T", err)
	}
	if nfe.ModelName != "PCA" || nfe.Method != "Transform" {
		t.Errorf("unexpected fields: %+v", nfe)
	}
	if !strings.Contains(err.Error(), "not fitted") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestDimensionError(t *testing.T) {
	err := NewDimensionError("StandardScaler.Transform", 13, 4, 1)

	var de *DimensionError
	if !As(err, &de) {
		t.Fatalf("expected DimensionError in chain, got %T", err)
	}
	if de.Expected != 13 || de.Got != 4 {
		t.Errorf("unexpected fields: %+v", de)
	}
	if !strings.Contains(err.Error(), "features") {
		t.Errorf("axis 1 should report features: %v", err)
	}
}

func TestDataErrorUnwrap(t *testing.T) {
	cause := New("connection refused")
	err := NewDataError("dataset.Load", "https://example.com/wine.data", cause)

	if !Is(err, cause) {
		t.Errorf("DataError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "wine.data") {
		t.Errorf("message should include the source: %v", err)
	}
}

func TestWarnHandler(t *testing.T) {
	var got error
	SetWarningHandler(func(w error) { got = w })
	defer SetWarningHandler(func(w error) {})

	w := NewConvergenceWarning("LogisticRegression", 100, "")
	Warn(w)

	if got != w {
		t.Errorf("handler did not receive the warning: got %v", got)
	}
	if !strings.Contains(w.Error(), "failed to converge after 100") {
		t.Errorf("unexpected warning message: %v", w)
	}
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err, "test.op")
		panic("boom")
	}

	err := fn()
	if err == nil {
		t.Fatal("expected error from recovered panic")
	}
	var pe *PanicError
	if !As(err, &pe) {
		t.Fatalf("expected PanicError, got %T", err)
	}
	if pe.Operation != "test.op" {
		t.Errorf("unexpected operation: %q", pe.Operation)
	}
}

func TestCheckValues(t *testing.T) {
	if err := CheckValues("op", []float64{1, 2, 3}, 0); err != nil {
		t.Errorf("finite values should pass: %v", err)
	}
	if err := CheckValues("op", []float64{1, math.NaN(), 3}, 7); err == nil {
		t.Error("NaN should be detected")
	}
}

func TestLogSumExp(t *testing.T) {
	// log(e^0 + e^0) = log 2
	got := LogSumExp([]float64{0, 0})
	want := 0.6931471805599453
	if diff := got - want; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("LogSumExp([0,0]) = %v, want %v", got, want)
	}

	// Large inputs must not overflow.
	got = LogSumExp([]float64{1000, 1000})
	want = 1000 + 0.6931471805599453
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("LogSumExp([1000,1000]) = %v, want %v", got, want)
	}
}
