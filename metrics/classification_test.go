package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{
			name:  "perfect",
			yTrue: []float64{1, 2, 3, 1},
			yPred: []float64{1, 2, 3, 1},
			want:  1.0,
		},
		{
			name:  "half right",
			yTrue: []float64{1, 2, 3, 1},
			yPred: []float64{1, 2, 1, 3},
			want:  0.5,
		},
		{
			name:  "all wrong",
			yTrue: []float64{1, 1},
			yPred: []float64{2, 2},
			want:  0.0,
		},
		{
			name:    "length mismatch",
			yTrue:   []float64{1, 2},
			yPred:   []float64{1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yTrue := mat.NewDense(len(tt.yTrue), 1, tt.yTrue)
			yPred := mat.NewDense(len(tt.yPred), 1, tt.yPred)

			got, err := Accuracy(yTrue, yPred)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Accuracy failed: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Accuracy = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfusionMatrix(t *testing.T) {
	yTrue := mat.NewDense(6, 1, []float64{1, 1, 2, 2, 3, 3})
	yPred := mat.NewDense(6, 1, []float64{1, 2, 2, 2, 3, 1})

	cm, classes, err := ConfusionMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("ConfusionMatrix failed: %v", err)
	}

	if len(classes) != 3 || classes[0] != 1 || classes[1] != 2 || classes[2] != 3 {
		t.Fatalf("classes = %v, want [1 2 3]", classes)
	}

	want := mat.NewDense(3, 3, []float64{
		1, 1, 0,
		0, 2, 0,
		1, 0, 1,
	})
	if !mat.EqualApprox(cm, want, 0) {
		t.Errorf("confusion matrix mismatch:\ngot  %v\nwant %v", mat.Formatted(cm), mat.Formatted(want))
	}

	// Row sums equal per-class support.
	for i := 0; i < 3; i++ {
		sum := 0.0
		for j := 0; j < 3; j++ {
			sum += cm.At(i, j)
		}
		if sum != 2 {
			t.Errorf("row %d sums to %v, want 2", i, sum)
		}
	}
}
