// Command vinum runs the PCA walkthrough on the UCI wine dataset:
// download, stratified split, standardization, the manual covariance
// and eigen-decomposition path, the PCA estimator, logistic regression
// on the 2-D projection, and the explained-variance and decision-region
// plots.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/vinum/dataset"
	"github.com/YuminosukeSato/vinum/decomposition"
	"github.com/YuminosukeSato/vinum/linear"
	"github.com/YuminosukeSato/vinum/metrics"
	vlog "github.com/YuminosukeSato/vinum/pkg/log"
	"github.com/YuminosukeSato/vinum/preprocessing"
	"github.com/YuminosukeSato/vinum/visualize"
)

func main() {
	var (
		url        = flag.String("url", dataset.DefaultWineURL, "wine dataset URL")
		out        = flag.String("out", "plots", "directory for generated plots")
		seed       = flag.Int64("seed", 0, "random seed for the train/test split")
		testSize   = flag.Float64("test-size", 0.3, "fraction of rows held out for testing")
		components = flag.Int("components", 2, "number of principal components to keep")
		logLevel   = flag.String("log-level", "info", "log level: debug, info, warn, error")
		timeout    = flag.Duration("timeout", 30*time.Second, "download timeout")
	)
	flag.Parse()

	vlog.SetupLogger(*logLevel)
	vlog.InitWarnLogger()

	if err := run(*url, *out, *seed, *testSize, *components, *timeout); err != nil {
		slog.Error("walkthrough failed", vlog.ErrAttr(err))
		os.Exit(1)
	}
}

func run(url, out string, seed int64, testSize float64, components int, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	wine, err := dataset.Load(ctx, dataset.WithURL(url))
	if err != nil {
		return err
	}

	XTrain, XTest, yTrain, yTest, err := dataset.TrainTestSplit(
		wine.Features(), wine.Labels(), testSize, dataset.WithSeed(seed))
	if err != nil {
		return err
	}
	trainRows, _ := XTrain.Dims()
	testRows, _ := XTest.Dims()
	slog.Info("stratified split",
		slog.Int("train_rows", trainRows),
		slog.Int("test_rows", testRows),
	)

	// Standardize with statistics from the training rows only.
	scaler := preprocessing.NewStandardScaler()
	XTrainStd, err := scaler.FitTransform(XTrain)
	if err != nil {
		return err
	}
	XTestStd, err := scaler.Transform(XTest)
	if err != nil {
		return err
	}

	// The manual path: covariance matrix, eigen-pairs, projection
	// matrix from the top components.
	cov, err := decomposition.CovarianceMatrix(XTrainStd)
	if err != nil {
		return err
	}
	pairs, err := decomposition.EigenPairs(cov)
	if err != nil {
		return err
	}
	decomposition.SortEigenPairs(pairs)

	total := 0.0
	for _, pair := range pairs {
		total += pair.Value
	}
	for i, pair := range pairs {
		slog.Debug("eigen-pair",
			slog.Int("rank", i+1),
			slog.Float64("eigenvalue", pair.Value),
			slog.Float64("variance_ratio", pair.Value/total),
		)
	}

	W, err := decomposition.ProjectionMatrix(pairs, components)
	if err != nil {
		return err
	}
	manual, err := decomposition.Project(XTrainStd, W)
	if err != nil {
		return err
	}
	mr, mc := manual.Dims()
	slog.Info("manual projection built",
		slog.Int(vlog.SamplesKey, mr),
		slog.Int(vlog.ComponentsKey, mc),
	)

	// The estimator path: PCA then logistic regression on the
	// projected data.
	pca := decomposition.NewPCA(decomposition.WithNComponents(components))
	XTrainPC, err := pca.FitTransform(XTrainStd)
	if err != nil {
		return err
	}
	XTestPC, err := pca.Transform(XTestStd)
	if err != nil {
		return err
	}

	cumulative := 0.0
	for _, ratio := range pca.ExplainedVarianceRatio_ {
		cumulative += ratio
	}
	slog.Info("pca fitted",
		slog.String(vlog.ModelNameKey, "PCA"),
		slog.Int(vlog.ComponentsKey, pca.NComponents_),
		slog.Float64(vlog.ExplainedVarianceKey, cumulative),
	)

	clf := linear.NewLogisticRegression(
		linear.WithMaxIter(1000),
		linear.WithMultiClass("multinomial"),
		linear.WithRandomState(seed),
	)
	if err := clf.Fit(XTrainPC, yTrain); err != nil {
		return err
	}

	trainAcc, err := clf.Score(XTrainPC, yTrain)
	if err != nil {
		return err
	}
	testAcc, err := clf.Score(XTestPC, yTest)
	if err != nil {
		return err
	}
	slog.Info("logistic regression fitted",
		slog.String(vlog.ModelNameKey, "LogisticRegression"),
		slog.Float64("train_accuracy", trainAcc),
		slog.Float64(vlog.AccuracyKey, testAcc),
	)

	pred, err := clf.Predict(XTestPC)
	if err != nil {
		return err
	}
	cm, classes, err := metrics.ConfusionMatrix(yTest, pred)
	if err != nil {
		return err
	}
	fmt.Printf("Test accuracy: %.3f\n", testAcc)
	fmt.Printf("Classes: %v\nConfusion matrix:\n%v\n", classes, mat.Formatted(cm))

	// Plots.
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}
	if err := visualize.ExplainedVariance(pca.ExplainedVarianceRatio_, filepath.Join(out, "explained_variance.png")); err != nil {
		return err
	}
	if err := visualize.DecisionRegions(clf, toDense(XTrainPC), yTrain,
		filepath.Join(out, "decision_regions_train.png"),
		visualize.WithTitle("Decision regions (training set)")); err != nil {
		return err
	}
	if err := visualize.DecisionRegions(clf, toDense(XTestPC), yTest,
		filepath.Join(out, "decision_regions_test.png"),
		visualize.WithTitle("Decision regions (test set)")); err != nil {
		return err
	}
	slog.Info("plots written", slog.String("dir", out))
	return nil
}

// toDense converts a mat.Matrix to *mat.Dense without copying when
// possible.
func toDense(m mat.Matrix) *mat.Dense {
	if d, ok := m.(*mat.Dense); ok {
		return d
	}
	return mat.DenseCopyOf(m)
}
