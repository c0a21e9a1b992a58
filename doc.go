// Package vinum is a compact machine learning library built around a
// single, fully worked example: Principal Component Analysis on the UCI
// wine dataset.
//
// It provides the pieces needed to walk through PCA end to end (data
// loading, stratified splitting, standardization, covariance and
// eigen-decomposition, projection, logistic regression, and plotting)
// with a scikit-learn-like fit/transform API on top of gonum matrices.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "log"
//
//	    "github.com/YuminosukeSato/vinum/dataset"
//	    "github.com/YuminosukeSato/vinum/decomposition"
//	    "github.com/YuminosukeSato/vinum/preprocessing"
//	)
//
//	func main() {
//	    wine, err := dataset.Load(context.Background())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    XTrain, XTest, yTrain, _, err := dataset.TrainTestSplit(
//	        wine.Features(), wine.Labels(), 0.3, dataset.WithSeed(0))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = yTrain
//
//	    scaler := preprocessing.NewStandardScaler()
//	    XTrainStd, _ := scaler.FitTransform(XTrain)
//	    XTestStd, _ := scaler.Transform(XTest)
//	    _ = XTestStd
//
//	    pca := decomposition.NewPCA(decomposition.WithNComponents(2))
//	    XPC, _ := pca.FitTransform(XTrainStd)
//	    _ = XPC
//	}
//
// # Packages
//
//   - dataset: wine dataset download, CSV parsing, stratified splitting
//   - preprocessing: StandardScaler (fit on train, transform anywhere)
//   - decomposition: covariance/eigen helpers and the PCA estimator
//   - linear: logistic regression (binary, one-vs-rest, multinomial)
//   - metrics: accuracy and confusion matrix
//   - pipeline: chained transformers with a final classifier
//   - visualize: explained-variance and decision-region plots
//   - core/model: shared estimator and transformer interfaces
//
// The cmd/vinum binary runs the whole walkthrough and writes the plots
// to a directory of your choice.
package vinum
