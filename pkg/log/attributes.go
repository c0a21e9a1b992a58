package log

// Attribute keys used across vinum log records. Keeping them in one
// place keeps the JSON output filterable.
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "PCA", "StandardScaler", "LogisticRegression"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "score", "load"
	OperationKey = "ml.operation"

	// SamplesKey is the number of rows in the data being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of columns in the data being processed.
	FeaturesKey = "data.features"

	// ComponentsKey is the number of principal components kept.
	ComponentsKey = "pca.components"

	// ExplainedVarianceKey is the cumulative explained-variance ratio.
	ExplainedVarianceKey = "pca.explained_variance_ratio"

	// AccuracyKey is a classification accuracy value.
	AccuracyKey = "eval.accuracy"

	// SourceKey is the URL or path a dataset came from.
	SourceKey = "data.source"
)
