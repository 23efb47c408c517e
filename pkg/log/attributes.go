// Package log defines standard attribute keys for the selection pipeline.
//
// The keys follow a hierarchical naming convention (e.g. "data.samples",
// "mrmr.feature") so that runs can be filtered and compared in log storage.

package log

// Run and Operation Context
const (
	// ComponentKey identifies which package is emitting the record.
	// Examples: "dataset", "info", "mrmr"
	ComponentKey = "component"

	// RunIDKey carries the identifier of one selection run.
	RunIDKey = "run.id"

	// OperationKey specifies the operation being performed.
	// Standard values: "load", "select", "fit", "transform"
	OperationKey = "ml.operation"

	// PathKey records the dataset or output file path.
	PathKey = "io.path"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (N) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (F) in the dataset.
	FeaturesKey = "data.features"

	// DataSizeKey indicates the size of the loaded data in bytes.
	DataSizeKey = "data.size_bytes"

	// ValueRangeKey records the derived value range of one feature.
	ValueRangeKey = "data.value_range"
)

// Selection Context
const (
	// ClassIndexKey is the 0-based index of the class feature.
	ClassIndexKey = "mrmr.class_index"

	// TargetCountKey is the number of features requested.
	TargetCountKey = "mrmr.target_count"

	// FeatureKey is the feature selected at a step.
	FeatureKey = "mrmr.feature"

	// StepKey is the 0-based position of a selection step.
	StepKey = "mrmr.step"

	// ScoreKey records the mRMR score of the selected feature.
	ScoreKey = "mrmr.score"

	// RelevanceKey records mutual information with the class feature.
	RelevanceKey = "mrmr.relevance"

	// StateKey records the selector state.
	StateKey = "mrmr.state"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// MIQueriesKey records how many mutual information queries were issued.
	MIQueriesKey = "perf.mi_queries"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// StacktraceKey contains stack trace information for debugging.
	// Populated automatically by Logger.Error.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute values.
const (
	OperationLoad      = "load"
	OperationSelect    = "select"
	OperationFit       = "fit"
	OperationTransform = "transform"

	ErrorFileOpen      = "FILE_OPEN"
	ErrorTruncatedFile = "TRUNCATED_FILE"
	ErrorOutOfRange    = "INDEX_OUT_OF_RANGE"
	ErrorConfiguration = "CONFIGURATION"
)
