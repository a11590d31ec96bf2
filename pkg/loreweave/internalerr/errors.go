package internalerr

import "errors"

// Sentinel errors for the batch classification pipeline.
// Every stage fails loud: a raised error terminates the whole batch.
var (
	// ErrInvalidInput marks an empty batch or a record missing id/content.
	ErrInvalidInput = errors.New("invalid input")

	// ErrVectorization marks a batch for which feature extraction
	// produced no usable vocabulary.
	ErrVectorization = errors.New("vectorization produced no features")

	// ErrRouting marks a record for which the deterministic pattern
	// signal could not produce a category.
	ErrRouting = errors.New("pattern routing failed")

	// ErrMergeConsistency marks a record id present in one signal
	// stream but absent from the other.
	ErrMergeConsistency = errors.New("signal streams inconsistent")

	// ErrQualityGate marks a batch whose classification success rate
	// fell below the acceptance threshold. No partial result survives.
	ErrQualityGate = errors.New("batch failed quality gate")

	// ErrInvalidConfig marks a malformed or incomplete configuration.
	ErrInvalidConfig = errors.New("invalid configuration")
)
