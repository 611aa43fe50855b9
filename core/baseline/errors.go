package baseline

import "errors"

var (
	// ErrInvalidRole indicates a co-occurrence build with identical row and
	// column roles.
	ErrInvalidRole = errors.New("row and column roles must differ")

	// ErrIndexOverflow indicates the entity-pair encoding would exceed the
	// addressable integer range.
	ErrIndexOverflow = errors.New("entity pair encoding overflows the addressable index range")

	// ErrInvalidBatchShape indicates a scoring batch that is empty or whose
	// rows do not have exactly two columns.
	ErrInvalidBatchShape = errors.New("scoring batch must be non-empty with two columns per row")

	// ErrUnsupportedScoringMode indicates a scoring operation the
	// non-parametric baselines do not implement.
	ErrUnsupportedScoringMode = errors.New("scoring mode not supported by evaluation-only baselines")
)
