package datasets

import "errors"

var (
	// ErrUnknownDataset indicates a name with no registered loader.
	ErrUnknownDataset = errors.New("unknown dataset")

	// ErrDatasetLoad indicates a registered dataset failed to load. The
	// harness isolates this to the failing unit.
	ErrDatasetLoad = errors.New("dataset load failed")
)
