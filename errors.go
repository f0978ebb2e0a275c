package stratify

import "errors"

var (
	// ErrInvalidArgument reports an unusable fold count, bin count, or
	// target slice. Match with errors.Is.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDegenerateBinning reports a non-empty bin with fewer samples than
	// folds, so the bin cannot appear in every fold. Only returned by
	// StratifiedKFold in Strict mode.
	ErrDegenerateBinning = errors.New("degenerate binning")
)
