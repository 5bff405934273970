// pkg/pipeline/errors.go
package pipeline

import "fmt"

// Stage identifies where the run currently is, or where it failed.
type Stage int

const (
	StageIdle Stage = iota
	StageExtracting
	StageCleaning
	StageLoading
	StageAggregating
	StageDone
)

// String returns a string representation of the stage
func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "Idle"
	case StageExtracting:
		return "Extracting"
	case StageCleaning:
		return "Cleaning"
	case StageLoading:
		return "Loading"
	case StageAggregating:
		return "Aggregating"
	case StageDone:
		return "Done"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// ErrorCategory classifies run-level failures. Row-level problems
// (rejections, referential violations) are never raised as errors; they are
// accumulated into the table reports and surfaced in the summary only.
type ErrorCategory int

const (
	// CategorySourceUnreadable: a required input cannot be opened or has no
	// recognizable header. Fatal, aborts before cleaning.
	CategorySourceUnreadable ErrorCategory = iota
	// CategoryStoreUnavailable: the destination store cannot be created or
	// written. Fatal; tables fully replaced before the failure stay replaced.
	CategoryStoreUnavailable
	// CategoryAggregationInputMissing: loading did not complete, so the
	// aggregator must not run against a possibly-absent table. Fatal.
	CategoryAggregationInputMissing
)

// String returns a string representation of the error category
func (c ErrorCategory) String() string {
	switch c {
	case CategorySourceUnreadable:
		return "SourceUnreadable"
	case CategoryStoreUnavailable:
		return "StoreUnavailable"
	case CategoryAggregationInputMissing:
		return "AggregationInputMissing"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

// StageError is a run-level failure tagged with the stage it halted.
type StageError struct {
	Stage    Stage
	Category ErrorCategory
	Err      error
}

// Error implements the error interface
func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed (%s): %v", e.Stage, e.Category, e.Err)
}

// Unwrap exposes the underlying error
func (e *StageError) Unwrap() error {
	return e.Err
}
