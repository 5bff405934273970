// pkg/model/outcome.go
package model

// Reason tags why a row was dropped or flagged during cleaning
type Reason string

const (
	// Drop reasons
	ReasonMissingRequiredField Reason = "missing_required_field"
	ReasonInvalidDate          Reason = "invalid_date"
	ReasonInvalidPrice         Reason = "invalid_price"
	ReasonInvalidAmount        Reason = "invalid_amount"
	ReasonInvalidQuantity      Reason = "invalid_quantity"
	ReasonDuplicateKey         Reason = "duplicate_key"
	ReasonOrphanReference      Reason = "orphan_reference"

	// Flag reasons (row is kept)
	ReasonInvalidEmail            Reason = "invalid_email"
	ReasonInvalidRegistrationDate Reason = "invalid_registration_date"
)

// OutcomeKind distinguishes the three possible results of validating a field.
type OutcomeKind int

const (
	// OutcomeKept means the value passed validation unchanged or normalized.
	OutcomeKept OutcomeKind = iota
	// OutcomeKeptFlagged means the value failed validation under a flag
	// policy: the row survives but the failure is counted.
	OutcomeKeptFlagged
	// OutcomeDropped means the value failed validation under a drop policy
	// and the whole row must be removed.
	OutcomeDropped
)

// Outcome is the tagged result of one field validation. Using a tagged type
// instead of sentinel values keeps validator logic total and testable.
type Outcome struct {
	Kind   OutcomeKind
	Reason Reason
}

// Kept returns a passing outcome
func Kept() Outcome {
	return Outcome{Kind: OutcomeKept}
}

// KeptFlagged returns a keep-but-flag outcome with the given reason
func KeptFlagged(reason Reason) Outcome {
	return Outcome{Kind: OutcomeKeptFlagged, Reason: reason}
}

// Dropped returns a drop outcome with the given reason
func Dropped(reason Reason) Outcome {
	return Outcome{Kind: OutcomeDropped, Reason: reason}
}
