package domain

// SessionState tracks one order workflow from raw input to its outcome.
type SessionState string

const (
	StateDrafting            = SessionState("DRAFTING")
	StateValidated           = SessionState("VALIDATED")
	StatePriceReferenced     = SessionState("PRICE_REFERENCED")
	StateConfirmationPending = SessionState("CONFIRMATION_PENDING")
	StateSubmitted           = SessionState("SUBMITTED")
	StateAcknowledged        = SessionState("ACKNOWLEDGED")
	StateRejected            = SessionState("REJECTED")
	StateAborted             = SessionState("ABORTED")
)
