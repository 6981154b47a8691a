package enums

// CheckoutState tracks a single checkout attempt through its lifecycle.
type CheckoutState string

const (
	CheckoutStateIdle            CheckoutState = "idle"
	CheckoutStateSubmitting      CheckoutState = "submitting"
	CheckoutStateAwaitingIntent  CheckoutState = "awaiting_intent"
	CheckoutStatePresentingSheet CheckoutState = "presenting_sheet"
	CheckoutStateSucceeded       CheckoutState = "succeeded"
	CheckoutStateCancelled       CheckoutState = "cancelled"
	CheckoutStateFailed          CheckoutState = "failed"
)

var terminalCheckoutStates = []CheckoutState{
	CheckoutStateSucceeded,
	CheckoutStateCancelled,
	CheckoutStateFailed,
}

// String implements fmt.Stringer.
func (s CheckoutState) String() string {
	return string(s)
}

// IsTerminal reports whether the state ends a checkout attempt.
func (s CheckoutState) IsTerminal() bool {
	for _, candidate := range terminalCheckoutStates {
		if candidate == s {
			return true
		}
	}
	return false
}
