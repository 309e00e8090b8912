package refund

import "fmt"

// State is the single lifecycle state of a refund.
type State string

const (
	StatePendingApproval    State = "pending_approval"
	StateApproved           State = "approved"
	StateProcessed          State = "processed"
	StatePartiallyCompleted State = "partially_completed"
	StateCompleted          State = "completed"
	StateRejected           State = "rejected"
)

// transitions is the full transition table. Anything not listed is rejected.
var transitions = map[State][]State{
	StatePendingApproval:    {StateApproved, StateRejected},
	StateApproved:           {StateProcessed, StateRejected},
	StateProcessed:          {StateCompleted, StatePartiallyCompleted, StateRejected},
	StatePartiallyCompleted: {StateCompleted, StatePartiallyCompleted},
	StateCompleted:          nil,
	StateRejected:           nil,
}

// AllStates lists every state in lifecycle order.
func AllStates() []State {
	return []State{
		StatePendingApproval,
		StateApproved,
		StateProcessed,
		StatePartiallyCompleted,
		StateCompleted,
		StateRejected,
	}
}

// IsValid checks if the state is a known value
func (s State) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

func (s State) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible.
func (s State) IsTerminal() bool {
	return s.IsValid() && len(transitions[s]) == 0
}

// CanTransitionTo checks the transition table.
func (s State) CanTransitionTo(target State) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ApprovalStatus derives the legacy approval status (pending_approval, approved, rejected).
func (s State) ApprovalStatus() string {
	switch s {
	case StatePendingApproval:
		return "pending_approval"
	case StateRejected:
		return "rejected"
	default:
		return "approved"
	}
}

// ProcessingStatus derives the legacy processing status (pending, processed, completed).
func (s State) ProcessingStatus() string {
	switch s {
	case StateProcessed, StatePartiallyCompleted:
		return "processed"
	case StateCompleted:
		return "completed"
	case StateRejected:
		return "cancelled"
	default:
		return "pending"
	}
}

// ParseState validates a raw state string.
func ParseState(raw string) (State, error) {
	s := State(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown refund state %q", raw)
	}
	return s, nil
}
