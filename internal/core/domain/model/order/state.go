package order

import (
	"kitchenboard/internal/pkg/errs"
)

// State represents the lifecycle state of an order. It implements a state
// machine with an explicit edge table so that every mutation is checked
// against the workflow the kitchen actually follows.
//
// State transitions:
//
//	PENDING ──> IN_PROGRESS ──> READY ──> DELIVERED
//	   ^                                     │
//	   └─────────────────────────────────────┘
//	              (recovery only)
//
// Forward movement is strictly one edge at a time: skipping ahead or moving
// backward is rejected. The only backward edge is the explicit recovery of a
// DELIVERED order to PENDING. Pickup is the only way to reach DELIVERED and
// is legal solely from READY.
type State int

const (
	// Unknown represents an invalid or undefined state.
	// This value (0) helps catch uninitialized State values.
	Unknown State = iota

	// Pending is the initial state of a freshly created order,
	// waiting for the kitchen to start preparing it.
	Pending

	// InProgress indicates the kitchen is preparing the order.
	InProgress

	// Ready indicates the order is finished and waiting for a rider.
	// Only orders in this state can be picked up.
	Ready

	// Delivered indicates a rider has picked the order up. The order leaves
	// the active board and appears in history. The only way out of this
	// state is an explicit recovery.
	Delivered
)

// stateNames maps every State to its wire representation.
func stateNames() map[State]string {
	return map[State]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		InProgress: "IN_PROGRESS",
		Ready:      "READY",
		Delivered:  "DELIVERED",
	}
}

// validStateNames maps only the valid states, supporting validation and
// parsing of caller-supplied state names.
func validStateNames() map[State]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[State]string{
		Pending:    "PENDING",
		InProgress: "IN_PROGRESS",
		Ready:      "READY",
		Delivered:  "DELIVERED",
	}
}

// forwardEdges is the complete forward edge table of the lifecycle.
// Recovery (Delivered -> Pending) is deliberately absent: it is a separate
// explicit operation, never an "advance".
func forwardEdges() map[State]State {
	return map[State]State{
		Pending:    InProgress,
		InProgress: Ready,
		Ready:      Delivered,
	}
}

// StateFromString parses a wire state name ("PENDING", "IN_PROGRESS",
// "READY", "DELIVERED") into a State. Returns a validation error for any
// other input.
func StateFromString(s string) (State, error) {
	for state, name := range validStateNames() {
		if name == s {
			return state, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("state",
		errs.NewValueIsInvalidError(s))
}

// Validate checks if the State value is one of the four valid states.
func (s State) Validate() error {
	if _, ok := validStateNames()[s]; !ok {
		return errs.NewValueIsInvalidError("state")
	}
	return nil
}

// String returns the wire name of the state ("PENDING", "IN_PROGRESS",
// "READY", "DELIVERED"), or "UNKNOWN" for invalid values. Implements
// fmt.Stringer.
func (s State) String() string {
	if name, ok := stateNames()[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// DisplayName returns a human-readable name used in operator-facing
// notices ("pending", "in progress", "ready", "delivered").
func (s State) DisplayName() string {
	switch s {
	case Pending:
		return "pending"
	case InProgress:
		return "in progress"
	case Ready:
		return "ready"
	case Delivered:
		return "delivered"
	default:
		return "unknown"
	}
}

// IsActive reports whether an order in this state belongs to the active
// board (everything except DELIVERED).
func (s State) IsActive() bool {
	return s != Delivered && s != Unknown
}

// Advance transitions to target if and only if target is exactly one
// forward edge away from the current state.
//
// Returns:
//   - (target, nil) on a valid single forward edge
//   - (0, InvalidTransitionError) for skips, backward moves, self
//     transitions, and any transition into or out of an invalid state
func (s State) Advance(target State) (State, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if next, ok := forwardEdges()[s]; ok && next == target {
		return target, nil
	}
	return Unknown, errs.NewInvalidTransitionError(s.String(), target.String())
}

// Pickup transitions to Delivered. Legal only from Ready: a PENDING or
// IN_PROGRESS order is not finished, and a second pickup of a DELIVERED
// order is rejected rather than treated as a no-op so a rider can never
// believe it delivered an order someone else already took.
func (s State) Pickup() (State, error) {
	if s != Ready {
		return Unknown, errs.NewInvalidStateError("pickup", s.String())
	}
	return Delivered, nil
}

// Recover transitions back to Pending. Legal only from Delivered.
func (s State) Recover() (State, error) {
	if s != Delivered {
		return Unknown, errs.NewInvalidStateError("recover", s.String())
	}
	return Pending, nil
}

// ValidateEdit checks that the item set may be replaced in this state.
// Orders are editable only while PENDING or IN_PROGRESS; once the kitchen
// has finished them the item set is frozen.
func (s State) ValidateEdit() error {
	if s != Pending && s != InProgress {
		return errs.NewInvalidStateError("edit items", s.String())
	}
	return nil
}

// ValidateCanHaveRider validates the consistency between order state and
// rider assignment: a rider is set if and only if the order is DELIVERED.
func (s State) ValidateCanHaveRider(rider bool) error {
	if rider && s != Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"riderId",
			errs.NewInvalidStateError("have a rider", s.String()),
		)
	}

	if !rider && s == Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"riderId",
			errs.NewInvalidStateError("have no rider", s.String()),
		)
	}

	return nil
}
