package appointment

import "fmt"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("unknown appointment status %q", s)
	}
}

// IsActive reports whether the appointment still holds its time slot.
func (s Status) IsActive() bool {
	switch s {
	case StatusPending, StatusConfirmed:
		return true
	case StatusCancelled:
		return false
	default:
		return false
	}
}

// ActiveStatuses is the status filter for occupancy and conflict queries.
func ActiveStatuses() []string {
	return []string{string(StatusPending), string(StatusConfirmed)}
}

// ===============================
// Validations
// ===============================

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	switch current {
	case StatusPending, StatusConfirmed:
		return nil
	case StatusCancelled:
		return ErrInvalidState
	default:
		return ErrInvalidState
	}
}

// CanReschedule define se um agendamento pode ser remarcado
func CanReschedule(current Status) error {
	switch current {
	case StatusPending, StatusConfirmed:
		return nil
	case StatusCancelled:
		return ErrInvalidState
	default:
		return ErrInvalidState
	}
}

// InitialStatus is confirmed for both the owner and the client flow.
func InitialStatus() Status {
	return StatusConfirmed
}
