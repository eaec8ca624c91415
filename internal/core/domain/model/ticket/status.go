package ticket

import (
	"errors"
	"fmt"
)

// ErrInvalidStatus is returned for values outside the closed status set.
var ErrInvalidStatus = errors.New("invalid ticket status")

// Status is the lifecycle status of a support ticket.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// Statuses returns every valid status.
func Statuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}
}

// ParseStatus converts a stored or transported value into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s Status) Validate() error {
	for _, valid := range Statuses() {
		if s == valid {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, string(s))
}

func (s Status) String() string {
	return string(s)
}
