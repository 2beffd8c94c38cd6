package leave

import (
	"fmt"
	"strings"
)

// Status is the closed set of leave request states. PENDING is the only
// non-terminal state: once a request is approved or rejected it stays
// that way.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

var AllStatuses = []Status{StatusPending, StatusApproved, StatusRejected}

func ParseStatus(value string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(value))) {
	case StatusPending:
		return StatusPending, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	}
	return "", fmt.Errorf("unknown status %q", value)
}

// CanTransition reports whether a request in state from may move to
// state to. Only PENDING -> APPROVED and PENDING -> REJECTED are legal.
func CanTransition(from, to Status) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusApproved || to == StatusRejected
}

func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

func (s Status) String() string {
	return string(s)
}
