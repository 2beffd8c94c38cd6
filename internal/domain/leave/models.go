package leave

import (
	"errors"
	"time"

	"hrlite/internal/domain/org"
)

var (
	ErrNotFound          = errors.New("leave request not found")
	ErrAlreadyDecided    = errors.New("leave request already decided")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrNoSuchEmployee    = errors.New("employee not found")
)

type Request struct {
	ID         string        `json:"id"`
	EmployeeID string        `json:"employeeId"`
	FromDate   time.Time     `json:"fromDate"`
	ToDate     time.Time     `json:"toDate"`
	Reason     string        `json:"reason"`
	Status     Status        `json:"status"`
	Employee   *org.Employee `json:"employee,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}
