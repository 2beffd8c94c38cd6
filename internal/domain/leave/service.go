package leave

import (
	"context"
	"time"

	"hrlite/internal/domain/org"
)

type Service struct {
	Store *Store
	Org   *org.Store
}

func NewService(store *Store, orgStore *org.Store) *Service {
	return &Service{Store: store, Org: orgStore}
}

func (s *Service) List(ctx context.Context) ([]Request, error) {
	return s.Store.List(ctx)
}

// Create opens a request in PENDING. Field presence and date order are
// checked at the transport boundary; the referenced employee must exist.
func (s *Service) Create(ctx context.Context, employeeID string, fromDate, toDate time.Time, reason string) (Request, error) {
	exists, err := s.Org.EmployeeExists(ctx, employeeID)
	if err != nil {
		return Request{}, err
	}
	if !exists {
		return Request{}, ErrNoSuchEmployee
	}
	return s.Store.Create(ctx, employeeID, fromDate, toDate, reason)
}

// SetStatus drives the lifecycle. Terminal states are final: a decided
// request rejects any further transition, including back to PENDING.
func (s *Service) SetStatus(ctx context.Context, id string, to Status) (Request, error) {
	if !CanTransition(StatusPending, to) {
		// No transition targets PENDING. Look the row up anyway so an
		// unknown id still reports not found rather than conflict.
		if _, err := s.Store.Get(ctx, id); err != nil {
			return Request{}, err
		}
		return Request{}, ErrIllegalTransition
	}
	return s.Store.Decide(ctx, id, to)
}
