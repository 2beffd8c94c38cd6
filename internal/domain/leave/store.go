package leave

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrlite/internal/domain/org"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context) ([]Request, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT l.id, l.employee_id, l.from_date, l.to_date, l.reason, l.status, l.created_at,
           e.id, e.employee_code, e.full_name, e.email, e.title, e.department_id, e.created_at
    FROM leave_requests l
    JOIN employees e ON l.employee_id = e.id
    ORDER BY l.created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]Request, 0)
	for rows.Next() {
		var req Request
		var emp org.Employee
		if err := rows.Scan(&req.ID, &req.EmployeeID, &req.FromDate, &req.ToDate, &req.Reason, &req.Status, &req.CreatedAt,
			&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.Email, &emp.Title, &emp.DepartmentID, &emp.CreatedAt); err != nil {
			return nil, err
		}
		req.Employee = &emp
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (s *Store) Create(ctx context.Context, employeeID string, fromDate, toDate time.Time, reason string) (Request, error) {
	req := Request{
		EmployeeID: employeeID,
		FromDate:   fromDate,
		ToDate:     toDate,
		Reason:     reason,
		Status:     StatusPending,
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, from_date, to_date, reason, status)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, created_at
  `, employeeID, fromDate, toDate, reason, StatusPending).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return Request{}, err
	}
	return req, nil
}

func (s *Store) Get(ctx context.Context, id string) (Request, error) {
	var req Request
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, from_date, to_date, reason, status, created_at
    FROM leave_requests
    WHERE id = $1
  `, id).Scan(&req.ID, &req.EmployeeID, &req.FromDate, &req.ToDate, &req.Reason, &req.Status, &req.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	if err != nil {
		return Request{}, err
	}
	return req, nil
}

// Decide moves a pending request into a terminal state. The condition on
// the current status makes the transition a compare-and-set: of two
// concurrent deciders exactly one sees a row updated.
func (s *Store) Decide(ctx context.Context, id string, to Status) (Request, error) {
	var req Request
	err := s.DB.QueryRow(ctx, `
    UPDATE leave_requests
    SET status = $2
    WHERE id = $1 AND status = $3
    RETURNING id, employee_id, from_date, to_date, reason, status, created_at
  `, id, to, StatusPending).Scan(&req.ID, &req.EmployeeID, &req.FromDate, &req.ToDate, &req.Reason, &req.Status, &req.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := s.Get(ctx, id); getErr != nil {
			return Request{}, getErr
		}
		return Request{}, ErrAlreadyDecided
	}
	if err != nil {
		return Request{}, err
	}
	return req, nil
}
