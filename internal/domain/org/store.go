package org

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrDuplicateEmployee = errors.New("employee code or email already in use")
	ErrEmployeeInUse     = errors.New("employee has leave requests on record")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, created_at
    FROM departments
    ORDER BY name ASC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := make([]Department, 0)
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (s *Store) CreateDepartment(ctx context.Context, name string) (Department, error) {
	dept := Department{Name: name}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO departments (name)
    VALUES ($1)
    RETURNING id, created_at
  `, name).Scan(&dept.ID, &dept.CreatedAt)
	if err != nil {
		return Department{}, err
	}
	return dept, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.employee_code, e.full_name, e.email, e.title, e.department_id, e.created_at,
           d.id, d.name, d.created_at
    FROM employees e
    LEFT JOIN departments d ON e.department_id = d.id
    ORDER BY e.created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]Employee, 0)
	for rows.Next() {
		var e Employee
		var deptID, deptName *string
		var deptCreatedAt *time.Time
		if err := rows.Scan(&e.ID, &e.EmployeeCode, &e.FullName, &e.Email, &e.Title, &e.DepartmentID, &e.CreatedAt,
			&deptID, &deptName, &deptCreatedAt); err != nil {
			return nil, err
		}
		if deptID != nil && deptName != nil && deptCreatedAt != nil {
			e.Department = &Department{ID: *deptID, Name: *deptName, CreatedAt: *deptCreatedAt}
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

type CreateEmployeeParams struct {
	EmployeeCode string
	FullName     string
	Email        string
	Title        *string
	DepartmentID *string
}

func (s *Store) CreateEmployee(ctx context.Context, params CreateEmployeeParams) (Employee, error) {
	emp := Employee{
		EmployeeCode: params.EmployeeCode,
		FullName:     params.FullName,
		Email:        params.Email,
		Title:        params.Title,
		DepartmentID: params.DepartmentID,
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (employee_code, full_name, email, title, department_id)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, created_at
  `, params.EmployeeCode, params.FullName, params.Email, params.Title, params.DepartmentID).Scan(&emp.ID, &emp.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Employee{}, ErrDuplicateEmployee
		}
		return Employee{}, err
	}
	return emp, nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return ErrEmployeeInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) EmployeeExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := s.DB.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1)", id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
