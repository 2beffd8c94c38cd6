package org

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("record not found")

type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Employee struct {
	ID           string      `json:"id"`
	EmployeeCode string      `json:"employeeCode"`
	FullName     string      `json:"fullName"`
	Email        string      `json:"email"`
	Title        *string     `json:"title"`
	DepartmentID *string     `json:"departmentId"`
	Department   *Department `json:"department,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}
