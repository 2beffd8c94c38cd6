package orghandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hrlite/internal/domain/auth"
	"hrlite/internal/domain/org"
	"hrlite/internal/transport/http/api"
	"hrlite/internal/transport/http/middleware"
	"hrlite/internal/transport/http/shared"
)

type Handler struct {
	Store *org.Store
}

func NewHandler(store *org.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/departments", func(r chi.Router) {
		r.Get("/", h.handleListDepartments)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/", h.handleCreateDepartment)
	})
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/", h.handleCreateEmployee)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Delete("/{employeeID}", h.handleDeleteEmployee)
	})
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	departments, err := h.Store.ListDepartments(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_list_failed", "failed to list departments", reqID)
		return
	}
	api.Success(w, departments, reqID)
}

type createDepartmentRequest struct {
	Name string `json:"name"`
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload createDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, reqID) {
		return
	}

	dept, err := h.Store.CreateDepartment(r.Context(), strings.TrimSpace(payload.Name))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_create_failed", "failed to create department", reqID)
		return
	}
	api.Success(w, dept, reqID)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", reqID)
		return
	}
	api.Success(w, employees, reqID)
}

type createEmployeeRequest struct {
	EmployeeCode string  `json:"employeeCode"`
	FullName     string  `json:"fullName"`
	Email        string  `json:"email"`
	Title        *string `json:"title"`
	DepartmentID *string `json:"departmentId"`
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeCode", payload.EmployeeCode, "employeeCode is required")
	v.Required("fullName", payload.FullName, "fullName is required")
	v.Required("email", payload.Email, "email is required")
	v.Email("email", payload.Email)
	if payload.DepartmentID != nil && uuid.Validate(*payload.DepartmentID) != nil {
		v.Add("departmentId", "must be a valid id")
	}
	if v.Reject(w, reqID) {
		return
	}

	emp, err := h.Store.CreateEmployee(r.Context(), org.CreateEmployeeParams{
		EmployeeCode: strings.TrimSpace(payload.EmployeeCode),
		FullName:     strings.TrimSpace(payload.FullName),
		Email:        strings.TrimSpace(payload.Email),
		Title:        payload.Title,
		DepartmentID: payload.DepartmentID,
	})
	switch {
	case errors.Is(err, org.ErrDuplicateEmployee):
		api.Fail(w, http.StatusConflict, "employee_exists", "employee code or email already in use", reqID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	employeeID := chi.URLParam(r, "employeeID")
	if uuid.Validate(employeeID) != nil {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
		return
	}

	err := h.Store.DeleteEmployee(r.Context(), employeeID)
	switch {
	case errors.Is(err, org.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
		return
	case errors.Is(err, org.ErrEmployeeInUse):
		api.Fail(w, http.StatusConflict, "employee_in_use", "employee has leave requests on record", reqID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", reqID)
		return
	}
	api.Success(w, map[string]bool{"ok": true}, reqID)
}
