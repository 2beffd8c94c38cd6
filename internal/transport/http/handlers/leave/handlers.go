package leavehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hrlite/internal/domain/auth"
	"hrlite/internal/domain/leave"
	"hrlite/internal/transport/http/api"
	"hrlite/internal/transport/http/middleware"
	"hrlite/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
}

func NewHandler(service *leave.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leaves", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Patch("/{leaveID}/status", h.handleSetStatus)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	requests, err := h.Service.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_list_failed", "failed to list leave requests", reqID)
		return
	}
	api.Success(w, requests, reqID)
}

type createLeaveRequest struct {
	EmployeeID string `json:"employeeId"`
	FromDate   string `json:"fromDate"`
	ToDate     string `json:"toDate"`
	Reason     string `json:"reason"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload createLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employeeId is required")
	v.Required("fromDate", payload.FromDate, "fromDate is required")
	v.Required("toDate", payload.ToDate, "toDate is required")
	v.Required("reason", payload.Reason, "reason is required")
	if payload.EmployeeID != "" && uuid.Validate(payload.EmployeeID) != nil {
		v.Add("employeeId", "must be a valid id")
	}

	var fromDate, toDate time.Time
	if payload.FromDate != "" {
		fromDate, _ = v.Date("fromDate", payload.FromDate)
	}
	if payload.ToDate != "" {
		toDate, _ = v.Date("toDate", payload.ToDate)
	}
	v.DateOrder("fromDate", fromDate, "toDate", toDate)
	if v.Reject(w, reqID) {
		return
	}

	req, err := h.Service.Create(r.Context(), payload.EmployeeID, fromDate, toDate, strings.TrimSpace(payload.Reason))
	switch {
	case errors.Is(err, leave.ErrNoSuchEmployee):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "employeeId", Reason: "employee not found"}})
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "leave_create_failed", "failed to create leave request", reqID)
		return
	}
	api.Success(w, req, reqID)
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	leaveID := chi.URLParam(r, "leaveID")
	if uuid.Validate(leaveID) != nil {
		api.Fail(w, http.StatusNotFound, "leave_not_found", "leave request not found", reqID)
		return
	}

	var payload setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	status, err := leave.ParseStatus(payload.Status)
	if err != nil {
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "status", Reason: "must be one of PENDING, APPROVED, REJECTED"}})
		return
	}

	req, err := h.Service.SetStatus(r.Context(), leaveID, status)
	switch {
	case errors.Is(err, leave.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "leave_not_found", "leave request not found", reqID)
		return
	case errors.Is(err, leave.ErrAlreadyDecided):
		api.Fail(w, http.StatusConflict, "leave_already_decided", "leave request already decided", reqID)
		return
	case errors.Is(err, leave.ErrIllegalTransition):
		api.Fail(w, http.StatusConflict, "illegal_transition", "status cannot move back to PENDING", reqID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "leave_status_failed", "failed to update leave status", reqID)
		return
	}
	api.Success(w, req, reqID)
}
