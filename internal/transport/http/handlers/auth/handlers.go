package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"hrlite/internal/domain/auth"
	"hrlite/internal/transport/http/api"
	"hrlite/internal/transport/http/middleware"
	"hrlite/internal/transport/http/shared"
)

type Handler struct {
	Service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{Service: service}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	MFACode  string `json:"mfaCode"`
}

type mfaCodeRequest struct {
	Code string `json:"code"`
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	v.Email("email", payload.Email)
	v.Required("password", payload.Password, "password is required")
	v.MinLen("password", payload.Password, 6, "password must be at least 6 characters")

	role := auth.RoleEmployee
	if payload.Role != "" {
		parsed, err := auth.ParseRole(payload.Role)
		if err != nil {
			v.Add("role", "must be one of ADMIN, HR, EMPLOYEE")
		} else {
			role = parsed
		}
	}
	if v.Reject(w, reqID) {
		return
	}

	user, err := h.Service.Register(r.Context(), payload.Email, payload.Password, role)
	switch {
	case errors.Is(err, auth.ErrEmailTaken):
		api.Fail(w, http.StatusConflict, "email_taken", "email already registered", reqID)
		return
	case errors.Is(err, auth.ErrSignupDisabled):
		api.Fail(w, http.StatusForbidden, "signup_disabled", "self signup is disabled", reqID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to register", reqID)
		return
	}

	api.Success(w, map[string]any{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
	}, reqID)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	v.Required("password", payload.Password, "password is required")
	if v.Reject(w, reqID) {
		return
	}

	result, err := h.Service.Login(r.Context(), payload.Email, payload.Password, payload.MFACode)
	switch {
	case errors.Is(err, auth.ErrMFARequired):
		api.Fail(w, http.StatusUnauthorized, "mfa_required", "mfa code required", reqID)
		return
	case errors.Is(err, auth.ErrMFAInvalid):
		api.Fail(w, http.StatusUnauthorized, "mfa_invalid", "invalid mfa code", reqID)
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", reqID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to log in", reqID)
		return
	}

	api.Success(w, map[string]any{
		"token": result.Token,
		"role":  result.Role,
		"email": result.Email,
	}, reqID)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	api.Success(w, map[string]any{
		"userId": principal.UserID,
		"role":   principal.Role,
		"email":  principal.Email,
	}, reqID)
}

func (h *Handler) HandleMFAEnroll(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	enrollment, err := h.Service.EnrollMFA(r.Context(), principal.UserID, principal.Email)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_enroll_failed", "failed to enroll mfa", reqID)
		return
	}

	api.Success(w, map[string]any{
		"secret":     enrollment.Secret,
		"otpauthUrl": enrollment.OTPAuthURL,
	}, reqID)
}

func (h *Handler) HandleMFAVerify(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload mfaCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("code", payload.Code, "code is required")
	if v.Reject(w, reqID) {
		return
	}

	err := h.Service.VerifyMFA(r.Context(), principal.UserID, payload.Code)
	switch {
	case errors.Is(err, auth.ErrMFANotEnrolled):
		api.Fail(w, http.StatusBadRequest, "mfa_not_enrolled", "enroll before verifying", reqID)
		return
	case errors.Is(err, auth.ErrMFAInvalid):
		api.Fail(w, http.StatusBadRequest, "mfa_invalid", "invalid mfa code", reqID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "mfa_verify_failed", "failed to verify mfa", reqID)
		return
	}

	api.Success(w, map[string]any{"enabled": true}, reqID)
}
