package reportshandler

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrlite/internal/domain/auth"
	"hrlite/internal/domain/reports"
	"hrlite/internal/transport/http/api"
	"hrlite/internal/transport/http/middleware"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Get("/reports/leaves.pdf", h.handleLeaveSummaryPDF)
}

func (h *Handler) handleLeaveSummaryPDF(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.Service.WriteLeaveSummaryPDF(r.Context(), &buf); err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to generate report", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="leave-requests.pdf"`)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("write pdf failed", "err", err)
	}
}
