package audithandlers

import (
	"log/slog"
	"net/http"

	auditservice "github.com/exhuma/powonline-sub000/app/modules/audit/application"
	authhandlers "github.com/exhuma/powonline-sub000/app/modules/auth/infrastructure/handlers"
	"github.com/exhuma/powonline-sub000/internal/httpapi"
)

// Handlers exposes the audit trail over HTTP.
type Handlers struct {
	service auditservice.Service
	logger  *slog.Logger
}

func NewHandlers(service auditservice.Service, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

func (h *Handlers) ListAuditLog(w http.ResponseWriter, r *http.Request) {
	caller := authhandlers.CallerFromContext(r.Context())
	entries, err := h.service.ListAuditLog(r.Context(), caller)
	if err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, entries)
}
