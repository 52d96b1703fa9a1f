package progressionhandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	authhandlers "github.com/exhuma/powonline-sub000/app/modules/auth/infrastructure/handlers"
	progressionservice "github.com/exhuma/powonline-sub000/app/modules/progression/application"
	"github.com/exhuma/powonline-sub000/internal/apperrors"
	"github.com/exhuma/powonline-sub000/internal/eventbus"
	"github.com/exhuma/powonline-sub000/internal/httpapi"
)

// Handlers exposes the progression state machine over HTTP.
type Handlers struct {
	service progressionservice.Service
	bus     eventbus.EventBus
	logger  *slog.Logger
}

func NewHandlers(service progressionservice.Service, bus eventbus.EventBus, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, bus: bus, logger: logger}
}

// JobRoutes returns the /job endpoints owned by this module.
func (h *Handlers) JobRoutes(r chi.Router) {
	r.Post("/advance", h.Advance)
}

type advanceRequest struct {
	Team    string `json:"team"`
	Station string `json:"station"`
}

func (h *Handlers) Advance(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, h.logger, apperrors.NewValidation("malformed request body"))
		return
	}
	if req.Team == "" || req.Station == "" {
		httpapi.WriteError(w, h.logger, apperrors.NewValidation("team and station must not be empty"))
		return
	}

	caller := authhandlers.CallerFromContext(r.Context())
	result, err := h.service.Advance(r.Context(), caller, req.Team, req.Station)
	if err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}

	// Notifications are best-effort; a failed publish never fails the request.
	for _, event := range result.Events {
		if err := h.bus.Publish(r.Context(), event.Channel, event.Event, event.Payload); err != nil {
			h.logger.ErrorContext(r.Context(), "failed to publish event",
				slog.String("channel", event.Channel),
				slog.String("event", event.Event),
				slog.Any("error", err))
		}
	}

	httpapi.WriteJSON(w, http.StatusOK, result.Success)
}

// ListStates serves the raw team/station state rows.
func (h *Handlers) ListStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.service.ListStates(r.Context())
	if err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, states)
}
