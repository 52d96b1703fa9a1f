package teamhandlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	authhandlers "github.com/exhuma/powonline-sub000/app/modules/auth/infrastructure/handlers"
	stationdb "github.com/exhuma/powonline-sub000/app/modules/station/infrastructure/repositories"
	teamservice "github.com/exhuma/powonline-sub000/app/modules/team/application"
	teamdb "github.com/exhuma/powonline-sub000/app/modules/team/infrastructure/repositories"
	"github.com/exhuma/powonline-sub000/internal/apperrors"
	"github.com/exhuma/powonline-sub000/internal/httpapi"
)

// TopologyService answers which stations a team can reach.
type TopologyService interface {
	ReachableStations(ctx context.Context, teamName string) ([]stationdb.Station, error)
}

// Handlers exposes the team roster over HTTP.
type Handlers struct {
	service  teamservice.Service
	topology TopologyService
	logger   *slog.Logger
}

func NewHandlers(service teamservice.Service, topology TopologyService, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, topology: topology, logger: logger}
}

// Routes returns the /team endpoints.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListTeams)
	r.Post("/", h.CreateTeam)
	r.Get("/{name}", h.GetTeam)
	r.Put("/{name}", h.UpdateTeam)
	r.Delete("/{name}", h.DeleteTeam)
	r.Put("/{name}/route", h.AssignRoute)
	r.Get("/{name}/stations", h.ReachableStations)
	return r
}

func (h *Handlers) ListTeams(w http.ResponseWriter, r *http.Request) {
	caller := authhandlers.CallerFromContext(r.Context())
	teams, err := h.service.ListTeams(r.Context(), caller)
	if err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, teams)
}

func (h *Handlers) GetTeam(w http.ResponseWriter, r *http.Request) {
	caller := authhandlers.CallerFromContext(r.Context())
	team, err := h.service.GetTeam(r.Context(), caller, chi.URLParam(r, "name"))
	if err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, team)
}

func (h *Handlers) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var team teamdb.Team
	if err := json.NewDecoder(r.Body).Decode(&team); err != nil {
		httpapi.WriteError(w, h.logger, apperrors.NewValidation("malformed request body"))
		return
	}

	caller := authhandlers.CallerFromContext(r.Context())
	if err := h.service.CreateTeam(r.Context(), caller, &team); err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, team)
}

func (h *Handlers) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	var team teamdb.Team
	if err := json.NewDecoder(r.Body).Decode(&team); err != nil {
		httpapi.WriteError(w, h.logger, apperrors.NewValidation("malformed request body"))
		return
	}

	caller := authhandlers.CallerFromContext(r.Context())
	if err := h.service.UpdateTeam(r.Context(), caller, chi.URLParam(r, "name"), &team); err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, team)
}

func (h *Handlers) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	caller := authhandlers.CallerFromContext(r.Context())
	if err := h.service.DeleteTeam(r.Context(), caller, chi.URLParam(r, "name")); err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type assignRouteRequest struct {
	Route *string `json:"route"`
}

func (h *Handlers) AssignRoute(w http.ResponseWriter, r *http.Request) {
	var req assignRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, h.logger, apperrors.NewValidation("malformed request body"))
		return
	}

	caller := authhandlers.CallerFromContext(r.Context())
	if err := h.service.AssignRoute(r.Context(), caller, chi.URLParam(r, "name"), req.Route); err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ReachableStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.topology.ReachableStations(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, stations)
}
