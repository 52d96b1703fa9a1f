package stationhandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	authhandlers "github.com/exhuma/powonline-sub000/app/modules/auth/infrastructure/handlers"
	stationservice "github.com/exhuma/powonline-sub000/app/modules/station/application"
	stationdb "github.com/exhuma/powonline-sub000/app/modules/station/infrastructure/repositories"
	"github.com/exhuma/powonline-sub000/internal/apperrors"
	"github.com/exhuma/powonline-sub000/internal/httpapi"
)

// Handlers exposes stations, routes and topology queries over HTTP.
type Handlers struct {
	service stationservice.Service
	logger  *slog.Logger
}

func NewHandlers(service stationservice.Service, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

// StationRoutes returns the /station endpoints.
func (h *Handlers) StationRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListStations)
	r.Post("/", h.CreateStation)
	r.Put("/{name}", h.UpdateStation)
	r.Delete("/{name}", h.DeleteStation)
	r.Get("/{name}/related/{relation}", h.Related)
	return r
}

// RouteRoutes returns the /route endpoints.
func (h *Handlers) RouteRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListRoutes)
	r.Post("/", h.CreateRoute)
	r.Put("/{name}", h.UpdateRoute)
	r.Delete("/{name}", h.DeleteRoute)
	r.Post("/{name}/stations/{station}", h.AssignStation)
	r.Delete("/{name}/stations/{station}", h.UnassignStation)
	return r
}

func (h *Handlers) ListStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.service.ListStations(r.Context())
	if err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, stations)
}

func (h *Handlers) CreateStation(w http.ResponseWriter, r *http.Request) {
	var station stationdb.Station
	if err := json.NewDecoder(r.Body).Decode(&station); err != nil {
		httpapi.WriteError(w, h.logger, apperrors.NewValidation("malformed request body"))
		return
	}

	caller := authhandlers.CallerFromContext(r.Context())
	if err := h.service.CreateStation(r.Context(), caller, &station); err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, station)
}

func (h *Handlers) UpdateStation(w http.ResponseWriter, r *http.Request) {
	var station stationdb.Station
	if err := json.NewDecoder(r.Body).Decode(&station); err != nil {
		httpapi.WriteError(w, h.logger, apperrors.NewValidation("malformed request body"))
		return
	}

	caller := authhandlers.CallerFromContext(r.Context())
	if err := h.service.UpdateStation(r.Context(), caller, chi.URLParam(r, "name"), &station); err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, station)
}

func (h *Handlers) DeleteStation(w http.ResponseWriter, r *http.Request) {
	caller := authhandlers.CallerFromContext(r.Context())
	if err := h.service.DeleteStation(r.Context(), caller, chi.URLParam(r, "name")); err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type relatedResponse struct {
	Station string `json:"station"`
	Related string `json:"related"`
}

func (h *Handlers) Related(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	related, err := h.service.Related(r.Context(), name, chi.URLParam(r, "relation"))
	if err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, relatedResponse{Station: name, Related: related})
}

func (h *Handlers) ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.service.ListRoutes(r.Context())
	if err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, routes)
}

func (h *Handlers) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var route stationdb.Route
	if err := json.NewDecoder(r.Body).Decode(&route); err != nil {
		httpapi.WriteError(w, h.logger, apperrors.NewValidation("malformed request body"))
		return
	}

	caller := authhandlers.CallerFromContext(r.Context())
	if err := h.service.CreateRoute(r.Context(), caller, &route); err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, route)
}

func (h *Handlers) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	var route stationdb.Route
	if err := json.NewDecoder(r.Body).Decode(&route); err != nil {
		httpapi.WriteError(w, h.logger, apperrors.NewValidation("malformed request body"))
		return
	}

	caller := authhandlers.CallerFromContext(r.Context())
	if err := h.service.UpdateRoute(r.Context(), caller, chi.URLParam(r, "name"), &route); err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, route)
}

func (h *Handlers) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	caller := authhandlers.CallerFromContext(r.Context())
	if err := h.service.DeleteRoute(r.Context(), caller, chi.URLParam(r, "name")); err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) AssignStation(w http.ResponseWriter, r *http.Request) {
	caller := authhandlers.CallerFromContext(r.Context())
	err := h.service.AssignStationToRoute(r.Context(), caller, chi.URLParam(r, "name"), chi.URLParam(r, "station"))
	if err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) UnassignStation(w http.ResponseWriter, r *http.Request) {
	caller := authhandlers.CallerFromContext(r.Context())
	err := h.service.UnassignStationFromRoute(r.Context(), caller, chi.URLParam(r, "name"), chi.URLParam(r, "station"))
	if err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
