package authhandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	authservice "github.com/exhuma/powonline-sub000/app/modules/auth/application"
	"github.com/exhuma/powonline-sub000/internal/apperrors"
	"github.com/exhuma/powonline-sub000/internal/httpapi"
)

// Handlers exposes login and user administration over HTTP.
type Handlers struct {
	service authservice.Service
	logger  *slog.Logger
	limiter *IPRateLimiter
}

func NewHandlers(service authservice.Service, logger *slog.Logger) *Handlers {
	return &Handlers{
		service: service,
		logger:  logger,
		limiter: NewIPRateLimiter(rate.Limit(1), 5),
	}
}

// LoginRoutes returns the rate-limited login endpoint, mounted outside the
// auth middleware.
func (h *Handlers) LoginRoutes() chi.Router {
	r := chi.NewRouter()
	r.Use(RateLimitMiddleware(h.limiter))
	r.Post("/", h.Login)
	return r
}

// UserRoutes returns the user administration endpoints.
func (h *Handlers) UserRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListUsers)
	r.Post("/", h.CreateUser)
	r.Put("/{name}/roles", h.SetUserRoles)
	r.Delete("/{name}", h.DeleteUser)
	r.Post("/{name}/stations/{station}", h.AssignStation)
	r.Delete("/{name}/stations/{station}", h.UnassignStation)
	return r
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, h.logger, apperrors.NewValidation("malformed request body"))
		return
	}

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, loginResponse{Token: token})
}

type userRequest struct {
	Name     string   `json:"name"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, h.logger, apperrors.NewValidation("malformed request body"))
		return
	}

	caller := CallerFromContext(r.Context())
	if err := h.service.CreateUser(r.Context(), caller, req.Name, req.Password, req.Roles); err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) SetUserRoles(w http.ResponseWriter, r *http.Request) {
	var roles []string
	if err := json.NewDecoder(r.Body).Decode(&roles); err != nil {
		httpapi.WriteError(w, h.logger, apperrors.NewValidation("malformed request body"))
		return
	}

	caller := CallerFromContext(r.Context())
	if err := h.service.SetUserRoles(r.Context(), caller, chi.URLParam(r, "name"), roles); err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller := CallerFromContext(r.Context())
	if err := h.service.DeleteUser(r.Context(), caller, chi.URLParam(r, "name")); err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	caller := CallerFromContext(r.Context())
	users, err := h.service.ListUsers(r.Context(), caller)
	if err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, users)
}

func (h *Handlers) AssignStation(w http.ResponseWriter, r *http.Request) {
	caller := CallerFromContext(r.Context())
	err := h.service.AssignStationToUser(r.Context(), caller, chi.URLParam(r, "name"), chi.URLParam(r, "station"))
	if err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) UnassignStation(w http.ResponseWriter, r *http.Request) {
	caller := CallerFromContext(r.Context())
	err := h.service.UnassignStationFromUser(r.Context(), caller, chi.URLParam(r, "name"), chi.URLParam(r, "station"))
	if err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
