package scoringhandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	authhandlers "github.com/exhuma/powonline-sub000/app/modules/auth/infrastructure/handlers"
	scoringservice "github.com/exhuma/powonline-sub000/app/modules/scoring/application"
	scoringdb "github.com/exhuma/powonline-sub000/app/modules/scoring/infrastructure/repositories"
	"github.com/exhuma/powonline-sub000/internal/apperrors"
	"github.com/exhuma/powonline-sub000/internal/eventbus"
	"github.com/exhuma/powonline-sub000/internal/httpapi"
)

// Handlers exposes score mutation and the aggregation views over HTTP.
type Handlers struct {
	service scoringservice.Service
	bus     eventbus.EventBus
	logger  *slog.Logger
}

func NewHandlers(service scoringservice.Service, bus eventbus.EventBus, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, bus: bus, logger: logger}
}

// JobRoutes registers the /job endpoints owned by this module.
func (h *Handlers) JobRoutes(r chi.Router) {
	r.Post("/score/station", h.SetStationScore)
	r.Post("/score/questionnaire", h.SetQuestionnaireScore)
}

// BoardRoutes registers the read-only aggregation endpoints.
func (h *Handlers) BoardRoutes(r chi.Router) {
	r.Get("/scoreboard", h.Scoreboard)
	r.Get("/scoreboard.xlsx", h.ScoreboardXLSX)
	r.Get("/scoreboard.png", h.ScoreboardPNG)
	r.Get("/dashboard", h.GlobalDashboard)
	r.Get("/questionnaire-scores", h.QuestionnaireScores)
}

// QuestionnaireRoutes returns the /questionnaire administration endpoints.
func (h *Handlers) QuestionnaireRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListQuestionnaires)
	r.Post("/", h.CreateQuestionnaire)
	r.Put("/{name}", h.UpdateQuestionnaire)
	r.Delete("/{name}", h.DeleteQuestionnaire)
	return r
}

type scoreRequest struct {
	Team    string `json:"team"`
	Station string `json:"station"`
	Score   string `json:"score"`
}

type setScoreFunc func(r *http.Request, req scoreRequest) (scoringservice.ScoreResult, error)

func (h *Handlers) setScore(w http.ResponseWriter, r *http.Request, set setScoreFunc) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, h.logger, apperrors.NewValidation("malformed request body"))
		return
	}
	if req.Team == "" || req.Station == "" {
		httpapi.WriteError(w, h.logger, apperrors.NewValidation("team and station must not be empty"))
		return
	}

	result, err := set(r, req)
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

func (h *Handlers) SetStationScore(w http.ResponseWriter, r *http.Request) {
	h.setScore(w, r, func(r *http.Request, req scoreRequest) (scoringservice.ScoreResult, error) {
		caller := authhandlers.CallerFromContext(r.Context())
		return h.service.SetStationScore(r.Context(), caller, req.Team, req.Station, req.Score)
	})
}

func (h *Handlers) SetQuestionnaireScore(w http.ResponseWriter, r *http.Request) {
	h.setScore(w, r, func(r *http.Request, req scoreRequest) (scoringservice.ScoreResult, error) {
		caller := authhandlers.CallerFromContext(r.Context())
		return h.service.SetQuestionnaireScore(r.Context(), caller, req.Team, req.Station, req.Score)
	})
}

func (h *Handlers) Scoreboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.Scoreboard(r.Context())
	if err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, board)
}

func (h *Handlers) ScoreboardXLSX(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ScoreboardXLSX(r.Context())
	if err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="scoreboard.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write workbook", slog.Any("error", err))
	}
}

func (h *Handlers) ScoreboardPNG(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ScoreboardPNG(r.Context())
	if err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write chart", slog.Any("error", err))
	}
}

func (h *Handlers) GlobalDashboard(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.GlobalDashboard(r.Context())
	if err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handlers) QuestionnaireScores(w http.ResponseWriter, r *http.Request) {
	scores, err := h.service.QuestionnaireScores(r.Context())
	if err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, scores)
}

func (h *Handlers) ListQuestionnaires(w http.ResponseWriter, r *http.Request) {
	questionnaires, err := h.service.ListQuestionnaires(r.Context())
	if err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, questionnaires)
}

func (h *Handlers) CreateQuestionnaire(w http.ResponseWriter, r *http.Request) {
	var q scoringdb.Questionnaire
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		httpapi.WriteError(w, h.logger, apperrors.NewValidation("malformed request body"))
		return
	}

	caller := authhandlers.CallerFromContext(r.Context())
	if err := h.service.CreateQuestionnaire(r.Context(), caller, &q); err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, q)
}

func (h *Handlers) UpdateQuestionnaire(w http.ResponseWriter, r *http.Request) {
	var q scoringdb.Questionnaire
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		httpapi.WriteError(w, h.logger, apperrors.NewValidation("malformed request body"))
		return
	}

	caller := authhandlers.CallerFromContext(r.Context())
	if err := h.service.UpdateQuestionnaire(r.Context(), caller, chi.URLParam(r, "name"), &q); err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, q)
}

func (h *Handlers) DeleteQuestionnaire(w http.ResponseWriter, r *http.Request) {
	caller := authhandlers.CallerFromContext(r.Context())
	if err := h.service.DeleteQuestionnaire(r.Context(), caller, chi.URLParam(r, "name")); err != nil {
		httpapi.WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
