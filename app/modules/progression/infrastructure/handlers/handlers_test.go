package progressionhandlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authservice "github.com/exhuma/powonline-sub000/app/modules/auth/application"
	progressionservice "github.com/exhuma/powonline-sub000/app/modules/progression/application"
	progressiondb "github.com/exhuma/powonline-sub000/app/modules/progression/infrastructure/repositories"
	"github.com/exhuma/powonline-sub000/internal/apperrors"
	"github.com/exhuma/powonline-sub000/internal/eventbus"
	"github.com/exhuma/powonline-sub000/internal/results"
)

type fakeService struct {
	AdvanceFunc func(ctx context.Context, caller authservice.Caller, teamName, stationName string) (progressionservice.AdvanceResult, error)
}

func (f *fakeService) Advance(ctx context.Context, caller authservice.Caller, teamName, stationName string) (progressionservice.AdvanceResult, error) {
	return f.AdvanceFunc(ctx, caller, teamName, stationName)
}

func (f *fakeService) ListStates(ctx context.Context) ([]progressiondb.TeamStationState, error) {
	return nil, nil
}

type capturingBus struct {
	published []eventbus.Outbound
	err       error
}

func (b *capturingBus) Publish(ctx context.Context, channel, event string, payload any) error {
	b.published = append(b.published, eventbus.Outbound{Channel: channel, Event: event, Payload: payload})
	return b.err
}

func (b *capturingBus) Close() error { return nil }

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func TestAdvanceHandler(t *testing.T) {
	success := progressionservice.AdvanceSuccess{Team: "alpha", Station: "mid", State: progressiondb.StateArrived}
	service := &fakeService{
		AdvanceFunc: func(ctx context.Context, caller authservice.Caller, teamName, stationName string) (progressionservice.AdvanceResult, error) {
			assert.Equal(t, "alpha", teamName)
			assert.Equal(t, "mid", stationName)
			return results.Success[progressionservice.AdvanceSuccess, progressionservice.OperationFailure](success, eventbus.Outbound{
				Channel: eventbus.ChannelTeam,
				Event:   eventbus.EventTeamStateChanged,
				Payload: success,
			}), nil
		},
	}
	bus := &capturingBus{}
	h := NewHandlers(service, bus, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/advance", strings.NewReader(`{"team":"alpha","station":"mid"}`))
	rec := httptest.NewRecorder()
	h.Advance(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body progressionservice.AdvanceSuccess
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, success, body)

	require.Len(t, bus.published, 1)
	assert.Equal(t, eventbus.EventTeamStateChanged, bus.published[0].Event)
}

func TestAdvanceHandler_PublishFailureDoesNotFailRequest(t *testing.T) {
	success := progressionservice.AdvanceSuccess{Team: "alpha", Station: "mid", State: progressiondb.StateArrived}
	service := &fakeService{
		AdvanceFunc: func(ctx context.Context, caller authservice.Caller, teamName, stationName string) (progressionservice.AdvanceResult, error) {
			return results.Success[progressionservice.AdvanceSuccess, progressionservice.OperationFailure](success, eventbus.Outbound{
				Channel: eventbus.ChannelTeam,
				Event:   eventbus.EventTeamStateChanged,
				Payload: success,
			}), nil
		},
	}
	bus := &capturingBus{err: assert.AnError}
	h := NewHandlers(service, bus, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/advance", strings.NewReader(`{"team":"alpha","station":"mid"}`))
	rec := httptest.NewRecorder()
	h.Advance(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdvanceHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{"malformed body", "{", nil, http.StatusBadRequest},
		{"missing fields", `{"team":"alpha"}`, nil, http.StatusBadRequest},
		{
			"access denied",
			`{"team":"alpha","station":"mid"}`,
			&apperrors.AccessDeniedError{Reason: apperrors.ReasonAccessDenied, Permission: "manage_station"},
			http.StatusForbidden,
		},
		{
			"not authenticated",
			`{"team":"alpha","station":"mid"}`,
			&apperrors.AccessDeniedError{Reason: apperrors.ReasonNotAuthenticated},
			http.StatusUnauthorized,
		},
		{
			"unknown team",
			`{"team":"ghost","station":"mid"}`,
			apperrors.ErrNotFound,
			http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeService{
				AdvanceFunc: func(ctx context.Context, caller authservice.Caller, teamName, stationName string) (progressionservice.AdvanceResult, error) {
					return progressionservice.AdvanceResult{Error: tt.serviceErr}, tt.serviceErr
				},
			}
			bus := &capturingBus{}
			h := NewHandlers(service, bus, discardLogger())

			req := httptest.NewRequest(http.MethodPost, "/advance", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Advance(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Empty(t, bus.published, "no event on failure")
		})
	}
}
