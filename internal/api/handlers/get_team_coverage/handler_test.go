package get_team_coverage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getTeamCoverage "github.com/m04kA/SMC-TeamScheduling/internal/usecase/get_team_coverage"
	"github.com/m04kA/SMC-TeamScheduling/pkg/logger"
)

type stubUseCase struct {
	req *getTeamCoverage.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *getTeamCoverage.Request) (*getTeamCoverage.Response, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &getTeamCoverage.Response{
		TeamID:    req.TeamID,
		Date:      req.Date,
		Hour:      req.Hour,
		Available: 3,
		Total:     5,
	}, nil
}

func newRequest(teamID, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/teams/"+teamID+"/coverage?"+query, nil)
	return mux.SetURLVars(req, map[string]string{"teamId": teamID})
}

func TestHandler_HourCoverage(t *testing.T) {
	uc := &stubUseCase{}
	rec := httptest.NewRecorder()

	NewHandler(uc, time.UTC, logger.Nop()).Handle(rec, newRequest("1", "date=2025-06-10&hour=14"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.req.Hour)
	assert.Equal(t, 14, *uc.req.Hour)

	var body CoverageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Available)
	assert.Equal(t, 5, body.Total)
	assert.Equal(t, "2025-06-10", body.Date)
	require.NotNil(t, body.Hour)
	assert.Equal(t, 14, *body.Hour)
}

func TestHandler_DayCoverage(t *testing.T) {
	uc := &stubUseCase{}
	rec := httptest.NewRecorder()

	NewHandler(uc, time.UTC, logger.Nop()).Handle(rec, newRequest("1", "date=2025-06-10"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, uc.req.Hour)
	assert.NotContains(t, rec.Body.String(), `"hour"`)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		teamID     string
		query      string
		ucErr      error
		wantStatus int
	}{
		{"bad team id", "x", "date=2025-06-10", nil, http.StatusBadRequest},
		{"missing date", "1", "", nil, http.StatusBadRequest},
		{"bad hour", "1", "date=2025-06-10&hour=noon", nil, http.StatusBadRequest},
		{"hour out of range", "1", "date=2025-06-10&hour=24", getTeamCoverage.ErrInvalidInput, http.StatusBadRequest},
		{"team not found", "1", "date=2025-06-10", getTeamCoverage.ErrTeamNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&stubUseCase{err: tt.ucErr}, time.UTC, logger.Nop()).Handle(rec, newRequest(tt.teamID, tt.query))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
