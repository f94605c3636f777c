package get_day_status

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

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	"github.com/m04kA/SMC-TeamScheduling/internal/service/availability"
	getDayStatus "github.com/m04kA/SMC-TeamScheduling/internal/usecase/get_day_status"
	"github.com/m04kA/SMC-TeamScheduling/pkg/logger"
)

type stubUseCase struct {
	req  *getDayStatus.Request
	resp *getDayStatus.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getDayStatus.Request) (*getDayStatus.Response, error) {
	s.req = req
	return s.resp, s.err
}

func newRequest(memberID, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/members/"+memberID+"/day-status?"+query, nil)
	return mux.SetURLVars(req, map[string]string{"memberId": memberID})
}

func TestHandler_Success(t *testing.T) {
	source := domain.SourceBooking
	bookingID := int64(10)

	uc := &stubUseCase{resp: &getDayStatus.Response{
		MemberID:           1,
		Date:               time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Status:             domain.DayPartial,
		BusyMinutes:        180,
		Utilisation:        0.3,
		CalendarSyncStatus: domain.SyncSynced,
		Grid: []availability.GridCell{
			{Hour: 8, Span: 1, Status: domain.HourAvailable},
			{Hour: 10, Span: 3, Status: domain.HourBusy, Source: &source, BookingID: &bookingID},
		},
	}}

	rec := httptest.NewRecorder()
	NewHandler(uc, time.UTC, logger.Nop()).Handle(rec, newRequest("1", "date=2025-06-10&fromHour=8&toHour=12"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.req.FromHour)
	assert.Equal(t, 8, *uc.req.FromHour)
	assert.Equal(t, 12, *uc.req.ToHour)

	var body DayStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "PARTIAL", body.Status)
	assert.Equal(t, 0.3, body.Utilisation)
	require.Len(t, body.Grid, 2)
	assert.Nil(t, body.Grid[0].Source)
	assert.Equal(t, 3, body.Grid[1].Span)
	require.NotNil(t, body.Grid[1].Source)
	assert.Equal(t, "BOOKING", *body.Grid[1].Source)
}

func TestHandler_DefaultGrid(t *testing.T) {
	uc := &stubUseCase{resp: &getDayStatus.Response{MemberID: 1}}

	rec := httptest.NewRecorder()
	NewHandler(uc, time.UTC, logger.Nop()).Handle(rec, newRequest("1", "date=2025-06-10"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, uc.req.FromHour)
	assert.Nil(t, uc.req.ToHour)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		memberID   string
		query      string
		ucErr      error
		wantStatus int
	}{
		{"bad member id", "abc", "date=2025-06-10", nil, http.StatusBadRequest},
		{"missing date", "1", "", nil, http.StatusBadRequest},
		{"bad hour", "1", "date=2025-06-10&fromHour=eight", nil, http.StatusBadRequest},
		{"invalid range", "1", "date=2025-06-10&fromHour=18&toHour=8", getDayStatus.ErrInvalidInput, http.StatusBadRequest},
		{"not found", "1", "date=2025-06-10", getDayStatus.ErrMemberNotFound, http.StatusNotFound},
		{"internal", "1", "date=2025-06-10", getDayStatus.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{err: tt.ucErr}
			rec := httptest.NewRecorder()

			NewHandler(uc, time.UTC, logger.Nop()).Handle(rec, newRequest(tt.memberID, tt.query))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
