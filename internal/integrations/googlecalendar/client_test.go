package googlecalendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	"github.com/m04kA/SMC-TeamScheduling/pkg/logger"
	"github.com/m04kA/SMC-TeamScheduling/pkg/ptr"
	"github.com/m04kA/SMC-TeamScheduling/pkg/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, location *time.Location) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := newClient(context.Background(), server.Client(), server.URL+"/calendar/v3/", location, logger.Nop())
	require.NoError(t, err)
	return client
}

func freeBusyHandler(t *testing.T, calendarID string, busy []map[string]string, errs []map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/freeBusy"), r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		entry := map[string]interface{}{"busy": busy}
		if errs != nil {
			entry["errors"] = errs
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"kind":      "calendar#freeBusy",
			"calendars": map[string]interface{}{calendarID: entry},
		})
	}
}

func TestClient_Fetch(t *testing.T) {
	location := time.FixedZone("ICT", 7*60*60)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	member := &domain.Member{ID: 5, CalendarID: ptr.Ptr("cleaner@villa.test")}

	client := newTestClient(t, freeBusyHandler(t, "cleaner@villa.test", []map[string]string{
		{"start": "2026-03-10T11:00:00+07:00", "end": "2026-03-10T12:00:00+07:00"},
		// 22:00 - 02:00 следующего дня в UTC+7
		{"start": "2026-03-10T15:00:00Z", "end": "2026-03-10T19:00:00Z"},
	}, nil), location)

	result, err := client.Fetch(context.Background(), member, domain.DateRange{Start: day, End: day.AddDate(0, 0, 1)})
	require.NoError(t, err)
	require.Len(t, result.Blocks, 3)

	assert.Equal(t, "2026-03-10", domain.DateKey(result.Blocks[0].Date))
	assert.Equal(t, types.TimeString("11:00"), result.Blocks[0].StartTime)
	assert.Equal(t, types.TimeString("12:00"), result.Blocks[0].EndTime)

	assert.Equal(t, "2026-03-10", domain.DateKey(result.Blocks[1].Date))
	assert.Equal(t, types.TimeString("22:00"), result.Blocks[1].StartTime)
	assert.Equal(t, types.TimeString("24:00"), result.Blocks[1].EndTime)

	assert.Equal(t, "2026-03-11", domain.DateKey(result.Blocks[2].Date))
	assert.Equal(t, types.TimeString("00:00"), result.Blocks[2].StartTime)
	assert.Equal(t, types.TimeString("02:00"), result.Blocks[2].EndTime)
}

func TestClient_Fetch_Errors(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	dateRange := domain.DateRange{Start: day, End: day}

	t.Run("not connected", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("adapter must not be called")
		}, nil)

		_, err := client.Fetch(context.Background(), &domain.Member{ID: 1}, dateRange)
		assert.ErrorIs(t, err, ErrNotConnected)
	})

	t.Run("calendar not found", func(t *testing.T) {
		client := newTestClient(t, freeBusyHandler(t, "gone@villa.test", nil, []map[string]string{
			{"domain": "global", "reason": "notFound"},
		}), nil)

		_, err := client.Fetch(context.Background(), &domain.Member{ID: 1, CalendarID: ptr.Ptr("gone@villa.test")}, dateRange)
		assert.ErrorIs(t, err, ErrCalendarNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}, nil)

		_, err := client.Fetch(context.Background(), &domain.Member{ID: 1, CalendarID: ptr.Ptr("x@villa.test")}, dateRange)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestSplitByDay_OutsideRange(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	blocks := splitByDay(
		time.Date(2026, 3, 9, 20, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 1, 30, 0, 0, time.UTC),
		time.UTC,
		domain.DateRange{Start: day, End: day},
	)

	require.Len(t, blocks, 1)
	assert.Equal(t, types.TimeString("00:00"), blocks[0].StartTime)
	assert.Equal(t, types.TimeString("01:30"), blocks[0].EndTime)
}
