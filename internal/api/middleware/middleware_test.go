package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	"github.com/m04kA/SMC-TeamScheduling/pkg/metrics"
)

func TestAuth(t *testing.T) {
	var got domain.Actor
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetActor(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		userID     string
		role       string
		wantStatus int
		wantActor  domain.Actor
	}{
		{"default role", "7", "", http.StatusOK, domain.Actor{UserID: 7, Role: domain.RoleCleaner}},
		{"admin", "9", "admin", http.StatusOK, domain.Actor{UserID: 9, Role: domain.RoleAdmin}},
		{"missing user", "", "", http.StatusUnauthorized, domain.Actor{}},
		{"bad user", "abc", "", http.StatusUnauthorized, domain.Actor{}},
		{"unknown role", "7", "root", http.StatusBadRequest, domain.Actor{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = domain.Actor{}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.userID != "" {
				req.Header.Set(HeaderUserID, tt.userID)
			}
			if tt.role != "" {
				req.Header.Set(HeaderUserRole, tt.role)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantActor, got)
		})
	}
}

func TestRequestID(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, got, rec.Header().Get(HeaderRequestID))

	existing := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, existing)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, existing, got)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegistry("scheduler", prometheus.NewRegistry())

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/teams/{teamId}/coverage", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teams/42/coverage", nil))

	count := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("scheduler", "GET", "/teams/{teamId}/coverage", "404"))
	assert.Equal(t, float64(1), count)
}
