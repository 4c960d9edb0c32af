package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kliniki/clinic-api/config"
	"github.com/kliniki/clinic-api/pkg/jwt"
	"github.com/kliniki/clinic-api/pkg/response"
)

func newGate(t *testing.T, expiry time.Duration) (*AuthMiddleware, *jwt.JWTService) {
	t.Helper()
	svc := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", Expiry: expiry})
	return NewAuthMiddleware(svc), svc
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var res response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	return res
}

func TestAuthenticate_MissingToken(t *testing.T) {
	gate, _ := newGate(t, time.Hour)

	handler := gate.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	for _, header := range []string{"", "Bearer", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/appointments/x", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		res := decodeResponse(t, rec)
		assert.Equal(t, "Authorization failed: Token not provided", res.Message)
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	gate, svc := newGate(t, -time.Minute)

	token, err := svc.GenerateToken(uuid.New(), "annap", []string{"patient"})
	require.NoError(t, err)

	handler := gate.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/appointments/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token expired", decodeResponse(t, rec).Message)
}

func TestAuthenticate_MalformedToken(t *testing.T) {
	gate, _ := newGate(t, time.Hour)

	handler := gate.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/appointments/x", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", decodeResponse(t, rec).Message)
}

func TestAuthenticate_AttachesIdentity(t *testing.T) {
	gate, svc := newGate(t, time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "drhouse", []string{"doctor"})
	require.NoError(t, err)

	var got Identity
	handler := gate.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		got = identity
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/appointments/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "drhouse", got.Username)
	assert.Equal(t, userID, got.ID)
	assert.Equal(t, []string{"doctor"}, got.Roles)
}

func TestRequireRoles(t *testing.T) {
	gate, svc := newGate(t, time.Hour)

	token, err := svc.GenerateToken(uuid.New(), "annap", []string{"patient"})
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		allowed  []string
		wantCode int
		wantMsg  string
	}{
		{name: "role allowed", allowed: []string{"doctor", "patient"}, wantCode: http.StatusOK},
		{name: "role denied", allowed: []string{"doctor"}, wantCode: http.StatusUnauthorized, wantMsg: "Authorization failed: insufficient role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := gate.Authenticate(RequireRoles(tt.allowed...)(next))

			req := httptest.NewRequest(http.MethodGet, "/appointments/x", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decodeResponse(t, rec).Message)
			}
		})
	}
}

func TestRequireRoles_NoIdentity(t *testing.T) {
	handler := RequireRoles("doctor")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/appointments/x", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
