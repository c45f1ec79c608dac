package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-manager-browser/internal/domain"
	"github.com/vfg2006/traffic-manager-browser/internal/usecases/authenticating"
	"github.com/vfg2006/traffic-manager-browser/pkg/apiErrors"
	"github.com/vfg2006/traffic-manager-browser/pkg/log"
)

type stubAuthenticator struct {
	claims *domain.Claims
	err    error
}

func (s stubAuthenticator) LoginUser(string, string) (string, error) {
	return "", nil
}

func (s stubAuthenticator) ValidateToken(string) (*domain.Claims, error) {
	return s.claims, s.err
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var body apiErrors.APIError
	require.NoError(t, jsoniter.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestAuthMiddleware(t *testing.T) {
	log.SetupTestLogger()

	var seen *domain.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		auth       stubAuthenticator
		path       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Rota pública",
			path:       "/healthcheck",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "Sem header",
			path:       "/v1/browser/sessions",
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:       "Sem Bearer",
			path:       "/v1/browser/sessions",
			header:     "Token abc",
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrInvalidToken,
		},
		{
			name: "Token expirado",
			auth: stubAuthenticator{
				err: authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, ""),
			},
			path:       "/v1/browser/sessions",
			header:     "Bearer abc",
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrExpiredToken,
		},
		{
			name:       "Token válido",
			auth:       stubAuthenticator{claims: &domain.Claims{UserEmail: "op@example.com"}},
			path:       "/v1/browser/sessions",
			header:     "Bearer abc",
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.auth)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
				assert.Nil(t, seen)
			}
			if tt.auth.claims != nil {
				assert.Same(t, tt.auth.claims, seen)
			}
		})
	}
}

func TestCors(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	t.Run("Origem liberada", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://a.test")
		rec := httptest.NewRecorder()

		Cors([]string{"http://a.test"})(next).ServeHTTP(rec, req)
		assert.Equal(t, "http://a.test", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("Origem bloqueada", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://b.test")
		rec := httptest.NewRecorder()

		Cors([]string{"http://a.test"})(next).ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight com curinga", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "http://c.test")
		rec := httptest.NewRecorder()

		Cors([]string{"*"})(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://c.test", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestLoggingAndPanicMiddleware(t *testing.T) {
	log.SetupTestLogger()

	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/x", nil)
	rec := httptest.NewRecorder()

	LoggingMiddleware()(LogPanicMiddleware()(panicking)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(CorrelationIDHeader))
	assert.Equal(t, apiErrors.ErrInternalServer, decodeError(t, rec).Code)
}
