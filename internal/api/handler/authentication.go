package handler

import (
	"errors"
	"net/http"

	"github.com/vfg2006/traffic-manager-browser/internal/domain"
	"github.com/vfg2006/traffic-manager-browser/internal/usecases/authenticating"
	"github.com/vfg2006/traffic-manager-browser/pkg/apiErrors"
	"github.com/vfg2006/traffic-manager-browser/pkg/log"
	"github.com/vfg2006/traffic-manager-browser/pkg/middleware"
)

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest

		// Decodificar o corpo da requisição
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, err := service.LoginUser(req.Email, req.Password)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Falha no login")
			handleLoginError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, domain.LoginResponse{Token: token})
	}
}

func handleLoginError(w http.ResponseWriter, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao realizar login", nil)
}

// GetMe retorna o operador autenticado
func GetMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Não autorizado", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"email":      claims.UserEmail,
			"expires_at": claims.ExpiresAt,
		})
	}
}
