package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-manager-browser/internal/config"
	"github.com/vfg2006/traffic-manager-browser/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3nha"), bcrypt.MinCost)
	require.NoError(t, err)

	return NewService(&config.Config{
		Auth: config.Auth{
			Secret:       "test-secret",
			Email:        "Operador@Example.com",
			PasswordHash: string(hash),
			TokenTTL:     time.Hour,
		},
	}).(*Service)
}

func TestLoginUser(t *testing.T) {
	service := newTestService(t)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
		wantCode string
	}{
		{
			name:     "Credenciais válidas com email normalizado",
			email:    " operador@example.COM ",
			password: "s3nha",
		},
		{
			name:     "Senha incorreta",
			email:    "operador@example.com",
			password: "errada",
			wantErr:  ErrInvalidCredentials,
			wantCode: apiErrors.ErrInvalidCredentials,
		},
		{
			name:     "Email desconhecido",
			email:    "outro@example.com",
			password: "s3nha",
			wantErr:  ErrInvalidCredentials,
			wantCode: apiErrors.ErrInvalidCredentials,
		},
		{
			name:     "Campos vazios",
			wantErr:  ErrMissingRequiredData,
			wantCode: apiErrors.ErrMissingRequiredData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := service.LoginUser(tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				var authErr *AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, tt.wantCode, authErr.Code)
				assert.True(t, IsCredentialsError(err))
				return
			}

			require.NoError(t, err)

			claims, err := service.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, "operador@example.com", claims.UserEmail)
		})
	}
}

func TestLoginUser_NotConfigured(t *testing.T) {
	service := NewService(&config.Config{})

	_, err := service.LoginUser("a@example.com", "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestValidateToken(t *testing.T) {
	service := newTestService(t)

	token, err := service.LoginUser("operador@example.com", "s3nha")
	require.NoError(t, err)

	t.Run("Token expirado", func(t *testing.T) {
		expired := *service
		expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

		_, err := expired.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
		assert.True(t, IsAuthorizationError(err))
	})

	t.Run("Assinatura com outro segredo", func(t *testing.T) {
		other := *service
		other.secret = []byte("other")

		_, err := other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Algoritmo não HMAC", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"UserEmail": "x"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.ValidateToken(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Lixo", func(t *testing.T) {
		_, err := service.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, apiErrors.ErrInvalidToken, authErr.Code)
	})
}
