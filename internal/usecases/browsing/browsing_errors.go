package browsing

import (
	"errors"
	"fmt"

	"github.com/vfg2006/traffic-manager-browser/internal/table"
	"github.com/vfg2006/traffic-manager-browser/pkg/apiErrors"
)

// Erros específicos da navegação
var (
	ErrSessionNotFound = errors.New("browser session not found")
	ErrUnknownLevel    = errors.New("unknown level")
	ErrLevelHidden     = errors.New("level is not visible for the current selection")
	ErrGenerateID      = errors.New("error generating session ID")
)

// BrowsingError é um erro com contexto adicional da sessão
type BrowsingError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	SessionID string // Sessão envolvida (quando aplicável)
	Details   string // Detalhes adicionais
}

func (e *BrowsingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *BrowsingError) Unwrap() error {
	return e.Err
}

// NewBrowsingError cria um BrowsingError escolhendo o código de API pelo erro base
func NewBrowsingError(err error, sessionID string, details string) *BrowsingError {
	return &BrowsingError{
		Err:       err,
		Code:      codeFor(err),
		SessionID: sessionID,
		Details:   details,
	}
}

func codeFor(err error) string {
	var cfgErr *table.ConfigError

	switch {
	case errors.Is(err, ErrSessionNotFound):
		return apiErrors.ErrSessionNotFound
	case errors.Is(err, ErrUnknownLevel):
		return apiErrors.ErrUnknownLevel
	case errors.Is(err, ErrLevelHidden):
		return apiErrors.ErrLevelHidden
	case errors.Is(err, table.ErrRowNotFound):
		return apiErrors.ErrRowNotFound
	case errors.As(err, &cfgErr):
		return apiErrors.ErrTableMisconfigured
	default:
		return apiErrors.ErrInternalServer
	}
}
