package table

import (
	"errors"
	"fmt"
)

// Erros de configuração: indicam uso incorreto do componente e devem ser
// corrigidos por quem monta a tabela
var (
	ErrNoColumns            = errors.New("table requires at least one column")
	ErrMissingField         = errors.New("column field is required")
	ErrMissingAccessor      = errors.New("column accessor is required")
	ErrDuplicateField       = errors.New("duplicated column field")
	ErrMissingSelectHandler = errors.New("select handler is required")
)

// ErrRowNotFound indica um clique em uma linha que não está sendo exibida
var ErrRowNotFound = errors.New("row not found")

// ConfigError é um erro de configuração com a coluna envolvida
type ConfigError struct {
	Err    error  // Erro base
	Column int    // Posição da coluna (-1 quando não se aplica)
	Field  string // Campo da coluna (quando informado)
}

// Error implementa a interface error
func (e *ConfigError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("table: %s", e.Err.Error())
	}
	if e.Field != "" {
		return fmt.Sprintf("table: column %d (%s): %s", e.Column, e.Field, e.Err.Error())
	}
	return fmt.Sprintf("table: column %d: %s", e.Column, e.Err.Error())
}

// Unwrap retorna o erro subjacente
func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configError(err error, column int, field string) *ConfigError {
	return &ConfigError{
		Err:    err,
		Column: column,
		Field:  field,
	}
}
