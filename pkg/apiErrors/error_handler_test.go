package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor(ErrSessionNotFound))
	assert.Equal(t, http.StatusConflict, StatusFor(ErrLevelHidden))
	assert.Equal(t, http.StatusUnauthorized, StatusFor(ErrExpiredToken))
	assert.Equal(t, http.StatusInternalServerError, StatusFor("XYZ_999"))
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrRowNotFound, "linha não encontrada", map[string]string{"session_id": "abc"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "BRW_004", body["code"])
	assert.Equal(t, "linha não encontrada", body["message"])
	assert.Equal(t, map[string]any{"session_id": "abc"}, body["details"])
}

func TestFromError(t *testing.T) {
	assert.Equal(t, ErrInternalServer, FromError(nil, ErrDatabaseOperation).Code)

	apiErr := FromError(errors.New("timeout"), ErrDatabaseOperation)
	assert.Equal(t, ErrDatabaseOperation, apiErr.Code)
	assert.Equal(t, "timeout", apiErr.Message)
}
