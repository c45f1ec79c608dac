package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/traffic-manager-browser/internal/usecases/browsing"
	"github.com/vfg2006/traffic-manager-browser/pkg/apiErrors"
	"github.com/vfg2006/traffic-manager-browser/pkg/log"
)

// BrowserSessions é a parte do SessionStore usada pelos handlers
type BrowserSessions interface {
	Create(ctx context.Context) (string, *browsing.View, error)
	View(ctx context.Context, id string) (*browsing.View, error)
	Click(ctx context.Context, id string, level string, key string) (*browsing.View, error)
	ToggleSort(ctx context.Context, id string, level string) (*browsing.View, error)
	Delete(ctx context.Context, id string) error
}

type SessionResponse struct {
	ID   string         `json:"id"`
	View *browsing.View `json:"view"`
}

func CreateBrowserSession(sessions BrowserSessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, view, err := sessions.Create(r.Context())
		if err != nil {
			handleBrowsingError(w, r, err)
			return
		}

		w.Header().Set("Location", "/v1/browser/sessions/"+id)
		writeJSON(w, http.StatusCreated, SessionResponse{ID: id, View: view})
	}
}

func GetBrowserSession(sessions BrowserSessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		view, err := sessions.View(r.Context(), id)
		if err != nil {
			handleBrowsingError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, SessionResponse{ID: id, View: view})
	}
}

func DeleteBrowserSession(sessions BrowserSessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := sessions.Delete(r.Context(), id); err != nil {
			handleBrowsingError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// SelectRow trata o clique em uma linha: POST /v1/browser/sessions/:id/:level/rows/:key/select
func SelectRow(sessions BrowserSessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())
		id := params.ByName("id")

		view, err := sessions.Click(r.Context(), id, params.ByName("level"), params.ByName("key"))
		if err != nil {
			handleBrowsingError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, SessionResponse{ID: id, View: view})
	}
}

// ToggleSort inverte a ordenação de um nível: POST /v1/browser/sessions/:id/:level/sort
func ToggleSort(sessions BrowserSessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())
		id := params.ByName("id")

		view, err := sessions.ToggleSort(r.Context(), id, params.ByName("level"))
		if err != nil {
			handleBrowsingError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, SessionResponse{ID: id, View: view})
	}
}

func handleBrowsingError(w http.ResponseWriter, r *http.Request, err error) {
	var browsingErr *browsing.BrowsingError
	if !errors.As(err, &browsingErr) {
		log.ForContext(r.Context()).WithError(err).Error("Erro inesperado na navegação")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno na navegação", nil)
		return
	}

	logger := log.ForContext(r.Context()).WithError(err).WithField("session_id", browsingErr.SessionID)
	if apiErrors.StatusFor(browsingErr.Code) >= http.StatusInternalServerError {
		logger.Error("Erro na navegação")
	} else {
		logger.Debug("Requisição de navegação rejeitada")
	}

	var details any
	if browsingErr.SessionID != "" {
		details = map[string]string{"session_id": browsingErr.SessionID}
	}

	apiErrors.WriteError(w, browsingErr.Code, browsingErr.Error(), details)
}
