package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-manager-browser/internal/api/handler/router"
	"github.com/vfg2006/traffic-manager-browser/internal/usecases/authenticating"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SnapshotVersioner expõe a versão do snapshot vigente
type SnapshotVersioner interface {
	Version() int64
}

func Healthcheck(snapshots SnapshotVersioner) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(snapshots),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/me",
			Method:  http.MethodGet,
			Handler: GetMe(),
		},
	}
}

func Browser(sessions BrowserSessions) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/browser/sessions",
			Method:  http.MethodPost,
			Handler: CreateBrowserSession(sessions),
		},
		{
			Path:    "/v1/browser/sessions/:id",
			Method:  http.MethodGet,
			Handler: GetBrowserSession(sessions),
		},
		{
			Path:    "/v1/browser/sessions/:id",
			Method:  http.MethodDelete,
			Handler: DeleteBrowserSession(sessions),
		},
		{
			Path:    "/v1/browser/sessions/:id/:level/rows/:key/select",
			Method:  http.MethodPost,
			Handler: SelectRow(sessions),
		},
		{
			Path:    "/v1/browser/sessions/:id/:level/sort",
			Method:  http.MethodPost,
			Handler: ToggleSort(sessions),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Warn("Erro ao escrever resposta")
	}
}
