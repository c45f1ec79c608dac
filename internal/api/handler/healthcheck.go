package handler

import (
	"net/http"
	"time"
)

// HealthcheckHandler responde liveness com a versão do snapshot vigente
func HealthcheckHandler(snapshots SnapshotVersioner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		}
		if snapshots != nil {
			body["snapshot_version"] = snapshots.Version()
		}

		writeJSON(w, http.StatusOK, body)
	})
}
