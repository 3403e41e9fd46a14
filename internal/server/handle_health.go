package server

import (
	"net/http"
)

// HealthResponse reports process liveness and store readiness.
type HealthResponse struct {
	Status     string `json:"status"`
	StoreReady bool   `json:"storeReady"`
	Time       string `json:"time"`
}

// handleHealth always answers 200: the process is alive either way, and
// storeReady tells callers whether data routes will serve yet.
func handleHealth(stores *StoreHandle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, ready := stores.Get()
		status := "ok"
		if !ready {
			status = "starting"
		}
		writeJSON(w, http.StatusOK, HealthResponse{
			Status:     status,
			StoreReady: ready,
			Time:       nowUTC(),
		})
	}
}
