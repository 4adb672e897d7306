package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	applog "themeapp/internal/log"
)

type healthResponse struct {
	Status   string    `json:"status"`
	Storage  string    `json:"storage"`
	Database string    `json:"database,omitempty"`
	Time     time.Time `json:"time"`
}

// Health is a readiness handler for infrastructure health checks. It reports which
// preference storage is active and, when a database is configured, whether it
// answers a ping.
func Health(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "health check requested", "method", r.Method)
	resp := healthResponse{
		Status:  "ok",
		Storage: storageName(),
		Time:    time.Now().UTC(),
	}
	status := http.StatusOK

	if database != nil {
		resp.Database = "ok"
		sqlDB, err := database.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			applog.Error(r.Context(), "database ping failed", "error", err)
			resp.Status = "degraded"
			resp.Database = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		applog.Error(r.Context(), "failed to encode health response", "error", err)
		return
	}
	applog.Debug(r.Context(), "health check responded", "status", resp.Status)
}
