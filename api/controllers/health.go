package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/nishantpawar/institute-backend/api/responses"
	"github.com/nishantpawar/institute-backend/pkg/config"
	pkgerrors "github.com/nishantpawar/institute-backend/pkg/errors"
	"github.com/nishantpawar/institute-backend/pkg/logger"
)

const readyProbeTimeout = 5 * time.Second

// Pinger is the probe surface a dependency must expose to take part in
// the readiness check.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Institute-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]any{"success": true, "status": "live"})
	}
}

// HealthReady probes every hard dependency. Any failing probe fails the
// whole check.
func HealthReady(cfg *config.Config, logg *logger.Logger, probes map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Institute-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyProbeTimeout)
		defer cancel()

		status := map[string]string{}
		healthy := true
		for name, probe := range probes {
			if probe == nil {
				continue
			}
			if err := probe.Ping(ctx); err != nil {
				healthy = false
				status[name] = "down"
				if logg != nil {
					logg.Error(logg.WithField(ctx, "dependency", name), "readiness probe failed", err)
				}
				continue
			}
			status[name] = "up"
		}

		if !healthy {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(status))
			return
		}
		responses.WriteSuccess(w, map[string]any{"success": true, "status": "ready", "dependencies": status})
	}
}
