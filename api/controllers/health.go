package controllers

import (
	"net/http"

	"github.com/farhxn/foodcourt-backend/api/responses"
	"github.com/farhxn/foodcourt-backend/pkg/config"
	"github.com/farhxn/foodcourt-backend/pkg/db"
	pkgerrors "github.com/farhxn/foodcourt-backend/pkg/errors"
	"github.com/farhxn/foodcourt-backend/pkg/instance"
	"github.com/farhxn/foodcourt-backend/pkg/logger"
	pkgredis "github.com/farhxn/foodcourt-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Foodcourt-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live", "instance": instance.GetID()})
	}
}

// HealthReady reports readiness only when every backing dependency answers
// a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, database db.Pinger, cache pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Foodcourt-Env", cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		if database != nil {
			if err := database.Ping(r.Context()); err != nil {
				checks["database"] = "unreachable"
				healthy = false
				if logg != nil {
					logg.Error(r.Context(), "health.ready.database", err)
				}
			} else {
				checks["database"] = "ok"
			}
		}

		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				checks["redis"] = "unreachable"
				healthy = false
				if logg != nil {
					logg.Error(r.Context(), "health.ready.redis", err)
				}
			} else {
				checks["redis"] = "ok"
			}
		}

		if !healthy {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "service not ready").WithDetails(map[string]any{"checks": checks}))
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
