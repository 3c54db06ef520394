package controllers

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mlegrand/equilog-backend/api/responses"
	"github.com/mlegrand/equilog-backend/pkg/config"
	pkgdb "github.com/mlegrand/equilog-backend/pkg/db"
	pkgerrors "github.com/mlegrand/equilog-backend/pkg/errors"
	"github.com/mlegrand/equilog-backend/pkg/logger"
	"github.com/mlegrand/equilog-backend/pkg/redis"
	"github.com/mlegrand/equilog-backend/pkg/storage/gcs"
)

const readinessTimeout = 5 * time.Second

// HealthLive reports process liveness only.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Equilog-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the backing services concurrently and fails readiness
// when any of them is unreachable.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP pkgdb.Pinger, redisP redis.Pinger, storageP gcs.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Equilog-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		group, ctx := errgroup.WithContext(ctx)
		checks := map[string]func(context.Context) error{}
		if dbP != nil {
			checks["db"] = dbP.Ping
		}
		if redisP != nil {
			checks["redis"] = redisP.Ping
		}
		if storageP != nil {
			checks["storage"] = storageP.Ping
		}

		for name, ping := range checks {
			name, ping := name, ping
			group.Go(func() error {
				if err := ping(ctx); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unreachable")
				}
				return nil
			})
		}

		if err := group.Wait(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
