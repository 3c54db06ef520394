package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mlegrand/equilog-backend/api/controllers"
	"github.com/mlegrand/equilog-backend/api/middleware"
	"github.com/mlegrand/equilog-backend/internal/auth"
	"github.com/mlegrand/equilog-backend/internal/horses"
	"github.com/mlegrand/equilog-backend/internal/interventions"
	"github.com/mlegrand/equilog-backend/internal/movements"
	"github.com/mlegrand/equilog-backend/internal/professionals"
	"github.com/mlegrand/equilog-backend/pkg/auth/session"
	"github.com/mlegrand/equilog-backend/pkg/config"
	pkgdb "github.com/mlegrand/equilog-backend/pkg/db"
	"github.com/mlegrand/equilog-backend/pkg/enums"
	"github.com/mlegrand/equilog-backend/pkg/logger"
	"github.com/mlegrand/equilog-backend/pkg/metrics"
	"github.com/mlegrand/equilog-backend/pkg/redis"
	"github.com/mlegrand/equilog-backend/pkg/storage/gcs"
)

// Services bundles the domain services the router exposes over HTTP.
type Services struct {
	Auth          auth.Service
	Horses        horses.Service
	Movements     movements.Service
	Professionals professionals.Service
	Interventions interventions.Service
}

// Dependencies carries the infrastructure handles the router uses directly:
// readiness pingers, the rate limiter store, the session verifier, and the
// metrics registry. Registry may be nil, in which case a private one is built.
type Dependencies struct {
	DB       pkgdb.Pinger
	Redis    *redis.Client
	Storage  gcs.Pinger
	Sessions session.AccessSessionChecker
	Registry *prometheus.Registry
}

// NewRouter assembles the full HTTP surface: health probes, /metrics, and the
// versioned API under /api/v1.
func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies, svcs Services) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg),
	)

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	httpMetrics := metrics.NewHTTPMetrics(registry)
	r.Use(httpMetrics.Middleware)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)
	var limiter middleware.RateLimiterStore
	if deps.Redis != nil {
		limiter = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis, deps.Storage))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, limiter, logg)).
			Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).
			Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(svcs.Auth, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Route("/horses", func(r chi.Router) {
			r.Post("/", controllers.HorseCreate(svcs.Horses, logg))
			r.Get("/", controllers.HorseList(svcs.Horses, logg))
			r.Route("/{horseId}", func(r chi.Router) {
				r.Get("/", controllers.HorseDetail(svcs.Horses, logg))
				r.Patch("/", controllers.HorseUpdate(svcs.Horses, logg))
				r.Delete("/", controllers.HorseDelete(svcs.Horses, logg))
				r.Post("/photo", controllers.HorsePhotoUpload(svcs.Horses, cfg.Photos.MaxUploadMB, logg))

				r.Post("/movements", controllers.MovementCreate(svcs.Movements, logg))
				r.Get("/movements", controllers.MovementList(svcs.Movements, logg))

				r.Post("/interventions", controllers.InterventionCreate(svcs.Interventions, logg))
				r.Get("/interventions", controllers.InterventionList(svcs.Interventions, logg))
			})
		})

		r.Route("/professionals", func(r chi.Router) {
			r.Post("/", controllers.ProfessionalCreate(svcs.Professionals, logg))
			r.Get("/", controllers.ProfessionalList(svcs.Professionals, logg))
			r.Get("/{professionalId}", controllers.ProfessionalDetail(svcs.Professionals, logg))
			r.Patch("/{professionalId}", controllers.ProfessionalUpdate(svcs.Professionals, logg))
			r.With(middleware.RequireRole(string(enums.UserRoleAdmin), logg)).
				Post("/{professionalId}/verify", controllers.ProfessionalVerify(svcs.Professionals, logg))
		})
	})

	return r
}
