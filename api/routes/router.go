package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/farhxn/foodcourt-backend/api/controllers"
	"github.com/farhxn/foodcourt-backend/api/middleware"
	"github.com/farhxn/foodcourt-backend/internal/auth"
	"github.com/farhxn/foodcourt-backend/internal/cart"
	checkoutsvc "github.com/farhxn/foodcourt-backend/internal/checkout"
	"github.com/farhxn/foodcourt-backend/internal/menu"
	"github.com/farhxn/foodcourt-backend/internal/payments"
	"github.com/farhxn/foodcourt-backend/pkg/auth/session"
	"github.com/farhxn/foodcourt-backend/pkg/config"
	"github.com/farhxn/foodcourt-backend/pkg/db"
	"github.com/farhxn/foodcourt-backend/pkg/logger"
	pkgredis "github.com/farhxn/foodcourt-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Deps bundles everything the router needs wired in.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	Database        db.Pinger
	Redis           *pkgredis.Client
	SessionManager  sessionManager
	AuthService     auth.Service
	RegisterService auth.RegisterService
	MenuService     menu.Service
	Carts           *cart.Registry
	CheckoutManager *checkoutsvc.Manager
	PaymentsService payments.Service
	Metrics         *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	var idemStore pkgredis.IdempotencyStore
	var rateStore middleware.RateLimiterStore
	var cachePinger pkgredis.Pinger
	if deps.Redis != nil {
		idemStore = deps.Redis
		rateStore = deps.Redis
		cachePinger = deps.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

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

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Database, cachePinger))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(
			middleware.AuthRateLimit(registerPolicy, rateStore, logg),
			middleware.Idempotency(idemStore, logg),
		).Post("/register", controllers.AuthRegister(deps.RegisterService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, deps.SessionManager, logg)).Post("/logout", controllers.AuthLogout(deps.AuthService, deps.Carts, logg))
	})

	r.Route("/api/v1/menu", func(r chi.Router) {
		r.Get("/categories", controllers.MenuCategories(deps.MenuService, logg))
		r.Get("/items", controllers.MenuItems(deps.MenuService, logg))
		r.Get("/items/{itemID}", controllers.MenuItemDetail(deps.MenuService, logg))
	})

	// The storefront payment-sheet function. Method guarding happens inside
	// the controller so non-POST verbs answer 405 with the function's wire
	// shape rather than chi's default.
	r.HandleFunc("/api/v1/payments/intent", controllers.PaymentIntentCreate(deps.PaymentsService, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Get("/users/me", controllers.UsersMe(deps.AuthService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.Carts, logg))
			r.Delete("/", controllers.CartClear(deps.Carts, logg))
			r.Post("/items", controllers.CartAddItem(deps.Carts, logg))
			r.Post("/items/{lineKey}/increase", controllers.CartIncreaseItem(deps.Carts, logg))
			r.Post("/items/{lineKey}/decrease", controllers.CartDecreaseItem(deps.Carts, logg))
			r.Delete("/items/{lineKey}", controllers.CartRemoveItem(deps.Carts, logg))
		})

		r.Post("/checkout", controllers.CheckoutSubmit(deps.CheckoutManager, logg))
	})

	return r
}
