package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/farhxn/foodcourt-backend/api/routes"
	"github.com/farhxn/foodcourt-backend/internal/auth"
	"github.com/farhxn/foodcourt-backend/internal/cart"
	"github.com/farhxn/foodcourt-backend/internal/checkout"
	"github.com/farhxn/foodcourt-backend/internal/menu"
	"github.com/farhxn/foodcourt-backend/internal/payments"
	"github.com/farhxn/foodcourt-backend/internal/users"
	"github.com/farhxn/foodcourt-backend/pkg/auth/session"
	"github.com/farhxn/foodcourt-backend/pkg/config"
	"github.com/farhxn/foodcourt-backend/pkg/db"
	"github.com/farhxn/foodcourt-backend/pkg/logger"
	"github.com/farhxn/foodcourt-backend/pkg/metrics"
	"github.com/farhxn/foodcourt-backend/pkg/migrate"
	pkgredis "github.com/farhxn/foodcourt-backend/pkg/redis"
	pkgstripe "github.com/farhxn/foodcourt-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := pkgredis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		TxRunner:       dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	menuService := menu.NewService(menu.NewRepository(dbClient.DB()))

	stripeClient, err := pkgstripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap stripe", err)
		os.Exit(1)
	}

	paymentsService, err := payments.NewService(payments.NewStripeIntentAPI(stripeClient), cfg.Stripe.APIVersion, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	intentClient, err := buildIntentClient(cfg, paymentsService)
	if err != nil {
		logg.Error(context.Background(), "failed to build intent client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	carts := cart.NewRegistry()
	checkoutManager, err := checkout.NewManager(carts, intentClient, func() (checkout.PaymentSheet, error) {
		return checkout.NewStripeSheet(checkout.NewStripeConfirmAPI(stripeClient), cfg.Checkout.SheetPaymentMethod)
	}, checkout.Config{
		DeliveryFee:         cfg.Checkout.DeliveryFee,
		MerchantDisplayName: cfg.Checkout.MerchantDisplayName,
		DefaultBillingName:  cfg.Checkout.DefaultBillingName,
	}, logg, checkoutMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout manager", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			Database:        dbClient,
			Redis:           redisClient,
			SessionManager:  sessionManager,
			AuthService:     authService,
			RegisterService: registerService,
			MenuService:     menuService,
			Carts:           carts,
			CheckoutManager: checkoutManager,
			PaymentsService: paymentsService,
			Metrics:         registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func buildIntentClient(cfg *config.Config, svc payments.Service) (checkout.IntentClient, error) {
	if url := cfg.Checkout.IntentFunctionURL; url != "" {
		return payments.NewHTTPClient(url, payments.WithCurrency(cfg.Checkout.Currency))
	}
	return payments.NewLocalClient(svc, cfg.Checkout.Currency)
}
