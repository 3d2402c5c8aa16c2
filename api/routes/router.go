package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockmasterhq/stockmaster-backend/api/controllers"
	"github.com/stockmasterhq/stockmaster-backend/api/middleware"
	"github.com/stockmasterhq/stockmaster-backend/internal/auth"
	"github.com/stockmasterhq/stockmaster-backend/internal/catalog"
	"github.com/stockmasterhq/stockmaster-backend/internal/operations"
	"github.com/stockmasterhq/stockmaster-backend/pkg/auth/session"
	"github.com/stockmasterhq/stockmaster-backend/pkg/config"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db"
	"github.com/stockmasterhq/stockmaster-backend/pkg/logger"
	"github.com/stockmasterhq/stockmaster-backend/pkg/metrics"
	"github.com/stockmasterhq/stockmaster-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config     *config.Config
	Logger     *logger.Logger
	DB         db.Pinger
	Redis      *redis.Client
	Metrics    *metrics.OperationMetrics
	Gatherer   prometheus.Gatherer
	Sessions   session.AccessSessionChecker
	Auth       auth.Service
	Catalog    catalog.Service
	Operations operations.Service
}

// NewRouter assembles the API routes. Catalog and operations endpoints keep
// the original open access policy; only /auth/me requires a bearer token.
func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger, p.Metrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		p.Config.AuthRateLimit.LoginWindow,
		p.Config.AuthRateLimit.LoginIPLimit,
		p.Config.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		p.Config.AuthRateLimit.SignupWindow,
		p.Config.AuthRateLimit.SignupIPLimit,
		p.Config.AuthRateLimit.SignupEmailLimit,
	)
	otpPolicy := middleware.NewAuthRateLimitPolicy(
		"otp",
		p.Config.AuthRateLimit.OTPWindow,
		p.Config.AuthRateLimit.OTPIPLimit,
		p.Config.AuthRateLimit.OTPEmailLimit,
	)

	var redisPinger redis.Pinger
	if p.Redis != nil {
		redisPinger = p.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Logger, p.DB, redisPinger))
	})

	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/auth", func(r chi.Router) {
		r.With(rateLimit(signupPolicy, p)).Post("/signup", controllers.AuthSignup(p.Auth, p.Logger))
		r.With(rateLimit(loginPolicy, p)).Post("/login", controllers.AuthLogin(p.Auth, p.Logger))
		r.With(rateLimit(otpPolicy, p)).Post("/forgot-password", controllers.AuthForgotPassword(p.Auth, p.Logger))
		r.Post("/reset-password", controllers.AuthResetPassword(p.Auth, p.Logger))
		r.With(middleware.Auth(p.Config.JWT, p.Sessions, p.Logger)).Get("/me", controllers.AuthMe(p.Auth, p.Logger))
	})

	r.Route("/products", func(r chi.Router) {
		r.Post("/", controllers.CreateProduct(p.Catalog, p.Logger))
		r.Get("/", controllers.ListProducts(p.Catalog, p.Logger))
		r.Get("/{productId}", controllers.GetProduct(p.Catalog, p.Logger))
	})

	r.Route("/warehouses", func(r chi.Router) {
		r.Post("/", controllers.CreateWarehouse(p.Catalog, p.Logger))
		r.Get("/", controllers.ListWarehouses(p.Catalog, p.Logger))
		r.Get("/inventory", controllers.WarehouseInventory(p.Catalog, p.Logger))
		r.Get("/{warehouseId}/items", controllers.WarehouseItems(p.Catalog, p.Logger))
	})

	r.Route("/operations", func(r chi.Router) {
		r.Post("/receipts/", controllers.CreateReceipt(p.Operations, p.Logger))
		r.Post("/deliveries/", controllers.CreateDelivery(p.Operations, p.Logger))
		r.Post("/transfers/", controllers.CreateTransfer(p.Operations, p.Logger))
		r.Post("/adjustments/", controllers.CreateAdjustment(p.Operations, p.Logger))
		r.Get("/recent/", controllers.RecentOperations(p.Operations, p.Logger))
		r.Patch("/{transactionId}/status", controllers.UpdateOperationStatus(p.Operations, p.Logger))
	})

	return r
}

// rateLimit skips throttling entirely when redis is not wired, so local runs
// and tests do not need a live instance.
func rateLimit(policy middleware.AuthRateLimitPolicy, p RouterParams) func(http.Handler) http.Handler {
	if p.Redis == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return middleware.AuthRateLimit(policy, p.Redis, p.Logger)
}
