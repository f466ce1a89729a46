package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	carthandler "github.com/rohanbadgujar20011/food-delivery-app/internal/cart/handler/http"
	checkouthandler "github.com/rohanbadgujar20011/food-delivery-app/internal/checkout/handler/http"
	"github.com/rohanbadgujar20011/food-delivery-app/internal/config"
	menuhandler "github.com/rohanbadgujar20011/food-delivery-app/internal/menu/handler/http"
	orderhandler "github.com/rohanbadgujar20011/food-delivery-app/internal/order/handler/http"
	paymenthandler "github.com/rohanbadgujar20011/food-delivery-app/internal/payment/handler/http"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/health"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/middleware"
)

type routerDeps struct {
	cfg             *config.Config
	logger          *slog.Logger
	health          *health.Handler
	cartHandler     *carthandler.CartHandler
	menuHandler     *menuhandler.MenuHandler
	orderHandler    *orderhandler.OrderHandler
	paymentHandler  *paymenthandler.PaymentHandler
	checkoutHandler *checkouthandler.CheckoutHandler
}

// newRouter creates the chi router with all API routes registered.
func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = deps.cfg.CORSAllowedOrigins

	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.RateLimit(deps.cfg.RateLimitRPS, deps.cfg.RateLimitBurst, deps.logger))
	r.Use(middleware.Recovery(deps.logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(deps.logger))
	r.Use(middleware.PrometheusMetrics("food-delivery"))
	if deps.cfg.TracingEnabled {
		r.Use(middleware.Tracing("food-delivery"))
	}
	r.Use(middleware.RequestLogger(deps.logger))

	r.Get("/health/live", deps.health.LivenessHandler())
	r.Get("/health/ready", deps.health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	r.Route("/api/v1/cart", deps.cartHandler.Routes)
	r.Route("/api/v1/menu", deps.menuHandler.Routes)
	r.Route("/api/v1/orders", deps.orderHandler.Routes)
	r.Route("/api/v1/payments", deps.paymentHandler.Routes)
	r.Route("/api/v1/checkout", deps.checkoutHandler.Routes)

	return r
}
