package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-pricing/api/controllers"
	storefrontcontrollers "github.com/angelmondragon/storefront-pricing/api/controllers/storefront"
	"github.com/angelmondragon/storefront-pricing/api/middleware"
	"github.com/angelmondragon/storefront-pricing/internal/minimalprice"
	"github.com/angelmondragon/storefront-pricing/pkg/config"
	"github.com/angelmondragon/storefront-pricing/pkg/db"
	"github.com/angelmondragon/storefront-pricing/pkg/logger"
	"github.com/angelmondragon/storefront-pricing/pkg/redis"
)

// NewRouter wires the storefront pricing endpoints. redisClient may be nil
// when no redis endpoint is configured; the public rate limit is then off.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	pricingService minimalprice.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.Storefront.CORSOrigins),
	)

	var redisP redis.Pinger
	if redisClient != nil {
		redisP = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/api/public/ping", controllers.PublicPing())

	r.Group(func(r chi.Router) {
		if cfg.FeatureFlags.PublicRateLimit && redisClient != nil {
			policy := middleware.NewRateLimitPolicy("storefront", cfg.RateLimit.Window, cfg.RateLimit.Limit)
			r.Use(middleware.PublicRateLimit(policy, redisClient, logg))
		}
		r.Use(middleware.ShoppingContext(cfg.Storefront, logg))

		r.Route("/sale", func(r chi.Router) {
			r.Post("/get_combination_info_minimal_price", storefrontcontrollers.MinimalPrices(pricingService, logg))
			r.Post("/get_combination_info_pricelist_atributes", storefrontcontrollers.PricelistAttributes(pricingService, logg))
		})

		r.Route("/api/public/v1/templates/{templateId}", func(r chi.Router) {
			r.Get("/combination", storefrontcontrollers.DefaultCombination(pricingService, logg))
			r.Get("/price", storefrontcontrollers.DisplayPrice(pricingService, logg))
		})
	})

	return r
}
