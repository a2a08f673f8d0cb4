package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-pricing/api/responses"
	"github.com/angelmondragon/storefront-pricing/api/validators"
	"github.com/angelmondragon/storefront-pricing/internal/storefront"
	"github.com/angelmondragon/storefront-pricing/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/angelmondragon/storefront-pricing/pkg/i18n"
	"github.com/angelmondragon/storefront-pricing/pkg/logger"
)

const (
	websiteIDHeader   = "X-Website-Id"
	pricelistIDHeader = "X-Pricelist-Id"
)

// ShoppingContext resolves the website, requested pricelist and language of
// a storefront request and stores them on the request context.
func ShoppingContext(cfg config.StorefrontConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			rawWebsite := validators.SanitizeString(r.Header.Get(websiteIDHeader), 64)
			if rawWebsite == "" {
				rawWebsite = cfg.DefaultWebsiteID
			}
			if rawWebsite == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "website id required").WithDetails(map[string]any{"header": websiteIDHeader}))
				return
			}
			websiteID, err := uuid.Parse(rawWebsite)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid website id").WithDetails(map[string]any{"header": websiteIDHeader}))
				return
			}

			var pricelistID uuid.UUID
			if raw := validators.SanitizeString(r.Header.Get(pricelistIDHeader), 64); raw != "" {
				pricelistID, err = uuid.Parse(raw)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid pricelist id").WithDetails(map[string]any{"header": pricelistIDHeader}))
					return
				}
			}

			shopper := storefront.Shopper{
				WebsiteID:   websiteID,
				PricelistID: pricelistID,
				Language:    i18n.Resolve(validators.SanitizeString(r.Header.Get("Accept-Language"), 256), cfg.DefaultLanguage),
			}
			ctx = storefront.WithShopper(ctx, shopper)
			if logg != nil {
				ctx = logg.WithWebsiteID(ctx, websiteID.String())
				if pricelistID != uuid.Nil {
					ctx = logg.WithPricelistID(ctx, pricelistID.String())
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
