// Package storefront serves the price endpoints storefront pages call.
package storefront

import (
	"net/http"

	"github.com/angelmondragon/storefront-pricing/api/responses"
	"github.com/angelmondragon/storefront-pricing/api/validators"
	"github.com/angelmondragon/storefront-pricing/internal/minimalprice"
	shop "github.com/angelmondragon/storefront-pricing/internal/storefront"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/angelmondragon/storefront-pricing/pkg/logger"
)

// MinimalPrices answers the listing refresh: minimal price data for a batch
// of templates. Unpublished and unknown templates are left out.
func MinimalPrices(svc minimalprice.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopper, ok := shopperFrom(w, r, svc, logg)
		if !ok {
			return
		}

		var payload minimalPriceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		prices, err := svc.MinimalPrices(r.Context(), shopper, payload.ProductTemplateIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]minimalPriceResponse, 0, len(prices))
		for _, tp := range prices {
			out = append(out, newMinimalPriceResponse(tp))
		}
		responses.WriteSuccess(w, out)
	}
}

// PricelistAttributes answers the quantity price scale of one variant.
func PricelistAttributes(svc minimalprice.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopper, ok := shopperFrom(w, r, svc, logg)
		if !ok {
			return
		}

		var payload pricelistAttributesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		scale, err := svc.QuantityScale(r.Context(), shopper, payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newScaleResponse(scale))
	}
}

// DefaultCombination returns the combination preselected on a product page.
func DefaultCombination(svc minimalprice.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopper, ok := shopperFrom(w, r, svc, logg)
		if !ok {
			return
		}

		templateID, err := validators.ParseUUIDParam(r, "templateId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		combination, err := svc.DefaultCombination(r.Context(), shopper, templateID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCombinationResponse(combination))
	}
}

// DisplayPrice returns the rendered price markup of a template tile.
func DisplayPrice(svc minimalprice.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopper, ok := shopperFrom(w, r, svc, logg)
		if !ok {
			return
		}

		templateID, err := validators.ParseUUIDParam(r, "templateId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := svc.DisplayPrice(r.Context(), shopper, templateID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := displayPriceResponse{
			Price:            price.Price,
			ListPrice:        price.ListPrice,
			HasDistinctPrice: price.HasDistinctPrice,
		}
		if price.MinimalPrice != nil {
			minimal, _ := price.MinimalPrice.Float64()
			out.MinimalPrice = &minimal
		}
		responses.WriteSuccess(w, out)
	}
}

func shopperFrom(w http.ResponseWriter, r *http.Request, svc minimalprice.Service, logg *logger.Logger) (shop.Shopper, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
		return shop.Shopper{}, false
	}
	shopper, ok := shop.ShopperFrom(r.Context())
	if !ok {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopping context missing"))
		return shop.Shopper{}, false
	}
	return shopper, true
}
