package minimalprice

import (
	"context"
	"html"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/angelmondragon/storefront-pricing/internal/storefront"
	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
	"github.com/angelmondragon/storefront-pricing/pkg/i18n"
	"github.com/angelmondragon/storefront-pricing/pkg/money"
)

// CombinationInfo returns the base combination info for req. At template
// granularity on a known website it also reports whether variants are priced
// differently and the cheapest price a shopper can reach.
func (r *Resolver) CombinationInfo(ctx context.Context, req storefront.CombinationRequest) (*storefront.CombinationInfo, error) {
	info, err := r.base.CombinationInfo(ctx, req)
	if err != nil {
		return nil, err
	}
	if !req.OnlyTemplate || req.Website == nil {
		return info, nil
	}

	cheapest, err := r.CheapestInfo(ctx, []*models.ProductTemplate{req.Template}, req.Pricelist)
	if err != nil {
		return nil, err
	}
	res := cheapest[req.Template.ID]
	info.HasDistinctPrice = res.HasDistinctPrice
	if res.ProductID == uuid.Nil || !(res.HasDistinctPrice || res.HasDistinctPriceFromTemplate) {
		return info, nil
	}

	winner, err := r.base.CombinationInfo(ctx, storefront.CombinationRequest{
		Template:  req.Template,
		ProductID: res.ProductID,
		AddQty:    res.AddQty,
		Pricelist: req.Pricelist,
		Website:   req.Website,
	})
	if err != nil {
		return nil, err
	}
	minimal := winner.Price
	info.MinimalPrice = &minimal
	return info, nil
}

// RenderedPrices is the markup shown on a listing tile.
type RenderedPrices struct {
	Price     string
	ListPrice string
}

// RenderPrices renders the price markup of info. The zero price text of the
// website always wins; otherwise the minimal price replaces the price when
// known, prefixed with a localized "From" label when variants differ.
func RenderPrices(info *storefront.CombinationInfo, site *models.Website, lang language.Tag) RenderedPrices {
	var out RenderedPrices
	if info == nil {
		return out
	}
	if info.HasDiscountedPrice {
		out.ListPrice = money.Monetary(info.ListPrice, info.Currency, lang)
	}
	if info.PreventZeroPriceSale {
		text := models.DefaultPreventZeroPriceSaleText
		if site != nil && site.PreventZeroPriceSaleText != "" {
			text = site.PreventZeroPriceSaleText
		}
		out.Price = html.EscapeString(text)
		return out
	}

	out.Price = money.Monetary(info.Price, info.Currency, lang)
	if info.MinimalPrice != nil && !info.MinimalPrice.IsZero() {
		out.Price = money.Monetary(*info.MinimalPrice, info.Currency, lang)
	}
	if info.HasDistinctPrice {
		out.Price = "<span>" + html.EscapeString(i18n.From(lang)) + "</span> " + out.Price
	}
	return out
}
