package minimalprice

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-pricing/internal/pricelists"
	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
)

// ScaleRow is one step of a quantity price scale.
type ScaleRow struct {
	MinQty   int
	Price    decimal.Decimal
	Currency *models.Currency
}

// PriceScale lists the quantities at which the price of variant changes under
// pricelist, together with the unit of measure name. Quantity thresholds come
// from the pricelist and from every pricelist it derives prices from.
func (r *Resolver) PriceScale(ctx context.Context, tmpl *models.ProductTemplate, variant *models.ProductVariant, pricelist *models.Pricelist) ([]ScaleRow, string, error) {
	started := time.Now()
	defer func() { r.metrics.ObserveDuration("price_scale", time.Since(started)) }()

	target := pricelists.VariantTarget(tmpl, variant)
	qtys, err := r.scaleBreakpoints(ctx, tmpl, target, pricelist.ID)
	if err != nil {
		return nil, "", err
	}

	rows := []ScaleRow{}
	last, err := r.engine.ProductPrice(ctx, pricelist.ID, target, 0)
	if err != nil {
		return nil, "", err
	}
	for _, qty := range qtys {
		price, err := r.engine.ProductPrice(ctx, pricelist.ID, target, qty)
		if err != nil {
			return nil, "", err
		}
		if price.Equal(last) {
			continue
		}
		rows = append(rows, ScaleRow{MinQty: qty, Price: price, Currency: pricelist.Currency})
		last = price
	}
	return rows, tmpl.UomName, nil
}

func (r *Resolver) scaleBreakpoints(ctx context.Context, tmpl *models.ProductTemplate, target pricelists.Target, start uuid.UUID) ([]int, error) {
	reachable, err := r.ReachableSubpricelists(ctx, tmpl, start)
	if err != nil {
		return nil, err
	}
	seen := map[int]bool{}
	var qtys []int
	for _, id := range append([]uuid.UUID{start}, reachable...) {
		items, err := r.rules.ApplicableRules(ctx, id, target, pricelists.RuleFilter{HasMinQty: true})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if seen[item.MinQuantity] || !pricelists.IsApplicableFor(item, target, item.MinQuantity) {
				continue
			}
			seen[item.MinQuantity] = true
			qtys = append(qtys, item.MinQuantity)
		}
	}
	sort.Ints(qtys)
	return qtys, nil
}
