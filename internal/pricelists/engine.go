package pricelists

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	"github.com/angelmondragon/storefront-pricing/pkg/metrics"
	"github.com/angelmondragon/storefront-pricing/pkg/money"
)

var hundred = decimal.NewFromInt(100)

// Engine computes pricelist prices for products at a given quantity.
type Engine struct {
	loader  Loader
	metrics *metrics.PricingMetrics
	now     func() time.Time
}

// NewEngine builds a price engine reading pricelists through loader.
func NewEngine(loader Loader, m *metrics.PricingMetrics) (*Engine, error) {
	if loader == nil {
		return nil, fmt.Errorf("pricelist loader required")
	}
	return &Engine{loader: loader, metrics: m, now: time.Now}, nil
}

// ProductsPrice prices every target in pricelistID at qty, keyed by target id.
// The pricelist and every pricelist it derives prices from are loaded once.
func (e *Engine) ProductsPrice(ctx context.Context, pricelistID uuid.UUID, targets []Target, qty int) (map[uuid.UUID]decimal.Decimal, error) {
	b, err := e.load(ctx, pricelistID)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]decimal.Decimal, len(targets))
	for _, t := range targets {
		out[t.ID()] = b.price(pricelistID, t, qty, map[uuid.UUID]bool{})
	}
	if len(targets) > 0 {
		kind := "variant"
		if targets[0].IsTemplate() {
			kind = "template"
		}
		e.metrics.IncBatch(kind)
	}
	return out, nil
}

// ProductPrice prices a single target.
func (e *Engine) ProductPrice(ctx context.Context, pricelistID uuid.UUID, target Target, qty int) (decimal.Decimal, error) {
	prices, err := e.ProductsPrice(ctx, pricelistID, []Target{target}, qty)
	if err != nil {
		return decimal.Zero, err
	}
	return prices[target.ID()], nil
}

func (e *Engine) load(ctx context.Context, rootID uuid.UUID) (*book, error) {
	root, err := e.loader.FindPricelist(ctx, rootID)
	if err != nil {
		return nil, err
	}
	b := &book{
		pricelists: map[uuid.UUID]*models.Pricelist{root.ID: root},
		at:         e.now(),
		metrics:    e.metrics,
	}
	pending := basePricelistIDs(root, b.pricelists)
	for len(pending) > 0 {
		found, err := e.loader.FindPricelists(ctx, pending)
		if err != nil {
			return nil, err
		}
		var next []uuid.UUID
		for i := range found {
			pl := &found[i]
			b.pricelists[pl.ID] = pl
		}
		for _, id := range pending {
			if _, ok := b.pricelists[id]; !ok {
				// referenced but gone: remember so it is not fetched again
				b.pricelists[id] = nil
			}
		}
		for i := range found {
			next = append(next, basePricelistIDs(&found[i], b.pricelists)...)
		}
		pending = dedupe(next)
	}
	return b, nil
}

func basePricelistIDs(pl *models.Pricelist, known map[uuid.UUID]*models.Pricelist) []uuid.UUID {
	var ids []uuid.UUID
	for _, item := range pl.Items {
		if item.Base != enums.PriceBasePricelist || item.BasePricelistID == nil {
			continue
		}
		if _, ok := known[*item.BasePricelistID]; ok {
			continue
		}
		ids = append(ids, *item.BasePricelistID)
	}
	return dedupe(ids)
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// book holds the pricelists loaded for one batch.
type book struct {
	pricelists map[uuid.UUID]*models.Pricelist
	at         time.Time
	metrics    *metrics.PricingMetrics
}

// price resolves target in pricelist id. stack holds the pricelists currently
// being resolved; re-entering one of them falls back to the list price.
func (b *book) price(id uuid.UUID, t Target, qty int, stack map[uuid.UUID]bool) decimal.Decimal {
	pl := b.pricelists[id]
	if pl == nil {
		b.metrics.IncRule("list_price")
		return t.ListPrice()
	}
	if stack[id] {
		b.metrics.IncRule("cycle")
		return money.Convert(t.ListPrice(), t.Currency(), pl.Currency)
	}
	stack[id] = true
	defer delete(stack, id)

	for _, item := range filterRules(pl.Items, t, RuleFilter{}, b.at) {
		if IsApplicableFor(item, t, qty) {
			b.metrics.IncRule(item.ComputePrice.String())
			return b.compute(pl, item, t, qty, stack)
		}
	}
	b.metrics.IncRule("list_price")
	return money.Convert(t.ListPrice(), t.Currency(), pl.Currency)
}

func (b *book) compute(pl *models.Pricelist, item models.PricelistItem, t Target, qty int, stack map[uuid.UUID]bool) decimal.Decimal {
	switch item.ComputePrice {
	case enums.ComputePriceFixed:
		return item.FixedPrice
	case enums.ComputePricePercentage:
		base := b.basePrice(pl, item, t, qty, stack)
		return base.Sub(base.Mul(item.PercentPrice).Div(hundred))
	default:
		base := b.basePrice(pl, item, t, qty, stack)
		price := base.Sub(base.Mul(item.PriceDiscount).Div(hundred))
		if item.PriceRound.IsPositive() {
			price = money.Round(price, item.PriceRound)
		}
		price = price.Add(item.PriceSurcharge)
		if !item.PriceMinMargin.IsZero() {
			price = decimal.Max(price, base.Add(item.PriceMinMargin))
		}
		if !item.PriceMaxMargin.IsZero() {
			price = decimal.Min(price, base.Add(item.PriceMaxMargin))
		}
		return price
	}
}

func (b *book) basePrice(pl *models.Pricelist, item models.PricelistItem, t Target, qty int, stack map[uuid.UUID]bool) decimal.Decimal {
	switch item.Base {
	case enums.PriceBasePricelist:
		if item.BasePricelistID == nil {
			break
		}
		price := b.price(*item.BasePricelistID, t, qty, stack)
		if base := b.pricelists[*item.BasePricelistID]; base != nil {
			return money.Convert(price, base.Currency, pl.Currency)
		}
		return money.Convert(price, t.Currency(), pl.Currency)
	case enums.PriceBaseStandardPrice:
		return money.Convert(t.StandardPrice(), t.Currency(), pl.Currency)
	}
	return money.Convert(t.ListPrice(), t.Currency(), pl.Currency)
}
