package minimalprice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-pricing/internal/pricelists"
	"github.com/angelmondragon/storefront-pricing/internal/storefront"
	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
	"github.com/angelmondragon/storefront-pricing/pkg/logger"
	"github.com/angelmondragon/storefront-pricing/pkg/metrics"
	"github.com/angelmondragon/storefront-pricing/pkg/money"
)

// SentinelQty stands in for an unbounded order quantity: large enough that no
// realistic minimum-quantity threshold exceeds it. It doubles as the initial
// running minimum price.
const SentinelQty = 99999999

var (
	sentinelPrice = decimal.NewFromInt(SentinelQty)
	breakpoints   = []int{1, SentinelQty}
)

type ruleFinder interface {
	ApplicableRules(ctx context.Context, pricelistID uuid.UUID, target pricelists.Target, filter pricelists.RuleFilter) ([]models.PricelistItem, error)
	VariantItems(ctx context.Context, pricelistIDs []uuid.UUID, variantIDs []uuid.UUID) ([]models.PricelistItem, error)
}

type priceEngine interface {
	ProductsPrice(ctx context.Context, pricelistID uuid.UUID, targets []pricelists.Target, qty int) (map[uuid.UUID]decimal.Decimal, error)
	ProductPrice(ctx context.Context, pricelistID uuid.UUID, target pricelists.Target, qty int) (decimal.Decimal, error)
}

type combinationInfoer interface {
	CombinationInfo(ctx context.Context, req storefront.CombinationRequest) (*storefront.CombinationInfo, error)
}

// Result is the outcome of resolving one template.
type Result struct {
	// ProductID is the cheapest variant, uuid.Nil when nothing was priced.
	ProductID uuid.UUID
	// AddQty is the quantity at which ProductID reaches its price: 1 or SentinelQty.
	AddQty                       int
	HasDistinctPrice             bool
	HasDistinctPriceFromTemplate bool
	TemplatePriceIsZero          bool
}

// Resolver finds the cheapest variant of templates under a pricelist.
type Resolver struct {
	rules   ruleFinder
	engine  priceEngine
	base    combinationInfoer
	metrics *metrics.PricingMetrics
	logg    *logger.Logger
}

// NewResolver wires a resolver. metrics and logg may be nil.
func NewResolver(rules ruleFinder, engine priceEngine, base combinationInfoer, m *metrics.PricingMetrics, logg *logger.Logger) (*Resolver, error) {
	if rules == nil {
		return nil, fmt.Errorf("rule finder required")
	}
	if engine == nil {
		return nil, fmt.Errorf("price engine required")
	}
	if base == nil {
		return nil, fmt.Errorf("combination info service required")
	}
	return &Resolver{rules: rules, engine: engine, base: base, metrics: m, logg: logg}, nil
}

// CheapestInfo resolves every template of the batch under pricelist. Prices
// are computed with one engine call per quantity breakpoint for the
// templates and one per breakpoint for all candidates together.
func (r *Resolver) CheapestInfo(ctx context.Context, templates []*models.ProductTemplate, pricelist *models.Pricelist) (map[uuid.UUID]Result, error) {
	started := time.Now()
	defer func() { r.metrics.ObserveDuration("cheapest_info", time.Since(started)) }()

	info := make(map[uuid.UUID]Result, len(templates))
	if len(templates) == 0 {
		return info, nil
	}

	candidates := make(map[uuid.UUID][]models.ProductVariant, len(templates))
	tmplTargets := make([]pricelists.Target, 0, len(templates))
	var variantTargets []pricelists.Target
	queued := map[uuid.UUID]bool{}
	for _, tmpl := range templates {
		items, err := r.PricelistVariantItems(ctx, tmpl, pricelist.ID)
		if err != nil {
			return nil, err
		}
		cands := BuildCandidates(tmpl, items)
		candidates[tmpl.ID] = cands
		r.metrics.ObserveCandidates(len(cands))

		tmplTargets = append(tmplTargets, pricelists.TemplateTarget(tmpl))
		for i := range cands {
			if queued[cands[i].ID] {
				continue
			}
			queued[cands[i].ID] = true
			variantTargets = append(variantTargets, pricelists.VariantTarget(tmpl, &cands[i]))
		}
	}

	tmplPrices := make(map[int]map[uuid.UUID]decimal.Decimal, len(breakpoints))
	variantPrices := make(map[int]map[uuid.UUID]decimal.Decimal, len(breakpoints))
	for _, qty := range breakpoints {
		prices, err := r.engine.ProductsPrice(ctx, pricelist.ID, tmplTargets, qty)
		if err != nil {
			return nil, err
		}
		tmplPrices[qty] = prices
		prices, err = r.engine.ProductsPrice(ctx, pricelist.ID, variantTargets, qty)
		if err != nil {
			return nil, err
		}
		variantPrices[qty] = prices
	}

	for _, tmpl := range templates {
		tmplPrice := decimal.Min(
			priceOr(tmplPrices[1], tmpl.ID, sentinelPrice),
			priceOr(tmplPrices[SentinelQty], tmpl.ID, sentinelPrice),
		)
		res := evaluate(candidates[tmpl.ID], variantPrices, tmplPrice)
		res.TemplatePriceIsZero = money.IsZeroFor(tmplPrice, pricelist.Currency)
		info[tmpl.ID] = res

		if r.logg != nil {
			r.logg.Debug(r.logg.WithFields(ctx, map[string]any{
				"template_id":        tmpl.ID.String(),
				"pricelist_id":       pricelist.ID.String(),
				"product_id":         res.ProductID.String(),
				"add_qty":            res.AddQty,
				"distinct_price":     res.HasDistinctPrice,
				"distinct_from_tmpl": res.HasDistinctPriceFromTemplate,
			}), "minimal price resolved")
		}
	}
	r.metrics.AddTemplates(len(templates))
	return info, nil
}

// evaluate walks candidates x breakpoints in order. A price takes the minimum
// when it is strictly lower, or when no price has yet differed from the
// template price and this one does.
func evaluate(cands []models.ProductVariant, prices map[int]map[uuid.UUID]decimal.Decimal, tmplPrice decimal.Decimal) Result {
	var res Result
	minPrice := sentinelPrice
	established := false
	for _, cand := range cands {
		for _, qty := range breakpoints {
			price := priceOr(prices[qty], cand.ID, sentinelPrice)
			if established && !price.Equal(minPrice) {
				res.HasDistinctPrice = true
			}
			if price.LessThan(minPrice) || (!res.HasDistinctPriceFromTemplate && !price.Equal(tmplPrice)) {
				if !res.HasDistinctPriceFromTemplate {
					res.HasDistinctPriceFromTemplate = !price.Equal(tmplPrice)
				}
				minPrice = price
				established = !price.Equal(sentinelPrice)
				res.AddQty = qty
				res.ProductID = cand.ID
			}
		}
	}
	return res
}

func priceOr(prices map[uuid.UUID]decimal.Decimal, id uuid.UUID, fallback decimal.Decimal) decimal.Decimal {
	if price, ok := prices[id]; ok {
		return price
	}
	return fallback
}
