package minimalprice

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-pricing/internal/pricelists"
	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
	"github.com/angelmondragon/storefront-pricing/pkg/enums"
)

// ReachableSubpricelists returns, in breadth-first order, every pricelist
// reachable from start through based-on-pricelist rules that apply to tmpl.
// start itself is never part of the result and each pricelist is visited once.
func (r *Resolver) ReachableSubpricelists(ctx context.Context, tmpl *models.ProductTemplate, start uuid.UUID) ([]uuid.UUID, error) {
	visited := map[uuid.UUID]bool{start: true}
	queue, err := r.subpricelists(ctx, tmpl, start)
	if err != nil {
		return nil, err
	}
	var out []uuid.UUID
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		out = append(out, id)

		next, err := r.subpricelists(ctx, tmpl, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		queue = append(queue, next...)
	}
	return out, nil
}

// subpricelists lists the base pricelists directly referenced by the
// based-on-pricelist rules of pricelistID that apply to tmpl.
func (r *Resolver) subpricelists(ctx context.Context, tmpl *models.ProductTemplate, pricelistID uuid.UUID) ([]uuid.UUID, error) {
	target := pricelists.TemplateTarget(tmpl)
	items, err := r.rules.ApplicableRules(ctx, pricelistID, target, pricelists.RuleFilter{BasedOnPricelist: true})
	if err != nil {
		return nil, err
	}
	seen := map[uuid.UUID]bool{}
	var out []uuid.UUID
	for _, item := range items {
		if item.BasePricelistID == nil || seen[*item.BasePricelistID] {
			continue
		}
		qty := item.MinQuantity
		if qty == 0 {
			qty = 1
		}
		variantRule := item.AppliedOn == enums.AppliedOnVariant && item.VariantID != nil && tmpl.HasVariant(*item.VariantID)
		if !pricelists.IsApplicableFor(item, target, qty) && !variantRule {
			continue
		}
		seen[*item.BasePricelistID] = true
		out = append(out, *item.BasePricelistID)
	}
	return out, nil
}

// VariantItems returns the variant-scoped rules of pricelistIDs that target a
// variant of tmpl.
func (r *Resolver) VariantItems(ctx context.Context, tmpl *models.ProductTemplate, pricelistIDs []uuid.UUID) ([]models.PricelistItem, error) {
	variants := tmpl.ActiveVariants()
	ids := make([]uuid.UUID, 0, len(variants))
	for _, v := range variants {
		ids = append(ids, v.ID)
	}
	return r.rules.VariantItems(ctx, pricelistIDs, ids)
}

// PricelistVariantItems collects the variant rules of start and of every
// pricelist reachable from it, without duplicates.
func (r *Resolver) PricelistVariantItems(ctx context.Context, tmpl *models.ProductTemplate, start uuid.UUID) ([]models.PricelistItem, error) {
	reachable, err := r.ReachableSubpricelists(ctx, tmpl, start)
	if err != nil {
		return nil, err
	}
	items, err := r.VariantItems(ctx, tmpl, append([]uuid.UUID{start}, reachable...))
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]bool, len(items))
	out := items[:0]
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	return out, nil
}
