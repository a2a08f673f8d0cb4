package pricelists

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
	"github.com/angelmondragon/storefront-pricing/pkg/enums"
)

// RuleFilter narrows which rules of a pricelist are considered.
type RuleFilter struct {
	// BasedOnPricelist keeps only formula rules whose base is another pricelist.
	BasedOnPricelist bool
	// HasMinQty keeps only rules with a non-zero minimum quantity.
	HasMinQty bool
}

func (f RuleFilter) match(item models.PricelistItem) bool {
	if f.BasedOnPricelist && !item.BasedOnPricelist() {
		return false
	}
	if f.HasMinQty && item.MinQuantity == 0 {
		return false
	}
	return true
}

// Loader fetches pricelists with their items and currency preloaded.
type Loader interface {
	FindPricelist(ctx context.Context, id uuid.UUID) (*models.Pricelist, error)
	FindPricelists(ctx context.Context, ids []uuid.UUID) ([]models.Pricelist, error)
}

// Rules answers rule lookups scoped to a product.
type Rules struct {
	loader Loader
	now    func() time.Time
}

// NewRules builds a rule lookup backed by loader.
func NewRules(loader Loader) *Rules {
	return &Rules{loader: loader, now: time.Now}
}

// ApplicableRules returns the rules of pricelistID that may apply to target,
// ignoring quantity, in evaluation order.
func (r *Rules) ApplicableRules(ctx context.Context, pricelistID uuid.UUID, target Target, filter RuleFilter) ([]models.PricelistItem, error) {
	pl, err := r.loader.FindPricelist(ctx, pricelistID)
	if err != nil {
		return nil, err
	}
	return filterRules(pl.Items, target, filter, r.now()), nil
}

// VariantItems returns the variant-scoped rules of the given pricelists that
// target one of variantIDs. Pricelists are visited in the order given.
func (r *Rules) VariantItems(ctx context.Context, pricelistIDs []uuid.UUID, variantIDs []uuid.UUID) ([]models.PricelistItem, error) {
	if len(pricelistIDs) == 0 || len(variantIDs) == 0 {
		return nil, nil
	}
	pls, err := r.loader.FindPricelists(ctx, pricelistIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Pricelist, len(pls))
	for _, pl := range pls {
		byID[pl.ID] = pl
	}
	wanted := make(map[uuid.UUID]struct{}, len(variantIDs))
	for _, id := range variantIDs {
		wanted[id] = struct{}{}
	}

	var out []models.PricelistItem
	for _, id := range pricelistIDs {
		pl, ok := byID[id]
		if !ok {
			continue
		}
		items := append([]models.PricelistItem(nil), pl.Items...)
		SortRules(items)
		for _, item := range items {
			if item.AppliedOn != enums.AppliedOnVariant || item.VariantID == nil {
				continue
			}
			if _, ok := wanted[*item.VariantID]; ok {
				out = append(out, item)
			}
		}
	}
	return out, nil
}

func filterRules(items []models.PricelistItem, target Target, filter RuleFilter, at time.Time) []models.PricelistItem {
	out := make([]models.PricelistItem, 0, len(items))
	for _, item := range items {
		if !filter.match(item) || !ActiveAt(item, at) || !InScope(item, target) {
			continue
		}
		out = append(out, item)
	}
	SortRules(out)
	return out
}

// SortRules orders rules the way they are evaluated: most specific scope
// first, then higher minimum quantity, then sequence.
func SortRules(items []models.PricelistItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if ra, rb := a.AppliedOn.Rank(), b.AppliedOn.Rank(); ra != rb {
			return ra < rb
		}
		if a.MinQuantity != b.MinQuantity {
			return a.MinQuantity > b.MinQuantity
		}
		return a.Sequence < b.Sequence
	})
}

// ActiveAt reports whether the rule's validity window contains at.
func ActiveAt(item models.PricelistItem, at time.Time) bool {
	if item.DateStart != nil && at.Before(*item.DateStart) {
		return false
	}
	if item.DateEnd != nil && at.After(*item.DateEnd) {
		return false
	}
	return true
}

// InScope reports whether the rule targets the product at all. For a template
// target, rules on any of its variants are in scope.
func InScope(item models.PricelistItem, target Target) bool {
	if target.Template == nil {
		return false
	}
	switch item.AppliedOn {
	case enums.AppliedOnGlobal:
		return true
	case enums.AppliedOnCategory:
		return inCategory(item, target)
	case enums.AppliedOnTemplate:
		return item.TemplateID != nil && *item.TemplateID == target.Template.ID
	case enums.AppliedOnVariant:
		if item.VariantID == nil {
			return false
		}
		if target.Variant != nil {
			return *item.VariantID == target.Variant.ID
		}
		_, ok := target.variantIDs()[*item.VariantID]
		return ok
	default:
		return false
	}
}

// IsApplicableFor reports whether the rule prices target at qty. A variant
// rule applies to a template target only when that variant is the template's
// single active variant.
func IsApplicableFor(item models.PricelistItem, target Target, qty int) bool {
	if target.Template == nil {
		return false
	}
	if item.MinQuantity > 0 && qty < item.MinQuantity {
		return false
	}
	switch item.AppliedOn {
	case enums.AppliedOnGlobal:
		return true
	case enums.AppliedOnCategory:
		return inCategory(item, target)
	case enums.AppliedOnTemplate:
		return item.TemplateID != nil && *item.TemplateID == target.Template.ID
	case enums.AppliedOnVariant:
		if item.VariantID == nil {
			return false
		}
		if target.Variant != nil {
			return *item.VariantID == target.Variant.ID
		}
		only, ok := target.singleVariant()
		return ok && only == *item.VariantID
	default:
		return false
	}
}

func inCategory(item models.PricelistItem, target Target) bool {
	if item.CategoryID == nil {
		return false
	}
	if target.Template.CategoryID == *item.CategoryID {
		return true
	}
	if target.Template.Category == nil {
		return false
	}
	return target.Template.Category.IsChildOf(*item.CategoryID)
}
