package minimalprice

import (
	"context"

	"github.com/angelmondragon/storefront-pricing/internal/storefront"
	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
)

// FirstPossibleCombination returns the attribute values preselected on the
// product page. When the website is known and the template has several
// variants, the combination of the cheapest variant is chosen instead of the
// first value of every line.
func (r *Resolver) FirstPossibleCombination(ctx context.Context, tmpl *models.ProductTemplate, site *models.Website, pricelist *models.Pricelist) ([]models.AttributeValue, error) {
	base := storefront.FirstPossibleCombination(tmpl)
	if site == nil || pricelist == nil || tmpl.VariantCount() <= 1 {
		return base, nil
	}

	info, err := r.CheapestInfo(ctx, []*models.ProductTemplate{tmpl}, pricelist)
	if err != nil {
		return nil, err
	}
	variant, ok := tmpl.Variant(info[tmpl.ID].ProductID)
	if !ok {
		return base, nil
	}
	return combinationOf(tmpl, variant), nil
}

// combinationOf lists, line by line, the value variant carries on each
// attribute line, or the line's first value when it carries none.
func combinationOf(tmpl *models.ProductTemplate, variant models.ProductVariant) []models.AttributeValue {
	out := make([]models.AttributeValue, 0, len(tmpl.AttributeLines))
	for _, line := range tmpl.AttributeLines {
		picked := false
		for _, value := range line.Values {
			if variant.HasValue(value.ID) {
				out = append(out, value)
				picked = true
				break
			}
		}
		if !picked && len(line.Values) > 0 {
			out = append(out, line.Values[0])
		}
	}
	return out
}
