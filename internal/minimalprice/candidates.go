package minimalprice

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
)

// BuildCandidates picks the variants worth pricing for tmpl: every variant a
// rule names plus one unnamed variant standing in for template and category
// rules, or a single surcharge-free variant when no rule names a variant. Every
// variant with a surcharge is always added.
func BuildCandidates(tmpl *models.ProductTemplate, variantItems []models.PricelistItem) []models.ProductVariant {
	variants := tmpl.ActiveVariants()
	var out []models.ProductVariant
	seen := map[uuid.UUID]bool{}
	add := func(v models.ProductVariant) {
		if seen[v.ID] {
			return
		}
		seen[v.ID] = true
		out = append(out, v)
	}

	if len(variantItems) > 0 {
		for _, item := range variantItems {
			if item.VariantID == nil {
				continue
			}
			if v, ok := tmpl.Variant(*item.VariantID); ok {
				add(v)
			}
		}
		for _, v := range variants {
			if !seen[v.ID] {
				add(v)
				break
			}
		}
	} else {
		for _, v := range variants {
			if v.PriceExtra().IsZero() {
				add(v)
				break
			}
		}
	}

	for _, v := range variants {
		if !v.PriceExtra().IsZero() {
			add(v)
		}
	}
	return out
}
