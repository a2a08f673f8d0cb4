package pricelists

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
)

// Target is the product a price is computed for: a whole template, or one of
// its variants when Variant is set.
type Target struct {
	Template *models.ProductTemplate
	Variant  *models.ProductVariant
}

// TemplateTarget prices the template itself.
func TemplateTarget(tmpl *models.ProductTemplate) Target {
	return Target{Template: tmpl}
}

// VariantTarget prices one variant of tmpl.
func VariantTarget(tmpl *models.ProductTemplate, variant *models.ProductVariant) Target {
	return Target{Template: tmpl, Variant: variant}
}

// IsTemplate reports whether the target is a template-level price.
func (t Target) IsTemplate() bool {
	return t.Variant == nil
}

// ID is the template id for template targets and the variant id otherwise.
func (t Target) ID() uuid.UUID {
	if t.Variant != nil {
		return t.Variant.ID
	}
	if t.Template != nil {
		return t.Template.ID
	}
	return uuid.Nil
}

// ListPrice is the sales price before any pricelist rule, in the template currency.
func (t Target) ListPrice() decimal.Decimal {
	if t.Template == nil {
		return decimal.Zero
	}
	if t.Variant == nil {
		return t.Template.ListPrice
	}
	return t.Template.ListPrice.Add(t.Variant.PriceExtra())
}

// StandardPrice is the cost of the product, in the template currency.
func (t Target) StandardPrice() decimal.Decimal {
	if t.Template == nil {
		return decimal.Zero
	}
	return t.Template.StandardPrice
}

// Currency returns the currency list and standard prices are expressed in.
func (t Target) Currency() *models.Currency {
	if t.Template == nil {
		return nil
	}
	return t.Template.Currency
}

// variantIDs lists the active variants of the target's template.
func (t Target) variantIDs() map[uuid.UUID]struct{} {
	ids := map[uuid.UUID]struct{}{}
	if t.Template == nil {
		return ids
	}
	for _, v := range t.Template.ActiveVariants() {
		ids[v.ID] = struct{}{}
	}
	return ids
}

// singleVariant returns the only active variant of a template target.
func (t Target) singleVariant() (uuid.UUID, bool) {
	if t.Template == nil {
		return uuid.Nil, false
	}
	active := t.Template.ActiveVariants()
	if len(active) != 1 {
		return uuid.Nil, false
	}
	return active[0].ID, true
}
