package storefront

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
)

// CombinationRequest asks for the price data of a template, or of one of its
// variants when ProductID is set.
type CombinationRequest struct {
	Template     *models.ProductTemplate
	ProductID    uuid.UUID
	AddQty       int
	Pricelist    *models.Pricelist
	Website      *models.Website
	OnlyTemplate bool
}

func (r CombinationRequest) qty() int {
	if r.AddQty <= 0 {
		return 1
	}
	return r.AddQty
}

// CombinationInfo is the price data shown for a product page or listing tile.
type CombinationInfo struct {
	TemplateID           uuid.UUID
	ProductID            uuid.UUID
	AddQty               int
	Price                decimal.Decimal
	ListPrice            decimal.Decimal
	HasDiscountedPrice   bool
	Currency             *models.Currency
	PreventZeroPriceSale bool

	// Set by the minimal price composer.
	HasDistinctPrice bool
	MinimalPrice     *decimal.Decimal
}

// FirstPossibleCombination picks the first value of every attribute line, in
// line order.
func FirstPossibleCombination(tmpl *models.ProductTemplate) []models.AttributeValue {
	if tmpl == nil {
		return nil
	}
	out := make([]models.AttributeValue, 0, len(tmpl.AttributeLines))
	for _, line := range tmpl.AttributeLines {
		if len(line.Values) == 0 {
			continue
		}
		out = append(out, line.Values[0])
	}
	return out
}

// VariantForCombination returns the active variant carrying every value of
// combination, falling back to the first active variant.
func VariantForCombination(tmpl *models.ProductTemplate, combination []models.AttributeValue) (*models.ProductVariant, bool) {
	if tmpl == nil {
		return nil, false
	}
	active := tmpl.ActiveVariants()
	if len(active) == 0 {
		return nil, false
	}
	for i := range active {
		matches := true
		for _, value := range combination {
			if !active[i].HasValue(value.ID) {
				matches = false
				break
			}
		}
		if matches {
			return &active[i], true
		}
	}
	return &active[0], true
}
