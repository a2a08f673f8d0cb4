package storefront

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-pricing/internal/minimalprice"
	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
	"github.com/angelmondragon/storefront-pricing/pkg/money"
)

type minimalPriceRequest struct {
	ProductTemplateIDs []uuid.UUID `json:"product_template_ids" validate:"required,min=1"`
}

type pricelistAttributesRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

type currencyPayload struct {
	Position string `json:"position"`
	Symbol   string `json:"symbol"`
}

func newCurrencyPayload(c *models.Currency) *currencyPayload {
	if c == nil {
		return nil
	}
	return &currencyPayload{Position: c.Position.String(), Symbol: c.Symbol}
}

type minimalPriceResponse struct {
	ID                 uuid.UUID        `json:"id"`
	DistinctPrices     bool             `json:"distinct_prices"`
	DistinctPricesTmpl bool             `json:"distinct_prices_tmpl"`
	Price              *float64         `json:"price,omitempty"`
	Currency           *currencyPayload `json:"currency,omitempty"`
}

func newMinimalPriceResponse(tp minimalprice.TemplatePrice) minimalPriceResponse {
	out := minimalPriceResponse{
		ID:                 tp.ID,
		DistinctPrices:     tp.DistinctPrices,
		DistinctPricesTmpl: tp.DistinctPricesTmpl,
	}
	if tp.Price != nil {
		price := money.Float(*tp.Price, tp.Currency)
		out.Price = &price
		out.Currency = newCurrencyPayload(tp.Currency)
	}
	return out
}

type scaleRowResponse struct {
	MinQty   int              `json:"min_qty"`
	Price    float64          `json:"price"`
	Currency *currencyPayload `json:"currency"`
}

// newScaleResponse builds the [rows, unit_name] pair storefront scripts read.
func newScaleResponse(scale *minimalprice.Scale) []any {
	rows := make([]scaleRowResponse, 0, len(scale.Rows))
	for _, row := range scale.Rows {
		rows = append(rows, scaleRowResponse{
			MinQty:   row.MinQty,
			Price:    money.Float(row.Price, row.Currency),
			Currency: newCurrencyPayload(row.Currency),
		})
	}
	return []any{rows, scale.UnitName}
}

type combinationResponse struct {
	TemplateID        uuid.UUID   `json:"template_id"`
	ProductID         *uuid.UUID  `json:"product_id"`
	AttributeValueIDs []uuid.UUID `json:"attribute_value_ids"`
}

func newCombinationResponse(c *minimalprice.DefaultCombination) combinationResponse {
	out := combinationResponse{TemplateID: c.TemplateID, AttributeValueIDs: c.AttributeValueIDs}
	if c.ProductID != uuid.Nil {
		id := c.ProductID
		out.ProductID = &id
	}
	if out.AttributeValueIDs == nil {
		out.AttributeValueIDs = []uuid.UUID{}
	}
	return out
}

type displayPriceResponse struct {
	Price            string   `json:"price"`
	ListPrice        string   `json:"list_price"`
	HasDistinctPrice bool     `json:"has_distinct_price"`
	MinimalPrice     *float64 `json:"minimal_price,omitempty"`
}
