package pricelists

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
	"github.com/angelmondragon/storefront-pricing/pkg/enums"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }

func usd() *models.Currency {
	return &models.Currency{ID: uuid.New(), Name: "USD", Symbol: "$", Rate: dec("1"), Rounding: dec("0.01")}
}

// fixtureTemplate builds a published template in category cat with one
// variant per price extra.
func fixtureTemplate(cat *models.ProductCategory, cur *models.Currency, list string, extras ...string) *models.ProductTemplate {
	tmpl := &models.ProductTemplate{
		ID:         uuid.New(),
		Name:       "Shirt",
		ListPrice:  dec(list),
		CurrencyID: cur.ID,
		Currency:   cur,
		CategoryID: cat.ID,
		Category:   cat,
	}
	for _, extra := range extras {
		tmpl.Variants = append(tmpl.Variants, models.ProductVariant{
			ID:         uuid.New(),
			TemplateID: tmpl.ID,
			Active:     true,
			Values:     []models.AttributeValue{{ID: uuid.New(), PriceExtra: dec(extra)}},
		})
	}
	return tmpl
}

func fixtureCategory() *models.ProductCategory {
	cat := &models.ProductCategory{ID: uuid.New(), Name: "All"}
	cat.ParentPath = cat.ID.String() + "/"
	return cat
}

func childCategory(parent *models.ProductCategory) *models.ProductCategory {
	cat := &models.ProductCategory{ID: uuid.New(), Name: "Child", ParentID: uuidPtr(parent.ID)}
	cat.ParentPath = parent.ParentPath + cat.ID.String() + "/"
	return cat
}

func pricelist(cur *models.Currency, items ...models.PricelistItem) models.Pricelist {
	pl := models.Pricelist{ID: uuid.New(), Name: "List", CurrencyID: cur.ID, Currency: cur}
	for i := range items {
		items[i].PricelistID = pl.ID
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	pl.Items = items
	return pl
}

func fixedVariant(variantID uuid.UUID, price string, minQty int) models.PricelistItem {
	return models.PricelistItem{
		AppliedOn:    enums.AppliedOnVariant,
		VariantID:    uuidPtr(variantID),
		ComputePrice: enums.ComputePriceFixed,
		FixedPrice:   dec(price),
		MinQuantity:  minQty,
	}
}

func fixedTemplate(templateID uuid.UUID, price string) models.PricelistItem {
	return models.PricelistItem{
		AppliedOn:    enums.AppliedOnTemplate,
		TemplateID:   uuidPtr(templateID),
		ComputePrice: enums.ComputePriceFixed,
		FixedPrice:   dec(price),
	}
}

func basedOn(categoryID, baseID uuid.UUID) models.PricelistItem {
	return models.PricelistItem{
		AppliedOn:       enums.AppliedOnCategory,
		CategoryID:      uuidPtr(categoryID),
		ComputePrice:    enums.ComputePriceFormula,
		Base:            enums.PriceBasePricelist,
		BasePricelistID: uuidPtr(baseID),
	}
}
