package minimalprice

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-pricing/internal/pricelists"
	"github.com/angelmondragon/storefront-pricing/internal/pricelists/pricelisttest"
	"github.com/angelmondragon/storefront-pricing/internal/storefront"
	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
	"github.com/angelmondragon/storefront-pricing/pkg/enums"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }

func usd() *models.Currency {
	return &models.Currency{
		ID:       uuid.New(),
		Name:     "USD",
		Symbol:   "$",
		Position: enums.CurrencyPositionBefore,
		Rate:     dec("1"),
		Rounding: dec("0.01"),
	}
}

func category() *models.ProductCategory {
	cat := &models.ProductCategory{ID: uuid.New(), Name: "Test category"}
	cat.ParentPath = cat.ID.String() + "/"
	return cat
}

// templateWithVariants builds a published template with one attribute line
// and one variant per extra, each variant carrying its own value.
func templateWithVariants(cur *models.Currency, cat *models.ProductCategory, list string, extras ...string) *models.ProductTemplate {
	tmpl := &models.ProductTemplate{
		ID:          uuid.New(),
		Name:        "My product",
		ListPrice:   dec(list),
		CurrencyID:  cur.ID,
		Currency:    cur,
		CategoryID:  cat.ID,
		Category:    cat,
		IsPublished: true,
		UomName:     "Units",
	}
	line := models.AttributeLine{ID: uuid.New(), TemplateID: tmpl.ID, AttributeName: "Test"}
	for i, extra := range extras {
		value := models.AttributeValue{
			ID:         uuid.New(),
			LineID:     line.ID,
			Name:       "Test v" + string(rune('1'+i)),
			Sequence:   i + 1,
			PriceExtra: dec(extra),
		}
		line.Values = append(line.Values, value)
		tmpl.Variants = append(tmpl.Variants, models.ProductVariant{
			ID:         uuid.New(),
			TemplateID: tmpl.ID,
			Sequence:   i + 1,
			Active:     true,
			Values:     []models.AttributeValue{value},
		})
	}
	tmpl.AttributeLines = []models.AttributeLine{line}
	return tmpl
}

func pricelistOf(cur *models.Currency, items ...models.PricelistItem) models.Pricelist {
	pl := models.Pricelist{ID: uuid.New(), Name: "Test pricelist", CurrencyID: cur.ID, Currency: cur, Selectable: true}
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

func categoryBasedOn(categoryID, baseID uuid.UUID) models.PricelistItem {
	return models.PricelistItem{
		AppliedOn:       enums.AppliedOnCategory,
		CategoryID:      uuidPtr(categoryID),
		ComputePrice:    enums.ComputePriceFormula,
		Base:            enums.PriceBasePricelist,
		BasePricelistID: uuidPtr(baseID),
	}
}

func globalBasedOn(baseID uuid.UUID) models.PricelistItem {
	return models.PricelistItem{
		AppliedOn:       enums.AppliedOnGlobal,
		ComputePrice:    enums.ComputePriceFormula,
		Base:            enums.PriceBasePricelist,
		BasePricelistID: uuidPtr(baseID),
	}
}

// countingEngine records how many batched price calls were issued.
type countingEngine struct {
	*pricelists.Engine
	batches int
}

func (c *countingEngine) ProductsPrice(ctx context.Context, pricelistID uuid.UUID, targets []pricelists.Target, qty int) (map[uuid.UUID]decimal.Decimal, error) {
	c.batches++
	return c.Engine.ProductsPrice(ctx, pricelistID, targets, qty)
}

type fakeWebsites map[uuid.UUID]*models.Website

func (f fakeWebsites) FindWebsite(_ context.Context, id uuid.UUID) (*models.Website, error) {
	site, ok := f[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return site, nil
}

type harness struct {
	loader   *pricelisttest.Loader
	engine   *countingEngine
	base     storefront.Service
	resolver *Resolver
	sites    fakeWebsites
}

func newHarness(t *testing.T, pls ...models.Pricelist) *harness {
	t.Helper()
	loader := pricelisttest.NewLoader(pls...)
	engine, err := pricelists.NewEngine(loader, nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	counting := &countingEngine{Engine: engine}
	sites := fakeWebsites{}
	base, err := storefront.NewService(sites, loader, engine)
	if err != nil {
		t.Fatalf("new storefront service: %v", err)
	}
	resolver, err := NewResolver(pricelists.NewRules(loader), counting, base, nil, nil)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	return &harness{loader: loader, engine: counting, base: base, resolver: resolver, sites: sites}
}

func (h *harness) website(pl models.Pricelist) *models.Website {
	site := &models.Website{
		ID:                       uuid.New(),
		Name:                     "Shop",
		DefaultPricelistID:       pl.ID,
		PreventZeroPriceSaleText: models.DefaultPreventZeroPriceSaleText,
	}
	h.sites[site.ID] = site
	return site
}

// scenario is a two-variant template without list price whose variant
// prices come from an auxiliary pricelist reached through a category rule.
type scenario struct {
	cur     *models.Currency
	cat     *models.ProductCategory
	tmpl    *models.ProductTemplate
	v1, v2  models.ProductVariant
	aux     models.Pricelist
	main    models.Pricelist
	harness *harness
}

func newScenario(t *testing.T, v1Price string, v1MinQty int) *scenario {
	t.Helper()
	cur := usd()
	cat := category()
	tmpl := templateWithVariants(cur, cat, "0", "0", "0")
	v1, v2 := tmpl.Variants[0], tmpl.Variants[1]
	aux := pricelistOf(cur,
		fixedVariant(v1.ID, v1Price, v1MinQty),
		fixedVariant(v2.ID, "11", 0),
		fixedTemplate(tmpl.ID, "14"),
	)
	main := pricelistOf(cur, categoryBasedOn(cat.ID, aux.ID))
	return &scenario{
		cur:     cur,
		cat:     cat,
		tmpl:    tmpl,
		v1:      v1,
		v2:      v2,
		aux:     aux,
		main:    main,
		harness: newHarness(t, aux, main),
	}
}
