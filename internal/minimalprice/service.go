package minimalprice

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-pricing/internal/storefront"
	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
)

type templateStore interface {
	FindTemplate(ctx context.Context, id uuid.UUID) (*models.ProductTemplate, error)
	FindPublishedTemplates(ctx context.Context, ids []uuid.UUID) ([]models.ProductTemplate, error)
	FindVariant(ctx context.Context, id uuid.UUID) (*models.ProductVariant, *models.ProductTemplate, error)
}

type shoppingContext interface {
	Website(ctx context.Context, id uuid.UUID) (*models.Website, error)
	CurrentPricelist(ctx context.Context, site *models.Website, requested uuid.UUID) (*models.Pricelist, error)
}

// TemplatePrice is the minimal price data of one listing tile.
type TemplatePrice struct {
	ID                 uuid.UUID
	DistinctPrices     bool
	DistinctPricesTmpl bool
	Price              *decimal.Decimal
	Currency           *models.Currency
}

// Scale is a quantity price scale with the unit it counts in.
type Scale struct {
	Rows     []ScaleRow
	UnitName string
}

// DefaultCombination is the combination preselected on a product page.
type DefaultCombination struct {
	TemplateID        uuid.UUID
	ProductID         uuid.UUID
	AttributeValueIDs []uuid.UUID
}

// DisplayPrice is the rendered price of a template tile.
type DisplayPrice struct {
	Price            string
	ListPrice        string
	HasDistinctPrice bool
	MinimalPrice     *decimal.Decimal
}

// Service answers the storefront minimal price requests.
type Service interface {
	MinimalPrices(ctx context.Context, shopper storefront.Shopper, templateIDs []uuid.UUID) ([]TemplatePrice, error)
	QuantityScale(ctx context.Context, shopper storefront.Shopper, productID uuid.UUID) (*Scale, error)
	DefaultCombination(ctx context.Context, shopper storefront.Shopper, templateID uuid.UUID) (*DefaultCombination, error)
	DisplayPrice(ctx context.Context, shopper storefront.Shopper, templateID uuid.UUID) (*DisplayPrice, error)
}

type service struct {
	templates templateStore
	shopping  shoppingContext
	resolver  *Resolver
}

// NewService builds the minimal price service.
func NewService(templates templateStore, shopping shoppingContext, resolver *Resolver) (Service, error) {
	if templates == nil {
		return nil, fmt.Errorf("template store required")
	}
	if shopping == nil {
		return nil, fmt.Errorf("shopping context required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("resolver required")
	}
	return &service{templates: templates, shopping: shopping, resolver: resolver}, nil
}

func (s *service) MinimalPrices(ctx context.Context, shopper storefront.Shopper, templateIDs []uuid.UUID) ([]TemplatePrice, error) {
	site, pricelist, err := s.context(ctx, shopper)
	if err != nil {
		return nil, err
	}
	rows, err := s.templates.FindPublishedTemplates(ctx, templateIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading templates")
	}
	templates := make([]*models.ProductTemplate, len(rows))
	for i := range rows {
		templates[i] = &rows[i]
	}

	info, err := s.resolver.CheapestInfo(ctx, templates, pricelist)
	if err != nil {
		return nil, pkgerrors.FromLookup(err, "pricelist")
	}

	out := make([]TemplatePrice, 0, len(templates))
	for _, tmpl := range templates {
		res := info[tmpl.ID]
		tp := TemplatePrice{
			ID:                 tmpl.ID,
			DistinctPrices:     res.HasDistinctPrice,
			DistinctPricesTmpl: res.HasDistinctPriceFromTemplate,
		}
		if res.ProductID != uuid.Nil && (res.HasDistinctPrice || res.HasDistinctPriceFromTemplate) {
			combination, err := s.resolver.base.CombinationInfo(ctx, storefront.CombinationRequest{
				Template:  tmpl,
				ProductID: res.ProductID,
				AddQty:    res.AddQty,
				Pricelist: pricelist,
				Website:   site,
			})
			if err != nil {
				return nil, err
			}
			price := combination.Price
			tp.Price = &price
			tp.Currency = pricelist.Currency
		}
		out = append(out, tp)
	}
	return out, nil
}

func (s *service) QuantityScale(ctx context.Context, shopper storefront.Shopper, productID uuid.UUID) (*Scale, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	_, pricelist, err := s.context(ctx, shopper)
	if err != nil {
		return nil, err
	}
	variant, tmpl, err := s.templates.FindVariant(ctx, productID)
	if err != nil {
		return nil, pkgerrors.FromLookup(err, "product")
	}
	rows, unit, err := s.resolver.PriceScale(ctx, tmpl, variant, pricelist)
	if err != nil {
		return nil, pkgerrors.FromLookup(err, "pricelist")
	}
	return &Scale{Rows: rows, UnitName: unit}, nil
}

func (s *service) DefaultCombination(ctx context.Context, shopper storefront.Shopper, templateID uuid.UUID) (*DefaultCombination, error) {
	site, pricelist, err := s.context(ctx, shopper)
	if err != nil {
		return nil, err
	}
	tmpl, err := s.publishedTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	combination, err := s.resolver.FirstPossibleCombination(ctx, tmpl, site, pricelist)
	if err != nil {
		return nil, pkgerrors.FromLookup(err, "pricelist")
	}

	out := &DefaultCombination{TemplateID: tmpl.ID, AttributeValueIDs: make([]uuid.UUID, 0, len(combination))}
	for _, value := range combination {
		out.AttributeValueIDs = append(out.AttributeValueIDs, value.ID)
	}
	if variant, ok := storefront.VariantForCombination(tmpl, combination); ok {
		out.ProductID = variant.ID
	}
	return out, nil
}

func (s *service) DisplayPrice(ctx context.Context, shopper storefront.Shopper, templateID uuid.UUID) (*DisplayPrice, error) {
	site, pricelist, err := s.context(ctx, shopper)
	if err != nil {
		return nil, err
	}
	tmpl, err := s.publishedTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	info, err := s.resolver.CombinationInfo(ctx, storefront.CombinationRequest{
		Template:     tmpl,
		Pricelist:    pricelist,
		Website:      site,
		OnlyTemplate: true,
	})
	if err != nil {
		return nil, pkgerrors.FromLookup(err, "pricelist")
	}
	rendered := RenderPrices(info, site, shopper.Language)
	return &DisplayPrice{
		Price:            rendered.Price,
		ListPrice:        rendered.ListPrice,
		HasDistinctPrice: info.HasDistinctPrice,
		MinimalPrice:     info.MinimalPrice,
	}, nil
}

func (s *service) context(ctx context.Context, shopper storefront.Shopper) (*models.Website, *models.Pricelist, error) {
	site, err := s.shopping.Website(ctx, shopper.WebsiteID)
	if err != nil {
		return nil, nil, err
	}
	pricelist, err := s.shopping.CurrentPricelist(ctx, site, shopper.PricelistID)
	if err != nil {
		return nil, nil, err
	}
	return site, pricelist, nil
}

func (s *service) publishedTemplate(ctx context.Context, id uuid.UUID) (*models.ProductTemplate, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "template id required")
	}
	tmpl, err := s.templates.FindTemplate(ctx, id)
	if err != nil {
		return nil, pkgerrors.FromLookup(err, "template")
	}
	if !tmpl.IsPublished {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "template not found")
	}
	return tmpl, nil
}
