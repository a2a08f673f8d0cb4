package storefront

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-pricing/internal/pricelists"
	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/angelmondragon/storefront-pricing/pkg/money"
)

type websiteRepository interface {
	FindWebsite(ctx context.Context, id uuid.UUID) (*models.Website, error)
}

type pricelistLoader interface {
	FindPricelist(ctx context.Context, id uuid.UUID) (*models.Pricelist, error)
}

type priceEngine interface {
	ProductPrice(ctx context.Context, pricelistID uuid.UUID, target pricelists.Target, qty int) (decimal.Decimal, error)
}

// Service resolves the shopping context and computes base combination info.
type Service interface {
	Website(ctx context.Context, id uuid.UUID) (*models.Website, error)
	CurrentPricelist(ctx context.Context, site *models.Website, requested uuid.UUID) (*models.Pricelist, error)
	CombinationInfo(ctx context.Context, req CombinationRequest) (*CombinationInfo, error)
}

type service struct {
	websites   websiteRepository
	pricelists pricelistLoader
	engine     priceEngine
}

// NewService builds a storefront service.
func NewService(websites websiteRepository, pricelists pricelistLoader, engine priceEngine) (Service, error) {
	if websites == nil {
		return nil, fmt.Errorf("website repository required")
	}
	if pricelists == nil {
		return nil, fmt.Errorf("pricelist loader required")
	}
	if engine == nil {
		return nil, fmt.Errorf("price engine required")
	}
	return &service{websites: websites, pricelists: pricelists, engine: engine}, nil
}

func (s *service) Website(ctx context.Context, id uuid.UUID) (*models.Website, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "website id required")
	}
	site, err := s.websites.FindWebsite(ctx, id)
	if err != nil {
		return nil, pkgerrors.FromLookup(err, "website")
	}
	return site, nil
}

// CurrentPricelist returns the requested pricelist when the website allows
// it, otherwise the website default.
func (s *service) CurrentPricelist(ctx context.Context, site *models.Website, requested uuid.UUID) (*models.Pricelist, error) {
	if site == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "website required")
	}
	id := site.DefaultPricelistID
	if requested != uuid.Nil && site.AllowsPricelist(requested) {
		id = requested
	}
	pl, err := s.pricelists.FindPricelist(ctx, id)
	if err != nil {
		return nil, pkgerrors.FromLookup(err, "pricelist")
	}
	return pl, nil
}

func (s *service) CombinationInfo(ctx context.Context, req CombinationRequest) (*CombinationInfo, error) {
	if req.Template == nil || req.Pricelist == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "template and pricelist required")
	}
	tmpl := req.Template
	qty := req.qty()

	target := pricelists.TemplateTarget(tmpl)
	switch {
	case req.ProductID != uuid.Nil:
		variant, ok := tmpl.Variant(req.ProductID)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found on template")
		}
		target = pricelists.VariantTarget(tmpl, &variant)
	case !req.OnlyTemplate:
		if variant, ok := VariantForCombination(tmpl, FirstPossibleCombination(tmpl)); ok {
			target = pricelists.VariantTarget(tmpl, variant)
		}
	}

	price, err := s.engine.ProductPrice(ctx, req.Pricelist.ID, target, qty)
	if err != nil {
		return nil, pkgerrors.FromLookup(err, "pricelist")
	}
	listPrice := money.Convert(target.ListPrice(), target.Currency(), req.Pricelist.Currency)

	info := &CombinationInfo{
		TemplateID: tmpl.ID,
		AddQty:     qty,
		Price:      price,
		ListPrice:  listPrice,
		Currency:   req.Pricelist.Currency,
	}
	if !target.IsTemplate() {
		info.ProductID = target.Variant.ID
	}
	info.HasDiscountedPrice = money.RoundFor(price, info.Currency).LessThan(money.RoundFor(listPrice, info.Currency))
	if req.Website != nil && req.Website.PreventZeroPriceSale {
		info.PreventZeroPriceSale = money.IsZeroFor(price, info.Currency)
	}
	return info, nil
}
