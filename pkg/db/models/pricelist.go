package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-pricing/pkg/enums"
)

// Pricelist is a named, ordered set of pricing rules in one currency.
type Pricelist struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name       string          `gorm:"column:name;not null"`
	CurrencyID uuid.UUID       `gorm:"column:currency_id;type:uuid;not null"`
	Currency   *Currency       `gorm:"foreignKey:CurrencyID"`
	Selectable bool            `gorm:"column:selectable;not null;default:false"`
	Items      []PricelistItem `gorm:"foreignKey:PricelistID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (p *Pricelist) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

// PricelistItem is a single pricing rule.
type PricelistItem struct {
	ID              uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	PricelistID     uuid.UUID          `gorm:"column:pricelist_id;type:uuid;not null;index"`
	Sequence        int                `gorm:"column:sequence;not null;default:10"`
	AppliedOn       enums.AppliedOn    `gorm:"column:applied_on;not null;default:global"`
	CategoryID      *uuid.UUID         `gorm:"column:category_id;type:uuid"`
	TemplateID      *uuid.UUID         `gorm:"column:template_id;type:uuid"`
	VariantID       *uuid.UUID         `gorm:"column:variant_id;type:uuid"`
	MinQuantity     int                `gorm:"column:min_quantity;not null;default:0"`
	DateStart       *time.Time         `gorm:"column:date_start"`
	DateEnd         *time.Time         `gorm:"column:date_end"`
	ComputePrice    enums.ComputePrice `gorm:"column:compute_price;not null;default:fixed"`
	FixedPrice      decimal.Decimal    `gorm:"column:fixed_price;type:numeric(12,4);not null;default:0"`
	PercentPrice    decimal.Decimal    `gorm:"column:percent_price;type:numeric(7,4);not null;default:0"`
	Base            enums.PriceBase    `gorm:"column:base;not null;default:list_price"`
	BasePricelistID *uuid.UUID         `gorm:"column:base_pricelist_id;type:uuid"`
	PriceDiscount   decimal.Decimal    `gorm:"column:price_discount;type:numeric(7,4);not null;default:0"`
	PriceSurcharge  decimal.Decimal    `gorm:"column:price_surcharge;type:numeric(12,4);not null;default:0"`
	PriceRound      decimal.Decimal    `gorm:"column:price_round;type:numeric(12,6);not null;default:0"`
	PriceMinMargin  decimal.Decimal    `gorm:"column:price_min_margin;type:numeric(12,4);not null;default:0"`
	PriceMaxMargin  decimal.Decimal    `gorm:"column:price_max_margin;type:numeric(12,4);not null;default:0"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime"`
}

func (i *PricelistItem) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	if i.AppliedOn == "" {
		i.AppliedOn = enums.AppliedOnGlobal
	}
	if i.ComputePrice == "" {
		i.ComputePrice = enums.ComputePriceFixed
	}
	if i.Base == "" {
		i.Base = enums.PriceBaseListPrice
	}
	return nil
}

// BasedOnPricelist reports whether the rule derives its price from another
// pricelist.
func (i PricelistItem) BasedOnPricelist() bool {
	return i.ComputePrice == enums.ComputePriceFormula &&
		i.Base == enums.PriceBasePricelist &&
		i.BasePricelistID != nil
}
