package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-pricing/pkg/enums"
)

// Currency describes how amounts are rounded, converted and displayed.
type Currency struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;primaryKey"`
	Name      string                 `gorm:"column:name;not null"`
	Symbol    string                 `gorm:"column:symbol;not null"`
	Position  enums.CurrencyPosition `gorm:"column:position;not null;default:after"`
	Rounding  decimal.Decimal        `gorm:"column:rounding;type:numeric(12,6);not null"`
	Rate      decimal.Decimal        `gorm:"column:rate;type:numeric(12,6);not null"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
}

func (c *Currency) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	if c.Rate.IsZero() {
		c.Rate = decimal.NewFromInt(1)
	}
	if c.Position == "" {
		c.Position = enums.CurrencyPositionAfter
	}
	return nil
}
