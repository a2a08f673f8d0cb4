package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Website is a storefront with its own pricing context.
type Website struct {
	ID                       uuid.UUID   `gorm:"column:id;type:uuid;primaryKey"`
	Name                     string      `gorm:"column:name;not null"`
	DefaultPricelistID       uuid.UUID   `gorm:"column:default_pricelist_id;type:uuid;not null"`
	DefaultPricelist         *Pricelist  `gorm:"foreignKey:DefaultPricelistID"`
	Pricelists               []Pricelist `gorm:"many2many:website_pricelists;joinForeignKey:WebsiteID;joinReferences:PricelistID"`
	PreventZeroPriceSale     bool        `gorm:"column:prevent_zero_price_sale;not null;default:false"`
	PreventZeroPriceSaleText string      `gorm:"column:prevent_zero_price_sale_text;not null"`
	CreatedAt                time.Time   `gorm:"column:created_at;autoCreateTime"`
}

func (w *Website) BeforeCreate(*gorm.DB) error {
	ensureID(&w.ID)
	if w.PreventZeroPriceSaleText == "" {
		w.PreventZeroPriceSaleText = DefaultPreventZeroPriceSaleText
	}
	return nil
}

// DefaultPreventZeroPriceSaleText is shown instead of a zero price.
const DefaultPreventZeroPriceSaleText = "Not Available For Sale"

// AllowsPricelist reports whether shoppers of this website may price with pricelistID.
func (w Website) AllowsPricelist(pricelistID uuid.UUID) bool {
	if w.DefaultPricelistID == pricelistID {
		return true
	}
	for _, p := range w.Pricelists {
		if p.ID == pricelistID {
			return true
		}
	}
	return false
}
