package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductVariant is a concrete purchasable combination of a template.
type ProductVariant struct {
	ID         uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	TemplateID uuid.UUID        `gorm:"column:template_id;type:uuid;not null;index"`
	Sequence   int              `gorm:"column:sequence;not null;default:0"`
	Active     bool             `gorm:"column:active;not null"`
	Values     []AttributeValue `gorm:"many2many:variant_attribute_values;joinForeignKey:VariantID;joinReferences:AttributeValueID"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
}

func (v *ProductVariant) BeforeCreate(*gorm.DB) error {
	ensureID(&v.ID)
	return nil
}

// PriceExtra is the per-unit surcharge over the template price, summed from
// the variant's attribute values.
func (v ProductVariant) PriceExtra() decimal.Decimal {
	total := decimal.Zero
	for _, value := range v.Values {
		total = total.Add(value.PriceExtra)
	}
	return total
}

// HasValue reports whether the variant carries the attribute value.
func (v ProductVariant) HasValue(valueID uuid.UUID) bool {
	for _, value := range v.Values {
		if value.ID == valueID {
			return true
		}
	}
	return false
}
