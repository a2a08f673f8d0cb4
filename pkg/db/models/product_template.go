package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductTemplate is a sellable product definition owning one or more variants.
type ProductTemplate struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	Name           string           `gorm:"column:name;not null"`
	ListPrice      decimal.Decimal  `gorm:"column:list_price;type:numeric(12,4);not null;default:0"`
	StandardPrice  decimal.Decimal  `gorm:"column:standard_price;type:numeric(12,4);not null;default:0"`
	CurrencyID     uuid.UUID        `gorm:"column:currency_id;type:uuid;not null"`
	Currency       *Currency        `gorm:"foreignKey:CurrencyID"`
	CategoryID     uuid.UUID        `gorm:"column:category_id;type:uuid;not null"`
	Category       *ProductCategory `gorm:"foreignKey:CategoryID"`
	IsPublished    bool             `gorm:"column:is_published;not null;default:false"`
	UomName        string           `gorm:"column:uom_name;not null;default:'Units'"`
	Variants       []ProductVariant `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
	AttributeLines []AttributeLine  `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate numbers nested variants, lines and values in slice order so
// they load back in the order they were given.
func (t *ProductTemplate) BeforeCreate(*gorm.DB) error {
	ensureID(&t.ID)
	for i := range t.Variants {
		if t.Variants[i].Sequence == 0 {
			t.Variants[i].Sequence = i + 1
		}
	}
	for i := range t.AttributeLines {
		line := &t.AttributeLines[i]
		if line.Sequence == 0 {
			line.Sequence = i + 1
		}
		for j := range line.Values {
			if line.Values[j].Sequence == 0 {
				line.Values[j].Sequence = j + 1
			}
		}
	}
	return nil
}

// ActiveVariants returns the purchasable variants in their stored order.
func (t ProductTemplate) ActiveVariants() []ProductVariant {
	out := make([]ProductVariant, 0, len(t.Variants))
	for _, v := range t.Variants {
		if v.Active {
			out = append(out, v)
		}
	}
	return out
}

// VariantCount counts active variants.
func (t ProductTemplate) VariantCount() int {
	return len(t.ActiveVariants())
}

// HasVariant reports whether variantID is an active variant of the template.
func (t ProductTemplate) HasVariant(variantID uuid.UUID) bool {
	for _, v := range t.ActiveVariants() {
		if v.ID == variantID {
			return true
		}
	}
	return false
}

// Variant returns the active variant with the given id.
func (t ProductTemplate) Variant(variantID uuid.UUID) (ProductVariant, bool) {
	for _, v := range t.ActiveVariants() {
		if v.ID == variantID {
			return v, true
		}
	}
	return ProductVariant{}, false
}
