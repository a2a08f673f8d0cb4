package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AttributeLine is one configurable attribute of a template, e.g. "Color".
type AttributeLine struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	TemplateID    uuid.UUID        `gorm:"column:template_id;type:uuid;not null;index"`
	AttributeName string           `gorm:"column:attribute_name;not null"`
	Sequence      int              `gorm:"column:sequence;not null;default:10"`
	Values        []AttributeValue `gorm:"foreignKey:LineID;constraint:OnDelete:CASCADE"`
}

func (l *AttributeLine) BeforeCreate(*gorm.DB) error {
	ensureID(&l.ID)
	return nil
}

// AttributeValue is a value an attribute line offers on a specific template.
type AttributeValue struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	LineID     uuid.UUID       `gorm:"column:line_id;type:uuid;not null;index"`
	Name       string          `gorm:"column:name;not null"`
	Sequence   int             `gorm:"column:sequence;not null;default:10"`
	PriceExtra decimal.Decimal `gorm:"column:price_extra;type:numeric(12,4);not null;default:0"`
}

func (v *AttributeValue) BeforeCreate(*gorm.DB) error {
	ensureID(&v.ID)
	return nil
}
