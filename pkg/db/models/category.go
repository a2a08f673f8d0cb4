package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductCategory is a node of the catalog category tree. ParentPath lists the
// ids from the root down to the category itself, each followed by a slash.
type ProductCategory struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name       string     `gorm:"column:name;not null"`
	ParentID   *uuid.UUID `gorm:"column:parent_id;type:uuid"`
	ParentPath string     `gorm:"column:parent_path;not null;default:''"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (c *ProductCategory) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	if c.ParentPath != "" {
		return nil
	}
	prefix := ""
	if c.ParentID != nil {
		if err := tx.Session(&gorm.Session{NewDB: true}).
			Model(&ProductCategory{}).
			Select("parent_path").
			Where("id = ?", *c.ParentID).
			Scan(&prefix).
			Error; err != nil {
			return err
		}
	}
	c.ParentPath = prefix + c.ID.String() + "/"
	return nil
}

// AncestorIDs returns the category ids from the root down to this category.
func (c ProductCategory) AncestorIDs() []uuid.UUID {
	parts := strings.Split(strings.Trim(c.ParentPath, "/"), "/")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		if id, err := uuid.Parse(part); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 && c.ID != uuid.Nil {
		ids = append(ids, c.ID)
	}
	return ids
}

// IsChildOf reports whether the category equals or descends from categoryID.
func (c ProductCategory) IsChildOf(categoryID uuid.UUID) bool {
	for _, id := range c.AncestorIDs() {
		if id == categoryID {
			return true
		}
	}
	return false
}
