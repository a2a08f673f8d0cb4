package storefront

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-pricing/internal/repo"
	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
)

// Repository persists websites.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindWebsite loads a website with its default and selectable pricelists.
func (r *Repository) FindWebsite(ctx context.Context, id uuid.UUID) (*models.Website, error) {
	var site models.Website
	if err := r.DB(ctx).
		Preload("DefaultPricelist").
		Preload("Pricelists").
		First(&site, "id = ?", id).
		Error; err != nil {
		return nil, err
	}
	return &site, nil
}

// CreateWebsite inserts a website and links its selectable pricelists.
func (r *Repository) CreateWebsite(ctx context.Context, site *models.Website) error {
	return r.DB(ctx).Omit("DefaultPricelist", "Pricelists.*").Create(site).Error
}
