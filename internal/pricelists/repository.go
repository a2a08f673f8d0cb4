package pricelists

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-pricing/internal/repo"
	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
)

// Repository reads and writes pricelists with gorm.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

// FindPricelist loads one pricelist with its currency and rules.
func (r *Repository) FindPricelist(ctx context.Context, id uuid.UUID) (*models.Pricelist, error) {
	var pl models.Pricelist
	if err := r.preloaded(ctx).First(&pl, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pl, nil
}

// FindPricelists loads the pricelists that exist among ids. Missing ids are
// skipped silently.
func (r *Repository) FindPricelists(ctx context.Context, ids []uuid.UUID) ([]models.Pricelist, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var pls []models.Pricelist
	if err := r.preloaded(ctx).Where("id IN ?", ids).Find(&pls).Error; err != nil {
		return nil, err
	}
	return pls, nil
}

// Create inserts a pricelist together with its rules.
func (r *Repository) Create(ctx context.Context, pl *models.Pricelist) error {
	return r.DB(ctx).Create(pl).Error
}

// AddItems appends rules to an existing pricelist.
func (r *Repository) AddItems(ctx context.Context, pricelistID uuid.UUID, items []models.PricelistItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].PricelistID = pricelistID
	}
	return r.DB(ctx).Create(&items).Error
}

func (r *Repository) preloaded(ctx context.Context) *gorm.DB {
	return r.DB(ctx).
		Preload("Currency").
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("sequence ASC").Order("created_at ASC")
		})
}
