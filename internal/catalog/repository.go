package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-pricing/internal/repo"
	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
)

// Repository reads and seeds the product catalog.
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

// FindTemplate loads one template with everything pricing needs.
func (r *Repository) FindTemplate(ctx context.Context, id uuid.UUID) (*models.ProductTemplate, error) {
	var tmpl models.ProductTemplate
	if err := r.preloaded(ctx).First(&tmpl, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// FindPublishedTemplates loads the published templates among ids, in the
// order the ids were given. Unknown and unpublished ids are dropped.
func (r *Repository) FindPublishedTemplates(ctx context.Context, ids []uuid.UUID) ([]models.ProductTemplate, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.ProductTemplate
	if err := r.preloaded(ctx).
		Where("id IN ? AND is_published = ?", ids, true).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.ProductTemplate, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	out := make([]models.ProductTemplate, 0, len(rows))
	seen := make(map[uuid.UUID]struct{}, len(rows))
	for _, id := range ids {
		row, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, row)
	}
	return out, nil
}

// FindVariant loads a variant together with its fully preloaded template.
func (r *Repository) FindVariant(ctx context.Context, id uuid.UUID) (*models.ProductVariant, *models.ProductTemplate, error) {
	var variant models.ProductVariant
	if err := r.DB(ctx).Preload("Values").First(&variant, "id = ?", id).Error; err != nil {
		return nil, nil, err
	}
	tmpl, err := r.FindTemplate(ctx, variant.TemplateID)
	if err != nil {
		return nil, nil, err
	}
	for i := range tmpl.Variants {
		if tmpl.Variants[i].ID == id {
			return &tmpl.Variants[i], tmpl, nil
		}
	}
	// archived variants are not preloaded on the template; their own values
	// still carry the surcharge
	return &variant, tmpl, nil
}

// CreateCategory inserts a category; its parent path is derived on insert.
func (r *Repository) CreateCategory(ctx context.Context, cat *models.ProductCategory) error {
	return r.DB(ctx).Create(cat).Error
}

// CreateTemplate inserts a template with its attribute lines, then its
// variants linked to the already inserted attribute values.
func (r *Repository) CreateTemplate(ctx context.Context, tmpl *models.ProductTemplate) error {
	return r.Transaction(ctx, func(tx *gorm.DB) error {
		variants := tmpl.Variants
		if err := tx.Omit("Variants", "Currency", "Category").Create(tmpl).Error; err != nil {
			return err
		}
		if len(variants) == 0 {
			return nil
		}
		for i := range variants {
			variants[i].TemplateID = tmpl.ID
		}
		if err := tx.Omit("Values.*").Create(&variants).Error; err != nil {
			return err
		}
		tmpl.Variants = variants
		return nil
	})
}

func (r *Repository) preloaded(ctx context.Context) *gorm.DB {
	return r.DB(ctx).
		Preload("Currency").
		Preload("Category").
		Preload("Variants", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("active = ?", true).Order("sequence ASC").Order("id ASC")
		}).
		Preload("Variants.Values").
		Preload("AttributeLines", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("sequence ASC")
		}).
		Preload("AttributeLines.Values", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("sequence ASC")
		})
}
