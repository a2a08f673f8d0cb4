package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:catalog_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Currency{},
		&models.ProductCategory{},
		&models.ProductTemplate{},
		&models.AttributeLine{},
		&models.AttributeValue{},
		&models.ProductVariant{},
	))
	return conn
}

type seeded struct {
	currency *models.Currency
	root     *models.ProductCategory
	child    *models.ProductCategory
}

func seed(t *testing.T, repo *Repository, conn *gorm.DB) seeded {
	t.Helper()
	ctx := context.Background()
	cur := &models.Currency{Name: "USD", Symbol: "$", Rounding: decimal.RequireFromString("0.01")}
	require.NoError(t, conn.Create(cur).Error)
	root := &models.ProductCategory{Name: "All"}
	require.NoError(t, repo.CreateCategory(ctx, root))
	child := &models.ProductCategory{Name: "Shirts", ParentID: &root.ID}
	require.NoError(t, repo.CreateCategory(ctx, child))
	return seeded{currency: cur, root: root, child: child}
}

// shirt builds a template with a Color line (red, blue) and one variant per color.
func shirt(s seeded, published bool) *models.ProductTemplate {
	red := models.AttributeValue{ID: uuid.New(), Name: "Red"}
	blue := models.AttributeValue{ID: uuid.New(), Name: "Blue", PriceExtra: decimal.NewFromInt(2)}
	return &models.ProductTemplate{
		Name:        "Shirt",
		ListPrice:   decimal.NewFromInt(20),
		CurrencyID:  s.currency.ID,
		CategoryID:  s.child.ID,
		IsPublished: published,
		UomName:     "Units",
		AttributeLines: []models.AttributeLine{{
			AttributeName: "Color",
			Values:        []models.AttributeValue{red, blue},
		}},
		Variants: []models.ProductVariant{
			{Active: true, Values: []models.AttributeValue{red}},
			{Active: true, Values: []models.AttributeValue{blue}},
		},
	}
}

func TestCategoryParentPath(t *testing.T) {
	conn := openSQLite(t)
	repo := NewRepository(conn)
	s := seed(t, repo, conn)

	assert.Equal(t, s.root.ID.String()+"/", s.root.ParentPath)
	assert.Equal(t, s.root.ID.String()+"/"+s.child.ID.String()+"/", s.child.ParentPath)
	assert.True(t, s.child.IsChildOf(s.root.ID))
}

func TestCreateAndFindTemplate(t *testing.T) {
	conn := openSQLite(t)
	repo := NewRepository(conn)
	s := seed(t, repo, conn)
	ctx := context.Background()

	tmpl := shirt(s, true)
	require.NoError(t, repo.CreateTemplate(ctx, tmpl))

	found, err := repo.FindTemplate(ctx, tmpl.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Currency)
	require.NotNil(t, found.Category)
	assert.True(t, found.Category.IsChildOf(s.root.ID))
	require.Len(t, found.AttributeLines, 1)
	require.Len(t, found.AttributeLines[0].Values, 2)
	assert.Equal(t, "Red", found.AttributeLines[0].Values[0].Name)

	require.Len(t, found.Variants, 2)
	assert.Equal(t, tmpl.Variants[0].ID, found.Variants[0].ID)
	assert.True(t, found.Variants[0].PriceExtra().IsZero())
	assert.True(t, found.Variants[1].PriceExtra().Equal(decimal.NewFromInt(2)))

	var values int64
	require.NoError(t, conn.Model(&models.AttributeValue{}).Count(&values).Error)
	assert.EqualValues(t, 2, values, "variant links must not duplicate attribute values")
}

func TestFindPublishedTemplatesFiltersAndKeepsOrder(t *testing.T) {
	conn := openSQLite(t)
	repo := NewRepository(conn)
	s := seed(t, repo, conn)
	ctx := context.Background()

	first := shirt(s, true)
	hidden := shirt(s, false)
	second := shirt(s, true)
	for _, tmpl := range []*models.ProductTemplate{first, hidden, second} {
		require.NoError(t, repo.CreateTemplate(ctx, tmpl))
	}

	found, err := repo.FindPublishedTemplates(ctx, []uuid.UUID{second.ID, hidden.ID, uuid.New(), first.ID, second.ID})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, second.ID, found[0].ID)
	assert.Equal(t, first.ID, found[1].ID)
}

func TestFindVariant(t *testing.T) {
	conn := openSQLite(t)
	repo := NewRepository(conn)
	s := seed(t, repo, conn)
	ctx := context.Background()

	tmpl := shirt(s, true)
	require.NoError(t, repo.CreateTemplate(ctx, tmpl))

	variant, owner, err := repo.FindVariant(ctx, tmpl.Variants[1].ID)
	require.NoError(t, err)
	assert.Equal(t, tmpl.ID, owner.ID)
	assert.True(t, variant.PriceExtra().Equal(decimal.NewFromInt(2)))

	_, _, err = repo.FindVariant(ctx, uuid.New())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindVariantArchivedKeepsSurcharge(t *testing.T) {
	conn := openSQLite(t)
	repo := NewRepository(conn)
	s := seed(t, repo, conn)
	ctx := context.Background()

	tmpl := shirt(s, true)
	require.NoError(t, repo.CreateTemplate(ctx, tmpl))
	archived := tmpl.Variants[1].ID
	require.NoError(t, conn.Model(&models.ProductVariant{}).Where("id = ?", archived).Update("active", false).Error)

	variant, owner, err := repo.FindVariant(ctx, archived)
	require.NoError(t, err)
	assert.Equal(t, tmpl.ID, owner.ID)
	assert.Len(t, owner.Variants, 1)
	assert.False(t, variant.Active)
	require.Len(t, variant.Values, 1)
	assert.True(t, variant.PriceExtra().Equal(decimal.NewFromInt(2)))
}
