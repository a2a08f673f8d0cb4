package minimalprice

import (
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
)

func candidateIDs(vs []models.ProductVariant) []uuid.UUID {
	out := make([]uuid.UUID, len(vs))
	for i, v := range vs {
		out[i] = v.ID
	}
	return out
}

func TestBuildCandidates(t *testing.T) {
	cur := usd()
	cat := category()

	t.Run("referenced variants then one unreferenced then surcharges", func(t *testing.T) {
		tmpl := templateWithVariants(cur, cat, "10", "0", "0", "3")
		v := tmpl.Variants
		items := []models.PricelistItem{
			fixedVariant(v[1].ID, "5", 0),
			fixedVariant(v[1].ID, "4", 10),
		}
		assertCandidates(t, BuildCandidates(tmpl, items), v[1].ID, v[0].ID, v[2].ID)
	})

	t.Run("surcharged variant referenced by a rule is not repeated", func(t *testing.T) {
		tmpl := templateWithVariants(cur, cat, "10", "0", "3")
		v := tmpl.Variants
		items := []models.PricelistItem{fixedVariant(v[1].ID, "5", 0)}
		assertCandidates(t, BuildCandidates(tmpl, items), v[1].ID, v[0].ID)
	})

	t.Run("no variant rules picks first surcharge free variant", func(t *testing.T) {
		tmpl := templateWithVariants(cur, cat, "10", "2", "0", "0")
		v := tmpl.Variants
		assertCandidates(t, BuildCandidates(tmpl, nil), v[1].ID, v[0].ID)
	})

	t.Run("every variant surcharged", func(t *testing.T) {
		tmpl := templateWithVariants(cur, cat, "10", "2", "1")
		v := tmpl.Variants
		assertCandidates(t, BuildCandidates(tmpl, nil), v[0].ID, v[1].ID)
	})

	t.Run("rules on foreign variants are ignored", func(t *testing.T) {
		tmpl := templateWithVariants(cur, cat, "10", "0", "0")
		items := []models.PricelistItem{fixedVariant(uuid.New(), "5", 0)}
		assertCandidates(t, BuildCandidates(tmpl, items), tmpl.Variants[0].ID)
	})

	t.Run("inactive variants are skipped", func(t *testing.T) {
		tmpl := templateWithVariants(cur, cat, "10", "0", "0", "4")
		tmpl.Variants[0].Active = false
		tmpl.Variants[2].Active = false
		assertCandidates(t, BuildCandidates(tmpl, nil), tmpl.Variants[1].ID)
	})
}

func assertCandidates(t *testing.T, got []models.ProductVariant, want ...uuid.UUID) {
	t.Helper()
	ids := candidateIDs(got)
	if len(ids) != len(want) {
		t.Fatalf("expected %d candidates got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("candidate %d: expected %s got %s", i, want[i], ids[i])
		}
	}
}
