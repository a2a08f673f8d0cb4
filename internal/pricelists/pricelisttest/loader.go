// Package pricelisttest provides an in-memory pricelist source for tests.
package pricelisttest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
)

// Loader serves pricelists from memory and counts lookups.
type Loader struct {
	mu         sync.Mutex
	pricelists map[uuid.UUID]models.Pricelist
	Calls      int
	Err        error
}

// NewLoader returns a loader holding pls.
func NewLoader(pls ...models.Pricelist) *Loader {
	l := &Loader{pricelists: map[uuid.UUID]models.Pricelist{}}
	for _, pl := range pls {
		l.Put(pl)
	}
	return l
}

// Put stores or replaces a pricelist.
func (l *Loader) Put(pl models.Pricelist) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pricelists[pl.ID] = pl
}

func (l *Loader) FindPricelist(_ context.Context, id uuid.UUID) (*models.Pricelist, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Calls++
	if l.Err != nil {
		return nil, l.Err
	}
	pl, ok := l.pricelists[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &pl, nil
}

func (l *Loader) FindPricelists(_ context.Context, ids []uuid.UUID) ([]models.Pricelist, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Calls++
	if l.Err != nil {
		return nil, l.Err
	}
	out := make([]models.Pricelist, 0, len(ids))
	for _, id := range ids {
		if pl, ok := l.pricelists[id]; ok {
			out = append(out, pl)
		}
	}
	return out, nil
}
