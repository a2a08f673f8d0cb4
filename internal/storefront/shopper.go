package storefront

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// Shopper is the shopping context of a storefront request.
type Shopper struct {
	WebsiteID   uuid.UUID
	PricelistID uuid.UUID
	Language    language.Tag
}

type shopperKey struct{}

// WithShopper stores the shopping context on ctx.
func WithShopper(ctx context.Context, shopper Shopper) context.Context {
	return context.WithValue(ctx, shopperKey{}, shopper)
}

// ShopperFrom returns the shopping context stored on ctx.
func ShopperFrom(ctx context.Context) (Shopper, bool) {
	shopper, ok := ctx.Value(shopperKey{}).(Shopper)
	return shopper, ok
}
