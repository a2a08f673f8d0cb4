package enums

import "fmt"

// AppliedOn is the scope a pricelist rule targets.
type AppliedOn string

const (
	AppliedOnVariant  AppliedOn = "product_variant"
	AppliedOnTemplate AppliedOn = "product"
	AppliedOnCategory AppliedOn = "product_category"
	AppliedOnGlobal   AppliedOn = "global"
)

var validAppliedOn = []AppliedOn{
	AppliedOnVariant,
	AppliedOnTemplate,
	AppliedOnCategory,
	AppliedOnGlobal,
}

// String implements fmt.Stringer.
func (a AppliedOn) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AppliedOn scope.
func (a AppliedOn) IsValid() bool {
	for _, candidate := range validAppliedOn {
		if candidate == a {
			return true
		}
	}
	return false
}

// Rank orders scopes from the most to the least specific. Rules with a lower
// rank are evaluated first.
func (a AppliedOn) Rank() int {
	for i, candidate := range validAppliedOn {
		if candidate == a {
			return i
		}
	}
	return len(validAppliedOn)
}

// ParseAppliedOn converts raw input into an AppliedOn scope.
func ParseAppliedOn(value string) (AppliedOn, error) {
	for _, candidate := range validAppliedOn {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid applied_on %q", value)
}

// ComputePrice is the computation method of a pricelist rule.
type ComputePrice string

const (
	ComputePriceFixed      ComputePrice = "fixed"
	ComputePricePercentage ComputePrice = "percentage"
	ComputePriceFormula    ComputePrice = "formula"
)

var validComputePrices = []ComputePrice{
	ComputePriceFixed,
	ComputePricePercentage,
	ComputePriceFormula,
}

// String implements fmt.Stringer.
func (c ComputePrice) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ComputePrice.
func (c ComputePrice) IsValid() bool {
	for _, candidate := range validComputePrices {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseComputePrice converts raw input into a ComputePrice.
func ParseComputePrice(value string) (ComputePrice, error) {
	for _, candidate := range validComputePrices {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid compute_price %q", value)
}

// PriceBase is the amount a formula rule starts from.
type PriceBase string

const (
	PriceBaseListPrice     PriceBase = "list_price"
	PriceBaseStandardPrice PriceBase = "standard_price"
	PriceBasePricelist     PriceBase = "pricelist"
)

var validPriceBases = []PriceBase{
	PriceBaseListPrice,
	PriceBaseStandardPrice,
	PriceBasePricelist,
}

// String implements fmt.Stringer.
func (b PriceBase) String() string {
	return string(b)
}

// IsValid reports whether the value is a known PriceBase.
func (b PriceBase) IsValid() bool {
	for _, candidate := range validPriceBases {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParsePriceBase converts raw input into a PriceBase.
func ParsePriceBase(value string) (PriceBase, error) {
	for _, candidate := range validPriceBases {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price base %q", value)
}
