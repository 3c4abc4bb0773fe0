package nutrition

import (
	"math/big"
	"strings"
)

// ParseQuantity parses a quantity string as a non-negative real number.
// Fractions ("3/4") and decimals ("1.5") are both accepted; fractions are
// evaluated exactly before the final float conversion so "1/3" does not
// round early. Unparseable or negative input defaults to 1.
func ParseQuantity(quantity string) float64 {
	quantity = strings.TrimSpace(quantity)
	if quantity == "" {
		return 1
	}
	r := new(big.Rat)
	if _, ok := r.SetString(quantity); !ok {
		return 1
	}
	f, _ := r.Float64()
	if f < 0 {
		return 1
	}
	return f
}

// Scale converts a parsed quantity and unit to an estimated gram mass and
// scales a per-100g nutrient profile to it. Source data is assumed to be on
// the USDA per-100g basis.
func Scale(per100g Nutrients, quantity, unit string) Nutrients {
	mass := ParseQuantity(quantity) * UnitGrams(unit)

	scaled := make(Nutrients, len(per100g))
	for key, value := range per100g {
		scaled[key] = value * mass / 100
	}
	return scaled
}
