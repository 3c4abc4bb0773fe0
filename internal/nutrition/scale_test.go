package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		quantity string
		want     float64
	}{
		{"2", 2},
		{"1.5", 1.5},
		{"3/4", 0.75},
		{"1/2", 0.5},
		{"", 1},
		{"a few", 1},
		{"-2", 1},
		{"  2 ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.quantity, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuantity(tt.quantity))
		})
	}
}

func TestParseQuantityThirdKeepsPrecision(t *testing.T) {
	// The fraction is evaluated exactly; 1/3 must not decay to a truncated
	// decimal before the final conversion.
	assert.InDelta(t, 1.0/3.0, ParseQuantity("1/3"), 1e-15)
}

func TestScaleHalfCupOfSugar(t *testing.T) {
	per100g := Nutrients{Calories: 387, Sugar: 99.8}

	got := Scale(per100g, "1/2", "cup")

	// 0.5 cup = 120 g, so values scale by 1.2.
	assert.InDelta(t, 464.4, got[Calories], 1e-9)
	assert.InDelta(t, 119.76, got[Sugar], 1e-9)
}

func TestScaleIsLinearInQuantity(t *testing.T) {
	per100g := Nutrients{Calories: 100}

	one := Scale(per100g, "1", "cup")
	three := Scale(per100g, "3", "cup")

	assert.InDelta(t, 3*one[Calories], three[Calories], 1e-9)
}

func TestScaleUnknownUnitUsesItemMass(t *testing.T) {
	per100g := Nutrients{Calories: 100}

	// A bare count ("2 eggs") has no unit: each item counts as 50 g.
	got := Scale(per100g, "2", "")
	assert.InDelta(t, 100.0, got[Calories], 1e-9)
}

func TestScaleUnparseableQuantityDefaultsToOne(t *testing.T) {
	per100g := Nutrients{Calories: 100}

	got := Scale(per100g, "a pinch", "gram")
	assert.InDelta(t, 1.0, got[Calories], 1e-9)
}

func TestScaleEmptyProfile(t *testing.T) {
	got := Scale(Nutrients{}, "2", "cup")
	assert.Empty(t, got)
}
