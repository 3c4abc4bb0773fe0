// Package fdc provides food lookup against the USDA FoodData Central API.
//
// This package implements the nutrition-database side of recipe analysis:
// a ranked keyword search over the Foundation and SR Legacy datasets, and a
// detail fetch returning the full per-100g nutrient measurements of a single
// food record.
//
// Required Environment Variables:
//   - USDA_API_KEY: FoodData Central API key (free, data.gov signup)
//
// API Limitations:
//   - Shared rate limit per API key (1000 requests/hour by default); the
//     client logs X-RateLimit-* response headers at debug level
//   - Search results are ranked by the service; the first hit is the
//     best match
//
// Both operations are best-effort from the caller's point of view: recipe
// analysis treats any error or empty result as "no data for this ingredient"
// and continues.
package fdc

import (
	"context"
	"strconv"
)

// FoodSource defines the lookup operations recipe analysis depends on.
type FoodSource interface {
	// SearchFoods returns ranked candidate foods for a free-text name.
	// An empty slice means no match; both are recoverable conditions.
	SearchFoods(ctx context.Context, query string) ([]FoodHit, error)

	// FoodDetails returns the full nutrient record for one food.
	FoodDetails(ctx context.Context, fdcID int64) (*FoodRecord, error)
}

// FoodHit is one ranked candidate from a food search.
type FoodHit struct {
	FDCID       int64  `json:"fdcId"`
	Description string `json:"description"`
	DataType    string `json:"dataType,omitempty"`
}

// FoodRecord is the detailed record for a single food, nutrients on a
// per-100g basis.
type FoodRecord struct {
	FDCID         int64          `json:"fdcId"`
	Description   string         `json:"description"`
	DataType      string         `json:"dataType,omitempty"`
	FoodNutrients []FoodNutrient `json:"foodNutrients"`
}

// FoodNutrient is one nutrient measurement. FoodData Central serves two
// shapes: search results embed flat nutrientId/nutrientName/value fields,
// detail responses nest them under "nutrient" with the value in "amount".
// The Resolved* accessors hide the difference.
type FoodNutrient struct {
	NutrientID   int64    `json:"nutrientId,omitempty"`
	NutrientName string   `json:"nutrientName,omitempty"`
	UnitName     string   `json:"unitName,omitempty"`
	Value        *float64 `json:"value,omitempty"`

	Nutrient *NutrientRef `json:"nutrient,omitempty"`
	Amount   *float64     `json:"amount,omitempty"`
}

// NutrientRef is the nested nutrient descriptor used by detail responses.
type NutrientRef struct {
	ID       int64  `json:"id"`
	Number   string `json:"number,omitempty"`
	Name     string `json:"name"`
	UnitName string `json:"unitName,omitempty"`
}

// ResolvedID returns the numeric nutrient identifier as a string, from
// whichever response shape is populated. Empty when neither is set.
func (n FoodNutrient) ResolvedID() string {
	if n.NutrientID != 0 {
		return strconv.FormatInt(n.NutrientID, 10)
	}
	if n.Nutrient != nil && n.Nutrient.ID != 0 {
		return strconv.FormatInt(n.Nutrient.ID, 10)
	}
	return ""
}

// ResolvedNumber returns the legacy nutrient number ("208", "301", ...)
// when the detail shape carries one.
func (n FoodNutrient) ResolvedNumber() string {
	if n.Nutrient != nil {
		return n.Nutrient.Number
	}
	return ""
}

// ResolvedName returns the nutrient name from whichever shape is populated.
func (n FoodNutrient) ResolvedName() string {
	if n.NutrientName != "" {
		return n.NutrientName
	}
	if n.Nutrient != nil {
		return n.Nutrient.Name
	}
	return ""
}

// ResolvedUnit returns the reporting unit ("G", "MG", "UG", "KCAL", ...).
func (n FoodNutrient) ResolvedUnit() string {
	if n.UnitName != "" {
		return n.UnitName
	}
	if n.Nutrient != nil {
		return n.Nutrient.UnitName
	}
	return ""
}

// ResolvedAmount returns the per-100g measurement value, or false when the
// entry carries no value at all.
func (n FoodNutrient) ResolvedAmount() (float64, bool) {
	if n.Value != nil {
		return *n.Value, true
	}
	if n.Amount != nil {
		return *n.Amount, true
	}
	return 0, false
}
