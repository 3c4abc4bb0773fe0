package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recipecards/pkg/models"
)

func TestDetailsByRecipeType(t *testing.T) {
	tests := []struct {
		title string
		want  Details
	}{
		{"Oatmeal Cookies", Details{Servings: "24 cookies", PrepTime: "15 minutes", CookTime: "12 minutes"}},
		{"Banana Bread", Details{Servings: "8 servings", PrepTime: "20 minutes", CookTime: "45 minutes"}},
		{"Cherry Pie", Details{Servings: "8 servings", PrepTime: "30 minutes", CookTime: "1 hour"}},
		{"Fudge Brownies", Details{Servings: "16 brownies", PrepTime: "15 minutes", CookTime: "25 minutes"}},
		{"Lemon Bars", Details{Servings: "16 bars", PrepTime: "15 minutes", CookTime: "25 minutes"}},
		{"Beef Stew", Details{Servings: "8 servings", PrepTime: "20 minutes", CookTime: "30 minutes"}},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, detailsByRecipeType(tt.title))
		})
	}
}

func TestIsMeaningfulServings(t *testing.T) {
	meaningful := []string{"6 servings", "24 cookies", "1 loaf", "serves a crowd of cookies", "8"}
	for _, v := range meaningful {
		assert.True(t, isMeaningfulServings(v), v)
	}

	notMeaningful := []string{"", "Unknown", "not mentioned", "N/A", "TBD", "plenty"}
	for _, v := range notMeaningful {
		assert.False(t, isMeaningfulServings(v), v)
	}
}

func TestIsMeaningfulTime(t *testing.T) {
	meaningful := []string{"15 minutes", "1 hour", "12-15 min", "45 sec"}
	for _, v := range meaningful {
		assert.True(t, isMeaningfulTime(v), v)
	}

	// A number without a unit, or a unit without a number, is not an answer.
	notMeaningful := []string{"", "Unknown", "15", "a few minutes", "overnight", "not specified"}
	for _, v := range notMeaningful {
		assert.False(t, isMeaningfulTime(v), v)
	}
}

func TestMergeDetails(t *testing.T) {
	r := &models.Recipe{
		Title:    "Pound Cake",
		Servings: "12 slices",
		PrepTime: "Unknown",
		CookTime: "about an hour",
	}
	estimated := Details{Servings: "8 servings", PrepTime: "20 minutes", CookTime: "45 minutes"}

	MergeDetails(r, estimated)

	// The card's own answer survives; only gaps are filled.
	assert.Equal(t, "12 slices", r.Servings)
	assert.Equal(t, "20 minutes", r.PrepTime)
	assert.Equal(t, "45 minutes", r.CookTime)
}

func TestMergeDetailsAllMissing(t *testing.T) {
	r := &models.Recipe{Title: "Pound Cake"}
	estimated := detailsByRecipeType(r.Title)

	MergeDetails(r, estimated)

	assert.Equal(t, "8 servings", r.Servings)
	assert.Equal(t, "20 minutes", r.PrepTime)
	assert.Equal(t, "45 minutes", r.CookTime)
}
