package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instarecipe/internal/models"
)

func TestConvertTimeToISO8601(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"10 Minuten", "PT10M"},
		{"1 Stunde", "PT1H"},
		{"2 Stunden 30 Minuten", "PT2H30M"},
		{"45 min", "PT45M"},
		{"1h 15m", "PT1H15M"},
		{"Nicht angegeben", ""},
		{"", ""},
		{"über Nacht", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ConvertTimeToISO8601(tt.in), "input %q", tt.in)
	}
}

func TestJSONLD_FullRecipe(t *testing.T) {
	recipe := &models.Recipe{
		Title:    "Carbonara",
		Servings: "4 Portionen",
		PrepTime: "10 Minuten",
		CookTime: "15 Minuten",
		Ingredients: []models.IngredientGroup{
			{GroupTitle: "Zutaten", Items: []models.Ingredient{
				{Name: "Spaghetti", Quantity: "400g"},
				{Name: "Salz"},
			}},
		},
		Steps:      []string{"Kochen.", "Mischen."},
		Nutrition:  &models.Nutrition{Calories: "650 kcal"},
		Categories: []string{"Pasta", "Italienisch"},
	}

	ld := JSONLD(recipe, "https://example.com/t.jpg")

	assert.Equal(t, "https://schema.org/", ld["@context"])
	assert.Equal(t, "Recipe", ld["@type"])
	assert.Equal(t, "Carbonara", ld["name"])
	assert.Equal(t, "4 Portionen", ld["recipeYield"])
	assert.Equal(t, "PT10M", ld["prepTime"])
	assert.Equal(t, "PT15M", ld["cookTime"])
	assert.Equal(t, []string{"400g Spaghetti", "Salz"}, ld["recipeIngredient"])
	assert.Equal(t, "Pasta, Italienisch", ld["keywords"])
	assert.Equal(t, []string{"https://example.com/t.jpg"}, ld["image"])

	steps, ok := ld["recipeInstructions"].([]map[string]string)
	require.True(t, ok)
	require.Len(t, steps, 2)
	assert.Equal(t, "HowToStep", steps[0]["@type"])

	nutrition, ok := ld["nutrition"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "650 kcal", nutrition["calories"])
}

func TestJSONLD_MinimalRecipe(t *testing.T) {
	recipe := &models.Recipe{
		Title:       "Brot",
		Ingredients: []models.IngredientGroup{{Items: []models.Ingredient{{Name: "Mehl"}}}},
	}

	ld := JSONLD(recipe, "")

	assert.Equal(t, "Brot", ld["name"])
	assert.NotContains(t, ld, "recipeYield")
	assert.NotContains(t, ld, "prepTime")
	assert.NotContains(t, ld, "nutrition")
	assert.NotContains(t, ld, "image")
}
