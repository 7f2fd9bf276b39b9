package render

import (
	"regexp"
	"strconv"
	"strings"

	"instarecipe/internal/models"
)

var (
	hoursPattern   = regexp.MustCompile(`(\d+)\s*(?:stunden?|h)`)
	minutesPattern = regexp.MustCompile(`(\d+)\s*(?:minuten?|min|m)`)
)

// ConvertTimeToISO8601 turns free-form German time strings ("1 Stunde 20
// Minuten", "45 min") into ISO 8601 durations for schema.org. Unparseable
// input yields an empty string, and the attribute is simply omitted.
func ConvertTimeToISO8601(timeStr string) string {
	if timeStr == "" || timeStr == "Nicht angegeben" {
		return ""
	}
	timeStr = strings.ToLower(timeStr)

	hours := 0
	if m := hoursPattern.FindStringSubmatch(timeStr); m != nil {
		hours, _ = strconv.Atoi(m[1])
	}
	minutes := 0
	if m := minutesPattern.FindStringSubmatch(timeStr); m != nil {
		minutes, _ = strconv.Atoi(m[1])
	}
	if hours == 0 && minutes == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("PT")
	if hours > 0 {
		b.WriteString(strconv.Itoa(hours))
		b.WriteString("H")
	}
	if minutes > 0 {
		b.WriteString(strconv.Itoa(minutes))
		b.WriteString("M")
	}
	return b.String()
}

// JSONLD builds schema.org Recipe structured data for a recipe page.
func JSONLD(recipe *models.Recipe, thumbnailURL string) map[string]any {
	ld := map[string]any{
		"@context": "https://schema.org/",
		"@type":    "Recipe",
		"name":     recipe.Title,
	}
	if recipe.Servings != "" {
		ld["recipeYield"] = recipe.Servings
	}
	if iso := ConvertTimeToISO8601(recipe.PrepTime); iso != "" {
		ld["prepTime"] = iso
	}
	if iso := ConvertTimeToISO8601(recipe.CookTime); iso != "" {
		ld["cookTime"] = iso
	}
	if len(recipe.Ingredients) > 0 {
		var items []string
		for _, grp := range recipe.Ingredients {
			for _, ing := range grp.Items {
				items = append(items, strings.TrimSpace(ing.Quantity+" "+ing.Name))
			}
		}
		ld["recipeIngredient"] = items
	}
	if len(recipe.Steps) > 0 {
		steps := make([]map[string]string, len(recipe.Steps))
		for i, step := range recipe.Steps {
			steps[i] = map[string]string{"@type": "HowToStep", "text": step}
		}
		ld["recipeInstructions"] = steps
	}
	if recipe.Nutrition != nil {
		info := map[string]string{"@type": "NutritionInformation"}
		if recipe.Nutrition.Calories != "" {
			info["calories"] = recipe.Nutrition.Calories
		}
		if recipe.Nutrition.Protein != "" {
			info["proteinContent"] = recipe.Nutrition.Protein
		}
		if recipe.Nutrition.Carbs != "" {
			info["carbohydrateContent"] = recipe.Nutrition.Carbs
		}
		if recipe.Nutrition.Fat != "" {
			info["fatContent"] = recipe.Nutrition.Fat
		}
		if len(info) > 1 {
			ld["nutrition"] = info
		}
	}
	if len(recipe.Categories) > 0 {
		ld["keywords"] = strings.Join(recipe.Categories, ", ")
	}
	if strings.HasPrefix(thumbnailURL, "http") {
		ld["image"] = []string{thumbnailURL}
	}
	return ld
}
