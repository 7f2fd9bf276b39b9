package models

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
)

// Recipe is the structured extraction result for a single post. Field names
// mirror the on-disk progress format, so records written by earlier runs
// stay readable.
type Recipe struct {
	Title       string            `json:"title" validate:"required"`
	Servings    string            `json:"servings,omitempty"`
	PrepTime    string            `json:"prep_time,omitempty"`
	CookTime    string            `json:"cook_time,omitempty"`
	Categories  []string          `json:"categories,omitempty"`
	Ingredients []IngredientGroup `json:"ingredients"`
	Steps       []string          `json:"steps"`
	Notes       []string          `json:"notes,omitempty"`
	Nutrition   *Nutrition        `json:"nutrition,omitempty"`
	SourceURL   string            `json:"source_url,omitempty"`
}

// IngredientGroup is a titled section of the ingredient list. Single-section
// recipes use one group with an empty title.
type IngredientGroup struct {
	GroupTitle string       `json:"group_title"`
	Items      []Ingredient `json:"items"`
}

type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
}

type Nutrition struct {
	Calories string `json:"calories,omitempty"`
	Protein  string `json:"protein,omitempty"`
	Carbs    string `json:"carbs,omitempty"`
	Fat      string `json:"fat,omitempty"`
}

func (n *Nutrition) empty() bool {
	return n == nil || (n.Calories == "" && n.Protein == "" && n.Carbs == "" && n.Fat == "")
}

// ValidationError signals that a decoded payload does not satisfy the
// recipe schema. The orchestrator treats it like any other model failure.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "recipe validation: " + e.Reason
}

// DecodeRecipe parses a raw model payload into a validated Recipe.
// In strict mode unknown fields are rejected, so a model inventing keys
// fails the attempt instead of silently dropping data.
func DecodeRecipe(raw []byte, strict bool) (*Recipe, error) {
	var r Recipe
	dec := json.NewDecoder(bytes.NewReader(raw))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&r); err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("decode: %v", err)}
	}
	if err := ValidateRecipe(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ValidateRecipe checks structural invariants and normalizes the canonical
// representation: steps are never nil, an all-empty nutrition block is
// dropped entirely.
func ValidateRecipe(r *Recipe) error {
	v := validate.Struct(r)
	if !v.Validate() {
		return &ValidationError{Reason: v.Errors.OneError().Error()}
	}
	if strings.TrimSpace(r.Title) == "" {
		return &ValidationError{Reason: "title is blank"}
	}
	if len(r.Ingredients) == 0 {
		return &ValidationError{Reason: "no ingredient groups"}
	}
	for i, g := range r.Ingredients {
		if len(g.Items) == 0 {
			return &ValidationError{Reason: fmt.Sprintf("ingredient group %d has no items", i)}
		}
		for j, item := range g.Items {
			if strings.TrimSpace(item.Name) == "" {
				return &ValidationError{Reason: fmt.Sprintf("ingredient %d in group %d has no name", j, i)}
			}
		}
	}
	if r.Steps == nil {
		r.Steps = []string{}
	}
	if r.Nutrition.empty() {
		r.Nutrition = nil
	}
	return nil
}
