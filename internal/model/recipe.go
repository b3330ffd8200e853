package model

import (
	"context"
	"slices"
	"time"
)

// RecipeStatus is the moderation state of a recipe.
type RecipeStatus string

const (
	RecipeStatusPending  RecipeStatus = "PENDING"
	RecipeStatusApproved RecipeStatus = "APPROVED"
	RecipeStatusRejected RecipeStatus = "REJECTED"
)

// NutritionInfo holds per-serving nutrition facts.
type NutritionInfo struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Recipe is a catalog entry. Entries are replaced, never mutated in place.
type Recipe struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	CookingTime   int            `json:"cookingTime"`
	Servings      int            `json:"servings"`
	Difficulty    string         `json:"difficulty"`
	Category      string         `json:"category"`
	Rating        float64        `json:"rating"`
	RatingCount   int            `json:"ratingCount"`
	Ingredients   []string       `json:"ingredients"`
	Instructions  []string       `json:"instructions"`
	NutritionInfo *NutritionInfo `json:"nutritionInfo,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	Status        RecipeStatus   `json:"status,omitempty"`
}

// Clone returns a deep copy so callers never share slices with the cache.
func (r Recipe) Clone() Recipe {
	out := r
	out.Ingredients = slices.Clone(r.Ingredients)
	out.Instructions = slices.Clone(r.Instructions)
	if r.NutritionInfo != nil {
		n := *r.NutritionInfo
		out.NutritionInfo = &n
	}
	return out
}

// CloneRecipes deep-copies a slice of recipes.
func CloneRecipes(in []Recipe) []Recipe {
	if in == nil {
		return nil
	}
	out := make([]Recipe, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}

// DraftIngredient is an ingredient line of a submitted recipe.
type DraftIngredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Notes    string  `json:"notes"`
}

// RecipeDraft is a recipe submitted for approval.
type RecipeDraft struct {
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	PreparationTime int               `json:"preparationTime"`
	CookingTime     int               `json:"cookingTime"`
	Servings        int               `json:"servings"`
	DifficultyLevel string            `json:"difficultyLevel"`
	Instructions    string            `json:"instructions"`
	Category        string            `json:"category"`
	Ingredients     []DraftIngredient `json:"ingredients"`
	Calories        int               `json:"calories"`
	Protein         float64           `json:"protein"`
	Carbohydrates   float64           `json:"carbohydrates"`
	Fat             float64           `json:"fat"`
}

// Rating is a user's rating of a recipe.
type Rating struct {
	ID       int64  `json:"id"`
	RecipeID int64  `json:"recipeId"`
	Stars    int    `json:"rating"`
	Comment  string `json:"comment,omitempty"`
}

// RecipeAPI is the server boundary for recipe operations.
type RecipeAPI interface {
	ListRecipes(ctx context.Context) ([]Recipe, error)
	GetRecipe(ctx context.Context, id int64) (Recipe, error)
	CreateRecipe(ctx context.Context, draft RecipeDraft, requestID string) (Recipe, error)
}

// RatingAPI is the server boundary for recipe ratings.
type RatingAPI interface {
	RateRecipe(ctx context.Context, recipeID int64, stars int, comment string) (Rating, error)
}
