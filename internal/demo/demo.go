// Package demo holds the built-in dataset shown in demo mode.
package demo

import (
	"time"

	"github.com/dtroode/healthyrecipe-client/internal/model"
)

// Recipes returns a fresh copy of the demo recipes.
func Recipes() []model.Recipe {
	return model.CloneRecipes(recipes)
}

// Users returns a fresh copy of the demo user list.
func Users() []model.UserRecord {
	out := make([]model.UserRecord, len(users))
	copy(out, users)
	return out
}

func date(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

var recipes = []model.Recipe{
	{
		ID:          1,
		Title:       "Mediterranean Quinoa Bowl",
		Description: "A healthy and colorful bowl packed with quinoa, fresh vegetables, and Mediterranean flavors.",
		CookingTime: 25,
		Servings:    4,
		Difficulty:  "Easy",
		Category:    "Healthy",
		Rating:      4.5,
		RatingCount: 23,
		Ingredients: []string{
			"1 cup quinoa",
			"2 cups vegetable broth",
			"1 cucumber, diced",
			"2 tomatoes, chopped",
			"1/2 red onion, sliced",
			"1/4 cup feta cheese",
			"2 tbsp olive oil",
			"1 lemon, juiced",
			"Fresh herbs (parsley, mint)",
		},
		Instructions: []string{
			"Rinse quinoa and cook in vegetable broth until fluffy",
			"Let quinoa cool completely",
			"Dice cucumber and tomatoes",
			"Slice red onion thinly",
			"Mix olive oil and lemon juice for dressing",
			"Combine all ingredients in a large bowl",
			"Top with feta cheese and fresh herbs",
			"Serve chilled",
		},
		NutritionInfo: &model.NutritionInfo{Calories: 320, Protein: 12, Carbs: 45, Fat: 10},
		CreatedAt:     date("2024-01-15T10:00:00Z"),
		Status:        model.RecipeStatusApproved,
	},
	{
		ID:          2,
		Title:       "Grilled Salmon with Asparagus",
		Description: "Perfectly grilled salmon with roasted asparagus and lemon herb butter.",
		CookingTime: 20,
		Servings:    2,
		Difficulty:  "Medium",
		Category:    "Seafood",
		Rating:      4.8,
		RatingCount: 31,
		Ingredients: []string{
			"2 salmon fillets",
			"1 bunch asparagus",
			"2 tbsp olive oil",
			"1 lemon",
			"2 tbsp butter",
			"2 cloves garlic, minced",
			"Fresh dill",
			"Salt and pepper",
		},
		Instructions: []string{
			"Preheat grill to medium-high heat",
			"Season salmon with salt and pepper",
			"Trim asparagus ends",
			"Grill salmon 4-5 minutes per side",
			"Grill asparagus 3-4 minutes",
			"Make herb butter with garlic and dill",
			"Serve with lemon wedges",
		},
		NutritionInfo: &model.NutritionInfo{Calories: 280, Protein: 35, Carbs: 8, Fat: 12},
		CreatedAt:     date("2024-01-14T15:30:00Z"),
		Status:        model.RecipeStatusApproved,
	},
	{
		ID:          3,
		Title:       "Veggie Buddha Bowl",
		Description: "Nourishing bowl with roasted vegetables, chickpeas, and tahini dressing.",
		CookingTime: 35,
		Servings:    3,
		Difficulty:  "Easy",
		Category:    "Vegetarian",
		Rating:      4.2,
		RatingCount: 18,
		Ingredients: []string{
			"1 cup chickpeas",
			"2 sweet potatoes",
			"1 cup broccoli",
			"1 cup brown rice",
			"3 tbsp tahini",
			"1 lemon juiced",
			"2 tbsp olive oil",
			"1 tsp cumin",
			"Spinach leaves",
		},
		Instructions: []string{
			"Cook brown rice according to package directions",
			"Roast sweet potatoes and broccoli",
			"Season chickpeas with cumin and roast",
			"Make tahini dressing with lemon juice",
			"Arrange all ingredients in bowls",
			"Drizzle with tahini dressing",
			"Serve warm",
		},
		NutritionInfo: &model.NutritionInfo{Calories: 420, Protein: 15, Carbs: 68, Fat: 14},
		CreatedAt:     date("2024-01-13T12:45:00Z"),
		Status:        model.RecipeStatusApproved,
	},
}

var users = []model.UserRecord{
	{ID: 1, Username: "john_doe", Email: "john@example.com", Role: model.RoleUser, CreatedAt: date("2024-01-10T00:00:00Z")},
	{ID: 2, Username: "chef_mary", Email: "mary@example.com", Role: model.RoleChef, CreatedAt: date("2024-01-08T00:00:00Z")},
	{ID: 3, Username: "admin", Email: "admin@example.com", Role: model.RoleAdmin, CreatedAt: date("2024-01-01T00:00:00Z")},
}
