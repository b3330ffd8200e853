package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipes_FreshCopies(t *testing.T) {
	first := Recipes()
	require.Len(t, first, 3)

	first[0].Title = "changed"
	first[0].Ingredients[0] = "changed"
	first[0].NutritionInfo.Calories = 1

	second := Recipes()
	assert.Equal(t, "Mediterranean Quinoa Bowl", second[0].Title)
	assert.Equal(t, "1 cup quinoa", second[0].Ingredients[0])
	assert.Equal(t, 320, second[0].NutritionInfo.Calories)
}

func TestRecipes_UniqueIDs(t *testing.T) {
	seen := map[int64]bool{}
	for _, r := range Recipes() {
		assert.False(t, seen[r.ID], "duplicate id %d", r.ID)
		seen[r.ID] = true
		assert.Positive(t, r.CookingTime)
		assert.False(t, r.CreatedAt.IsZero())
	}
}

func TestUsers(t *testing.T) {
	users := Users()
	require.Len(t, users, 3)
	users[0].Username = "changed"
	assert.Equal(t, "john_doe", Users()[0].Username)
}
