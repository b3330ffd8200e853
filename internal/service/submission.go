package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/healthyrecipe-client/internal/logger"
	"github.com/dtroode/healthyrecipe-client/internal/model"
)

const defaultDifficulty = "MEDIUM"

// Submissions sends new recipes for moderation.
type Submissions struct {
	recipes  model.RecipeAPI
	sessions AuthSession
	gate     *RoleGate
	newID    func() string
	logger   *logger.Logger
}

func NewSubmissions(recipes model.RecipeAPI, sessions AuthSession, gate *RoleGate, logger *logger.Logger) *Submissions {
	return &Submissions{
		recipes:  recipes,
		sessions: sessions,
		gate:     gate,
		newID:    uuid.NewString,
		logger:   logger,
	}
}

// Submit validates the draft and sends it for approval. The created recipe
// is pending and is not added to the catalog.
func (s *Submissions) Submit(ctx context.Context, draft model.RecipeDraft) (model.Recipe, error) {
	if err := s.gate.Require(model.CapCreateRecipe); err != nil {
		return model.Recipe{}, err
	}

	draft, err := normalizeDraft(draft)
	if err != nil {
		return model.Recipe{}, err
	}

	authCtx, _, _ := s.sessions.AuthContext(ctx)
	requestID := s.newID()

	recipe, err := s.recipes.CreateRecipe(authCtx, draft, requestID)
	if err != nil {
		s.logger.Info("Submission service: recipe rejected",
			"request_id", requestID,
			"error", err.Error())
		return model.Recipe{}, err
	}
	if recipe.Status == "" {
		recipe.Status = model.RecipeStatusPending
	}

	s.logger.Info("Submission service: recipe submitted",
		"request_id", requestID,
		"recipe_id", recipe.ID)
	return recipe, nil
}

func normalizeDraft(d model.RecipeDraft) (model.RecipeDraft, error) {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)

	switch {
	case d.Title == "":
		return d, &model.ValidationError{Field: "title", Message: "Title is required"}
	case d.Description == "":
		return d, &model.ValidationError{Field: "description", Message: "Description is required"}
	case d.CookingTime <= 0:
		return d, &model.ValidationError{Field: "cookingTime", Message: "Cooking time must be positive"}
	case d.Servings < 1:
		return d, &model.ValidationError{Field: "servings", Message: "Servings must be at least 1"}
	case d.PreparationTime < 0:
		return d, &model.ValidationError{Field: "preparationTime", Message: "Preparation time must not be negative"}
	}

	ingredients := make([]model.DraftIngredient, 0, len(d.Ingredients))
	for _, ing := range d.Ingredients {
		ing.Name = strings.TrimSpace(ing.Name)
		if ing.Name != "" {
			ingredients = append(ingredients, ing)
		}
	}
	if len(ingredients) == 0 {
		return d, &model.ValidationError{Field: "ingredients", Message: "At least one ingredient is required"}
	}
	d.Ingredients = ingredients

	switch level := strings.ToUpper(strings.TrimSpace(d.DifficultyLevel)); level {
	case "":
		d.DifficultyLevel = defaultDifficulty
	case "EASY", "MEDIUM", "HARD":
		d.DifficultyLevel = level
	default:
		return d, &model.ValidationError{Field: "difficultyLevel", Message: "Difficulty must be EASY, MEDIUM or HARD"}
	}

	return d, nil
}
