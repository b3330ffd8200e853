package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dtroode/healthyrecipe-client/internal/logger"
	"github.com/dtroode/healthyrecipe-client/internal/model"
)

const (
	minStars = 1
	maxStars = 5
)

// RecipeRefresher re-fetches a single catalog entry.
type RecipeRefresher interface {
	Refresh(ctx context.Context, id int64) (model.Recipe, error)
}

// Ratings submits recipe ratings and refreshes the rated recipe.
type Ratings struct {
	api      model.RatingAPI
	sessions AuthSession
	catalog  RecipeRefresher
	logger   *logger.Logger
}

func NewRatings(api model.RatingAPI, sessions AuthSession, catalog RecipeRefresher, logger *logger.Logger) *Ratings {
	return &Ratings{
		api:      api,
		sessions: sessions,
		catalog:  catalog,
		logger:   logger,
	}
}

// Rate rates a recipe with 1 to 5 stars. A failed catalog refresh is logged
// and does not fail the rating.
func (r *Ratings) Rate(ctx context.Context, recipeID int64, stars int, comment string) (model.Rating, error) {
	authCtx, sess, _ := r.sessions.AuthContext(ctx)
	if !sess.Authenticated() {
		return model.Rating{}, &model.AuthError{Message: "Please log in to rate recipes", Err: model.ErrNoSession}
	}
	if stars < minStars || stars > maxStars {
		return model.Rating{}, &model.ValidationError{Field: "rating", Message: "Rating must be between 1 and 5"}
	}

	rating, err := r.api.RateRecipe(authCtx, recipeID, stars, strings.TrimSpace(comment))
	if err != nil {
		r.logger.Info("Rating service: rating rejected",
			"recipe_id", recipeID,
			"error", err.Error())
		return model.Rating{}, err
	}

	if _, err := r.catalog.Refresh(ctx, recipeID); err != nil && !errors.Is(err, model.ErrSessionChanged) {
		r.logger.Warn("Rating service: failed to refresh rated recipe",
			"recipe_id", recipeID,
			"error", err.Error())
	}

	r.logger.Info("Rating service: recipe rated",
		"recipe_id", recipeID,
		"stars", stars)
	return rating, nil
}
