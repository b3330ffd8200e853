package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dtroode/healthyrecipe-client/internal/model"
)

// RateRecipe creates or updates the caller's rating of a recipe.
func (c *Client) RateRecipe(ctx context.Context, recipeID int64, stars int, comment string) (model.Rating, error) {
	query := url.Values{}
	query.Set("rating", strconv.Itoa(stars))
	if comment != "" {
		query.Set("comment", comment)
	}

	var resp model.Rating
	err := c.call(ctx, request{
		method: http.MethodPost,
		path:   idPath("/api/ratings/recipe/%d", recipeID),
		query:  query,
	}, &resp)
	if err != nil {
		return model.Rating{}, err
	}
	if resp.RecipeID == 0 {
		resp.RecipeID = recipeID
	}
	return resp, nil
}
