package client

import (
	"context"
	"net/http"

	"github.com/dtroode/healthyrecipe-client/internal/model"
)

// ListFavorites fetches the caller's favorite recipes.
func (c *Client) ListFavorites(ctx context.Context) ([]model.Recipe, error) {
	var resp recipeList
	if err := c.call(ctx, request{method: http.MethodGet, path: "/api/favorites"}, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// AddFavorite marks a recipe as favorite.
func (c *Client) AddFavorite(ctx context.Context, recipeID int64) error {
	return c.call(ctx, request{method: http.MethodPost, path: idPath("/api/favorites/add/%d", recipeID)}, nil)
}

// RemoveFavorite unmarks a recipe as favorite.
func (c *Client) RemoveFavorite(ctx context.Context, recipeID int64) error {
	return c.call(ctx, request{method: http.MethodDelete, path: idPath("/api/favorites/remove/%d", recipeID)}, nil)
}
