package client

import (
	"context"
	"net/http"

	"github.com/dtroode/healthyrecipe-client/internal/model"
)

// ListRecipes fetches the recipe collection visible to the caller.
func (c *Client) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	var resp recipeList
	if err := c.call(ctx, request{method: http.MethodGet, path: "/api/recipes"}, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// GetRecipe fetches a single recipe.
func (c *Client) GetRecipe(ctx context.Context, id int64) (model.Recipe, error) {
	var resp recipeDTO
	if err := c.call(ctx, request{method: http.MethodGet, path: idPath("/api/recipes/%d", id)}, &resp); err != nil {
		return model.Recipe{}, err
	}
	return resp.toModel(), nil
}

// CreateRecipe submits a draft. requestID is sent as X-Request-ID so that a
// retried submission can be recognised by the server.
func (c *Client) CreateRecipe(ctx context.Context, draft model.RecipeDraft, requestID string) (model.Recipe, error) {
	header := http.Header{}
	if requestID != "" {
		header.Set("X-Request-ID", requestID)
	}

	var resp recipeDTO
	err := c.call(ctx, request{
		method: http.MethodPost,
		path:   "/api/recipes",
		header: header,
		body:   draft,
	}, &resp)
	if err != nil {
		return model.Recipe{}, err
	}

	recipe := resp.toModel()
	if recipe.Status == "" {
		recipe.Status = model.RecipeStatusPending
	}
	return recipe, nil
}
