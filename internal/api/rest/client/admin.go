package client

import (
	"context"
	"net/http"

	"github.com/dtroode/healthyrecipe-client/internal/model"
)

// ListUsers fetches all platform users.
func (c *Client) ListUsers(ctx context.Context) ([]model.UserRecord, error) {
	var resp userList
	if err := c.call(ctx, request{method: http.MethodGet, path: "/api/admin/users"}, &resp); err != nil {
		return nil, err
	}

	out := make([]model.UserRecord, 0, len(resp))
	for _, u := range resp {
		out = append(out, u.toModel())
	}
	return out, nil
}

// PendingRecipes fetches recipes awaiting moderation.
func (c *Client) PendingRecipes(ctx context.Context) ([]model.Recipe, error) {
	var resp recipeList
	if err := c.call(ctx, request{method: http.MethodGet, path: "/api/admin/recipes/pending"}, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// ApproveRecipe publishes a pending recipe.
func (c *Client) ApproveRecipe(ctx context.Context, id int64) (model.Recipe, error) {
	return c.moderate(ctx, idPath("/api/admin/recipes/%d/approve", id))
}

// RejectRecipe rejects a pending recipe.
func (c *Client) RejectRecipe(ctx context.Context, id int64) (model.Recipe, error) {
	return c.moderate(ctx, idPath("/api/admin/recipes/%d/reject", id))
}

func (c *Client) moderate(ctx context.Context, path string) (model.Recipe, error) {
	var resp recipeDTO
	if err := c.call(ctx, request{method: http.MethodPut, path: path}, &resp); err != nil {
		return model.Recipe{}, err
	}
	return resp.toModel(), nil
}
