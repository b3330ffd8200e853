package client

import (
	"context"
	"net/http"

	"github.com/dtroode/healthyrecipe-client/internal/model"
)

type profileUpdateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

type profileChangesDTO struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// UpdateProfile sends editable profile fields. The password is only sent
// when set.
func (c *Client) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (model.ProfileChanges, error) {
	var resp profileChangesDTO
	err := c.call(ctx, request{
		method: http.MethodPut,
		path:   "/api/profile/update",
		body: profileUpdateRequest{
			Username: update.Username,
			Email:    update.Email,
			Password: update.Password,
		},
	}, &resp)
	if err != nil {
		return model.ProfileChanges{}, err
	}

	return model.ProfileChanges{
		Username:  resp.Username,
		Email:     resp.Email,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
	}, nil
}
