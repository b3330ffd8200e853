package client

import (
	"context"
	"net/http"

	"github.com/dtroode/healthyrecipe-client/internal/model"
)

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signUpRequest struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Role        []string `json:"role"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	Bio         string   `json:"bio,omitempty"`
}

// SignIn exchanges credentials for a token and profile. Every rejection is
// reported as *model.AuthError.
func (c *Client) SignIn(ctx context.Context, username, password string) (model.SignInResult, error) {
	var resp profileDTO
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/signin",
		body:   signInRequest{Username: username, Password: password},
	}, &resp)
	if err != nil {
		return model.SignInResult{}, asAuthError(err)
	}

	if resp.Token == "" {
		return model.SignInResult{}, &model.AuthError{Message: "sign-in response carries no token"}
	}

	profile := resp.toModel()
	if profile.Role == model.RoleAnonymous {
		profile.Role = model.RoleUser
	}

	return model.SignInResult{Token: resp.Token, Profile: profile}, nil
}

// SignUp registers a new account. Server rejections are reported as
// *model.ValidationError with the server message.
func (c *Client) SignUp(ctx context.Context, reg model.Registration) error {
	role := reg.Role
	if role == model.RoleAnonymous {
		role = model.RoleUser
	}

	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/signup",
		body: signUpRequest{
			FirstName:   reg.FirstName,
			LastName:    reg.LastName,
			Username:    reg.Username,
			Email:       reg.Email,
			Password:    reg.Password,
			Role:        []string{role.String()},
			PhoneNumber: reg.PhoneNumber,
			Bio:         reg.Bio,
		},
	}, nil)
	if err != nil {
		return asValidationError(err)
	}
	return nil
}

// Validate fetches the authoritative profile for the token in ctx.
func (c *Client) Validate(ctx context.Context) (model.Profile, error) {
	var resp profileDTO
	if err := c.call(ctx, request{method: http.MethodGet, path: "/api/auth/validate"}, &resp); err != nil {
		return model.Profile{}, err
	}
	return resp.toModel(), nil
}
