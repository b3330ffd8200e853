package model

import (
	"context"
	"time"
)

// SignInResult is the server's answer to a successful sign-in.
type SignInResult struct {
	Token   string
	Profile Profile
}

// Registration holds the sign-up form.
type Registration struct {
	FirstName       string
	LastName        string
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	Role            Role
	PhoneNumber     string
	Bio             string
}

// ProfileUpdate holds editable profile fields. Password is optional.
type ProfileUpdate struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// ProfileChanges are the fields the server echoes back after an update.
// Nil fields were not returned.
type ProfileChanges struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
}

// Apply merges the changes into p.
func (c ProfileChanges) Apply(p Profile) Profile {
	if c.Username != nil {
		p.Username = *c.Username
	}
	if c.Email != nil {
		p.Email = *c.Email
	}
	if c.FirstName != nil {
		p.FirstName = *c.FirstName
	}
	if c.LastName != nil {
		p.LastName = *c.LastName
	}
	return p
}

// UserRecord is a user row in the admin panel.
type UserRecord struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthAPI is the server boundary for authentication.
type AuthAPI interface {
	SignIn(ctx context.Context, username, password string) (SignInResult, error)
	SignUp(ctx context.Context, reg Registration) error
	// Validate returns the authoritative profile. A zero Role means the
	// server did not report one.
	Validate(ctx context.Context) (Profile, error)
}

// ProfileAPI is the server boundary for profile edits.
type ProfileAPI interface {
	UpdateProfile(ctx context.Context, update ProfileUpdate) (ProfileChanges, error)
}

// AdminAPI is the server boundary for the admin panel.
type AdminAPI interface {
	ListUsers(ctx context.Context) ([]UserRecord, error)
	PendingRecipes(ctx context.Context) ([]Recipe, error)
	ApproveRecipe(ctx context.Context, id int64) (Recipe, error)
	RejectRecipe(ctx context.Context, id int64) (Recipe, error)
}
