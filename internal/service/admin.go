package service

import (
	"context"

	"github.com/dtroode/healthyrecipe-client/internal/demo"
	"github.com/dtroode/healthyrecipe-client/internal/logger"
	"github.com/dtroode/healthyrecipe-client/internal/model"
)

// UsersReport is the admin user list. Degraded is set when the list is the
// demo dataset standing in for a failed request.
type UsersReport struct {
	Users    []model.UserRecord
	Degraded bool
	Err      error
}

// Admin serves the admin panel.
type Admin struct {
	api      model.AdminAPI
	sessions AuthSession
	gate     *RoleGate
	demoMode bool
	logger   *logger.Logger
}

func NewAdmin(api model.AdminAPI, sessions AuthSession, gate *RoleGate, demoMode bool, logger *logger.Logger) *Admin {
	return &Admin{
		api:      api,
		sessions: sessions,
		gate:     gate,
		demoMode: demoMode,
		logger:   logger,
	}
}

// Users lists platform users. In demo mode a failed request falls back to
// the demo users.
func (a *Admin) Users(ctx context.Context) (UsersReport, error) {
	if err := a.gate.Require(model.CapViewAdmin); err != nil {
		return UsersReport{}, err
	}

	authCtx, _, _ := a.sessions.AuthContext(ctx)
	users, err := a.api.ListUsers(authCtx)
	if err == nil {
		return UsersReport{Users: users}, nil
	}

	if !a.demoMode {
		a.logger.Error("Admin service: failed to list users", "error", err.Error())
		return UsersReport{}, err
	}

	a.logger.Warn("Admin service: listing users failed, serving demo users", "error", err.Error())
	return UsersReport{Users: demo.Users(), Degraded: true, Err: err}, nil
}

// PendingRecipes lists recipes awaiting moderation.
func (a *Admin) PendingRecipes(ctx context.Context) ([]model.Recipe, error) {
	if err := a.gate.Require(model.CapViewAdmin); err != nil {
		return nil, err
	}

	authCtx, _, _ := a.sessions.AuthContext(ctx)
	recipes, err := a.api.PendingRecipes(authCtx)
	if err != nil {
		a.logger.Error("Admin service: failed to list pending recipes", "error", err.Error())
		return nil, err
	}
	return recipes, nil
}

// Approve publishes a pending recipe.
func (a *Admin) Approve(ctx context.Context, id int64) (model.Recipe, error) {
	return a.moderate(ctx, id, "approve", a.api.ApproveRecipe)
}

// Reject declines a pending recipe.
func (a *Admin) Reject(ctx context.Context, id int64) (model.Recipe, error) {
	return a.moderate(ctx, id, "reject", a.api.RejectRecipe)
}

func (a *Admin) moderate(
	ctx context.Context,
	id int64,
	action string,
	call func(context.Context, int64) (model.Recipe, error),
) (model.Recipe, error) {
	if err := a.gate.Require(model.CapViewAdmin); err != nil {
		return model.Recipe{}, err
	}

	authCtx, _, _ := a.sessions.AuthContext(ctx)
	recipe, err := call(authCtx, id)
	if err != nil {
		a.logger.Error("Admin service: moderation failed",
			"action", action,
			"recipe_id", id,
			"error", err.Error())
		return model.Recipe{}, err
	}

	a.logger.Info("Admin service: recipe moderated",
		"action", action,
		"recipe_id", id,
		"status", string(recipe.Status))
	return recipe, nil
}
