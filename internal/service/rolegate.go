package service

import (
	"github.com/dtroode/healthyrecipe-client/internal/model"
)

var (
	anonymousCaps = model.NewCapabilitySet(model.CapViewPublicCatalog)
	userCaps      = anonymousCaps.With(model.CapViewFavorites, model.CapViewProfile)
	chefCaps      = userCaps.With(model.CapCreateRecipe)
	adminCaps     = chefCaps.With(model.CapViewAdmin)
)

// CapabilitiesFor maps a role to its capability set. Every role's set
// contains the sets of the roles below it.
func CapabilitiesFor(role model.Role) model.CapabilitySet {
	switch role {
	case model.RoleUser:
		return userCaps
	case model.RoleChef:
		return chefCaps
	case model.RoleAdmin:
		return adminCaps
	default:
		return anonymousCaps
	}
}

// RoleGate answers capability questions for the live session. Nothing is
// cached; every call reads the current role.
type RoleGate struct {
	sessions model.SessionReader
}

func NewRoleGate(sessions model.SessionReader) *RoleGate {
	return &RoleGate{sessions: sessions}
}

// Current returns the capabilities of the current session.
func (g *RoleGate) Current() model.CapabilitySet {
	return CapabilitiesFor(g.sessions.Current().Role())
}

// Allows reports whether the current session has capability c.
func (g *RoleGate) Allows(c model.Capability) bool {
	return g.Current().Has(c)
}

// Require returns an *model.AuthError when the current session lacks c.
// Anonymous callers get model.ErrNoSession, signed-in callers
// model.ErrForbidden.
func (g *RoleGate) Require(c model.Capability) error {
	sess := g.sessions.Current()
	if CapabilitiesFor(sess.Role()).Has(c) {
		return nil
	}
	if !sess.Authenticated() {
		return &model.AuthError{Message: "Please log in to continue", Err: model.ErrNoSession}
	}
	return &model.AuthError{
		Message: "Your role does not allow " + c.String(),
		Err:     model.ErrForbidden,
	}
}
