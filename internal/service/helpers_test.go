package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	restctx "github.com/dtroode/healthyrecipe-client/internal/api/rest/context"
	"github.com/dtroode/healthyrecipe-client/internal/mocks"
	"github.com/dtroode/healthyrecipe-client/internal/model"
	"github.com/dtroode/healthyrecipe-client/internal/repository/memory"
	"github.com/dtroode/healthyrecipe-client/internal/testutil"
)

const testPassword = "secret1"

type sessionFixture struct {
	auth     *mocks.AuthAPI
	profiles *mocks.ProfileAPI
	store    *memory.StateRepository
	tokens   *mocks.TokenInspector
	sessions *SessionStore
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	f := &sessionFixture{
		auth:     mocks.NewAuthAPI(t),
		profiles: mocks.NewProfileAPI(t),
		store:    memory.NewStateRepository(),
		tokens:   mocks.NewTokenInspector(t),
	}
	f.tokens.On("ExpiresAt", mock.Anything).Return(time.Time{}, false).Maybe()
	f.sessions = NewSessionStore(
		f.auth,
		f.profiles,
		f.store,
		f.tokens,
		restctx.NewManager(),
		nil,
		testutil.MakeNoopLogger(),
	)
	return f
}

func (f *sessionFixture) signIn(t *testing.T, username string, role model.Role) model.Session {
	t.Helper()

	f.auth.On("SignIn", mock.Anything, username, testPassword).
		Return(model.SignInResult{
			Token:   "token-" + username,
			Profile: model.Profile{ID: 7, Username: username, Email: username + "@example.com", Role: role},
		}, nil).
		Once()

	sess, err := f.sessions.SignIn(context.Background(), username, testPassword)
	require.NoError(t, err)
	return sess
}

// hasToken matches contexts that carry the given bearer token.
func hasToken(token string) any {
	cm := restctx.NewManager()
	return mock.MatchedBy(func(ctx context.Context) bool {
		got, ok := cm.GetTokenFromContext(ctx)
		return ok && got == token
	})
}

func testRecipe(id int64, title string) model.Recipe {
	return model.Recipe{
		ID:          id,
		Title:       title,
		Description: title + " description",
		CookingTime: int(id) * 5,
		Servings:    2,
		Difficulty:  "Easy",
		Category:    "Healthy",
		Rating:      float64(id%5) + 0.5,
		Ingredients: []string{"salt"},
		CreatedAt:   time.Date(2024, 1, int(id%28)+1, 0, 0, 0, 0, time.UTC),
		Status:      model.RecipeStatusApproved,
	}
}
