package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	restctx "github.com/dtroode/healthyrecipe-client/internal/api/rest/context"
	"github.com/dtroode/healthyrecipe-client/internal/mocks"
	"github.com/dtroode/healthyrecipe-client/internal/model"
	"github.com/dtroode/healthyrecipe-client/internal/testutil"
)

func storedProfile(t *testing.T, f *sessionFixture) model.Profile {
	t.Helper()
	raw, err := f.store.Get(context.Background(), model.KeyCurrentUser)
	require.NoError(t, err)
	var p model.Profile
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return p
}

func TestSessionStore_SignIn_ChefMary(t *testing.T) {
	f := newSessionFixture(t)

	var events []model.SessionEvent
	f.sessions.Subscribe(func(ev model.SessionEvent) { events = append(events, ev) })

	sess := f.signIn(t, "chef_mary", model.RoleChef)

	assert.True(t, sess.Authenticated())
	assert.Equal(t, model.RoleChef, f.sessions.Current().Role())
	assert.Equal(t, uint64(1), f.sessions.Epoch())

	token, err := f.store.Get(context.Background(), model.KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "token-chef_mary", token)
	assert.Equal(t, "chef_mary", storedProfile(t, f).Username)
	assert.Equal(t, model.RoleChef, storedProfile(t, f).Role)

	require.Len(t, events, 1)
	assert.Equal(t, model.SessionEstablished, events[0].Kind)
	assert.Equal(t, uint64(1), events[0].Epoch)

	gate := NewRoleGate(f.sessions)
	assert.True(t, gate.Allows(model.CapCreateRecipe))
	assert.True(t, gate.Allows(model.CapViewFavorites))
	assert.False(t, gate.Allows(model.CapViewAdmin))
}

func TestSessionStore_SignIn_RejectedKeepsPriorSession(t *testing.T) {
	f := newSessionFixture(t)
	f.signIn(t, "john_doe", model.RoleUser)

	rejected := &model.AuthError{Message: "Error: Invalid username or password!"}
	f.auth.On("SignIn", mock.Anything, "john_doe", "wrong").Return(model.SignInResult{}, rejected).Once()

	_, err := f.sessions.SignIn(context.Background(), "john_doe", "wrong")
	require.Error(t, err)

	var authErr *model.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "Error: Invalid username or password!", authErr.Message)

	assert.True(t, f.sessions.Current().Authenticated())
	assert.Equal(t, "token-john_doe", f.sessions.Current().Token())
	assert.Equal(t, uint64(1), f.sessions.Epoch())
}

func TestSessionStore_SignIn_PersistFailure(t *testing.T) {
	store := mocks.NewStateStore(t)
	auth := mocks.NewAuthAPI(t)
	sessions := NewSessionStore(auth, nil, store, nil, restctx.NewManager(), nil, testutil.MakeNoopLogger())

	auth.On("SignIn", mock.Anything, "john_doe", testPassword).
		Return(model.SignInResult{Token: "tok", Profile: model.Profile{Username: "john_doe", Role: model.RoleUser}}, nil)
	store.On("PutAll", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := sessions.SignIn(context.Background(), "john_doe", testPassword)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.False(t, sessions.Current().Authenticated())
	assert.Equal(t, uint64(0), sessions.Epoch())
}

func TestSessionStore_SignUp_Validation(t *testing.T) {
	tests := []struct {
		name    string
		reg     model.Registration
		field   string
		message string
	}{
		{
			name:    "mismatch is reported before length",
			reg:     model.Registration{Username: "new", Password: "abc", ConfirmPassword: "abd"},
			field:   "confirmPassword",
			message: "Passwords do not match",
		},
		{
			name:    "short password",
			reg:     model.Registration{Username: "new", Password: "abc", ConfirmPassword: "abc"},
			field:   "password",
			message: "Password must be at least 6 characters long",
		},
		{
			name:    "length counts characters",
			reg:     model.Registration{Username: "new", Password: "ééééé", ConfirmPassword: "ééééé"},
			field:   "password",
			message: "Password must be at least 6 characters long",
		},
		{
			name:    "missing username",
			reg:     model.Registration{Username: "  ", Password: testPassword, ConfirmPassword: testPassword},
			field:   "username",
			message: "Username is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSessionFixture(t)

			err := f.sessions.SignUp(context.Background(), tt.reg)
			require.Error(t, err)

			var validationErr *model.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Equal(t, tt.message, validationErr.Message)
			f.auth.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything)
		})
	}
}

func TestSessionStore_SignUp_DefaultsRoleAndDoesNotSignIn(t *testing.T) {
	f := newSessionFixture(t)

	f.auth.On("SignUp", mock.Anything, mock.MatchedBy(func(reg model.Registration) bool {
		return reg.Role == model.RoleUser && reg.Username == "newbie"
	})).Return(nil).Once()

	err := f.sessions.SignUp(context.Background(), model.Registration{
		Username:        "newbie",
		Email:           "newbie@example.com",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	require.NoError(t, err)
	assert.False(t, f.sessions.Current().Authenticated())
	assert.Equal(t, uint64(0), f.sessions.Epoch())
}

func TestSessionStore_Restore(t *testing.T) {
	profileJSON := `{"id":3,"username":"admin","email":"admin@example.com","role":"ADMIN"}`
	expired := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		stored        map[string]string
		expiresAt     time.Time
		wantAuth      bool
		wantRole      model.Role
		wantStoreKeys bool
	}{
		{
			name:   "nothing stored",
			stored: nil,
		},
		{
			name:          "complete session",
			stored:        map[string]string{model.KeyAuthToken: "tok", model.KeyCurrentUser: profileJSON},
			wantAuth:      true,
			wantRole:      model.RoleAdmin,
			wantStoreKeys: true,
		},
		{
			name:   "token without profile",
			stored: map[string]string{model.KeyAuthToken: "tok"},
		},
		{
			name:   "profile without token",
			stored: map[string]string{model.KeyCurrentUser: profileJSON},
		},
		{
			name:   "unreadable profile",
			stored: map[string]string{model.KeyAuthToken: "tok", model.KeyCurrentUser: "{not json"},
		},
		{
			name:      "expired token",
			stored:    map[string]string{model.KeyAuthToken: "tok", model.KeyCurrentUser: profileJSON},
			expiresAt: expired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSessionFixture(t)
			f.sessions.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
			if !tt.expiresAt.IsZero() {
				f.tokens.ExpectedCalls = nil
				f.tokens.On("ExpiresAt", "tok").Return(tt.expiresAt, true)
			}
			if tt.stored != nil {
				require.NoError(t, f.store.PutAll(context.Background(), tt.stored))
			}

			sess, err := f.sessions.Restore(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.wantAuth, sess.Authenticated())
			assert.Equal(t, tt.wantAuth, f.sessions.Current().Authenticated())
			assert.Equal(t, tt.wantRole, f.sessions.Current().Role())

			_, tokenErr := f.store.Get(context.Background(), model.KeyAuthToken)
			_, profileErr := f.store.Get(context.Background(), model.KeyCurrentUser)
			assert.Equal(t, tt.wantStoreKeys, tokenErr == nil)
			assert.Equal(t, tt.wantStoreKeys, profileErr == nil)
		})
	}
}

func TestSessionStore_Restore_StorageError(t *testing.T) {
	store := mocks.NewStateStore(t)
	sessions := NewSessionStore(nil, nil, store, nil, restctx.NewManager(), nil, testutil.MakeNoopLogger())

	store.On("Get", mock.Anything, mock.Anything).Return("", errors.New("database is locked"))

	_, err := sessions.Restore(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read session")
	assert.False(t, sessions.Current().Authenticated())
}

func TestSessionStore_Validate_RefreshesProfile(t *testing.T) {
	f := newSessionFixture(t)
	f.signIn(t, "john_doe", model.RoleUser)

	var events []model.SessionEvent
	f.sessions.Subscribe(func(ev model.SessionEvent) { events = append(events, ev) })

	f.auth.On("Validate", hasToken("token-john_doe")).
		Return(model.Profile{ID: 7, Username: "john_doe", Email: "john@new.example.com", FirstName: "John"}, nil).
		Once()

	profile, err := f.sessions.Validate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "john@new.example.com", profile.Email)
	assert.Equal(t, model.RoleUser, profile.Role, "role is kept when the server reports none")
	assert.Equal(t, "John", storedProfile(t, f).FirstName)
	assert.Equal(t, uint64(1), f.sessions.Epoch(), "refresh keeps the epoch")

	require.Len(t, events, 1)
	assert.Equal(t, model.SessionRefreshed, events[0].Kind)
	assert.False(t, events[0].IdentityChanged())
}

func TestSessionStore_Validate_FailureLogsOut(t *testing.T) {
	f := newSessionFixture(t)
	f.signIn(t, "john_doe", model.RoleUser)

	f.auth.On("Validate", mock.Anything).Return(model.Profile{}, &model.AuthError{Message: "expired"}).Once()

	_, err := f.sessions.Validate(context.Background())
	require.Error(t, err)

	assert.False(t, f.sessions.Current().Authenticated())
	_, getErr := f.store.Get(context.Background(), model.KeyAuthToken)
	assert.ErrorIs(t, getErr, model.ErrNotFound)
}

func TestSessionStore_Validate_AfterLogoutIsDiscarded(t *testing.T) {
	f := newSessionFixture(t)
	f.signIn(t, "john_doe", model.RoleUser)

	f.auth.On("Validate", mock.Anything).
		Run(func(args mock.Arguments) {
			require.NoError(t, f.sessions.Logout(context.Background()))
		}).
		Return(model.Profile{ID: 7, Username: "john_doe", Role: model.RoleUser}, nil).
		Once()

	_, err := f.sessions.Validate(context.Background())
	assert.ErrorIs(t, err, model.ErrSessionChanged)

	assert.False(t, f.sessions.Current().Authenticated())
	_, getErr := f.store.Get(context.Background(), model.KeyCurrentUser)
	assert.ErrorIs(t, getErr, model.ErrNotFound)
}

func TestSessionStore_Validate_FailureAfterNewSignInKeepsNewSession(t *testing.T) {
	f := newSessionFixture(t)
	f.signIn(t, "john_doe", model.RoleUser)

	f.auth.On("Validate", mock.Anything).
		Run(func(args mock.Arguments) {
			f.signIn(t, "admin", model.RoleAdmin)
		}).
		Return(model.Profile{}, &model.AuthError{Message: "expired"}).
		Once()

	_, err := f.sessions.Validate(context.Background())
	assert.ErrorIs(t, err, model.ErrSessionChanged)
	assert.Equal(t, model.RoleAdmin, f.sessions.Current().Role())
}

func TestSessionStore_Validate_NoSession(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.sessions.Validate(context.Background())
	assert.ErrorIs(t, err, model.ErrNoSession)
}

func TestSessionStore_UpdateProfile(t *testing.T) {
	f := newSessionFixture(t)
	f.signIn(t, "john_doe", model.RoleUser)

	newEmail := "john@fresh.example.com"
	f.profiles.On("UpdateProfile", hasToken("token-john_doe"), model.ProfileUpdate{
		Username: "john_doe",
		Email:    newEmail,
	}).Return(model.ProfileChanges{Email: &newEmail}, nil).Once()

	profile, err := f.sessions.UpdateProfile(context.Background(), model.ProfileUpdate{Username: "john_doe", Email: newEmail})
	require.NoError(t, err)

	assert.Equal(t, newEmail, profile.Email)
	assert.Equal(t, "john_doe", profile.Username)
	assert.Equal(t, model.RoleUser, profile.Role)
	assert.Equal(t, newEmail, storedProfile(t, f).Email)
	assert.Equal(t, "token-john_doe", f.sessions.Current().Token())
}

func TestSessionStore_UpdateProfile_EmptyResponseUsesSubmitted(t *testing.T) {
	f := newSessionFixture(t)
	f.signIn(t, "john_doe", model.RoleUser)

	f.profiles.On("UpdateProfile", mock.Anything, mock.Anything).Return(model.ProfileChanges{}, nil).Once()

	profile, err := f.sessions.UpdateProfile(context.Background(), model.ProfileUpdate{Username: "johnny", Email: "j@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "johnny", profile.Username)
	assert.Equal(t, "j@example.com", profile.Email)
}

func TestSessionStore_UpdateProfile_Validation(t *testing.T) {
	tests := []struct {
		name   string
		update model.ProfileUpdate
		field  string
	}{
		{name: "username", update: model.ProfileUpdate{Email: "a@b.c"}, field: "username"},
		{name: "email", update: model.ProfileUpdate{Username: "john_doe"}, field: "email"},
		{name: "password mismatch", update: model.ProfileUpdate{Username: "john_doe", Email: "a@b.c", Password: "secret12"}, field: "confirmPassword"},
		{name: "short password", update: model.ProfileUpdate{Username: "john_doe", Email: "a@b.c", Password: "abc", ConfirmPassword: "abc"}, field: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSessionFixture(t)
			f.signIn(t, "john_doe", model.RoleUser)

			_, err := f.sessions.UpdateProfile(context.Background(), tt.update)
			var validationErr *model.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestSessionStore_UpdateProfile_NoSession(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.sessions.UpdateProfile(context.Background(), model.ProfileUpdate{Username: "x", Email: "y"})
	var authErr *model.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.ErrorIs(t, err, model.ErrNoSession)
}

func TestSessionStore_Logout_DeleteFailureStillClearsMemory(t *testing.T) {
	store := mocks.NewStateStore(t)
	auth := mocks.NewAuthAPI(t)
	sessions := NewSessionStore(auth, nil, store, nil, restctx.NewManager(), nil, testutil.MakeNoopLogger())

	auth.On("SignIn", mock.Anything, "john_doe", testPassword).
		Return(model.SignInResult{Token: "tok", Profile: model.Profile{Username: "john_doe", Role: model.RoleUser}}, nil)
	store.On("PutAll", mock.Anything, mock.Anything).Return(nil)
	store.On("Delete", mock.Anything, model.KeyAuthToken, model.KeyCurrentUser).Return(errors.New("read-only file system"))

	_, err := sessions.SignIn(context.Background(), "john_doe", testPassword)
	require.NoError(t, err)

	err = sessions.Logout(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only file system")
	assert.False(t, sessions.Current().Authenticated())
	assert.Equal(t, uint64(2), sessions.Epoch())
}

func TestSessionStore_SubscribersRunInOrder(t *testing.T) {
	f := newSessionFixture(t)

	var order []string
	f.sessions.Subscribe(func(model.SessionEvent) { order = append(order, "first") })
	unsubscribe := f.sessions.Subscribe(func(model.SessionEvent) { order = append(order, "second") })
	f.sessions.Subscribe(func(ev model.SessionEvent) {
		assert.Equal(t, ev.Session, f.sessions.Current(), "subscribers observe the applied change")
		order = append(order, "third")
	})

	f.signIn(t, "john_doe", model.RoleUser)
	assert.Equal(t, []string{"first", "second", "third"}, order)

	unsubscribe()
	order = nil
	require.NoError(t, f.sessions.Logout(context.Background()))
	assert.Equal(t, []string{"first", "third"}, order)
}

func TestSessionStore_TokenAndProfileStayTogether(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	check := func(step string) {
		sess := f.sessions.Current()
		_, hasProfile := sess.Profile()
		assert.Equal(t, sess.Token() != "", hasProfile, step)

		_, tokenErr := f.store.Get(ctx, model.KeyAuthToken)
		_, profileErr := f.store.Get(ctx, model.KeyCurrentUser)
		assert.Equal(t, tokenErr == nil, profileErr == nil, step)
		assert.Equal(t, sess.Authenticated(), tokenErr == nil, step)
	}

	check("initial")
	f.signIn(t, "john_doe", model.RoleUser)
	check("sign in")

	f.auth.On("Validate", mock.Anything).Return(model.Profile{Username: "john_doe", Role: model.RoleChef}, nil).Once()
	_, err := f.sessions.Validate(ctx)
	require.NoError(t, err)
	check("validate")
	assert.Equal(t, model.RoleChef, f.sessions.Current().Role())

	f.signIn(t, "admin", model.RoleAdmin)
	check("second sign in")

	require.NoError(t, f.sessions.Logout(ctx))
	check("logout")

	_, err = f.sessions.Restore(ctx)
	require.NoError(t, err)
	check("restore after logout")

	f.auth.On("Validate", mock.Anything).Return(model.Profile{}, &model.ServerError{Status: 500}).Maybe()
	_, err = f.sessions.Validate(ctx)
	assert.ErrorIs(t, err, model.ErrNoSession)
	check("validate without session")
}

func TestSessionStore_Restore_RepairPublishesCleared(t *testing.T) {
	f := newSessionFixture(t)
	require.NoError(t, f.store.PutAll(context.Background(), map[string]string{model.KeyAuthToken: "tok"}))

	var events []model.SessionEvent
	f.sessions.Subscribe(func(ev model.SessionEvent) { events = append(events, ev) })

	_, err := f.sessions.Restore(context.Background())
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, model.SessionCleared, events[0].Kind)
	assert.False(t, events[0].Session.Authenticated())
}
