package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dtroode/healthyrecipe-client/internal/logger"
	"github.com/dtroode/healthyrecipe-client/internal/model"
)

// MinPasswordLength is the minimum password length in characters.
const MinPasswordLength = 6

var _ model.SessionReader = (*SessionStore)(nil)

type subscriber struct {
	id int
	fn func(model.SessionEvent)
}

// SessionStore owns the authentication token and profile. It persists them
// to the state store, validates them against the server and publishes every
// change to subscribers.
type SessionStore struct {
	auth           model.AuthAPI
	profiles       model.ProfileAPI
	store          model.StateStore
	tokens         model.TokenInspector
	contextManager model.ContextManager
	metrics        model.Metrics
	logger         *logger.Logger
	now            func() time.Time

	// writeMu serializes mutations, storage writes included. mu guards the
	// in-memory state and is never held during I/O.
	writeMu sync.Mutex
	mu      sync.RWMutex
	session model.Session
	epoch   uint64

	subMu     sync.Mutex
	subs      []subscriber
	nextSubID int
}

func NewSessionStore(
	auth model.AuthAPI,
	profiles model.ProfileAPI,
	store model.StateStore,
	tokens model.TokenInspector,
	contextManager model.ContextManager,
	metrics model.Metrics,
	logger *logger.Logger,
) *SessionStore {
	if metrics == nil {
		metrics = model.NoopMetrics{}
	}
	return &SessionStore{
		auth:           auth,
		profiles:       profiles,
		store:          store,
		tokens:         tokens,
		contextManager: contextManager,
		metrics:        metrics,
		logger:         logger,
		now:            time.Now,
	}
}

// Current returns the current session.
func (s *SessionStore) Current() model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Epoch returns the identity generation. It changes on sign-in, restore and
// logout, never on profile refreshes.
func (s *SessionStore) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

func (s *SessionStore) snapshot() (model.Session, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, s.epoch
}

// Subscribe registers fn for session events. Events are delivered
// synchronously, in registration order, after the change is applied.
func (s *SessionStore) Subscribe(fn func(model.SessionEvent)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *SessionStore) publish(ev model.SessionEvent) {
	s.subMu.Lock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	s.metrics.SessionTransition(ev.Kind)
	for _, sub := range subs {
		sub.fn(ev)
	}
}

// AuthContext returns ctx carrying the current token together with the
// session and epoch it was taken from.
func (s *SessionStore) AuthContext(ctx context.Context) (context.Context, model.Session, uint64) {
	sess, epoch := s.snapshot()
	return s.contextManager.SetTokenToContext(ctx, sess.Token()), sess, epoch
}

// SignIn authenticates and establishes a new session. The prior session is
// untouched on failure.
func (s *SessionStore) SignIn(ctx context.Context, username, password string) (model.Session, error) {
	s.logger.Debug("Session service: signing in", "username", username)

	epoch := s.Epoch()

	res, err := s.auth.SignIn(ctx, username, password)
	if err != nil {
		s.logger.Info("Session service: sign in rejected",
			"username", username,
			"error", err.Error())
		return model.Session{}, err
	}

	sess, err := model.NewSession(res.Token, &res.Profile)
	if err != nil {
		return model.Session{}, &model.AuthError{Message: "incomplete sign-in response", Err: err}
	}

	s.writeMu.Lock()
	if s.Epoch() != epoch {
		s.writeMu.Unlock()
		s.logger.Info("Session service: discarding stale sign in", "username", username)
		return model.Session{}, model.ErrSessionChanged
	}
	if err := s.persist(ctx, sess, true); err != nil {
		s.writeMu.Unlock()
		s.logger.Error("Session service: failed to persist session",
			"username", username,
			"error", err.Error())
		return model.Session{}, err
	}
	ev := s.install(sess, model.SessionEstablished)
	s.writeMu.Unlock()

	s.logger.Info("Session service: signed in",
		"username", username,
		"role", sess.Role().String())
	s.publish(ev)

	return sess, nil
}

// SignUp validates the registration locally and submits it. A successful
// sign-up does not sign the user in.
func (s *SessionStore) SignUp(ctx context.Context, reg model.Registration) error {
	if err := validatePassword(reg.Password, reg.ConfirmPassword); err != nil {
		return err
	}
	if strings.TrimSpace(reg.Username) == "" {
		return &model.ValidationError{Field: "username", Message: "Username is required"}
	}
	if reg.Role == model.RoleAnonymous {
		reg.Role = model.RoleUser
	}

	if err := s.auth.SignUp(ctx, reg); err != nil {
		s.logger.Info("Session service: sign up rejected",
			"username", reg.Username,
			"error", err.Error())
		return err
	}

	s.logger.Info("Session service: signed up",
		"username", reg.Username,
		"role", reg.Role.String())
	return nil
}

// Restore loads the persisted session without contacting the server.
// A partial or unreadable session is deleted from storage, as is a token
// whose expiry has already passed; the anonymous session is then published
// as cleared.
func (s *SessionStore) Restore(ctx context.Context) (model.Session, error) {
	s.writeMu.Lock()

	token, tokenErr := s.store.Get(ctx, model.KeyAuthToken)
	rawProfile, profileErr := s.store.Get(ctx, model.KeyCurrentUser)
	for _, err := range []error{tokenErr, profileErr} {
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			s.writeMu.Unlock()
			return model.Session{}, fmt.Errorf("failed to read session: %w", err)
		}
	}

	if tokenErr != nil && profileErr != nil {
		s.writeMu.Unlock()
		s.logger.Debug("Session service: no stored session")
		return model.Session{}, nil
	}

	sess, reason := s.decodeStored(token, tokenErr, rawProfile, profileErr)
	if reason != "" {
		s.logger.Warn("Session service: discarding stored session", "reason", reason)
		if err := s.store.Delete(ctx, model.KeyAuthToken, model.KeyCurrentUser); err != nil {
			s.writeMu.Unlock()
			return model.Session{}, fmt.Errorf("failed to clear stored session: %w", err)
		}
		ev := s.install(model.Session{}, model.SessionCleared)
		s.writeMu.Unlock()

		s.publish(ev)
		return model.Session{}, nil
	}

	ev := s.install(sess, model.SessionEstablished)
	s.writeMu.Unlock()

	s.logger.Info("Session service: session restored", "role", sess.Role().String())
	s.publish(ev)

	return sess, nil
}

func (s *SessionStore) decodeStored(token string, tokenErr error, rawProfile string, profileErr error) (model.Session, string) {
	if tokenErr != nil || profileErr != nil || token == "" {
		return model.Session{}, "partial session"
	}

	var profile model.Profile
	if err := json.Unmarshal([]byte(rawProfile), &profile); err != nil {
		return model.Session{}, "unreadable profile"
	}
	if profile.Role == model.RoleAnonymous {
		profile.Role = model.RoleUser
	}

	if exp, ok := s.tokens.ExpiresAt(token); ok && !exp.After(s.now()) {
		return model.Session{}, "token expired"
	}

	sess, err := model.NewSession(token, &profile)
	if err != nil {
		return model.Session{}, "partial session"
	}
	return sess, ""
}

// Validate re-fetches the authoritative profile. Any failure while the
// session is unchanged logs the user out. A response that arrives after the
// session changed is discarded with model.ErrSessionChanged.
func (s *SessionStore) Validate(ctx context.Context) (model.Profile, error) {
	authCtx, sess, epoch := s.AuthContext(ctx)
	if !sess.Authenticated() {
		return model.Profile{}, model.ErrNoSession
	}

	profile, err := s.auth.Validate(authCtx)
	if s.Epoch() != epoch {
		s.logger.Info("Session service: discarding stale validation")
		return model.Profile{}, model.ErrSessionChanged
	}

	if err != nil {
		s.logger.Warn("Session service: validation failed, logging out", "error", err.Error())
		if logoutErr := s.logoutAt(ctx, epoch, true); logoutErr != nil && !errors.Is(logoutErr, model.ErrSessionChanged) {
			s.logger.Error("Session service: logout after failed validation",
				"error", logoutErr.Error())
		}
		return model.Profile{}, err
	}

	current, _ := sess.Profile()
	if profile.Role == model.RoleAnonymous {
		profile.Role = current.Role
	}

	return s.refresh(ctx, epoch, profile)
}

// UpdateProfile sends profile edits and merges the server's answer into the
// current profile.
func (s *SessionStore) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (model.Profile, error) {
	authCtx, sess, epoch := s.AuthContext(ctx)
	if !sess.Authenticated() {
		return model.Profile{}, &model.AuthError{Message: "Please log in to update profile", Err: model.ErrNoSession}
	}

	if strings.TrimSpace(update.Username) == "" {
		return model.Profile{}, &model.ValidationError{Field: "username", Message: "Username is required"}
	}
	if strings.TrimSpace(update.Email) == "" {
		return model.Profile{}, &model.ValidationError{Field: "email", Message: "Email is required"}
	}
	if update.Password != "" || update.ConfirmPassword != "" {
		if err := validatePassword(update.Password, update.ConfirmPassword); err != nil {
			return model.Profile{}, err
		}
	}

	changes, err := s.profiles.UpdateProfile(authCtx, update)
	if err != nil {
		s.logger.Info("Session service: profile update rejected", "error", err.Error())
		return model.Profile{}, err
	}

	if changes.Username == nil && changes.Email == nil && changes.FirstName == nil && changes.LastName == nil {
		changes.Username = &update.Username
		changes.Email = &update.Email
	}

	current, _ := sess.Profile()
	return s.refresh(ctx, epoch, changes.Apply(current))
}

// refresh persists and installs profile for the same identity.
func (s *SessionStore) refresh(ctx context.Context, epoch uint64, profile model.Profile) (model.Profile, error) {
	s.writeMu.Lock()
	sess, current := s.snapshot()
	if current != epoch || !sess.Authenticated() {
		s.writeMu.Unlock()
		return model.Profile{}, model.ErrSessionChanged
	}

	next := sess.WithProfile(profile)
	if err := s.persist(ctx, next, false); err != nil {
		s.writeMu.Unlock()
		s.logger.Error("Session service: failed to persist profile", "error", err.Error())
		return model.Profile{}, err
	}
	ev := s.install(next, model.SessionRefreshed)
	s.writeMu.Unlock()

	s.publish(ev)
	return profile, nil
}

// Logout clears the session in memory and storage. Memory is cleared even
// when the storage delete fails; that error is returned afterwards.
func (s *SessionStore) Logout(ctx context.Context) error {
	return s.logoutAt(ctx, 0, false)
}

func (s *SessionStore) logoutAt(ctx context.Context, epoch uint64, conditional bool) error {
	s.writeMu.Lock()
	if conditional && s.Epoch() != epoch {
		s.writeMu.Unlock()
		return model.ErrSessionChanged
	}

	delErr := s.store.Delete(ctx, model.KeyAuthToken, model.KeyCurrentUser)
	ev := s.install(model.Session{}, model.SessionCleared)
	s.writeMu.Unlock()

	s.logger.Info("Session service: logged out")
	s.publish(ev)

	if delErr != nil {
		s.logger.Error("Session service: failed to delete stored session", "error", delErr.Error())
		return fmt.Errorf("failed to delete stored session: %w", delErr)
	}
	return nil
}

// install swaps the in-memory session. Callers hold writeMu.
func (s *SessionStore) install(sess model.Session, kind model.SessionEventKind) model.SessionEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = sess
	if kind != model.SessionRefreshed {
		s.epoch++
	}
	return model.SessionEvent{Kind: kind, Session: sess, Epoch: s.epoch}
}

// persist writes the session. withToken is false for profile refreshes.
func (s *SessionStore) persist(ctx context.Context, sess model.Session, withToken bool) error {
	profile, _ := sess.Profile()
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	values := map[string]string{model.KeyCurrentUser: string(raw)}
	if withToken {
		values[model.KeyAuthToken] = sess.Token()
	}

	if err := s.store.PutAll(ctx, values); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

func validatePassword(password, confirm string) error {
	if password != confirm {
		return &model.ValidationError{Field: "confirmPassword", Message: "Passwords do not match"}
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return &model.ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength),
		}
	}
	return nil
}
