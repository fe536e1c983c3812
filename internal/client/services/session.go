// Package services contains application services for the auth client.
// This file defines the session store: the single owner of the access token
// and the current user, mirrored to local storage so a restart can resume.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
)

var (
	// ErrSessionInvalidated is returned when a token was stored but the
	// backend refused to say who it belongs to. The session is logged out.
	ErrSessionInvalidated = errors.New("session invalidated")

	ErrEmptyToken = errors.New("empty access token")
)

// Snapshot is a point-in-time copy of the session.
type Snapshot struct {
	Token         string
	User          *models.User
	Authenticated bool
}

// SessionStore is the session contract used by the CLI.
//
// Contract:
//   - Login: exchange credentials for a token, persist it, then fetch the user.
//     A failed login call leaves the session untouched; a failed user fetch
//     logs the session out and returns ErrSessionInvalidated.
//   - SetTokenFromCallback: same as Login, for a token delivered by the OAuth redirect.
//   - FetchMe: refresh the user; on failure log and force logout. Never fails.
//   - Logout: drop token, user and persisted token. Idempotent, never fails.
//   - IsAuthenticated: true iff both token and user are present.
type SessionStore interface {
	Login(ctx context.Context, email string, password []byte) error
	Register(ctx context.Context, email, username string, password []byte) error
	SetTokenFromCallback(ctx context.Context, token string) error
	FetchMe(ctx context.Context)
	Logout(ctx context.Context)
	ListUsers(ctx context.Context) ([]models.User, error)

	IsAuthenticated() bool
	Token() string
	User() *models.User
	Snapshot() Snapshot
	Subscribe(fn func(Snapshot)) (unsubscribe func())
	Ready() <-chan struct{}
}

// Session is the concrete SessionStore backed by a remote Client and a
// local metadata repository for the persisted token.
type Session struct {
	client  client.Client
	storage metadata.Repository
	log     logging.Logger

	// mu guards token and user, and serializes writes to storage so the
	// persisted token always matches the in-memory one.
	mu    sync.RWMutex
	token string
	user  *models.User

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int

	ready chan struct{}
}

// NewSession builds the store. If storage holds a token from a previous
// run, the token is restored immediately and the user is fetched in the
// background; until then the session has a token but no user. Ready is
// closed once that fetch has settled.
func NewSession(ctx context.Context, c client.Client, storage metadata.Repository, log logging.Logger) *Session {
	if log == nil {
		log = logging.Discard()
	}
	s := &Session{
		client:  c,
		storage: storage,
		log:     log.With("component", "session"),
		subs:    make(map[int]func(Snapshot)),
		ready:   make(chan struct{}),
	}

	persisted, err := storage.Get(ctx, common.AccessTokenKey)
	if err != nil {
		s.log.Warn(ctx, "failed to read persisted token", "error", err)
	}
	if len(persisted) == 0 {
		close(s.ready)
		return s
	}

	s.token = string(persisted)
	s.client.SetAccessToken(s.token)
	s.log.Debug(ctx, "restoring session from persisted token", "token", common.MaskToken(s.token))

	go func() {
		defer close(s.ready)
		s.FetchMe(ctx)
	}()
	return s
}

func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

func (s *Session) Login(ctx context.Context, email string, password []byte) error {
	token, err := s.client.Login(ctx, models.LoginRequest{Email: email, Password: models.Secret(password)})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if err := s.setToken(ctx, token); err != nil {
		return err
	}
	return s.refresh(ctx)
}

// Register creates the account on the backend. It does not log in.
func (s *Session) Register(ctx context.Context, email, username string, password []byte) error {
	req := models.RegisterRequest{Email: email, Username: username, Password: models.Secret(password)}
	if err := s.client.Register(ctx, req); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

func (s *Session) SetTokenFromCallback(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if err := s.setToken(ctx, token); err != nil {
		return err
	}
	return s.refresh(ctx)
}

func (s *Session) FetchMe(ctx context.Context) {
	_ = s.refresh(ctx)
}

func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	changed := s.token != "" || s.user != nil
	s.clearLocked(ctx)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if changed {
		s.log.Info(ctx, "logged out")
		s.notify(snap)
	}
}

func (s *Session) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.client.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to be called with a fresh Snapshot after every
// change of token or user. Calls happen on the goroutine that made the
// change, outside the store's lock.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// setToken persists token and makes it current. The previous user is
// dropped: it was validated for another token. On a storage error nothing
// changes.
func (s *Session) setToken(ctx context.Context, token string) error {
	s.mu.Lock()
	if err := s.storage.Set(ctx, common.AccessTokenKey, []byte(token)); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persist token: %w", err)
	}
	s.token = token
	s.user = nil
	s.client.SetAccessToken(token)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// refresh asks the backend who the current token belongs to. A result is
// applied only if the token it was requested for is still current.
func (s *Session) refresh(ctx context.Context) error {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		s.log.Debug(ctx, "no token to validate")
		return fmt.Errorf("%w: no token", ErrSessionInvalidated)
	}

	user, err := s.client.Me(ctx)

	s.mu.Lock()
	if s.token != token {
		s.mu.Unlock()
		s.log.Debug(ctx, "dropping user fetch for a replaced token", "token", common.MaskToken(token))
		return fmt.Errorf("%w: token replaced while fetching user", ErrSessionInvalidated)
	}

	if err != nil {
		s.clearLocked(ctx)
		snap := s.snapshotLocked()
		s.mu.Unlock()

		s.log.Error(ctx, "failed to fetch user", "error", err)
		s.notify(snap)
		return fmt.Errorf("%w: %w", ErrSessionInvalidated, err)
	}

	s.user = user.Clone()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Info(ctx, "session active", "user", user.Email)
	s.notify(snap)
	return nil
}

// clearLocked resets the session and removes the persisted token.
// A storage failure is logged: logging out must not fail. The delete runs
// detached from ctx's cancellation, since ctx is often the one whose
// deadline just failed the user fetch.
func (s *Session) clearLocked(ctx context.Context) {
	s.token = ""
	s.user = nil
	s.client.SetAccessToken("")
	if err := s.storage.Delete(context.WithoutCancel(ctx), common.AccessTokenKey); err != nil {
		s.log.Warn(ctx, "failed to remove persisted token", "error", err)
	}
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Token:         s.token,
		User:          s.user.Clone(),
		Authenticated: s.token != "" && s.user != nil,
	}
}

func (s *Session) notify(snap Snapshot) {
	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
