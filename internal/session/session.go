// Package session keeps the signed-in user's credential on disk and
// broadcasts auth state changes to interested views.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"eventhub/internal/client"
	"eventhub/internal/models"
)

// State is a snapshot of who is signed in. Authenticated is false for
// the anonymous state, in which case User is nil.
type State struct {
	Authenticated bool
	User          *models.User
}

type credential struct {
	AccessToken string       `json:"access_token"`
	User        *models.User `json:"user"`
}

// Store holds the current credential in memory and mirrors it to a
// file so the session survives restarts. It implements
// client.TokenSource.
type Store struct {
	path string

	mu    sync.Mutex
	token string
	user  *models.User
	subs  []chan State
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted credential. A missing file is not an
// error: the store just starts anonymous.
func (s *Store) Load() error {
	const op = "session.Store.Load"

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	var cred credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.token = cred.AccessToken
	s.user = cred.User
	s.mu.Unlock()

	return nil
}

// Token returns the current access token, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.token
}

// State returns the current auth snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stateLocked()
}

func (s *Store) stateLocked() State {
	return State{Authenticated: s.token != "", User: s.user}
}

// Subscribe returns a channel that receives a State snapshot after
// every sign-in, sign-out or credential invalidation. Slow receivers
// miss updates rather than block the store.
func (s *Store) Subscribe() <-chan State {
	ch := make(chan State, 1)

	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()

	return ch
}

func (s *Store) setCredential(token string, user *models.User) error {
	const op = "session.Store.setCredential"

	s.mu.Lock()
	s.token = token
	s.user = user
	state := s.stateLocked()
	s.mu.Unlock()

	s.notify(state)

	if token == "" {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}

	data, err := json.Marshal(credential{AccessToken: token, User: user})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) notify(state State) {
	s.mu.Lock()
	subs := make([]chan State, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- state:
		default:
		}
	}
}

// SignIn exchanges the credentials for a token and persists it. On
// failure the store is left untouched.
func (s *Store) SignIn(ctx context.Context, api *client.Client, email, password string) (*models.User, error) {
	creds, err := api.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.setCredential(creds.AccessToken, &creds.User); err != nil {
		return nil, err
	}

	return &creds.User, nil
}

// SignUp registers a new account and signs it in.
func (s *Store) SignUp(ctx context.Context, api *client.Client, email, password, fullName string) (*models.User, error) {
	creds, err := api.Register(ctx, email, password, fullName)
	if err != nil {
		return nil, err
	}

	if err := s.setCredential(creds.AccessToken, &creds.User); err != nil {
		return nil, err
	}

	return &creds.User, nil
}

// SignOut clears the local credential. The server call is best
// effort: the session ends locally even if the request fails.
func (s *Store) SignOut(ctx context.Context, api *client.Client) error {
	_ = api.Logout(ctx)

	return s.setCredential("", nil)
}

// CurrentUser fetches the profile behind the stored token and caches
// it. A rejected token drops the session back to anonymous instead of
// surfacing the auth failure.
func (s *Store) CurrentUser(ctx context.Context, api *client.Client) (*models.User, error) {
	if s.Token() == "" {
		return nil, nil
	}

	user, err := api.Me(ctx)
	if err != nil {
		var authErr *client.AuthError
		if errors.As(err, &authErr) {
			if clearErr := s.setCredential("", nil); clearErr != nil {
				return nil, clearErr
			}
			return nil, nil
		}
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	return user, nil
}
