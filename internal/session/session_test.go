package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/client"
	"eventhub/internal/models"
	"eventhub/internal/session"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())

		if r.PostFormValue("password") != "password123" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"status": "Error",
				"error":  "incorrect email or password",
			})
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":       "OK",
			"access_token": "tok-valid",
			"token_type":   "bearer",
			"user":         models.User{ID: "user-1", Email: r.PostFormValue("username")},
		})
	})

	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			FullName string `json:"full_name"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":       "OK",
			"access_token": "tok-fresh",
			"token_type":   "bearer",
			"user":         models.User{ID: "user-2", Email: req.Email, FullName: req.FullName},
		})
	})

	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-valid" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"status": "Error",
				"error":  "invalid or expired token",
			})
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "OK",
			"user":   models.User{ID: "user-1", Email: "alice@example.com"},
		})
	})

	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func newStoreAndClient(t *testing.T) (*session.Store, *client.Client, string) {
	t.Helper()

	srv := newTestServer(t)
	path := filepath.Join(t.TempDir(), "session.json")

	store := session.NewStore(path)
	api := client.New(srv.URL, store)

	return store, api, path
}

func TestSignInPersistsCredential(t *testing.T) {
	store, api, path := newStoreAndClient(t)

	user, err := store.SignIn(context.Background(), api, "alice@example.com", "password123")
	require.NoError(t, err)
	require.Equal(t, "user-1", user.ID)

	assert.Equal(t, "tok-valid", store.Token())
	assert.True(t, store.State().Authenticated)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var saved struct {
		AccessToken string       `json:"access_token"`
		User        *models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, "tok-valid", saved.AccessToken)
	assert.Equal(t, "alice@example.com", saved.User.Email)
}

func TestSignInWrongPasswordLeavesStoreAnonymous(t *testing.T) {
	store, api, path := newStoreAndClient(t)

	_, err := store.SignIn(context.Background(), api, "alice@example.com", "wrong")
	require.Error(t, err)

	var authErr *client.AuthError
	assert.ErrorAs(t, err, &authErr)

	assert.Empty(t, store.Token())
	assert.False(t, store.State().Authenticated)
	assert.NoFileExists(t, path)
}

func TestSignUpSignsIn(t *testing.T) {
	store, api, _ := newStoreAndClient(t)

	user, err := store.SignUp(context.Background(), api, "bob@example.com", "password123", "Bob")
	require.NoError(t, err)

	assert.Equal(t, "bob@example.com", user.Email)
	assert.Equal(t, "tok-fresh", store.Token())
}

func TestLoadRestoresSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"access_token":"tok-valid","user":{"id":"user-1","email":"alice@example.com"}}`,
	), 0o600))

	store := session.NewStore(path)
	require.NoError(t, store.Load())

	assert.Equal(t, "tok-valid", store.Token())
	require.True(t, store.State().Authenticated)
	assert.Equal(t, "user-1", store.State().User.ID)
}

func TestLoadMissingFileIsAnonymous(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "absent.json"))

	require.NoError(t, store.Load())
	assert.False(t, store.State().Authenticated)
}

func TestSignOutClearsCredential(t *testing.T) {
	store, api, path := newStoreAndClient(t)

	_, err := store.SignIn(context.Background(), api, "alice@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, store.SignOut(context.Background(), api))

	assert.Empty(t, store.Token())
	assert.False(t, store.State().Authenticated)
	assert.NoFileExists(t, path)
}

func TestCurrentUserRejectedTokenClearsSession(t *testing.T) {
	srv := newTestServer(t)
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"access_token":"tok-stale","user":{"id":"user-1"}}`,
	), 0o600))

	store := session.NewStore(path)
	require.NoError(t, store.Load())
	api := client.New(srv.URL, store)

	user, err := store.CurrentUser(context.Background(), api)
	require.NoError(t, err)

	assert.Nil(t, user)
	assert.Empty(t, store.Token())
	assert.NoFileExists(t, path)
}

func TestCurrentUserAnonymous(t *testing.T) {
	store, api, _ := newStoreAndClient(t)

	user, err := store.CurrentUser(context.Background(), api)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestSubscribeSeesAuthChanges(t *testing.T) {
	store, api, _ := newStoreAndClient(t)

	updates := store.Subscribe()

	_, err := store.SignIn(context.Background(), api, "alice@example.com", "password123")
	require.NoError(t, err)

	state := <-updates
	require.True(t, state.Authenticated)
	assert.Equal(t, "user-1", state.User.ID)

	require.NoError(t, store.SignOut(context.Background(), api))

	state = <-updates
	assert.False(t, state.Authenticated)
	assert.Nil(t, state.User)
}
