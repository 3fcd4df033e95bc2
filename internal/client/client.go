// Package client is a typed wrapper around the event, RSVP and auth
// endpoints. It holds no session state of its own: the credential comes
// from an injected TokenSource, so credential lifecycle stays with its
// single owner.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"eventhub/internal/models"
)

// TokenSource supplies the bearer credential for authenticated calls.
// An empty token means anonymous.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-credential TokenSource, mainly for tests.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func New(baseURL string, tokens TokenSource) *Client {
	if tokens == nil {
		tokens = StaticToken("")
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		tokens:  tokens,
	}
}

// Credentials is the session established by sign-in or registration.
type Credentials struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        models.User `json:"user"`
}

// EventDetail is one event with its full RSVP list, the input the
// reconciler derives display state from.
type EventDetail struct {
	Event           *models.Event `json:"event"`
	RSVPs           []models.RSVP `json:"rsvps"`
	CurrentUserRSVP string        `json:"current_user_rsvp"`
}

type envelope struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if resp.StatusCode >= 400 {
		var env envelope
		_ = json.Unmarshal(data, &env)
		return errorFromStatus(resp.StatusCode, env.Error)
	}

	if out != nil && len(data) > 0 {
		if err = json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	return c.do(ctx, method, path, rdr, "application/json", out)
}

// SignIn exchanges email and password for a session. The token
// endpoint speaks OAuth2 password grant, hence the form encoding and
// the "username" field.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Credentials, error) {
	form := url.Values{
		"username": {email},
		"password": {password},
	}

	var creds Credentials
	err := c.do(ctx, http.MethodPost, "/auth/token",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &creds)
	if err != nil {
		return nil, err
	}

	return &creds, nil
}

// Register creates an account and returns a live session for it.
func (c *Client) Register(ctx context.Context, email, password, fullName string) (*Credentials, error) {
	body := map[string]string{
		"email":     email,
		"password":  password,
		"full_name": fullName,
	}

	var creds Credentials
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", body, &creds); err != nil {
		return nil, err
	}

	return &creds, nil
}

// Me resolves the identity behind the current credential.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var resp struct {
		User *models.User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}

	return resp.User, nil
}

// Logout tells the server the session ended. Best effort; callers
// clear their credential regardless of the result.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) ListEvents(ctx context.Context) ([]models.Event, error) {
	var resp struct {
		Events []models.Event `json:"events"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/events", nil, &resp); err != nil {
		return nil, err
	}

	return resp.Events, nil
}

func (c *Client) GetEvent(ctx context.Context, id string) (*EventDetail, error) {
	var detail EventDetail
	if err := c.doJSON(ctx, http.MethodGet, "/events/"+id, nil, &detail); err != nil {
		return nil, err
	}

	return &detail, nil
}

func (c *Client) CreateEvent(ctx context.Context, in models.EventCreate) (*models.Event, error) {
	var resp struct {
		Event *models.Event `json:"event"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/events", in, &resp); err != nil {
		return nil, err
	}

	return resp.Event, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id string, in models.EventUpdate) (*models.Event, error) {
	var resp struct {
		Event *models.Event `json:"event"`
	}
	if err := c.doJSON(ctx, http.MethodPut, "/events/"+id, in, &resp); err != nil {
		return nil, err
	}

	return resp.Event, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/events/"+id, nil, nil)
}

// RSVP records or overwrites the caller's response to an event.
func (c *Client) RSVP(ctx context.Context, eventID, status string) (*models.RSVP, error) {
	body := map[string]string{"status": status}

	var resp struct {
		RSVP *models.RSVP `json:"rsvp"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/events/"+eventID+"/rsvp", body, &resp); err != nil {
		return nil, err
	}

	return resp.RSVP, nil
}

// MyRSVP returns the caller's RSVP for the event, or nil when they
// have not responded: "no record yet" is an answer here, not an error.
func (c *Client) MyRSVP(ctx context.Context, eventID string) (*models.RSVP, error) {
	var resp struct {
		RSVP *models.RSVP `json:"rsvp"`
	}

	err := c.doJSON(ctx, http.MethodGet, "/rsvps/event/"+eventID, nil, &resp)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}

	return resp.RSVP, nil
}
