package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pixelfall/galleria/internal/domain"
)

const defaultTimeout = 15 * time.Second

// User is an authenticated account at the hosted identity service.
type User struct {
	ID        string
	Email     string
	Name      string
	Avatar    string
	CreatedAt time.Time
}

// Session is a signed-in user plus its access token.
type Session struct {
	AccessToken string
	User        User
}

// State is pushed to subscribers whenever the session changes.
type State struct {
	User          *User
	Authenticated bool
}

// Client talks to a hosted identity service (GoTrue-style REST). The
// gallery stores never depend on it; anonymous and signed-in sessions
// behave identically.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	logger     *slog.Logger

	mu      sync.Mutex
	session *Session
	subs    map[int]func(State)
	nextSub int
}

// NewClient creates a new identity service client
func NewClient(baseURL, anonKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
		subs:   make(map[int]func(State)),
	}
}

// SignIn exchanges email/password credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	payload := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	var resp sessionDTO
	if err := c.post(ctx, "/auth/v1/token?grant_type=password", "", payload, &resp); err != nil {
		return nil, err
	}

	session := mapSession(resp)
	c.setSession(session)
	c.logger.Info("signed in", "email", email)
	return session, nil
}

// SignUp registers a new account and returns its session.
func (c *Client) SignUp(ctx context.Context, name, email, password string) (*Session, error) {
	payload := map[string]interface{}{
		"email":    email,
		"password": password,
		"data": map[string]string{
			"name": name,
		},
	}

	var resp sessionDTO
	if err := c.post(ctx, "/auth/v1/signup", "", payload, &resp); err != nil {
		return nil, err
	}

	session := mapSession(resp)
	c.setSession(session)
	c.logger.Info("signed up", "email", email)
	return session, nil
}

// SignOut revokes the current session. The local session is cleared
// even when the remote revocation fails.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	token := ""
	if c.session != nil {
		token = c.session.AccessToken
	}
	c.mu.Unlock()

	var err error
	if token != "" {
		err = c.post(ctx, "/auth/v1/logout", token, nil, nil)
	}
	c.setSession(nil)
	return err
}

// Session returns the current session, or nil when anonymous.
func (c *Client) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Subscribe registers a callback for auth-state changes and returns an
// unsubscribe function. The current state is delivered immediately.
func (c *Client) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	state := c.stateLocked()
	c.mu.Unlock()

	fn(state)

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Client) setSession(session *Session) {
	c.mu.Lock()
	c.session = session
	state := c.stateLocked()
	subs := make([]func(State), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

func (c *Client) stateLocked() State {
	if c.session == nil {
		return State{}
	}
	user := c.session.User
	return State{User: &user, Authenticated: true}
}

// post performs an authenticated JSON POST and decodes the response
func (c *Client) post(ctx context.Context, path, bearer string, payload, dest interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("auth request failed", "path", path, "error", err)
		return domain.ErrServiceOffline
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		c.logger.Warn("auth rejected", "path", path, "status", resp.StatusCode)
		return domain.ErrAuthFailed
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		c.logger.Error("auth request error", "path", path, "status", resp.StatusCode, "body", string(respBody))
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if dest != nil {
		if err := json.Unmarshal(respBody, dest); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// sessionDTO mirrors the identity service's token/signup response
type sessionDTO struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type,omitempty"`
	User        userDTO `json:"user"`
}

type userDTO struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	CreatedAt    time.Time         `json:"created_at"`
	UserMetadata map[string]string `json:"user_metadata,omitempty"`
}

func mapSession(dto sessionDTO) *Session {
	user := User{
		ID:        dto.User.ID,
		Email:     dto.User.Email,
		Name:      dto.User.UserMetadata["name"],
		Avatar:    dto.User.UserMetadata["avatar"],
		CreatedAt: dto.User.CreatedAt,
	}
	if user.Name == "" {
		if at := strings.Index(user.Email, "@"); at > 0 {
			user.Name = user.Email[:at]
		} else {
			user.Name = "User"
		}
	}
	if user.Avatar == "" {
		user.Avatar = domain.DefaultAvatar
	}
	return &Session{AccessToken: dto.AccessToken, User: user}
}
