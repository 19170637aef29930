// Package gateway is the HTTP client side of the admin action endpoint.
// It owns the envelope handling, nonce attachment, and the busy guard
// every screen relies on.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"shopkeeper/internal/i18n"
)

// Busy marks a control as in-flight while a gated call runs. Passing a
// nil Busy bypasses the guard entirely, so background refreshes never
// block user-triggered saves.
type Busy interface {
	SetLoading(loading bool)
}

// Notifier receives toast notifications for failed calls.
type Notifier interface {
	Notify(message, kind string)
}

// Session is the bootstrap payload served before any action call.
type Session struct {
	AjaxURL string       `json:"ajax_url"`
	Nonce   string       `json:"nonce"`
	Caps    []string     `json:"caps"`
	Strings i18n.Catalog `json:"strings"`
}

// Client calls admin actions against a running server.
type Client struct {
	httpClient *http.Client
	baseURL    string
	notifier   Notifier

	mu       sync.Mutex
	inFlight bool

	session Session
}

// NewClient builds a Client for the server at baseURL. The cookie jar
// carries the auth cookie between Login and later calls.
func NewClient(baseURL string, notifier Notifier) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		httpClient: &http.Client{Jar: jar},
		baseURL:    strings.TrimRight(baseURL, "/"),
		notifier:   notifier,
		session:    Session{Strings: i18n.Default()},
	}, nil
}

// Strings returns the UI strings catalog, server-provided after
// Bootstrap and the built-in defaults before.
func (c *Client) Strings() i18n.Catalog {
	return c.session.Strings
}

// Caps returns the capabilities granted to the logged-in user.
func (c *Client) Caps() []string {
	return c.session.Caps
}

// Login authenticates and stores the auth cookie.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{"username": {username}, "password": {password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("invalid username or password")
	}
	return nil
}

// Bootstrap fetches the session payload: the nonce, capability list,
// and strings catalog every subsequent action call needs.
func (c *Client) Bootstrap(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/admin/session", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("bootstrap session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bootstrap session: unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&c.session); err != nil {
		return fmt.Errorf("bootstrap session: %w", err)
	}
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// Call executes one admin action. Application failures and transport
// failures both raise an error toast; the returned error carries the
// same message. When busy is non-nil and another gated call is already
// running, Call rejects immediately without issuing a request.
func (c *Client) Call(ctx context.Context, action string, payload url.Values, busy Busy) (json.RawMessage, error) {
	c.mu.Lock()
	if c.inFlight && busy != nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("%s", c.session.Strings.Loading)
	}
	c.inFlight = true
	c.mu.Unlock()

	if busy != nil {
		busy.SetLoading(true)
	}
	defer func() {
		if busy != nil {
			busy.SetLoading(false)
		}
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	form := url.Values{}
	for key, vals := range payload {
		form[key] = vals
	}
	form.Set("action", action)
	form.Set("nonce", c.session.Nonce)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/admin/action", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(c.session.Strings.ErrorOccurred)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode != http.StatusOK {
		return nil, c.fail(c.failureMessage(env, decodeErr))
	}
	if decodeErr != nil {
		return nil, c.fail(c.session.Strings.ErrorOccurred)
	}
	if !env.Success {
		return nil, c.fail(c.failureMessage(env, nil))
	}
	return env.Data, nil
}

// failureMessage extracts data.message from a failed envelope, falling
// back to the generic error string.
func (c *Client) failureMessage(env envelope, decodeErr error) string {
	if decodeErr == nil && len(env.Data) > 0 {
		var data struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(env.Data, &data); err == nil && data.Message != "" {
			return data.Message
		}
	}
	return c.session.Strings.ErrorOccurred
}

func (c *Client) fail(message string) error {
	if c.notifier != nil {
		c.notifier.Notify(message, "error")
	}
	return fmt.Errorf("%s", message)
}
