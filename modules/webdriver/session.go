package webdriver

import (
	"fmt"

	"resty.dev/v3"
)

// Driver is the contract every managed browser automation handle satisfies.
// Destroying a driver means quitting its remote session.
type Driver interface {
	SessionID() string
	Quit() error
}

// Session is a W3C WebDriver session held against a remote end.
type Session struct {
	client *resty.Client
	id     string
}

// NewSession wraps an existing remote session.
func NewSession(endpoint, id string) *Session {
	return &Session{
		client: resty.New().SetBaseURL(endpoint),
		id:     id,
	}
}

// SessionID returns the remote session identifier.
func (s *Session) SessionID() string {
	return s.id
}

// Quit deletes the remote session, releasing the browser it drives.
func (s *Session) Quit() error {
	resp, err := s.client.R().Delete("/session/" + s.id)
	if err != nil {
		return fmt.Errorf("quitting session %s: %w", s.id, err)
	}
	if resp.IsError() {
		return fmt.Errorf("remote end rejected deletion of session %s: %s", s.id, resp.Status())
	}
	return nil
}

// newSessionResponse is the W3C new-session response envelope.
type newSessionResponse struct {
	Value struct {
		SessionID string `json:"sessionId"`
	} `json:"value"`
}

// startSession creates a fresh session on the remote end.
func startSession(endpoint string) (*Session, error) {
	client := resty.New().SetBaseURL(endpoint)

	var out newSessionResponse
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{"capabilities": map[string]any{}}).
		SetResult(&out).
		Post("/session")
	if err != nil {
		return nil, fmt.Errorf("starting session at %s: %w", endpoint, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("remote end rejected session creation: %s", resp.Status())
	}
	if out.Value.SessionID == "" {
		return nil, fmt.Errorf("remote end returned no session id")
	}

	return &Session{client: client, id: out.Value.SessionID}, nil
}
