package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"mianshictl/internal/session"
)

const (
	endpointRegister = "/user/register"
	endpointLogin    = "/user/login"
)

// Register creates a new account. The session is not touched.
func (c *Client) Register(ctx context.Context, email, password string) error {
	_, err := c.Request(ctx, http.MethodPost, endpointRegister, credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	c.notifier.Success("registered, you can log in now")
	return nil
}

// Login authenticates and persists the resulting session to durable storage.
// On any failure the stored session is left untouched.
func (c *Client) Login(ctx context.Context, email, password string) (session.Session, error) {
	data, err := c.Request(ctx, http.MethodPost, endpointLogin, credentials{Email: email, Password: password})
	if err != nil {
		return session.Session{}, err
	}

	var parsed LoginData
	if err := json.Unmarshal(data, &parsed); err != nil {
		return session.Session{}, fmt.Errorf("decode login data: %w", err)
	}

	sess := session.Session{
		Token:     parsed.Token,
		UserID:    strconv.FormatInt(parsed.UserID, 10),
		UserEmail: email,
	}
	if err := c.session.Save(sess); err != nil {
		return session.Session{}, fmt.Errorf("persist session: %w", err)
	}

	c.notifier.Success("logged in")
	return sess, nil
}

// Logout clears the stored session. No network call is made; the backend
// keeps no server-side session to invalidate.
func (c *Client) Logout() error {
	return c.session.Clear()
}
