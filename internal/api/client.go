package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"mianshictl/internal/session"
)

// DefaultBaseURL is where a locally run backend listens.
const DefaultBaseURL = "http://localhost:8080/api/v1"

const defaultRequestTimeout = 60 * time.Second

// ClientConfig configures a Client. Zero-value fields fall back to defaults;
// only Session is required.
type ClientConfig struct {
	BaseURL    string
	Session    *session.Store
	HTTPClient *http.Client
	Logger     *logrus.Logger
	Notifier   Notifier
	Navigator  Navigator
	Loading    LoadingSink
}

// Client talks to the mianshi backend. It owns the auth token (through the
// session store), serializes requests, and unwraps the response envelope.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Store
	log        *logrus.Logger
	notifier   Notifier
	navigator  Navigator
	loading    LoadingSink
}

// NewClient creates a client for the backend at cfg.BaseURL.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Session == nil {
		return nil, fmt.Errorf("session store is required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = noopNotifier{}
	}
	navigator := cfg.Navigator
	if navigator == nil {
		navigator = noopNavigator{}
	}
	loading := cfg.Loading
	if loading == nil {
		loading = noopLoading{}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		session:    cfg.Session,
		log:        log,
		notifier:   notifier,
		navigator:  navigator,
		loading:    loading,
	}, nil
}

// Session returns the session store the client authenticates with.
func (c *Client) Session() *session.Store {
	return c.session
}

// authExempt reports whether an endpoint may be called without a token.
// Only the login and register endpoints qualify.
func authExempt(endpoint string) bool {
	return strings.HasPrefix(endpoint, endpointLogin) || strings.HasPrefix(endpoint, endpointRegister)
}

// Request sends one call to the backend and unwraps the envelope.
// On success it returns the raw data payload. The loading flag is held for
// the whole call and released on every exit path.
func (c *Client) Request(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	c.loading.SetLoading(true)
	defer c.loading.SetLoading(false)

	token := c.session.Token()
	if !authExempt(endpoint) && token == "" {
		c.notifier.Error("please log in first")
		c.navigator.ToLogin()
		return nil, ErrUnauthenticated
	}

	var reader io.Reader
	if body != nil && method != http.MethodGet {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	url := c.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.WithFields(logrus.Fields{"method": method, "url": url}).Debug("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.notifier.Error("request failed, please try again later")
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.notifier.Error("request failed, please try again later")
		return nil, &NetworkError{Err: fmt.Errorf("read response: %w", err)}
	}

	var envelope Response
	parseErr := json.Unmarshal(payload, &envelope)

	c.log.WithFields(logrus.Fields{
		"method": method,
		"url":    url,
		"status": resp.StatusCode,
		"code":   envelope.Code,
	}).Debug("received response")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := ""
		if parseErr == nil {
			msg = envelope.Msg
		}
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		httpErr := &HTTPError{Status: resp.StatusCode, Msg: msg}
		c.notifier.Error(httpErr.Msg)
		return nil, httpErr
	}

	if parseErr != nil {
		c.notifier.Error("request failed, please try again later")
		return nil, fmt.Errorf("decode response envelope: %w", parseErr)
	}

	if envelope.Code != CodeSuccess {
		msg := envelope.Msg
		if msg == "" {
			msg = "request failed"
		}
		apiErr := &APIError{Code: envelope.Code, Msg: envelope.Msg}
		c.notifier.Error(msg)
		return nil, apiErr
	}

	return envelope.Data, nil
}
