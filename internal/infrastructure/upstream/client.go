// Package upstream implements the REST client for the salon API. All
// resource clients share one transport that unwraps the uniform response
// envelope, attaches the session's bearer token, and performs at most one
// token-refresh retry per original request.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/threekst/storefront-gateway/internal/metrics"
	"github.com/threekst/storefront-gateway/internal/core/domain"
	"github.com/threekst/storefront-gateway/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Client is the shared salon API transport.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions ports.SessionStore
	log      zerolog.Logger
}

// NewClient builds a Client rooted at baseURL (e.g. "http://salon-api:8084/api").
func NewClient(baseURL string, timeout time.Duration, sessions ports.SessionStore, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		sessions: sessions,
		log:      log,
	}
}

// envelope is the uniform response wrapper used by most salon API endpoints.
// Success is a pointer so endpoints that return a bare payload (no envelope)
// can be told apart from success=false.
type envelope struct {
	Success   *bool           `json:"success"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
	Timestamp string          `json:"timestamp"`
}

// do issues one request and decodes the response into out (out may be nil).
// The session's bearer token is attached when present. A 401 triggers exactly
// one refresh cycle and one retry; a second 401 propagates as the final
// result.
func (c *Client) do(ctx context.Context, sess *domain.Session, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upstream: encode body: %w", err)
		}
	}

	start := time.Now()
	status, raw, err := c.send(ctx, sess, method, path, query, payload, "application/json", false)
	metrics.UpstreamRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()

	return decode(status, raw, out)
}

// send performs the HTTP exchange, handling the single 401 refresh-retry.
// The body is buffered so the retry can resend it.
func (c *Client) send(ctx context.Context, sess *domain.Session, method, path string, query url.Values, payload []byte, contentType string, retried bool) (int, []byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("upstream: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if sess != nil && sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("upstream: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("upstream: read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && !retried && sess != nil && sess.RefreshToken != "" {
		if err := c.refresh(ctx, sess); err != nil {
			return 0, nil, err
		}
		return c.send(ctx, sess, method, path, query, payload, contentType, true)
	}

	return resp.StatusCode, raw, nil
}

// refreshResponse tolerates both the enveloped and the bare refresh payload.
type refreshResponse struct {
	AccessToken string `json:"accessToken"`
	Token       string `json:"token"`
}

func (rr refreshResponse) value() string {
	if rr.AccessToken != "" {
		return rr.AccessToken
	}
	return rr.Token
}

// refresh runs the single token-refresh cycle. On failure the stored tokens
// are cleared and ErrSessionExpired is returned so the caller redirects the
// browser to login.
func (c *Client) refresh(ctx context.Context, sess *domain.Session) error {
	body, err := json.Marshal(map[string]string{"refreshToken": sess.RefreshToken})
	if err != nil {
		return fmt.Errorf("upstream: encode refresh: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("upstream: build refresh: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRefreshTotal.WithLabelValues("failed").Inc()
		return c.expireSession(ctx, sess, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRefreshTotal.WithLabelValues("failed").Inc()
		return c.expireSession(ctx, sess, fmt.Errorf("refresh returned %d", resp.StatusCode))
	}

	var rr refreshResponse
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		_ = json.Unmarshal(env.Data, &rr)
	}
	if rr.value() == "" {
		_ = json.Unmarshal(raw, &rr)
	}
	if rr.value() == "" {
		metrics.UpstreamRefreshTotal.WithLabelValues("failed").Inc()
		return c.expireSession(ctx, sess, fmt.Errorf("refresh response carried no token"))
	}

	if err := c.sessions.SaveToken(ctx, sess.ID, rr.value()); err != nil {
		return err
	}
	sess.Token = rr.value()
	metrics.UpstreamRefreshTotal.WithLabelValues("ok").Inc()
	c.log.Debug().Str("session_id", sess.ID).Msg("access token refreshed")
	return nil
}

func (c *Client) expireSession(ctx context.Context, sess *domain.Session, cause error) error {
	c.log.Warn().Err(cause).Str("session_id", sess.ID).Msg("token refresh failed, expiring session")
	if err := c.sessions.ClearAuth(ctx, sess.ID); err != nil {
		c.log.Error().Err(err).Str("session_id", sess.ID).Msg("failed to clear expired session")
	}
	sess.User = nil
	sess.Token = ""
	sess.RefreshToken = ""
	return domain.ErrSessionExpired
}

// decode unwraps the envelope (when present) and unmarshals into out.
func decode(status int, raw []byte, out any) error {
	var env envelope
	enveloped := json.Unmarshal(raw, &env) == nil && env.Success != nil

	if status < 200 || status >= 300 {
		msg := ""
		if enveloped {
			msg = env.Message
		}
		return &domain.UpstreamError{StatusCode: status, Message: msg}
	}

	if enveloped && !*env.Success {
		return &domain.UpstreamError{StatusCode: status, Message: env.Message}
	}

	if out == nil {
		return nil
	}
	if enveloped {
		if len(env.Data) == 0 {
			return nil
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("upstream: decode data: %w", err)
		}
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("upstream: decode response: %w", err)
	}
	return nil
}
