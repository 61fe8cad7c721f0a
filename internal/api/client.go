package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/sobande/taskrr/internal/apperrors"
	"github.com/sobande/taskrr/internal/models"
	"github.com/sobande/taskrr/internal/session"
)

// Client is the typed wrapper over the marketplace REST API. Every call
// attaches the bearer token and identity headers, retries connectivity
// failures on a fixed interval, and performs one silent token refresh after
// an HTTP 401 before giving up.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Session
	log     *slog.Logger

	retryInterval time.Duration
	maxRetries    uint64
}

func NewClient(cfg *models.Config, sess *session.Session, log *slog.Logger) *Client {
	return &Client{
		baseURL:       strings.TrimRight(cfg.APIBaseURL, "/"),
		http:          &http.Client{Timeout: cfg.RequestTimeout},
		session:       sess,
		log:           log,
		retryInterval: cfg.RetryInterval,
		maxRetries:    uint64(cfg.MaxRetries),
	}
}

// envelope is the {success, data} wrapper most endpoints respond with. Some
// older endpoints return the record bare; Success stays nil in that case.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	refreshed := false
	operation := func() error {
		token, err := c.session.Token(ctx)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err))
		}

		status, respBody, err := c.roundTrip(ctx, method, path, query, payload, token)
		if err != nil {
			// Transport error, no response received. Retryable.
			c.log.Warn("request failed", slog.String("method", method), slog.String("path", path), slog.Any("error", err))
			return fmt.Errorf("%w: %v", apperrors.ErrConnectivity, err)
		}

		switch {
		case status == http.StatusUnauthorized:
			if refreshed {
				return backoff.Permanent(apperrors.ErrUnauthorized)
			}
			refreshed = true
			if _, err := c.session.ForceRefresh(ctx); err != nil {
				return backoff.Permanent(fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err))
			}
			// Retry immediately with the new token.
			return fmt.Errorf("retrying after token refresh")
		case status == http.StatusForbidden:
			return backoff.Permanent(serverError(respBody, apperrors.ErrAccessDenied))
		case status == http.StatusNotFound:
			return backoff.Permanent(serverError(respBody, apperrors.ErrNotFound))
		case status >= 400:
			return backoff.Permanent(serverError(respBody, nil))
		}

		if err := decode(respBody, out); err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryInterval), c.maxRetries),
		ctx,
	)
	return backoff.Retry(operation, policy)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, payload []byte, token string) (int, []byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if id := c.session.UserID(); id != "" {
		req.Header.Set("X-User-Id", id)
	}
	if email := c.session.Email(); email != "" {
		req.Header.Set("X-User-Email", email)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, respBody, nil
}

// decode unwraps the {success, data} envelope when present, otherwise treats
// the body as the record itself.
func decode(body []byte, out any) error {
	if len(body) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Success != nil {
		if !*env.Success {
			return apperrors.Server(firstNonEmpty(env.Error, env.Message, "request failed"))
		}
		if out == nil || len(env.Data) == 0 {
			return nil
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
		return nil
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// serverError extracts the server-provided message from an error response,
// optionally wrapping a sentinel so call sites can branch on the class.
func serverError(body []byte, sentinel error) error {
	var env envelope
	msg := ""
	if err := json.Unmarshal(body, &env); err == nil {
		msg = firstNonEmpty(env.Error, env.Message)
	}
	if sentinel != nil {
		if msg != "" {
			return fmt.Errorf("%w: %s", sentinel, msg)
		}
		return sentinel
	}
	if msg == "" {
		msg = "request failed"
	}
	return apperrors.Server(msg)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
