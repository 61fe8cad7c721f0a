package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sobande/taskrr/internal/apperrors"
)

// AuthClient talks to the unauthenticated auth endpoints. It is separate
// from Client because Client attaches a session token to every request and
// these calls are what produce that token in the first place.
type AuthClient struct {
	baseURL string
	http    *http.Client
}

type TokenPair struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
}

func NewAuthClient(baseURL string, timeout time.Duration) *AuthClient {
	return &AuthClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (a *AuthClient) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	body := map[string]string{"email": email, "password": password}
	var pair TokenPair
	if err := a.post(ctx, "/users/login", body, &pair); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &pair, nil
}

// Refresh exchanges a refresh token for a new id token. Session uses this as
// its RefreshFunc.
func (a *AuthClient) Refresh(ctx context.Context, refreshToken string) (string, error) {
	body := map[string]string{"refresh_token": refreshToken}
	var pair TokenPair
	if err := a.post(ctx, "/users/token/refresh", body, &pair); err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}
	return pair.IDToken, nil
}

func (a *AuthClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrConnectivity, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return apperrors.ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		return apperrors.Server(fmt.Sprintf("auth request failed with status %d", resp.StatusCode))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode auth response: %w", err)
	}
	return nil
}
