package api

import (
	"context"
	"fmt"

	"github.com/sobande/taskrr/internal/models"
)

func (c *Client) GetCurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/users/me", nil, &user); err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return &user, nil
}

func (c *Client) GetProviderProfile(ctx context.Context, userID string) (*models.ProviderProfile, error) {
	var profile models.ProviderProfile
	if err := c.get(ctx, "/users/"+userID+"/provider", nil, &profile); err != nil {
		return nil, fmt.Errorf("get provider profile: %w", err)
	}
	return &profile, nil
}

// RegisterPushToken reports the device token handed out by the push bridge so
// the server can target this client.
func (c *Client) RegisterPushToken(ctx context.Context, token string) error {
	body := map[string]string{"token": token}
	if err := c.post(ctx, "/users/push-token", body, nil); err != nil {
		return fmt.Errorf("register push token: %w", err)
	}
	return nil
}
