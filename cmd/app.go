package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/sobande/taskrr/internal/api"
	"github.com/sobande/taskrr/internal/models"
	"github.com/sobande/taskrr/internal/notify"
	"github.com/sobande/taskrr/internal/session"
	"github.com/sobande/taskrr/internal/store"
)

const sessionTokensKey = "session:tokens"

// app wires the shared pieces every subcommand needs: config, logger, local
// store, session and the API client.
type app struct {
	cfg    *models.Config
	log    *slog.Logger
	kv     *store.KV
	cache  *store.Cache
	sess   *session.Session
	client *api.Client
	bus    *notify.Bus
	notifs *notify.Store
}

func newApp() (*app, error) {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	kv, err := store.OpenKV(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("error opening local store: %w", err)
	}

	authClient := api.NewAuthClient(cfg.APIBaseURL, cfg.RequestTimeout)
	sess := session.New(kv, authClient.Refresh, log)

	// Restore the token pair from the previous invocation, if any.
	var tokens api.TokenPair
	if ok, _ := kv.Get(sessionTokensKey, &tokens); ok {
		sess.SetTokens(tokens.IDToken, tokens.RefreshToken)
	}

	a := &app{
		cfg:    cfg,
		log:    log,
		kv:     kv,
		cache:  store.NewCache(kv, cfg.CacheTTL),
		sess:   sess,
		client: api.NewClient(cfg, sess, log),
		bus:    notify.NewBus(log),
		notifs: notify.NewStore(),
	}

	// The store consumes everything the bridges (and checkout) publish.
	a.bus.Subscribe(notify.NotificationDelivered{}.Topic(), func(e notify.Event) {
		if delivered, ok := e.(notify.NotificationDelivered); ok {
			a.notifs.Add(delivered.Payload)
		}
	})

	return a, nil
}

// ensureUser resolves and caches the current user's record and provider id.
func (a *app) ensureUser(ctx context.Context) error {
	if a.sess.User() != nil {
		return nil
	}

	var cached struct {
		User       models.User `json:"user"`
		ProviderID string      `json:"provider_id"`
	}
	if ok, _ := a.cache.Get("current_user", &cached); ok {
		a.sess.SetUser(&cached.User, cached.ProviderID)
		return nil
	}

	user, err := a.client.GetCurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve current user: %w", err)
	}
	providerID := ""
	if user.HasRole(models.RoleProvider) {
		if profile, err := a.client.GetProviderProfile(ctx, user.ID); err == nil {
			providerID = profile.ID
		} else {
			a.log.Warn("failed to load provider profile", slog.Any("error", err))
		}
	}

	a.sess.SetUser(user, providerID)
	if user.AuthSub != "" {
		if err := a.sess.MapIdentity(user.AuthSub, user.ID); err != nil {
			a.log.Warn("failed to record identity mapping", slog.Any("error", err))
		}
	}
	cached.User = *user
	cached.ProviderID = providerID
	if err := a.cache.Set("current_user", cached); err != nil {
		a.log.Warn("failed to cache current user", slog.Any("error", err))
	}
	return nil
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
