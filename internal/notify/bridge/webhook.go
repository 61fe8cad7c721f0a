package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lucsky/cuid"

	"github.com/sobande/taskrr/internal/models"
	"github.com/sobande/taskrr/internal/notify"
)

// WebhookBridge accepts push callbacks over local HTTP, for environments
// where the Kafka feed is not reachable. POST /push takes the same
// {id, title, body, data} shape the Kafka bridge consumes.
type WebhookBridge struct {
	addr string
	bus  *notify.Bus
	log  *slog.Logger
}

func NewWebhookBridge(cfg *models.Config, bus *notify.Bus, log *slog.Logger) *WebhookBridge {
	return &WebhookBridge{addr: cfg.WebhookAddr, bus: bus, log: log}
}

// Run serves the webhook endpoint until the context is cancelled.
func (b *WebhookBridge) Run(ctx context.Context) error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Post("/push", b.handlePush)
	r.Post("/token", b.handleToken)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{Addr: b.addr, Handler: r}

	errCh := make(chan error, 1)
	go func() {
		b.log.Info("webhook bridge listening", slog.String("addr", b.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (b *WebhookBridge) handlePush(w http.ResponseWriter, r *http.Request) {
	var payload models.NotificationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if payload.ID == "" {
		payload.ID = cuid.New()
	}
	b.bus.Publish(notify.NotificationDelivered{Payload: payload})
	w.WriteHeader(http.StatusAccepted)
}

// handleToken accepts push token rotations from the platform bridge.
func (b *WebhookBridge) handleToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Token == "" {
		http.Error(w, "invalid token payload", http.StatusBadRequest)
		return
	}
	b.bus.Publish(notify.PushTokenChanged{Token: body.Token})
	w.WriteHeader(http.StatusAccepted)
}
