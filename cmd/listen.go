package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sobande/taskrr/internal/notify"
	"github.com/sobande/taskrr/internal/notify/bridge"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Run the push bridges and print incoming notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.ensureUser(cmd.Context()); err != nil {
			return err
		}
		if !a.cfg.KafkaEnabled && !a.cfg.WebhookEnabled {
			return fmt.Errorf("enable at least one bridge (--kafka-enabled or --webhook-enabled)")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a.bus.Subscribe(notify.NotificationDelivered{}.Topic(), func(e notify.Event) {
			delivered, ok := e.(notify.NotificationDelivered)
			if !ok {
				return
			}
			verdict := notify.Classify(delivered.Payload)
			fmt.Printf("[%s/%s] %s: %s\n", verdict.Type, verdict.Priority, delivered.Payload.Title, delivered.Payload.Body)
		})

		// Rotated device tokens get reported back to the API.
		a.bus.Subscribe(notify.PushTokenChanged{}.Topic(), func(e notify.Event) {
			changed, ok := e.(notify.PushTokenChanged)
			if !ok {
				return
			}
			if err := a.client.RegisterPushToken(ctx, changed.Token); err != nil {
				a.log.Warn("failed to register push token", "error", err)
			}
		})

		errCh := make(chan error, 2)
		if a.cfg.KafkaEnabled {
			kafkaBridge, err := bridge.NewKafkaBridge(a.cfg, a.bus, a.log)
			if err != nil {
				return fmt.Errorf("failed to start kafka bridge: %w", err)
			}
			go func() { errCh <- kafkaBridge.Run(ctx) }()
		}
		if a.cfg.WebhookEnabled {
			webhookBridge := bridge.NewWebhookBridge(a.cfg, a.bus, a.log)
			go func() { errCh <- webhookBridge.Run(ctx) }()
		}

		select {
		case <-ctx.Done():
			fmt.Printf("\n%d notifications this session, %d unread\n", a.notifs.Len(), a.notifs.UnreadCount())
			return nil
		case err := <-errCh:
			if err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(listenCmd)
}
