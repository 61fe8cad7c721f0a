package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"github.com/sobande/taskrr/internal/models"
	"github.com/sobande/taskrr/internal/notify"
)

// KafkaBridge consumes the platform push feed from a Kafka topic and
// republishes each message on the in-process bus, the same way the original
// client's native push bridge redispatched into the app.
type KafkaBridge struct {
	topic string
	group sarama.ConsumerGroup
	bus   *notify.Bus
	log   *slog.Logger
}

func NewKafkaBridge(cfg *models.Config, bus *notify.Bus, log *slog.Logger) (*KafkaBridge, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Group.Session.Timeout = 45 * time.Second
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	brokers := strings.Split(cfg.KafkaBrokerList, ",")
	group, err := sarama.NewConsumerGroup(brokers, cfg.KafkaGroupID, saramaConfig)
	if err != nil {
		return nil, err
	}

	return &KafkaBridge{
		topic: cfg.KafkaTopic,
		group: group,
		bus:   bus,
		log:   log,
	}, nil
}

// Run blocks consuming the push topic until the context is cancelled.
// Transient consume errors back off and reconnect.
func (b *KafkaBridge) Run(ctx context.Context) error {
	defer func() {
		if err := b.group.Close(); err != nil {
			b.log.Warn("failed to close consumer group", slog.Any("error", err))
		}
	}()

	b.log.Info("push bridge started", slog.String("topic", b.topic))

	wait := time.Second
	for {
		err := b.group.Consume(ctx, []string{b.topic}, b)
		if err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return err
			}
			b.log.Error("error consuming push feed", slog.Any("error", err))
			time.Sleep(wait)
			if wait < 30*time.Second {
				wait *= 2
			}
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		wait = time.Second
	}
}

func (b *KafkaBridge) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (b *KafkaBridge) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (b *KafkaBridge) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		var payload models.NotificationPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			b.log.Warn("dropping malformed push message", slog.Any("error", err))
			session.MarkMessage(msg, "")
			continue
		}
		b.bus.Publish(notify.NotificationDelivered{Payload: payload})
		session.MarkMessage(msg, "")
	}
	return nil
}
