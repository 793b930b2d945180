package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
)

const (
	defaultBlockTimeout = time.Second
	defaultReclaimAfter = time.Minute
	readBatchSize       = 10
)

type streamRepository struct {
	client       *redis.Client
	logger       *zap.Logger
	blockTimeout time.Duration
	reclaimAfter time.Duration
}

// NewStreamRepository создает новый экземпляр StreamRepository.
// blockTimeout ограничивает ожидание XREADGROUP; 0 означает одну секунду.
// Неподтвержденные сообщения группы, пролежавшие дольше reclaimAfter, забираются
// через XAUTOCLAIM и выдаются повторно; 0 означает одну минуту.
func NewStreamRepository(client *redis.Client, logger *zap.Logger, blockTimeout, reclaimAfter time.Duration) repository.StreamRepository {
	if blockTimeout <= 0 {
		blockTimeout = defaultBlockTimeout
	}
	if reclaimAfter <= 0 {
		reclaimAfter = defaultReclaimAfter
	}
	return &streamRepository{
		client:       client,
		logger:       logger,
		blockTimeout: blockTimeout,
		reclaimAfter: reclaimAfter,
	}
}

// CreateConsumerGroup создаёт consumer group, стрим создается при необходимости (MKSTREAM)
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "0").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		r.logger.Error("Failed to create consumer group",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// ConsumeStream читает сообщения группы. Сначала отдаются сообщения, полученные
// этим consumer ранее и не подтвержденные, затем новые. Раз в reclaimAfter
// зависшие в pending сообщения группы (свои и чужие) забираются повторно.
func (r *streamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	msgChan := make(chan domain.StreamMessage, readBatchSize)

	go func() {
		defer close(msgChan)

		// "0" - собственный pending list, после его исчерпания переходим на ">"
		lastID := "0"

		claimStart := "0-0"
		lastSweep := time.Now()

		deliver := func(messages []redis.XMessage) bool {
			for _, msg := range messages {
				data, ok := msg.Values["data"].(string)
				if !ok {
					r.logger.Warn("Message does not contain 'data' field",
						zap.String("message_id", msg.ID))
					// пустое сообщение все равно уходит обработчику, чтобы он его подтвердил
				}

				select {
				case msgChan <- domain.StreamMessage{ID: msg.ID, Data: data}:
				case <-ctx.Done():
					return false
				}
			}
			return true
		}

		for {
			if ctx.Err() != nil {
				r.logger.Info("Stream consumer stopped",
					zap.String("stream", stream),
					zap.String("consumer", consumer))
				return
			}

			if lastID == ">" && time.Since(lastSweep) >= r.reclaimAfter {
				lastSweep = time.Now()

				claimed, next, err := r.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
					Stream:   stream,
					Group:    group,
					Consumer: consumer,
					MinIdle:  r.reclaimAfter,
					Start:    claimStart,
					Count:    readBatchSize,
				}).Result()
				switch {
				case err != nil && ctx.Err() != nil:
					return
				case err != nil:
					r.logger.Warn("Failed to reclaim pending messages",
						zap.String("stream", stream),
						zap.Error(err))
				default:
					claimStart = next
					if len(claimed) > 0 {
						r.logger.Info("Reclaimed pending messages",
							zap.String("stream", stream),
							zap.String("consumer", consumer),
							zap.Int("count", len(claimed)))
					}
					if !deliver(claimed) {
						return
					}
				}
			}

			result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    group,
				Consumer: consumer,
				Streams:  []string{stream, lastID},
				Count:    readBatchSize,
				Block:    r.blockTimeout,
			}).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue
				}
				if ctx.Err() != nil {
					return
				}
				r.logger.Error("Failed to read from stream",
					zap.String("stream", stream),
					zap.Error(err))
				select {
				case <-time.After(time.Second):
				case <-ctx.Done():
					return
				}
				continue
			}

			delivered, lastDelivered := 0, ""
			for _, s := range result {
				if len(s.Messages) > 0 {
					delivered += len(s.Messages)
					lastDelivered = s.Messages[len(s.Messages)-1].ID
				}
				if !deliver(s.Messages) {
					return
				}
			}

			// pending list читается постранично от последнего выданного ID
			if lastID != ">" {
				if delivered < readBatchSize {
					lastID = ">"
				} else {
					lastID = lastDelivered
				}
			}
		}
	}()

	return msgChan, nil
}

// AckMessage подтверждает обработку сообщения
func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	if err := r.client.XAck(ctx, stream, group, messageID).Err(); err != nil {
		r.logger.Error("Failed to acknowledge message",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.String("message_id", messageID),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge message: %w", err)
	}
	return nil
}

// PublishToStream сериализует data в JSON и кладет в поле "data"
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal stream payload: %w", err)
	}

	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{"data": string(payload)},
	}).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Message published",
		zap.String("stream", stream),
		zap.String("message_id", id))
	return nil
}
