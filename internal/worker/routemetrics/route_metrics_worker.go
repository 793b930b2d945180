package routemetrics

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
	"github.com/route-service/internal/pkg/errors"
	"github.com/route-service/internal/worker"
)

// MetricsRecomputer пересчитывает и сохраняет метрики маршрута
type MetricsRecomputer interface {
	RecomputeMetrics(ctx context.Context, routeID int64) (*domain.RouteMetrics, error)
}

// RouteMetricsWorker обрабатывает события пересчета метрик после редактирования маршрута
type RouteMetricsWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	recomputer MetricsRecomputer
}

// NewRouteMetricsWorker создает новый RouteMetricsWorker
func NewRouteMetricsWorker(
	streamRepo repository.StreamRepository,
	recomputer MetricsRecomputer,
	consumerGroup string,
	logger *zap.Logger,
) *RouteMetricsWorker {
	return &RouteMetricsWorker{
		BaseWorker: worker.NewBaseWorker("route-metrics", domain.StreamRouteMetrics, consumerGroup, logger),
		streamRepo: streamRepo,
		recomputer: recomputer,
	}
}

// Start запускает воркер и блокируется до остановки
func (w *RouteMetricsWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting RouteMetricsWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.Stream(), w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	messages, err := w.streamRepo.ConsumeStream(consumeCtx, w.Stream(), w.ConsumerGroup(), w.ConsumerName())
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-messages:
			if !ok {
				logger.Info("Stream closed")
				return nil
			}
			w.handle(consumeCtx, msg)
		}
	}
}

// handle обрабатывает одно сообщение. Битые сообщения и удаленные маршруты подтверждаются;
// ошибка хранилища оставляет сообщение в pending для повторной доставки.
func (w *RouteMetricsWorker) handle(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	event, err := parseEvent(msg)
	if err != nil {
		logger.Warn("Failed to parse message, skipping", zap.Error(err))
		w.Observe(worker.OutcomeSkipped)
		w.ack(ctx, msg.ID)
		return
	}

	metrics, err := w.recomputer.RecomputeMetrics(ctx, event.RouteID)
	switch {
	case err == nil:
		logger.Info("Route metrics recomputed",
			zap.Int64("route_id", event.RouteID),
			zap.Bool("has_metrics", metrics != nil))
		w.Observe(worker.OutcomeProcessed)
	case errors.Is(err, errors.ErrRouteNotFound):
		logger.Info("Route deleted before recomputation", zap.Int64("route_id", event.RouteID))
		w.Observe(worker.OutcomeSkipped)
	default:
		logger.Error("Failed to store route metrics",
			zap.Int64("route_id", event.RouteID),
			zap.Error(err))
		w.Observe(worker.OutcomeRetry)
		return
	}

	w.ack(ctx, msg.ID)
}

func (w *RouteMetricsWorker) ack(ctx context.Context, id string) {
	if err := w.streamRepo.AckMessage(ctx, w.Stream(), w.ConsumerGroup(), id); err != nil {
		// не критично - сообщение будет обработано повторно
		w.Logger().Warn("Failed to ack message", zap.String("message_id", id), zap.Error(err))
	}
}

// parseEvent парсит сообщение из стрима в RouteMetricsRequestedEvent
func parseEvent(msg domain.StreamMessage) (*domain.RouteMetricsRequestedEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("missing 'data' field")
	}

	var event domain.RouteMetricsRequestedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.RouteID <= 0 {
		return nil, fmt.Errorf("invalid route_id %d", event.RouteID)
	}
	return &event, nil
}
