package directions

import (
	"context"
	"errors"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/route-service/internal/config"
	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
	"github.com/route-service/internal/pkg/metrics"
)

const breakerName = "directions"

// breakerClient - DirectionsRepository под circuit breaker
type breakerClient struct {
	next   repository.DirectionsRepository
	cb     *gobreaker.CircuitBreaker[*domain.DirectionsResponse]
	logger *zap.Logger
}

// WithCircuitBreaker оборачивает клиент. Пока breaker открыт, запросы не уходят
// к провайдеру и сразу возвращают ошибку.
func WithCircuitBreaker(next repository.DirectionsRepository, cfg *config.DirectionsConfig, logger *zap.Logger) repository.DirectionsRepository {
	settings := gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.BreakerMinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.BreakerFailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		},
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(float64(gobreaker.StateClosed))

	return &breakerClient{
		next:   next,
		cb:     gobreaker.NewCircuitBreaker[*domain.DirectionsResponse](settings),
		logger: logger,
	}
}

func (b *breakerClient) GetDrivingRoute(
	ctx context.Context,
	origin, destination domain.Coordinate,
	waypoints []domain.Coordinate,
) (*domain.DirectionsResponse, error) {
	resp, err := b.cb.Execute(func() (*domain.DirectionsResponse, error) {
		return b.next.GetDrivingRoute(ctx, origin, destination, waypoints)
	})

	switch {
	case err == nil:
		metrics.DirectionsRequests.WithLabelValues("ok").Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.DirectionsRequests.WithLabelValues("rejected").Inc()
	default:
		metrics.DirectionsRequests.WithLabelValues("error").Inc()
	}

	return resp, err
}
