package usecase

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
	"github.com/route-service/internal/pkg/metrics"
	"github.com/route-service/internal/usecase/dto"
)

// RelationToggler переключает связи пользователь-цель (сохранение маршрута, лайк поездки)
type RelationToggler struct {
	relations repository.RelationRepository
	logger    *zap.Logger
}

func NewRelationToggler(relations repository.RelationRepository, logger *zap.Logger) *RelationToggler {
	return &RelationToggler{
		relations: relations,
		logger:    logger,
	}
}

// Toggle flips the relation. For trip likes the fresh like count is included.
func (t *RelationToggler) Toggle(ctx context.Context, relation domain.Relation, userID, targetID int64) (*dto.ToggleResult, error) {
	active, err := t.relations.Toggle(ctx, relation, userID, targetID)
	if err != nil {
		return nil, err
	}

	metrics.RelationToggles.WithLabelValues(string(relation), strconv.FormatBool(active)).Inc()

	result := &dto.ToggleResult{Active: active}

	if relation == domain.RelationTripLike {
		counts, err := t.relations.LikeCounts(ctx, []int64{targetID})
		if err != nil {
			return nil, err
		}
		count := 0
		for _, c := range counts {
			if c.TripID == targetID {
				count = c.Count
			}
		}
		result.LikeCount = &count
	}

	t.logger.Debug("Relation toggled",
		zap.String("relation", string(relation)),
		zap.Int64("user_id", userID),
		zap.Int64("target_id", targetID),
		zap.Bool("active", active))

	return result, nil
}
