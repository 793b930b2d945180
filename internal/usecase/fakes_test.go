package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/route-service/internal/domain"
	apperrors "github.com/route-service/internal/pkg/errors"
)

type relationKey struct {
	relation domain.Relation
	userID   int64
	targetID int64
}

// memRelationRepository - in-memory RelationRepository с той же семантикой переключения
type memRelationRepository struct {
	mu   sync.Mutex
	rows map[relationKey]struct{}
}

func newMemRelationRepository() *memRelationRepository {
	return &memRelationRepository{rows: make(map[relationKey]struct{})}
}

func (r *memRelationRepository) Toggle(_ context.Context, relation domain.Relation, userID, targetID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := relationKey{relation, userID, targetID}
	if _, ok := r.rows[key]; ok {
		delete(r.rows, key)
		return false, nil
	}
	r.rows[key] = struct{}{}
	return true, nil
}

func (r *memRelationRepository) ActiveTargets(_ context.Context, relation domain.Relation, userID int64, targetIDs []int64) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	active := []int64{}
	for _, id := range targetIDs {
		if _, ok := r.rows[relationKey{relation, userID, id}]; ok {
			active = append(active, id)
		}
	}
	return active, nil
}

func (r *memRelationRepository) LikeCounts(_ context.Context, tripIDs []int64) ([]domain.TripLikeCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := []domain.TripLikeCount{}
	for _, id := range tripIDs {
		n := 0
		for key := range r.rows {
			if key.relation == domain.RelationTripLike && key.targetID == id {
				n++
			}
		}
		if n > 0 {
			counts = append(counts, domain.TripLikeCount{TripID: id, Count: n})
		}
	}
	return counts, nil
}

// assertAppError проверяет и код, и сообщение: все ошибки валидации делят код VALIDATION_ERROR
func assertAppError(t *testing.T, want *apperrors.AppError, err error, msgAndArgs ...interface{}) {
	t.Helper()

	got, ok := apperrors.As(err)
	if !assert.True(t, ok, "expected *AppError, got %v", err) {
		return
	}
	assert.Equal(t, want.Code, got.Code, msgAndArgs...)
	assert.Equal(t, want.Message, got.Message, msgAndArgs...)
}
