package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
	"github.com/route-service/internal/pkg/errors"
)

type relationTable struct {
	table  string
	target string
}

// Только фиксированные имена таблиц и колонок попадают в SQL
var relationTables = map[domain.Relation]relationTable{
	domain.RelationSavedRoute: {table: "saved_routes", target: "route_id"},
	domain.RelationTripLike:   {table: "trip_likes", target: "trip_id"},
}

type relationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewRelationRepository создает репозиторий связей пользователь-цель
func NewRelationRepository(db *DB) repository.RelationRepository {
	return &relationRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func lookupRelation(relation domain.Relation) (relationTable, error) {
	t, ok := relationTables[relation]
	if !ok {
		return relationTable{}, fmt.Errorf("unknown relation %q", relation)
	}
	return t, nil
}

// Toggle удаляет связь, если она есть, иначе создает. Гонки разрешает уникальный индекс.
func (r *relationRepository) Toggle(ctx context.Context, relation domain.Relation, userID, targetID int64) (bool, error) {
	t, err := lookupRelation(relation)
	if err != nil {
		return false, err
	}

	del := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND %s = $2`, t.table, t.target)
	res, err := r.db.ExecContext(ctx, del, userID, targetID)
	if err != nil {
		r.logger.Error("Failed to delete relation",
			zap.String("relation", string(relation)),
			zap.Int64("user_id", userID),
			zap.Int64("target_id", targetID),
			zap.Error(err),
		)
		return false, errors.ErrDatabaseError
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if removed > 0 {
		return false, nil
	}

	ins := fmt.Sprintf(`INSERT INTO %s (user_id, %s) VALUES ($1, $2) ON CONFLICT (user_id, %s) DO NOTHING`,
		t.table, t.target, t.target)
	if _, err := r.db.ExecContext(ctx, ins, userID, targetID); err != nil {
		r.logger.Error("Failed to insert relation",
			zap.String("relation", string(relation)),
			zap.Int64("user_id", userID),
			zap.Int64("target_id", targetID),
			zap.Error(err),
		)
		return false, errors.ErrDatabaseError
	}

	return true, nil
}

func (r *relationRepository) ActiveTargets(ctx context.Context, relation domain.Relation, userID int64, targetIDs []int64) ([]int64, error) {
	if len(targetIDs) == 0 {
		return nil, nil
	}
	t, err := lookupRelation(relation)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = ? AND %s IN (?)`, t.target, t.table, t.target)

	var ids []int64
	if err := selectIn(ctx, r.db, &ids, query, userID, targetIDs); err != nil {
		r.logger.Error("Failed to get active relations",
			zap.String("relation", string(relation)),
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}
	return ids, nil
}

func (r *relationRepository) LikeCounts(ctx context.Context, tripIDs []int64) ([]domain.TripLikeCount, error) {
	if len(tripIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT trip_id, COUNT(*) AS like_count
		FROM trip_likes
		WHERE trip_id IN (?)
		GROUP BY trip_id`

	var counts []domain.TripLikeCount
	if err := selectIn(ctx, r.db, &counts, query, tripIDs); err != nil {
		r.logger.Error("Failed to count trip likes", zap.Int("trips", len(tripIDs)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return counts, nil
}
