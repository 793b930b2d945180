package blob

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/route-service/internal/config"
	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
	apperrors "github.com/route-service/internal/pkg/errors"
)

const (
	dataKeyPrefix = "blob:"
	typeKeyPrefix = "blob_type:"
)

// Store - объектное хранилище фотографий поверх BadgerDB
type Store struct {
	db     *badger.DB
	logger *zap.Logger
}

// Open opens (or creates) the on-disk store at cfg.Path.
func Open(cfg *config.StorageConfig, logger *zap.Logger) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob store: %w", err)
	}

	logger.Info("Blob store opened", zap.String("path", cfg.Path))
	return &Store{db: db, logger: logger}, nil
}

// NewInMemory returns a store that keeps everything in memory
func NewInMemory(logger *zap.Logger) (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory blob store: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger}, nil
}

// ObjectStorage returns the store as the repository interface
func (s *Store) ObjectStorage() repository.ObjectStorage {
	return s
}

func (s *Store) Close() error {
	s.logger.Info("Closing blob store")
	return s.db.Close()
}

// Put сохраняет данные и тип содержимого в одной транзакции
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(dataKeyPrefix+key), data); err != nil {
			return fmt.Errorf("set blob: %w", err)
		}
		if err := txn.Set([]byte(typeKeyPrefix+key), []byte(contentType)); err != nil {
			return fmt.Errorf("set blob type: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to store blob", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("put blob %s: %w", key, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (*domain.Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	blob := &domain.Blob{Key: key}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(dataKeyPrefix + key))
		if err != nil {
			return err
		}
		if blob.Data, err = item.ValueCopy(nil); err != nil {
			return err
		}

		typeItem, err := txn.Get([]byte(typeKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			blob.ContentType = "application/octet-stream"
			return nil
		}
		if err != nil {
			return err
		}
		contentType, err := typeItem.ValueCopy(nil)
		blob.ContentType = string(contentType)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, apperrors.ErrPhotoNotFound
	}
	if err != nil {
		s.logger.Error("Failed to read blob", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("get blob %s: %w", key, err)
	}

	return blob, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for _, k := range []string{dataKeyPrefix + key, typeKeyPrefix + key} {
			if err := txn.Delete([]byte(k)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("delete %s: %w", k, err)
			}
		}
		return nil
	})
}
