package usecase

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/route-service/internal/config"
	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
	"github.com/route-service/internal/pkg/errors"
	"github.com/route-service/internal/pkg/metrics"
	"github.com/route-service/internal/usecase/dto"
)

// PhotoUseCase - прием фотографий: валидация, запись в хранилище, затем строка-указатель в БД
type PhotoUseCase struct {
	storage  repository.ObjectStorage
	photos   repository.PhotoRepository
	routes   repository.RouteRepository
	trips    repository.TripRepository
	maxBytes int64
	prefix   string
	logger   *zap.Logger
}

func NewPhotoUseCase(
	storage repository.ObjectStorage,
	photos repository.PhotoRepository,
	routes repository.RouteRepository,
	trips repository.TripRepository,
	cfg *config.StorageConfig,
	logger *zap.Logger,
) *PhotoUseCase {
	return &PhotoUseCase{
		storage:  storage,
		photos:   photos,
		routes:   routes,
		trips:    trips,
		maxBytes: cfg.MaxUploadBytes,
		prefix:   strings.TrimRight(cfg.PublicPrefix, "/"),
		logger:   logger,
	}
}

// Ingest stores an uploaded photo for a route or trip and returns its public URL.
// The blob is written first; the database row is inserted only after that succeeds.
func (uc *PhotoUseCase) Ingest(ctx context.Context, upload dto.PhotoUpload) (*dto.PhotoUploadResponse, error) {
	if err := uc.validateFile(upload.File); err != nil {
		return nil, err
	}

	switch upload.Parent {
	case domain.PhotoParentRoute:
		route, err := uc.routes.GetByID(ctx, upload.ParentID)
		if err != nil {
			return nil, err
		}
		if !domain.IsVisible(route, &upload.UploaderID) {
			return nil, errors.ErrRouteNotFound
		}
	case domain.PhotoParentTrip:
		trip, err := uc.trips.GetByID(ctx, upload.ParentID)
		if err != nil {
			return nil, err
		}
		if trip.UserID != upload.UploaderID {
			return nil, errors.ErrForbidden
		}
	default:
		return nil, errors.Validation("Unknown photo parent", map[string]interface{}{
			"parent": string(upload.Parent),
		})
	}

	key := buildPhotoKey(upload.Parent, upload.ParentID, upload.UploaderID, time.Now(), upload.File)
	url, err := uc.put(ctx, upload.Parent, key, upload.File)
	if err != nil {
		return nil, err
	}

	switch upload.Parent {
	case domain.PhotoParentRoute:
		uploader := upload.UploaderID
		err = uc.photos.CreateRoutePhoto(ctx, &domain.Photo{RouteID: upload.ParentID, UserID: &uploader, URL: url})
	case domain.PhotoParentTrip:
		err = uc.photos.CreateTripPhoto(ctx, &domain.TripPhoto{TripID: upload.ParentID, URL: url})
	}
	if err != nil {
		// блоб остается без ссылки, это допустимо
		uc.logger.Error("Photo stored but pointer row not written",
			zap.String("key", key),
			zap.Error(err))
		return nil, err
	}

	return &dto.PhotoUploadResponse{URL: url}, nil
}

// StoreAvatar stores a profile picture and returns its public URL.
func (uc *PhotoUseCase) StoreAvatar(ctx context.Context, userID int64, file dto.FileUpload) (string, error) {
	if err := uc.validateFile(file); err != nil {
		return "", err
	}
	key := buildPhotoKey(domain.PhotoParentUser, 0, userID, time.Now(), file)
	return uc.put(ctx, domain.PhotoParentUser, key, file)
}

// Open returns a stored blob by its key.
func (uc *PhotoUseCase) Open(ctx context.Context, key string) (*domain.Blob, error) {
	clean := path.Clean("/" + key)[1:]
	if clean == "" || clean != key {
		return nil, errors.ErrPhotoNotFound
	}
	blob, err := uc.storage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, errors.ErrPhotoNotFound) {
			return nil, err
		}
		return nil, errors.Dependency("Failed to read photo", err)
	}
	return blob, nil
}

func (uc *PhotoUseCase) validateFile(file dto.FileUpload) error {
	size := int64(len(file.Data))
	if !strings.HasPrefix(strings.ToLower(file.ContentType), "image/") || size == 0 || size > uc.maxBytes {
		return errors.ErrInvalidUpload.WithDetails(map[string]interface{}{
			"content_type": file.ContentType,
			"size":         size,
			"max_size":     uc.maxBytes,
		})
	}
	return nil
}

func (uc *PhotoUseCase) put(ctx context.Context, parent domain.PhotoParent, key string, file dto.FileUpload) (string, error) {
	if err := uc.storage.Put(ctx, key, file.Data, file.ContentType); err != nil {
		uc.logger.Error("Failed to store photo", zap.String("key", key), zap.Error(err))
		return "", errors.Dependency("Failed to store photo", err)
	}
	metrics.PhotoUploadBytes.WithLabelValues(string(parent)).Add(float64(len(file.Data)))
	return uc.prefix + "/" + key, nil
}

// buildPhotoKey: <routes|trips>/<parent>/<uploader>_<millis>_<rand>.<ext>
// или users/<uploader>_profile_<millis>_<rand>.<ext> для аватаров
func buildPhotoKey(parent domain.PhotoParent, parentID, uploaderID int64, now time.Time, file dto.FileUpload) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	ext := photoExtension(file.FileName, file.ContentType)

	if parent == domain.PhotoParentUser {
		return fmt.Sprintf("%s/%d_profile_%d_%s.%s", parent.KeyPrefix(), uploaderID, now.UnixMilli(), suffix, ext)
	}
	return fmt.Sprintf("%s/%d/%d_%d_%s.%s", parent.KeyPrefix(), parentID, uploaderID, now.UnixMilli(), suffix, ext)
}

func photoExtension(fileName, contentType string) string {
	if ext := sanitizeExt(strings.TrimPrefix(filepath.Ext(fileName), ".")); ext != "" {
		return ext
	}

	subtype := contentType
	if i := strings.Index(subtype, "/"); i >= 0 {
		subtype = subtype[i+1:]
	}
	if i := strings.IndexAny(subtype, "+;"); i >= 0 {
		subtype = subtype[:i]
	}
	if ext := sanitizeExt(subtype); ext != "" {
		return ext
	}
	return "bin"
}

func sanitizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || len(ext) > 10 {
		return ""
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
