package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
	"github.com/route-service/internal/usecase/dto"
)

// SessionIssuer выпускает сессионные токены
type SessionIssuer interface {
	Issue(userID int64) (string, error)
	TTL() time.Duration
}

type UserUseCase struct {
	users   repository.UserRepository
	photoUC *PhotoUseCase
	issuer  SessionIssuer
	logger  *zap.Logger
}

func NewUserUseCase(users repository.UserRepository, photoUC *PhotoUseCase, issuer SessionIssuer, logger *zap.Logger) *UserUseCase {
	return &UserUseCase{
		users:   users,
		photoUC: photoUC,
		issuer:  issuer,
		logger:  logger,
	}
}

// CreateSession upserts the user behind a verified identity and issues a session token.
func (uc *UserUseCase) CreateSession(ctx context.Context, req dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	user, err := uc.users.UpsertByIdentity(ctx, &domain.VerifiedProfile{
		Provider:  req.Provider,
		Subject:   req.Subject,
		Name:      req.Name,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return nil, err
	}

	token, err := uc.issuer.Issue(user.ID)
	if err != nil {
		uc.logger.Error("Failed to issue session", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Session created",
		zap.Int64("user_id", user.ID),
		zap.String("provider", req.Provider))

	return &dto.SessionResponse{
		User:      dto.NewUserResponse(user),
		Token:     token,
		ExpiresAt: time.Now().Add(uc.issuer.TTL()),
	}, nil
}

func (uc *UserUseCase) GetMe(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// UpdateProfile меняет имя и, если передан файл, аватар пользователя
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest, avatar *dto.FileUpload) (*dto.UserResponse, error) {
	var avatarURL *string
	if avatar != nil {
		url, err := uc.photoUC.StoreAvatar(ctx, userID, *avatar)
		if err != nil {
			return nil, err
		}
		avatarURL = &url
	}

	user, err := uc.users.UpdateProfile(ctx, userID, req.Name, avatarURL)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}
