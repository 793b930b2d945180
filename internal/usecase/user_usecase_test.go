package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/route-service/internal/config"
	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/infrastructure/session"
	apperrors "github.com/route-service/internal/pkg/errors"
	"github.com/route-service/internal/usecase"
	"github.com/route-service/internal/usecase/dto"
)

func TestUserUseCase_CreateSession(t *testing.T) {
	ctx := context.Background()
	users := &MockUserRepository{}
	manager := session.NewManager(&config.AuthConfig{SessionSecret: "secret", SessionTTL: time.Hour})
	uc := usecase.NewUserUseCase(users, nil, manager, zap.NewNop())

	email := "kenji@example.com"
	users.On("UpsertByIdentity", ctx, &domain.VerifiedProfile{
		Provider: "google",
		Subject:  "sub-1",
		Name:     "Kenji",
		Email:    &email,
	}).Return(&domain.User{ID: 4, Name: "Kenji", Email: &email}, nil)

	resp, err := uc.CreateSession(ctx, dto.CreateSessionRequest{
		Provider: "google",
		Subject:  "sub-1",
		Name:     "Kenji",
		Email:    &email,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(4), resp.User.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)

	userID, err := manager.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(4), userID)
}

func TestUserUseCase_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("name only", func(t *testing.T) {
		users := &MockUserRepository{}
		uc := usecase.NewUserUseCase(users, nil, nil, zap.NewNop())

		users.On("UpdateProfile", ctx, int64(4), "Ken", (*string)(nil)).
			Return(&domain.User{ID: 4, Name: "Ken"}, nil)

		resp, err := uc.UpdateProfile(ctx, 4, dto.UpdateProfileRequest{Name: "Ken"}, nil)

		require.NoError(t, err)
		assert.Equal(t, "Ken", resp.Name)
	})

	t.Run("with avatar", func(t *testing.T) {
		users := &MockUserRepository{}
		storage := &MockObjectStorage{}
		photoUC := newPhotoUseCase(storage, &MockPhotoRepository{}, &MockRouteRepository{}, &MockTripRepository{})
		uc := usecase.NewUserUseCase(users, photoUC, nil, zap.NewNop())

		storage.On("Put", ctx, mock.Anything, mock.Anything, "image/jpeg").Return(nil)
		users.On("UpdateProfile", ctx, int64(4), "Ken", mock.MatchedBy(func(url *string) bool {
			return url != nil && len(*url) > len("/photos/users/4_profile_")
		})).Return(&domain.User{ID: 4, Name: "Ken", AvatarURL: strPtr("/photos/users/4_profile_1.jpg")}, nil)

		avatar := jpeg("me.jpg")
		resp, err := uc.UpdateProfile(ctx, 4, dto.UpdateProfileRequest{Name: "Ken"}, &avatar)

		require.NoError(t, err)
		require.NotNil(t, resp.AvatarURL)
	})

	t.Run("failed avatar upload leaves profile untouched", func(t *testing.T) {
		users := &MockUserRepository{}
		storage := &MockObjectStorage{}
		photoUC := newPhotoUseCase(storage, &MockPhotoRepository{}, &MockRouteRepository{}, &MockTripRepository{})
		uc := usecase.NewUserUseCase(users, photoUC, nil, zap.NewNop())

		storage.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

		avatar := jpeg("me.jpg")
		_, err := uc.UpdateProfile(ctx, 4, dto.UpdateProfileRequest{Name: "Ken"}, &avatar)

		assert.True(t, apperrors.Is(err, apperrors.ErrDependencyFailure))
		users.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
