package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestIdentityService(t *testing.T) (usecase.IdentityUsecase, *mockSvc.MockIdentityVerifier, *mockRepo.MockUserRepository) {
	verifier := mockSvc.NewMockIdentityVerifier(t)
	userRepo := mockRepo.NewMockUserRepository(t)

	srv := NewIdentityService(IdentityServiceParams{
		Verifier: verifier,
		UserRepo: userRepo,
		Config: &config.Config{Identity: &config.IdentityConfig{
			SuperAdminEmails: []string{"owner@saree.shop"},
		}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return srv, verifier, userRepo
}

func TestIdentityService_ResolveUser_MissingToken(t *testing.T) {
	srv, _, _ := createTestIdentityService(t)

	_, err := srv.ResolveUser(context.Background(), "")

	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestIdentityService_ResolveUser_InvalidToken(t *testing.T) {
	srv, verifier, _ := createTestIdentityService(t)
	ctx := context.Background()

	verifier.EXPECT().Verify(ctx, "garbage").Return(nil, errors.New("signature mismatch"))

	_, err := srv.ResolveUser(ctx, "garbage")

	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestIdentityService_ResolveUser_FirstSignInCreatesUser(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		verified bool
		wantRole entity.Role
	}{
		{name: "shopper", email: "meera@example.com", verified: true, wantRole: entity.RoleUser},
		{name: "configured super admin", email: "Owner@Saree.Shop", verified: true, wantRole: entity.RoleSuperAdmin},
		{name: "unverified super admin email", email: "owner@saree.shop", verified: false, wantRole: entity.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, verifier, userRepo := createTestIdentityService(t)
			ctx := context.Background()
			claims := &service.IdentityClaims{UID: "uid-1", Email: tt.email, EmailVerified: tt.verified, Name: "Meera"}

			verifier.EXPECT().Verify(ctx, "token").Return(claims, nil)
			userRepo.EXPECT().FindByExternalID(ctx, "uid-1").Return(nil, repository.ErrUserNotFound)
			userRepo.EXPECT().
				Create(ctx, mock.MatchedBy(func(user *entity.User) bool {
					return user.ExternalID == "uid-1" && user.Role == tt.wantRole
				})).
				Run(func(ctx context.Context, user *entity.User) { user.ID = uuid.New() }).
				Return(nil)

			user, err := srv.ResolveUser(ctx, "token")
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, user.Role)
			assert.Equal(t, "Meera", user.Name)
		})
	}
}

func TestIdentityService_ResolveUser_ConcurrentFirstSignIn(t *testing.T) {
	srv, verifier, userRepo := createTestIdentityService(t)
	ctx := context.Background()
	existing := &entity.User{ID: uuid.New(), ExternalID: "uid-2", Role: entity.RoleUser}

	verifier.EXPECT().Verify(ctx, "token").Return(&service.IdentityClaims{UID: "uid-2"}, nil)
	userRepo.EXPECT().FindByExternalID(ctx, "uid-2").Return(nil, repository.ErrUserNotFound).Once()
	userRepo.EXPECT().Create(ctx, mock.Anything).Return(repository.ErrUserAlreadyExists)
	userRepo.EXPECT().FindByExternalID(ctx, "uid-2").Return(existing, nil).Once()

	user, err := srv.ResolveUser(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
}

func TestIdentityService_ResolveUser_ReturningUser(t *testing.T) {
	srv, verifier, userRepo := createTestIdentityService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), ExternalID: "uid-3", Email: "a@example.com", Name: "Asha", Role: entity.RoleAdmin}

	verifier.EXPECT().Verify(ctx, "token").Return(&service.IdentityClaims{UID: "uid-3", Email: "a@example.com", Name: "Asha"}, nil)
	userRepo.EXPECT().FindByExternalID(ctx, "uid-3").Return(user, nil)

	got, err := srv.ResolveUser(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, got.Role)
}

func TestIdentityService_ResolveUser_SyncsProfileAndPromotes(t *testing.T) {
	srv, verifier, userRepo := createTestIdentityService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), ExternalID: "uid-4", Email: "old@example.com", Role: entity.RoleUser}

	verifier.EXPECT().Verify(ctx, "token").Return(&service.IdentityClaims{UID: "uid-4", Email: "owner@saree.shop", EmailVerified: true, Phone: "+91 90000 00000"}, nil)
	userRepo.EXPECT().FindByExternalID(ctx, "uid-4").Return(user, nil)
	userRepo.EXPECT().UpdateRole(ctx, user.ID, entity.RoleSuperAdmin).Return(nil)
	userRepo.EXPECT().
		Update(ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Email == "owner@saree.shop" && u.Phone == "+91 90000 00000"
		})).
		Return(nil)

	got, err := srv.ResolveUser(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSuperAdmin, got.Role)
}

func TestIdentityService_ResolveUser_UnverifiedEmailIsNotPromoted(t *testing.T) {
	srv, verifier, userRepo := createTestIdentityService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), ExternalID: "uid-5", Email: "owner@saree.shop", Role: entity.RoleUser}

	verifier.EXPECT().Verify(ctx, "token").Return(&service.IdentityClaims{UID: "uid-5", Email: "owner@saree.shop"}, nil)
	userRepo.EXPECT().FindByExternalID(ctx, "uid-5").Return(user, nil)

	got, err := srv.ResolveUser(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, got.Role)
	userRepo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestIdentityService_ResolveUser_SignedTokenEmailVerification(t *testing.T) {
	const secret = "identity-service-test-secret"

	tests := []struct {
		name     string
		verified bool
		wantRole entity.Role
	}{
		{name: "unverified", verified: false, wantRole: entity.RoleUser},
		{name: "verified", verified: true, wantRole: entity.RoleSuperAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier, err := auth.NewJWTVerifier(secret, "")
			require.NoError(t, err)
			userRepo := mockRepo.NewMockUserRepository(t)

			srv := NewIdentityService(IdentityServiceParams{
				Verifier: verifier,
				UserRepo: userRepo,
				Config: &config.Config{Identity: &config.IdentityConfig{
					SuperAdminEmails: []string{"owner@saree.shop"},
				}},
				Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
			})

			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"sub":            "signup-uid",
				"email":          "owner@saree.shop",
				"email_verified": tt.verified,
				"exp":            time.Now().Add(time.Hour).Unix(),
			}).SignedString([]byte(secret))
			require.NoError(t, err)

			ctx := context.Background()
			userRepo.EXPECT().FindByExternalID(ctx, "signup-uid").Return(nil, repository.ErrUserNotFound)
			userRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)

			user, err := srv.ResolveUser(ctx, token)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, user.Role)
		})
	}
}
