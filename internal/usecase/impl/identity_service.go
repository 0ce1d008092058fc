package impl

import (
	"context"
	"log/slog"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type identityService struct {
	verifier service.IdentityVerifier
	userRepo repository.UserRepository
	identity *config.IdentityConfig
	logger   *slog.Logger
}

// IdentityServiceParams holds dependencies for IdentityService, injected by Fx.
type IdentityServiceParams struct {
	fx.In

	Verifier service.IdentityVerifier
	UserRepo repository.UserRepository
	Config   *config.Config
	Logger   *slog.Logger
}

// NewIdentityService creates a new identity service instance
func NewIdentityService(params IdentityServiceParams) usecase.IdentityUsecase {
	var identity *config.IdentityConfig
	if params.Config != nil {
		identity = params.Config.Identity
	}

	return &identityService{
		verifier: params.Verifier,
		userRepo: params.UserRepo,
		identity: identity,
		logger:   params.Logger,
	}
}

func (srv *identityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ResolveUser verifies the token and returns the linked user. The first
// sign-in creates the user; configured super admin emails are created as
// SUPER_ADMIN and promoted on later sign-ins, once the provider has verified the email.
func (srv *identityService) ResolveUser(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, domainerrors.ErrUnauthorized
	}

	claims, err := srv.verifier.Verify(ctx, token)
	if err != nil {
		srv.log(ctx).Debug("Token verification failed", slog.Any("error", err))

		return nil, domainerrors.ErrInvalidToken
	}

	user, err := srv.userRepo.FindByExternalID(ctx, claims.UID)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return srv.createUser(ctx, claims)
	case err != nil:
		return nil, errors.Wrap(err, "failed to find user by external id")
	}

	return srv.syncUser(ctx, user, claims)
}

func (srv *identityService) createUser(ctx context.Context, claims *service.IdentityClaims) (*entity.User, error) {
	user := &entity.User{
		ExternalID: claims.UID,
		Email:      claims.Email,
		Name:       claims.Name,
		Phone:      claims.Phone,
		Role:       entity.RoleUser,
	}
	if srv.isSuperAdmin(claims) {
		user.Role = entity.RoleSuperAdmin
	}

	err := srv.userRepo.Create(ctx, user)
	if errors.Is(err, repository.ErrUserAlreadyExists) {
		// A concurrent first request created the user.
		existing, findErr := srv.userRepo.FindByExternalID(ctx, claims.UID)
		if findErr != nil {
			return nil, errors.Wrap(findErr, "failed to find user after create conflict")
		}

		return existing, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User created on first sign-in", slog.String("userID", user.ID.String()), slog.String("role", user.Role.String()))

	return user, nil
}

// syncUser refreshes profile fields from the token and applies super admin promotion.
func (srv *identityService) syncUser(ctx context.Context, user *entity.User, claims *service.IdentityClaims) (*entity.User, error) {
	if user.Role != entity.RoleSuperAdmin && srv.isSuperAdmin(claims) {
		if err := srv.userRepo.UpdateRole(ctx, user.ID, entity.RoleSuperAdmin); err != nil {
			return nil, errors.Wrap(err, "failed to promote super admin")
		}
		user.Role = entity.RoleSuperAdmin
		srv.log(ctx).Info("User promoted to super admin", slog.String("userID", user.ID.String()))
	}

	changed := false
	if claims.Email != "" && claims.Email != user.Email {
		user.Email = claims.Email
		changed = true
	}
	if claims.Name != "" && claims.Name != user.Name {
		user.Name = claims.Name
		changed = true
	}
	if claims.Phone != "" && claims.Phone != user.Phone {
		user.Phone = claims.Phone
		changed = true
	}

	if changed {
		if err := srv.userRepo.Update(ctx, user); err != nil {
			return nil, errors.Wrap(err, "failed to update user profile")
		}
	}

	return user, nil
}

// isSuperAdmin requires a verified email so that an unverified sign-up cannot claim a listed address.
func (srv *identityService) isSuperAdmin(claims *service.IdentityClaims) bool {
	return claims.EmailVerified && srv.identity.IsSuperAdminEmail(claims.Email)
}
