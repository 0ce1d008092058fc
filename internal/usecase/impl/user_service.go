package impl

import (
	"context"
	"log/slog"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	paging   pageLimits
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Config   *config.Config
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		paging:   newPageLimits(params.Config),
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListUsers returns one page of users.
func (srv *userService) ListUsers(ctx context.Context, page, limit int) (*usecase.UserPage, error) {
	page, limit = srv.paging.normalize(page, limit)

	users, total, err := srv.userRepo.List(ctx, offset(page, limit), limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return &usecase.UserPage{
		Users:      users,
		Pagination: entity.NewPagination(page, limit, total),
	}, nil
}

// GetUser retrieves a user by ID.
func (srv *userService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// UpdateRole changes a user's role. Nobody changes their own role, and only a
// super admin may grant or revoke an admin role.
func (srv *userService) UpdateRole(ctx context.Context, actor *entity.User, targetID uuid.UUID, role entity.Role) (*entity.User, error) {
	if actor == nil {
		return nil, domainerrors.ErrUnauthorized
	}
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown role")
	}
	if actor.ID == targetID {
		return nil, domainerrors.ErrRoleChangeNotAllowed.WithMessage("You cannot change your own role")
	}

	target, err := srv.GetUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if target.Role == role {
		return target, nil
	}

	if (role.IsAdmin() || target.Role.IsAdmin()) && actor.Role != entity.RoleSuperAdmin {
		return nil, domainerrors.ErrRoleChangeNotAllowed
	}

	if err := srv.userRepo.UpdateRole(ctx, targetID, role); err != nil {
		return nil, errors.Wrap(err, "failed to update user role")
	}

	srv.log(ctx).Info("User role changed",
		slog.String("actorID", actor.ID.String()),
		slog.String("targetID", targetID.String()),
		slog.String("from", target.Role.String()),
		slog.String("to", role.String()),
	)

	target.Role = role

	return target, nil
}

// DeleteUser removes a user and, through storage cascades, their cart, addresses and orders.
func (srv *userService) DeleteUser(ctx context.Context, actor *entity.User, targetID uuid.UUID) error {
	if actor == nil {
		return domainerrors.ErrUnauthorized
	}
	if actor.ID == targetID {
		return domainerrors.ErrForbidden.WithMessage("You cannot delete your own account")
	}

	target, err := srv.GetUser(ctx, targetID)
	if err != nil {
		return err
	}

	if target.Role.IsAdmin() && actor.Role != entity.RoleSuperAdmin {
		return domainerrors.ErrForbidden.WithMessage("Only a super admin can delete an administrator")
	}

	err = srv.userRepo.Delete(ctx, targetID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrUserNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.String("actorID", actor.ID.String()), slog.String("targetID", targetID.String()))

	return nil
}
