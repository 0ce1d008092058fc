package auth

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"
	"storefront/internal/infra/firebase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// VerifierParams holds dependencies for IdentityVerifier, injected by Fx
type VerifierParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewIdentityVerifier creates an IdentityVerifier based on identity.provider
func NewIdentityVerifier(params VerifierParams) (service.IdentityVerifier, error) {
	identity := params.Config.Identity

	switch identity.Provider {
	case constants.IdentityProviderJWT:
		params.Logger.Info("Verifying bearer tokens with a shared HS256 secret")

		return NewJWTVerifier(identity.JWTSecret, identity.JWTIssuer)

	case constants.IdentityProviderFirebase, "":
		app, err := firebase.NewApp(params.Ctx, params.Config.Firebase)
		if err != nil {
			return nil, err
		}
		params.Logger.Info("Verifying bearer tokens with Firebase Auth",
			slog.String("project_id", params.Config.Firebase.ProjectID),
		)

		return NewFirebaseVerifier(params.Ctx, app)

	default:
		return nil, errors.Errorf("unknown identity provider: %s", identity.Provider)
	}
}

// Module provides the identity verifier FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewIdentityVerifier),
)
