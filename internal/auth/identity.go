package auth

import (
	"context"

	apperrors "smartblog/internal/errors"
	"smartblog/internal/model"
	"smartblog/internal/repository"
)

// ContextKey is the echo context key under which the resolved user is stored
// for protected routes.
const ContextKey = "currentUser"

// IdentityResolver turns a bearer token into an active user record. Every
// protected request runs through Resolve before any handler logic.
type IdentityResolver struct {
	jwt   *JWTService
	users repository.UserRepository
}

// NewIdentityResolver creates a resolver over the token service and user store.
func NewIdentityResolver(jwt *JWTService, users repository.UserRepository) *IdentityResolver {
	return &IdentityResolver{jwt: jwt, users: users}
}

// Resolve verifies the token, loads the subject's user record and checks the
// active flag. A bad token and a valid token whose subject no longer exists
// return the same ErrUnauthorized so callers cannot probe for accounts.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*model.User, error) {
	email, err := r.jwt.Verify(token)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := r.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	if !user.Active {
		return nil, apperrors.ErrAccountInactive
	}

	return user, nil
}
