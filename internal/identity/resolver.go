package identity

import (
	"context"
	"errors"

	"work-tracker/internal/domain"
	apperrors "work-tracker/internal/errors"
	"work-tracker/internal/repository/sqlite"
)

// UserLookup loads a user by id.
type UserLookup interface {
	GetUser(ctx context.Context, id int64) (*sqlite.User, error)
}

// Resolver turns a bearer token into the acting user.
type Resolver struct {
	tokens *TokenService
	users  UserLookup
	mapper *domain.DirectoryMapper
}

func NewResolver(tokens *TokenService, users UserLookup) *Resolver {
	return &Resolver{tokens: tokens, users: users, mapper: domain.NewDirectoryMapper()}
}

// Resolve verifies token and loads the user it names. The organization comes
// from the directory, not the token, so membership changes apply immediately.
func (r *Resolver) Resolve(ctx context.Context, token string) (domain.Actor, error) {
	claims, err := r.tokens.Verify(token)
	if err != nil {
		if IsTokenError(err) {
			return domain.Actor{}, apperrors.NewUnauthenticatedError(err.Error())
		}
		return domain.Actor{}, err
	}

	row, err := r.users.GetUser(ctx, claims.UserID)
	if err != nil {
		if apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
			return domain.Actor{}, apperrors.NewUnauthenticatedError("unknown user")
		}
		return domain.Actor{}, err
	}

	return r.mapper.UserFromDatabase(*row).Actor(), nil
}

type actorKey struct{}

// WithActor stores the resolved actor on ctx.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// CurrentActor returns the actor stored by WithActor. It fails with an
// unauthenticated error when the request carried no identity.
func CurrentActor(ctx context.Context) (domain.Actor, error) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	if !ok || actor.UserID <= 0 {
		return domain.Actor{}, apperrors.NewUnauthenticatedError(ErrMissingToken.Error())
	}
	return actor, nil
}

// IsTokenError reports whether err came from token verification.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrExpiredToken) || errors.Is(err, ErrMissingToken)
}
