package usecase

import (
	"context"
	"errors"

	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/pkg/apperror"
)

const msgUnauthorizedAction = "This action is unauthorized."

func currentActor(ctx context.Context) (*domain.Actor, error) {
	actor, ok := domain.ActorFromContext(ctx)
	if !ok {
		return nil, apperror.Unauthorized("Unauthenticated.")
	}
	return actor, nil
}

// authorize allows the owner of a record or anyone holding perm.
func authorize(actor *domain.Actor, ownerID int64, perm string) error {
	if actor.Owns(ownerID) || actor.Can(perm) {
		return nil
	}
	return apperror.Forbidden(msgUnauthorizedAction)
}

func requirePermission(actor *domain.Actor, perm string) error {
	if actor.Can(perm) {
		return nil
	}
	return apperror.Forbidden(msgUnauthorizedAction)
}

// notFoundOr maps domain.ErrNotFound to a 404 with msg and wraps anything else as a 500.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(msg)
	}
	return apperror.Internal(err)
}
