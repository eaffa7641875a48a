package usecase

import (
	"context"
	"errors"

	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/pkg/apperror"
)

// ProfileResource describes one profile sub-resource kind.
type ProfileResource struct {
	Name      string // human name used in messages, e.g. "Personal details"
	Prefix    string // storage prefix for certificates
	CertField string // request field carrying the certificate
}

// profileUsecase implements the one-record-per-user CRUD shared by every
// profile sub-resource. certs is nil for kinds without a certificate.
type profileUsecase[T domain.OwnedRecord] struct {
	repo     domain.OwnedRepository[T]
	certs    *CertificateStore
	resource ProfileResource
}

func NewProfileUsecase[T domain.OwnedRecord](repo domain.OwnedRepository[T], certs *CertificateStore, resource ProfileResource) domain.ProfileUsecase[T] {
	return &profileUsecase[T]{repo: repo, certs: certs, resource: resource}
}

func (u *profileUsecase[T]) notFound() error {
	return apperror.NotFound(u.resource.Name + " not found.")
}

func (u *profileUsecase[T]) load(ctx context.Context, id int64) (T, error) {
	record, err := u.repo.GetByID(ctx, id)
	if err != nil {
		var zero T
		if errors.Is(err, domain.ErrNotFound) {
			return zero, u.notFound()
		}
		return zero, apperror.Internal(err)
	}
	return record, nil
}

func (u *profileUsecase[T]) List(ctx context.Context) ([]T, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}
	if actor.Can(domain.PermUserList) {
		records, err := u.repo.List(ctx)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return records, nil
	}

	record, err := u.repo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []T{}, nil
		}
		return nil, apperror.Internal(err)
	}
	return []T{record}, nil
}

func (u *profileUsecase[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	actor, err := currentActor(ctx)
	if err != nil {
		return zero, err
	}
	record, err := u.load(ctx, id)
	if err != nil {
		return zero, err
	}
	if err := authorize(actor, record.OwnerID(), domain.PermUserList); err != nil {
		return zero, err
	}
	return record, nil
}

func (u *profileUsecase[T]) conflict(ctx context.Context, userID int64) error {
	msg := u.resource.Name + " already exist for this user."
	existing, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return apperror.Conflict(msg, nil)
	}
	return apperror.Conflict(msg, existing)
}

func (u *profileUsecase[T]) Create(ctx context.Context, record T, cert *domain.CertificateUpload) (T, error) {
	var zero T
	actor, err := currentActor(ctx)
	if err != nil {
		return zero, err
	}

	// 1. One record per user
	if _, err := u.repo.GetByUserID(ctx, actor.UserID); err == nil {
		return zero, u.conflict(ctx, actor.UserID)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return zero, apperror.Internal(err)
	}

	record.Assign(0, actor.UserID)
	record.SetCertificate(nil)

	// 2. Stage the certificate
	var staged string
	if cert != nil && u.certs != nil {
		staged, err = u.certs.Stage(ctx, actor.UserID, u.resource.Prefix, u.resource.CertField, cert)
		if err != nil {
			return zero, err
		}
		record.SetCertificate(&staged)
	}

	// 3. Insert; a concurrent duplicate trips the unique index
	if err := u.repo.Create(ctx, record); err != nil {
		if staged != "" {
			u.certs.Discard(ctx, staged)
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return zero, u.conflict(ctx, actor.UserID)
		}
		return zero, apperror.Internal(err)
	}
	return record, nil
}

func (u *profileUsecase[T]) Update(ctx context.Context, id int64, record T, cert *domain.CertificateUpload) (T, error) {
	var zero T
	actor, err := currentActor(ctx)
	if err != nil {
		return zero, err
	}
	existing, err := u.load(ctx, id)
	if err != nil {
		return zero, err
	}
	if err := authorize(actor, existing.OwnerID(), domain.PermUserEdit); err != nil {
		return zero, err
	}

	record.Assign(id, existing.OwnerID())
	old := existing.Certificate()
	record.SetCertificate(old)

	var staged string
	if cert != nil && u.certs != nil {
		staged, err = u.certs.Stage(ctx, actor.UserID, u.resource.Prefix, u.resource.CertField, cert)
		if err != nil {
			return zero, err
		}
		record.SetCertificate(&staged)
	}

	if err := u.repo.Update(ctx, record); err != nil {
		if staged != "" {
			u.certs.Discard(ctx, staged)
		}
		if errors.Is(err, domain.ErrNotFound) {
			return zero, u.notFound()
		}
		return zero, apperror.Internal(err)
	}

	// The old file goes only after the record points at the new one.
	if staged != "" && old != nil {
		u.certs.Discard(ctx, *old)
	}
	return record, nil
}

func (u *profileUsecase[T]) Delete(ctx context.Context, id int64) error {
	actor, err := currentActor(ctx)
	if err != nil {
		return err
	}
	existing, err := u.load(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, existing.OwnerID(), domain.PermUserDelete); err != nil {
		return err
	}

	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return u.notFound()
		}
		return apperror.Internal(err)
	}
	if path := existing.Certificate(); path != nil && u.certs != nil {
		u.certs.Discard(ctx, *path)
	}
	return nil
}
