package usecase_test

import (
	"net/http"
	"strings"
	"testing"

	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var highestResource = usecase.ProfileResource{
	Name:      "Highest education level",
	Prefix:    domain.PrefixHighestEducationCertificate,
	CertField: "certificate",
}

func newHighestUsecase() (*MockOwnedRepo[*domain.HighestEducationLevel], *memStorage, domain.ProfileUsecase[*domain.HighestEducationLevel]) {
	repo := new(MockOwnedRepo[*domain.HighestEducationLevel])
	store := newMemStorage()
	certs := usecase.NewCertificateStore(store, nil, nil)
	return repo, store, usecase.NewProfileUsecase[*domain.HighestEducationLevel](repo, certs, highestResource)
}

func TestProfileCreate(t *testing.T) {
	t.Run("Should store the record with a staged certificate", func(t *testing.T) {
		repo, store, uc := newHighestUsecase()
		repo.On("GetByUserID", mock.Anything, int64(1)).Return(nil, domain.ErrNotFound)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.HighestEducationLevel")).Return(nil)

		rec, err := uc.Create(actorCtx(1), &domain.HighestEducationLevel{UserID: 99, Institution: "UoN"}, samplePDF())

		require.NoError(t, err)
		assert.Equal(t, int64(1), rec.UserID, "owner comes from the actor, not the payload")
		require.NotNil(t, rec.CertificateURL)
		assert.True(t, strings.HasPrefix(*rec.CertificateURL, domain.PrefixHighestEducationCertificate+"/"))
		assert.Equal(t, []string{*rec.CertificateURL}, store.paths())
	})

	t.Run("Should report a conflict with the existing record", func(t *testing.T) {
		repo, store, uc := newHighestUsecase()
		existing := &domain.HighestEducationLevel{ID: 3, UserID: 1, Institution: "UoN"}
		repo.On("GetByUserID", mock.Anything, int64(1)).Return(existing, nil)

		_, err := uc.Create(actorCtx(1), &domain.HighestEducationLevel{Institution: "KU"}, samplePDF())

		assertAppError(t, err, http.StatusBadRequest, "")
		appErr := asAppError(t, err)
		assert.Equal(t, map[string]interface{}{"existing_record": existing}, appErr.Data)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.Empty(t, store.paths())
	})

	t.Run("Should discard the staged file when a concurrent insert wins", func(t *testing.T) {
		repo, store, uc := newHighestUsecase()
		existing := &domain.HighestEducationLevel{ID: 3, UserID: 1}
		repo.On("GetByUserID", mock.Anything, int64(1)).Return(nil, domain.ErrNotFound).Once()
		repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)
		repo.On("GetByUserID", mock.Anything, int64(1)).Return(existing, nil).Once()

		_, err := uc.Create(actorCtx(1), &domain.HighestEducationLevel{}, samplePDF())

		assertAppError(t, err, http.StatusBadRequest, "")
		assert.Empty(t, store.paths())
	})

	t.Run("Should reject a non-PDF certificate", func(t *testing.T) {
		repo, store, uc := newHighestUsecase()
		repo.On("GetByUserID", mock.Anything, int64(1)).Return(nil, domain.ErrNotFound)

		_, err := uc.Create(actorCtx(1), &domain.HighestEducationLevel{}, &domain.CertificateUpload{
			Filename: "cert.png",
			Data:     []byte("\x89PNG\r\n\x1a\n"),
		})

		assertAppError(t, err, http.StatusUnprocessableEntity, "")
		assert.Contains(t, asAppError(t, err).Fields, "certificate")
		assert.Empty(t, store.paths())
	})
}

func TestProfileUpdate(t *testing.T) {
	t.Run("Should return 404 for a missing record", func(t *testing.T) {
		repo, _, uc := newHighestUsecase()
		repo.On("GetByID", mock.Anything, int64(42)).Return(nil, domain.ErrNotFound)

		_, err := uc.Update(actorCtx(1), 42, &domain.HighestEducationLevel{}, nil)

		assertAppError(t, err, http.StatusNotFound, "Highest education level not found.")
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Should forbid non-owners without user-edit", func(t *testing.T) {
		repo, _, uc := newHighestUsecase()
		repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.HighestEducationLevel{ID: 3, UserID: 2}, nil)

		_, err := uc.Update(actorCtx(1), 3, &domain.HighestEducationLevel{}, nil)

		assertAppError(t, err, http.StatusForbidden, "")
	})

	t.Run("Should keep the old certificate when none is uploaded", func(t *testing.T) {
		repo, _, uc := newHighestUsecase()
		old := "applicant_certificates/old.pdf"
		repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.HighestEducationLevel{ID: 3, UserID: 1, CertificateURL: &old}, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		rec, err := uc.Update(actorCtx(1), 3, &domain.HighestEducationLevel{Institution: "KU"}, nil)

		require.NoError(t, err)
		assert.Equal(t, &old, rec.CertificateURL)
		assert.Equal(t, "KU", rec.Institution)
	})

	t.Run("Should replace the file only after the record is written", func(t *testing.T) {
		repo, store, uc := newHighestUsecase()
		old := "applicant_certificates/old.pdf"
		require.NoError(t, store.Save(actorCtx(1), old, strings.NewReader("%PDF-old"), "application/pdf"))
		repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.HighestEducationLevel{ID: 3, UserID: 1, CertificateURL: &old}, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		rec, err := uc.Update(actorCtx(1), 3, &domain.HighestEducationLevel{}, samplePDF())

		require.NoError(t, err)
		require.NotNil(t, rec.CertificateURL)
		assert.NotEqual(t, old, *rec.CertificateURL)
		assert.Equal(t, []string{*rec.CertificateURL}, store.paths())
	})

	t.Run("Should remove the new file when the record write fails", func(t *testing.T) {
		repo, store, uc := newHighestUsecase()
		old := "applicant_certificates/old.pdf"
		require.NoError(t, store.Save(actorCtx(1), old, strings.NewReader("%PDF-old"), "application/pdf"))
		repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.HighestEducationLevel{ID: 3, UserID: 1, CertificateURL: &old}, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(assert.AnError)

		_, err := uc.Update(actorCtx(1), 3, &domain.HighestEducationLevel{}, samplePDF())

		assertAppError(t, err, http.StatusInternalServerError, "")
		assert.Equal(t, []string{old}, store.paths())
	})
}

func TestProfileDelete(t *testing.T) {
	t.Run("Should remove the stored certificate", func(t *testing.T) {
		repo, store, uc := newHighestUsecase()
		path := "applicant_certificates/c.pdf"
		require.NoError(t, store.Save(actorCtx(1), path, strings.NewReader("%PDF"), "application/pdf"))
		repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.HighestEducationLevel{ID: 3, UserID: 1, CertificateURL: &path}, nil)
		repo.On("Delete", mock.Anything, int64(3)).Return(nil)

		require.NoError(t, uc.Delete(actorCtx(1), 3))
		assert.Empty(t, store.paths())
	})

	t.Run("Should leave storage untouched without a certificate", func(t *testing.T) {
		repo, store, uc := newHighestUsecase()
		other := "applicant_certificates/other.pdf"
		require.NoError(t, store.Save(actorCtx(1), other, strings.NewReader("%PDF"), "application/pdf"))
		repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.HighestEducationLevel{ID: 3, UserID: 1}, nil)
		repo.On("Delete", mock.Anything, int64(3)).Return(nil)

		require.NoError(t, uc.Delete(actorCtx(1), 3))
		assert.Equal(t, []string{other}, store.paths())
	})

	t.Run("Should allow staff with user-delete", func(t *testing.T) {
		repo, _, uc := newHighestUsecase()
		repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.HighestEducationLevel{ID: 3, UserID: 2}, nil)
		repo.On("Delete", mock.Anything, int64(3)).Return(nil)

		require.NoError(t, uc.Delete(actorCtx(1, domain.PermUserDelete), 3))
	})
}

func TestProfileList(t *testing.T) {
	t.Run("Should scope to the caller without user-list", func(t *testing.T) {
		repo := new(MockOwnedRepo[*domain.PersonalDetails])
		uc := usecase.NewProfileUsecase[*domain.PersonalDetails](repo, nil, usecase.ProfileResource{Name: "Personal details"})
		repo.On("GetByUserID", mock.Anything, int64(1)).Return(nil, domain.ErrNotFound)

		records, err := uc.List(actorCtx(1))
		require.NoError(t, err)
		assert.Empty(t, records)
		repo.AssertNotCalled(t, "List", mock.Anything)
	})

	t.Run("Should list everything with user-list", func(t *testing.T) {
		repo := new(MockOwnedRepo[*domain.PersonalDetails])
		uc := usecase.NewProfileUsecase[*domain.PersonalDetails](repo, nil, usecase.ProfileResource{Name: "Personal details"})
		all := []*domain.PersonalDetails{{ID: 1, UserID: 1}, {ID: 2, UserID: 2}}
		repo.On("List", mock.Anything).Return(all, nil)

		records, err := uc.List(actorCtx(9, domain.PermUserList))
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}
