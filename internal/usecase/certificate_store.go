package usecase

import (
	"bytes"
	"context"
	"strconv"
	"time"

	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/pkg/apperror"
	"go-applicant-tracker/pkg/logger"
	"go-applicant-tracker/pkg/security"
	"go-applicant-tracker/pkg/security/antivirus"
	"go-applicant-tracker/pkg/storage"

	"go.uber.org/zap"
)

// UploadLimiter caps certificate uploads per user.
type UploadLimiter interface {
	AllowUpload(ctx context.Context, userID int64) (bool, time.Duration, error)
}

// CertificateStore validates, scans and persists certificate uploads.
type CertificateStore struct {
	storage storage.Storage
	scanner antivirus.Scanner
	limiter UploadLimiter
	secLog  *security.SecurityLogger
}

func NewCertificateStore(store storage.Storage, scanner antivirus.Scanner, limiter UploadLimiter) *CertificateStore {
	if scanner == nil {
		scanner = antivirus.NoOpScanner{}
	}
	return &CertificateStore{
		storage: store,
		scanner: scanner,
		limiter: limiter,
		secLog:  security.DefaultLogger(),
	}
}

// Stage stores an upload under prefix and returns its storage path. field
// names the request field in validation errors.
func (s *CertificateStore) Stage(ctx context.Context, userID int64, prefix, field string, upload *domain.CertificateUpload) (string, error) {
	if s.limiter != nil {
		allowed, _, err := s.limiter.AllowUpload(ctx, userID)
		if err != nil {
			logger.Log.Warn("Upload limiter unavailable", zap.Error(err))
		} else if !allowed {
			return "", apperror.TooManyRequests("Too many uploads. Please try again later.")
		}
	}

	check := security.ValidateCertificate(upload.Filename, upload.Data)
	if !check.Valid {
		s.reject(ctx, userID, field, check.Error)
		return "", apperror.Validation("The given data was invalid.", map[string][]string{
			field: {"The " + field + " " + check.Error + "."},
		})
	}

	scan := s.scanner.Scan(ctx, upload.Filename, bytes.NewReader(upload.Data))
	if scan.Infected {
		reason := "malware detected"
		if scan.Error != nil {
			reason = "scan failed"
		}
		s.reject(ctx, userID, field, reason)
		return "", apperror.Validation("The given data was invalid.", map[string][]string{
			field: {"The " + field + " failed a malware scan."},
		})
	}

	path := storage.NewObjectPath(prefix, ".pdf")
	if err := s.storage.Save(ctx, path, bytes.NewReader(upload.Data), "application/pdf"); err != nil {
		return "", apperror.Internal(err)
	}
	return path, nil
}

// Discard removes a stored file. Failures are logged, never returned.
func (s *CertificateStore) Discard(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.storage.Delete(ctx, path); err != nil {
		logger.Log.Warn("Failed to delete certificate", zap.String("path", path), zap.Error(err))
	}
}

func (s *CertificateStore) reject(ctx context.Context, userID int64, field, reason string) {
	s.secLog.LogUserEvent(ctx, security.EventUploadRejected, strconv.FormatInt(userID, 10), map[string]interface{}{
		"field":  field,
		"reason": reason,
	})
}
