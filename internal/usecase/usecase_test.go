package usecase_test

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/pkg/email"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) CreateWithRole(ctx context.Context, user *domain.User, roleID int64) error {
	return m.Called(ctx, user, roleID).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash, rememberToken string) error {
	return m.Called(ctx, id, passwordHash, rememberToken).Error(0)
}
func (m *MockUserRepo) MarkEmailVerified(ctx context.Context, id int64, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type MockTokenRepo struct {
	mock.Mock
}

func (m *MockTokenRepo) Create(ctx context.Context, token *domain.AccessToken) error {
	return m.Called(ctx, token).Error(0)
}
func (m *MockTokenRepo) GetByID(ctx context.Context, id int64) (*domain.AccessToken, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessToken), args.Error(1)
}
func (m *MockTokenRepo) Touch(ctx context.Context, id int64, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}
func (m *MockTokenRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockTokenRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

type MockResetRepo struct {
	mock.Mock
}

func (m *MockResetRepo) Upsert(ctx context.Context, token *domain.PasswordResetToken) error {
	return m.Called(ctx, token).Error(0)
}
func (m *MockResetRepo) GetByEmail(ctx context.Context, email string) (*domain.PasswordResetToken, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PasswordResetToken), args.Error(1)
}
func (m *MockResetRepo) Delete(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type MockRoleRepo struct {
	mock.Mock
}

func (m *MockRoleRepo) List(ctx context.Context, offset, limit int) ([]domain.Role, int64, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]domain.Role), args.Get(1).(int64), args.Error(2)
}
func (m *MockRoleRepo) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}
func (m *MockRoleRepo) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}
func (m *MockRoleRepo) Create(ctx context.Context, role *domain.Role, permissionIDs []int64) error {
	return m.Called(ctx, role, permissionIDs).Error(0)
}
func (m *MockRoleRepo) Update(ctx context.Context, role *domain.Role, permissionIDs []int64) error {
	return m.Called(ctx, role, permissionIDs).Error(0)
}
func (m *MockRoleRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockRoleRepo) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Permission), args.Error(1)
}
func (m *MockRoleRepo) CountPermissions(ctx context.Context, ids []int64) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}
func (m *MockRoleRepo) AccessForUser(ctx context.Context, userID int64) ([]string, []string, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]string), args.Get(1).([]string), args.Error(2)
}
func (m *MockRoleRepo) AssignRole(ctx context.Context, userID, roleID int64) error {
	return m.Called(ctx, userID, roleID).Error(0)
}
func (m *MockRoleRepo) EnsurePermission(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

// MockOwnedRepo mocks any profile sub-resource repository.
type MockOwnedRepo[T domain.OwnedRecord] struct {
	mock.Mock
}

func (m *MockOwnedRepo[T]) result(args mock.Arguments) (T, error) {
	var zero T
	if args.Get(0) == nil {
		return zero, args.Error(1)
	}
	return args.Get(0).(T), args.Error(1)
}
func (m *MockOwnedRepo[T]) GetByID(ctx context.Context, id int64) (T, error) {
	return m.result(m.Called(ctx, id))
}
func (m *MockOwnedRepo[T]) GetByUserID(ctx context.Context, userID int64) (T, error) {
	return m.result(m.Called(ctx, userID))
}
func (m *MockOwnedRepo[T]) List(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	return args.Get(0).([]T), args.Error(1)
}
func (m *MockOwnedRepo[T]) ListByUserIDs(ctx context.Context, userIDs []int64) ([]T, error) {
	args := m.Called(ctx, userIDs)
	return args.Get(0).([]T), args.Error(1)
}
func (m *MockOwnedRepo[T]) Create(ctx context.Context, record T) error {
	return m.Called(ctx, record).Error(0)
}
func (m *MockOwnedRepo[T]) Update(ctx context.Context, record T) error {
	return m.Called(ctx, record).Error(0)
}
func (m *MockOwnedRepo[T]) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockAttemptRepo struct {
	mock.Mock
	kind domain.AttemptKind
}

func (m *MockAttemptRepo) Kind() domain.AttemptKind { return m.kind }
func (m *MockAttemptRepo) Create(ctx context.Context, attempt *domain.Attempt) error {
	return m.Called(ctx, attempt).Error(0)
}
func (m *MockAttemptRepo) GetByID(ctx context.Context, id int64) (*domain.Attempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attempt), args.Error(1)
}
func (m *MockAttemptRepo) Update(ctx context.Context, id int64, patch domain.AttemptPatch) (*domain.Attempt, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attempt), args.Error(1)
}
func (m *MockAttemptRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockAttemptRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Attempt, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Attempt), args.Error(1)
}
func (m *MockAttemptRepo) ListByJob(ctx context.Context, jobID string) ([]domain.Attempt, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).([]domain.Attempt), args.Error(1)
}
func (m *MockAttemptRepo) ListAll(ctx context.Context) ([]domain.Attempt, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Attempt), args.Error(1)
}
func (m *MockAttemptRepo) FindLatest(ctx context.Context, userID int64, jobID, assessmentID string) (*domain.Attempt, error) {
	args := m.Called(ctx, userID, jobID, assessmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attempt), args.Error(1)
}

// Mock collaborators

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerificationLink(ctx context.Context, to, name, link string) error {
	return m.Called(ctx, to, name, link).Error(0)
}
func (m *MockMailer) SendPasswordResetLink(ctx context.Context, to, link string) error {
	return m.Called(ctx, to, link).Error(0)
}
func (m *MockMailer) SendCredentials(ctx context.Context, to string, data email.CredentialsEmailData) error {
	return m.Called(ctx, to, data).Error(0)
}

type recordingPublisher struct {
	events []domain.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, ev domain.Event) {
	p.events = append(p.events, ev)
}

// memStorage is an in-memory storage.Storage.
type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (s *memStorage) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = buf.Bytes()
	return nil
}

func (s *memStorage) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, path)
	return nil
}

func (s *memStorage) Exists(ctx context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[path]
	return ok, nil
}

func (s *memStorage) URL(path string) string { return "/storage/" + path }

func (s *memStorage) paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.objects))
	for p := range s.objects {
		out = append(out, p)
	}
	return out
}

func actorCtx(userID int64, perms ...string) context.Context {
	return domain.WithActor(context.Background(), &domain.Actor{UserID: userID, TokenID: 1, Permissions: perms})
}

func samplePDF() *domain.CertificateUpload {
	return &domain.CertificateUpload{
		Filename: "cert.pdf",
		Data:     []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"),
	}
}

func bytesReader(data []byte) io.Reader { return bytes.NewReader(data) }
