package v1

import (
	"context"

	"go-applicant-tracker/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockAuthUsecase struct{ mock.Mock }

func (m *MockAuthUsecase) RegisterApplicant(ctx context.Context, in domain.RegisterApplicantInput) (*domain.AuthResult, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*domain.AuthResult)
	return res, args.Error(1)
}

func (m *MockAuthUsecase) ProvisionUser(ctx context.Context, in domain.ProvisionUserInput) (*domain.AuthResult, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*domain.AuthResult)
	return res, args.Error(1)
}

func (m *MockAuthUsecase) Login(ctx context.Context, email, password, ip string) (*domain.AuthResult, error) {
	args := m.Called(ctx, email, password, ip)
	res, _ := args.Get(0).(*domain.AuthResult)
	return res, args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockAuthUsecase) LogoutAll(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockAuthUsecase) Authenticate(ctx context.Context, bearer string) (*domain.Actor, error) {
	args := m.Called(ctx, bearer)
	res, _ := args.Get(0).(*domain.Actor)
	return res, args.Error(1)
}

func (m *MockAuthUsecase) Me(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*domain.User)
	return res, args.Error(1)
}

type MockVerificationUsecase struct{ mock.Mock }

func (m *MockVerificationUsecase) Verify(ctx context.Context, userID int64, hash, signature string) error {
	return m.Called(ctx, userID, hash, signature).Error(0)
}

func (m *MockVerificationUsecase) SendLink(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockVerificationUsecase) Resend(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockVerificationUsecase) Status(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

type MockProfileUsecase[T domain.OwnedRecord] struct{ mock.Mock }

func (m *MockProfileUsecase[T]) List(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]T)
	return res, args.Error(1)
}

func (m *MockProfileUsecase[T]) Get(ctx context.Context, id int64) (T, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(T)
	return res, args.Error(1)
}

func (m *MockProfileUsecase[T]) Create(ctx context.Context, record T, certificate *domain.CertificateUpload) (T, error) {
	args := m.Called(ctx, record, certificate)
	res, _ := args.Get(0).(T)
	return res, args.Error(1)
}

func (m *MockProfileUsecase[T]) Update(ctx context.Context, id int64, record T, certificate *domain.CertificateUpload) (T, error) {
	args := m.Called(ctx, id, record, certificate)
	res, _ := args.Get(0).(T)
	return res, args.Error(1)
}

func (m *MockProfileUsecase[T]) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockAttemptUsecase struct {
	mock.Mock
	kind domain.AttemptKind
}

func (m *MockAttemptUsecase) Kind() domain.AttemptKind { return m.kind }

func (m *MockAttemptUsecase) Record(ctx context.Context, in domain.RecordAttemptInput) (*domain.Attempt, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*domain.Attempt)
	return res, args.Error(1)
}

func (m *MockAttemptUsecase) Check(ctx context.Context, jobID, assessmentID string) (*domain.AttemptCheck, error) {
	args := m.Called(ctx, jobID, assessmentID)
	res, _ := args.Get(0).(*domain.AttemptCheck)
	return res, args.Error(1)
}

func (m *MockAttemptUsecase) Get(ctx context.Context, id int64) (*domain.Attempt, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Attempt)
	return res, args.Error(1)
}

func (m *MockAttemptUsecase) Update(ctx context.Context, id int64, patch domain.AttemptPatch) (*domain.Attempt, error) {
	args := m.Called(ctx, id, patch)
	res, _ := args.Get(0).(*domain.Attempt)
	return res, args.Error(1)
}

func (m *MockAttemptUsecase) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAttemptUsecase) list(args mock.Arguments) ([]domain.Attempt, error) {
	res, _ := args.Get(0).([]domain.Attempt)
	return res, args.Error(1)
}

func (m *MockAttemptUsecase) ListMine(ctx context.Context) ([]domain.Attempt, error) {
	return m.list(m.Called(ctx))
}

func (m *MockAttemptUsecase) ListByUser(ctx context.Context, userID int64) ([]domain.Attempt, error) {
	return m.list(m.Called(ctx, userID))
}

func (m *MockAttemptUsecase) ListByJob(ctx context.Context, jobID string) ([]domain.Attempt, error) {
	return m.list(m.Called(ctx, jobID))
}

func (m *MockAttemptUsecase) GroupByJob(ctx context.Context) ([]domain.JobGroup, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]domain.JobGroup)
	return res, args.Error(1)
}

func (m *MockAttemptUsecase) ExportByJob(ctx context.Context, jobID string) ([]byte, error) {
	args := m.Called(ctx, jobID)
	res, _ := args.Get(0).([]byte)
	return res, args.Error(1)
}

type MockRoleUsecase struct{ mock.Mock }

func (m *MockRoleUsecase) List(ctx context.Context, page int) (*domain.PaginatedResult[domain.Role], error) {
	args := m.Called(ctx, page)
	res, _ := args.Get(0).(*domain.PaginatedResult[domain.Role])
	return res, args.Error(1)
}

func (m *MockRoleUsecase) Get(ctx context.Context, id int64) (*domain.Role, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Role)
	return res, args.Error(1)
}

func (m *MockRoleUsecase) Create(ctx context.Context, in domain.RoleInput) (*domain.Role, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*domain.Role)
	return res, args.Error(1)
}

func (m *MockRoleUsecase) Update(ctx context.Context, id int64, in domain.RoleInput) (*domain.Role, error) {
	args := m.Called(ctx, id, in)
	res, _ := args.Get(0).(*domain.Role)
	return res, args.Error(1)
}

func (m *MockRoleUsecase) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRoleUsecase) Permissions(ctx context.Context) ([]domain.Permission, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]domain.Permission)
	return res, args.Error(1)
}
