package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/workforce"
	"github.com/atelier/backend/internal/infrastructure/auth"
	"github.com/atelier/backend/internal/infrastructure/config"
)

// MockEmployeeRepository is a mock implementation of workforce.EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByUsername(ctx context.Context, username string) (*workforce.Employee, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]workforce.Employee, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByRole(ctx context.Context, role workforce.Role, filter shared.Filter) ([]workforce.Employee, error) {
	args := m.Called(ctx, role, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, e *workforce.Employee) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEmployeeRepository) SaveWithLock(ctx context.Context, e *workforce.Employee) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-ok",
		RefreshSecret:          "refresh-secret-key-32-characters",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "atelier-test",
		MaxRefreshCount:        10,
	})
}

func newTestAuthService(repo *MockEmployeeRepository) *AuthService {
	return NewAuthService(
		repo,
		newTestJWTService(),
		auth.NewInMemoryTokenBlacklist(),
		DefaultAuthServiceConfig(),
		zap.NewNop(),
	)
}

func activeTailor(t *testing.T, password string) *workforce.Employee {
	t.Helper()
	emp, err := workforce.NewEmployee("m.rossi", password, "Marco Rossi", workforce.RoleTailor, time.Now().AddDate(-2, 0, 0))
	require.NoError(t, err)
	emp.ClearDomainEvents()
	return emp
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := new(MockEmployeeRepository)
	svc := newTestAuthService(repo)
	emp := activeTailor(t, "sewing-room-9")

	repo.On("FindByUsername", mock.Anything, "m.rossi").Return(emp, nil)
	repo.On("Save", mock.Anything, emp).Return(nil)

	result, err := svc.Login(context.Background(), LoginInput{Username: "m.rossi", Password: "sewing-room-9"})
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, emp.GetID(), result.Employee.ID)
	assert.Equal(t, "TAILOR", result.Employee.Role)
	assert.NotNil(t, emp.LastLoginAt)
	repo.AssertExpectations(t)
}

func TestAuthService_Login_UnknownUsername(t *testing.T) {
	repo := new(MockEmployeeRepository)
	svc := newTestAuthService(repo)

	repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, shared.ErrNotFound)

	_, err := svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "whatever"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_WrongPasswordCountsFailure(t *testing.T) {
	repo := new(MockEmployeeRepository)
	svc := newTestAuthService(repo)
	emp := activeTailor(t, "sewing-room-9")

	repo.On("FindByUsername", mock.Anything, "m.rossi").Return(emp, nil)
	repo.On("Save", mock.Anything, emp).Return(nil)

	_, err := svc.Login(context.Background(), LoginInput{Username: "m.rossi", Password: "wrong"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	assert.Equal(t, 1, emp.FailedAttempts)
}

func TestAuthService_Login_LocksAfterMaxAttempts(t *testing.T) {
	repo := new(MockEmployeeRepository)
	svc := newTestAuthService(repo)
	emp := activeTailor(t, "sewing-room-9")
	emp.FailedAttempts = 4 // one short of the default limit

	repo.On("FindByUsername", mock.Anything, "m.rossi").Return(emp, nil)
	repo.On("Save", mock.Anything, emp).Return(nil)

	_, err := svc.Login(context.Background(), LoginInput{Username: "m.rossi", Password: "wrong"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
	assert.True(t, emp.IsLocked())
}

func TestAuthService_Login_LockedAccountRejected(t *testing.T) {
	repo := new(MockEmployeeRepository)
	svc := newTestAuthService(repo)
	emp := activeTailor(t, "sewing-room-9")
	require.NoError(t, emp.Lock(time.Hour))

	repo.On("FindByUsername", mock.Anything, "m.rossi").Return(emp, nil)

	_, err := svc.Login(context.Background(), LoginInput{Username: "m.rossi", Password: "sewing-room-9"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
}

func TestAuthService_Login_DeactivatedAccountRejected(t *testing.T) {
	repo := new(MockEmployeeRepository)
	svc := newTestAuthService(repo)
	emp := activeTailor(t, "sewing-room-9")
	require.NoError(t, emp.Deactivate())
	emp.ClearDomainEvents()

	repo.On("FindByUsername", mock.Anything, "m.rossi").Return(emp, nil)

	_, err := svc.Login(context.Background(), LoginInput{Username: "m.rossi", Password: "sewing-room-9"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	repo := new(MockEmployeeRepository)
	svc := newTestAuthService(repo)
	emp := activeTailor(t, "sewing-room-9")

	repo.On("FindByUsername", mock.Anything, "m.rossi").Return(emp, nil)
	repo.On("FindByID", mock.Anything, emp.GetID()).Return(emp, nil)
	repo.On("Save", mock.Anything, emp).Return(nil)

	login, err := svc.Login(context.Background(), LoginInput{Username: "m.rossi", Password: "sewing-room-9"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)
}

func TestAuthService_RefreshToken_Invalid(t *testing.T) {
	repo := new(MockEmployeeRepository)
	svc := newTestAuthService(repo)

	_, err := svc.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: "not-a-token"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
}

func TestAuthService_RefreshToken_DeactivatedEmployee(t *testing.T) {
	repo := new(MockEmployeeRepository)
	svc := newTestAuthService(repo)
	emp := activeTailor(t, "sewing-room-9")

	repo.On("FindByUsername", mock.Anything, "m.rossi").Return(emp, nil)
	repo.On("FindByID", mock.Anything, emp.GetID()).Return(emp, nil)
	repo.On("Save", mock.Anything, emp).Return(nil)

	login, err := svc.Login(context.Background(), LoginInput{Username: "m.rossi", Password: "sewing-room-9"})
	require.NoError(t, err)

	require.NoError(t, emp.Deactivate())

	_, err = svc.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: login.RefreshToken})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_INACTIVE", domainErr.Code)
}

func TestAuthService_Logout_BlacklistsToken(t *testing.T) {
	repo := new(MockEmployeeRepository)
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewAuthService(repo, newTestJWTService(), blacklist, DefaultAuthServiceConfig(), zap.NewNop())

	err := svc.Logout(context.Background(), LogoutInput{
		UserID:   uuid.New(),
		TokenJTI: "jti-1234",
		TokenTTL: time.Minute,
	})
	require.NoError(t, err)

	revoked, err := blacklist.IsBlacklisted(context.Background(), "jti-1234")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthService_Logout_NoTokenIsNoop(t *testing.T) {
	repo := new(MockEmployeeRepository)
	svc := newTestAuthService(repo)

	err := svc.Logout(context.Background(), LogoutInput{UserID: uuid.New()})
	require.NoError(t, err)
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	repo := new(MockEmployeeRepository)
	svc := newTestAuthService(repo)
	emp := activeTailor(t, "sewing-room-9")

	repo.On("FindByID", mock.Anything, emp.GetID()).Return(emp, nil)

	result, err := svc.GetCurrentUser(context.Background(), GetCurrentUserInput{UserID: emp.GetID()})
	require.NoError(t, err)
	assert.Equal(t, "m.rossi", result.Employee.Username)
	assert.Equal(t, "Marco Rossi", result.Employee.FullName)
}

func TestAuthService_GetCurrentUser_NotFound(t *testing.T) {
	repo := new(MockEmployeeRepository)
	svc := newTestAuthService(repo)
	id := uuid.New()

	repo.On("FindByID", mock.Anything, id).Return(nil, errors.New("not found"))

	_, err := svc.GetCurrentUser(context.Background(), GetCurrentUserInput{UserID: id})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "USER_NOT_FOUND", domainErr.Code)
}
