package staff

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gymgate/internal/auth"
)

const testSecret = "test-secret"

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, name, email, passwordHash, role string) (*Staff, error) {
	args := m.Called(ctx, name, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Staff), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*Staff, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Staff), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int) (*Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Staff), args.Error(1)
}

func (m *MockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func TestRegister(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)

		repo.On("EmailExists", mock.Anything, "desk@gym.test").Return(false, nil)
		repo.On("Create", mock.Anything, "Front Desk", "desk@gym.test", mock.AnythingOfType("string"), auth.RoleStaff).
			Return(&Staff{ID: 1, Name: "Front Desk", Email: "desk@gym.test", Role: auth.RoleStaff}, nil)

		account, accessToken, refreshToken, err := svc.Register(context.Background(), RegisterRequest{
			Name: "Front Desk", Email: "desk@gym.test", Password: "password123", Role: auth.RoleStaff,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, account.ID)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)

		claims, err := auth.ValidateToken(accessToken, testSecret)
		require.NoError(t, err)
		assert.Equal(t, 1, claims.UserID)
		assert.Equal(t, auth.RoleStaff, claims.Role)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)

		repo.On("EmailExists", mock.Anything, "desk@gym.test").Return(true, nil)

		account, _, _, err := svc.Register(context.Background(), RegisterRequest{
			Name: "Front Desk", Email: "desk@gym.test", Password: "password123", Role: auth.RoleStaff,
		})

		assert.Nil(t, account)
		assert.ErrorIs(t, err, ErrEmailExists)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)

		repo.On("FindByEmail", mock.Anything, "desk@gym.test").
			Return(&Staff{ID: 1, Email: "desk@gym.test", PasswordHash: hash, Role: auth.RoleStaff}, nil)

		account, accessToken, _, err := svc.Login(context.Background(), LoginRequest{
			Email: "desk@gym.test", Password: "password123",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, account.ID)
		assert.NotEmpty(t, accessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)

		repo.On("FindByEmail", mock.Anything, "desk@gym.test").
			Return(&Staff{ID: 1, Email: "desk@gym.test", PasswordHash: hash, Role: auth.RoleStaff}, nil)

		account, _, _, err := svc.Login(context.Background(), LoginRequest{
			Email: "desk@gym.test", Password: "wrong",
		})

		assert.Nil(t, account)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)

		repo.On("FindByEmail", mock.Anything, "nobody@gym.test").
			Return(nil, errors.New("sql: no rows in result set"))

		account, _, _, err := svc.Login(context.Background(), LoginRequest{
			Email: "nobody@gym.test", Password: "password123",
		})

		assert.Nil(t, account)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRefreshToken(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)

		refreshToken, err := auth.GenerateRefreshToken(1, "desk@gym.test", auth.RoleStaff, testSecret)
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, 1).
			Return(&Staff{ID: 1, Email: "desk@gym.test", Role: auth.RoleStaff}, nil)

		accessToken, account, err := svc.RefreshToken(context.Background(), refreshToken)

		require.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.Equal(t, 1, account.ID)
	})

	t.Run("access token is not accepted as refresh token", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)

		accessToken, err := auth.GenerateAccessToken(1, "desk@gym.test", auth.RoleStaff, testSecret)
		require.NoError(t, err)

		_, _, err = svc.RefreshToken(context.Background(), accessToken)

		assert.ErrorIs(t, err, auth.ErrInvalidTokenType)
	})

	t.Run("deleted account", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)

		refreshToken, err := auth.GenerateRefreshToken(9, "gone@gym.test", auth.RoleStaff, testSecret)
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, 9).Return(nil, errors.New("sql: no rows in result set"))

		_, _, err = svc.RefreshToken(context.Background(), refreshToken)

		assert.ErrorIs(t, err, ErrStaffNotFound)
	})
}
