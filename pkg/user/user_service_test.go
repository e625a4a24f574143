package user

import (
	"context"
	"recipehub/domain"
	"recipehub/entities"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) GetUsers(ctx context.Context, page, limit int) ([]*entities.User, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepository) CreateFollow(ctx context.Context, userID, authorID string) error {
	return m.Called(ctx, userID, authorID).Error(0)
}

func (m *mockUserRepository) DeleteFollow(ctx context.Context, userID, authorID string) error {
	return m.Called(ctx, userID, authorID).Error(0)
}

func (m *mockUserRepository) IsSubscribed(ctx context.Context, userID, authorID string) (bool, error) {
	args := m.Called(ctx, userID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) GetFollowedAuthors(ctx context.Context, userID string, page, limit int) ([]*entities.User, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.User), args.Get(1).(int64), args.Error(2)
}

type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateTokenUser(userID string, role string) string {
	return m.Called(userID, role).String(0)
}

func (m *mockJWTService) ValidateTokenUser(token string) (*jwtlib.Token, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwtlib.Token), args.Error(1)
}

func (m *mockJWTService) GetUserIDByToken(token string) (string, string, error) {
	args := m.Called(token)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockJWTService) GenerateTokenForgetPassword(data map[string]any, duration time.Duration) (string, error) {
	args := m.Called(data, duration)
	return args.String(0), args.Error(1)
}

func (m *mockJWTService) ValidateTokenForgetPassword(token string) (jwtlib.MapClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(jwtlib.MapClaims), args.Error(1)
}

func newTestUserService() (UserService, *mockUserRepository, *mockJWTService) {
	userRepo := new(mockUserRepository)
	jwtService := new(mockJWTService)
	return NewUserService(userRepo, jwtService), userRepo, jwtService
}

func registerRequest() domain.UserRegisterRequest {
	return domain.UserRegisterRequest{
		Email:     "chef@example.com",
		Username:  "chef",
		FirstName: "Jamie",
		LastName:  "Oliver",
		Password:  "supersecret",
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, userRepo, _ := newTestUserService()

	userRepo.On("GetUserByEmail", mock.Anything, "chef@example.com").
		Return(&entities.User{ID: uuid.New(), Email: "chef@example.com"}, nil)

	_, err := service.Register(context.Background(), registerRequest())

	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	service, userRepo, _ := newTestUserService()

	userRepo.On("GetUserByEmail", mock.Anything, "chef@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("GetUserByUsername", mock.Anything, "chef").
		Return(&entities.User{ID: uuid.New(), Username: "chef"}, nil)

	_, err := service.Register(context.Background(), registerRequest())

	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyUsed)
	userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestRegisterRacingDuplicateMapsToConflict(t *testing.T) {
	service, userRepo, _ := newTestUserService()

	userRepo.On("GetUserByEmail", mock.Anything, "chef@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("GetUserByUsername", mock.Anything, "chef").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("CreateUser", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, err := service.Register(context.Background(), registerRequest())

	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterHashesPassword(t *testing.T) {
	service, userRepo, _ := newTestUserService()

	var created *entities.User
	userRepo.On("GetUserByEmail", mock.Anything, "chef@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("GetUserByUsername", mock.Anything, "chef").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("CreateUser", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*entities.User)
		}).
		Return(nil)

	res, err := service.Register(context.Background(), registerRequest())

	require.NoError(t, err)
	assert.Equal(t, "chef@example.com", res.Email)
	require.NotNil(t, created)
	assert.NotEqual(t, "supersecret", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("supersecret")))
}

func TestLoginInvalidCredentials(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		service, userRepo, _ := newTestUserService()
		userRepo.On("GetUserByEmail", mock.Anything, "nobody@example.com").
			Return(nil, gorm.ErrRecordNotFound)

		_, err := service.Login(context.Background(), domain.UserLoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
	})

	t.Run("wrong password", func(t *testing.T) {
		service, userRepo, _ := newTestUserService()
		hashed, err := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.MinCost)
		require.NoError(t, err)

		userRepo.On("GetUserByEmail", mock.Anything, "chef@example.com").
			Return(&entities.User{ID: uuid.New(), Email: "chef@example.com", Password: string(hashed)}, nil)

		_, err = service.Login(context.Background(), domain.UserLoginRequest{
			Email:    "chef@example.com",
			Password: "wrongpassword",
		})
		assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
	})
}

func TestLoginSuccess(t *testing.T) {
	service, userRepo, jwtService := newTestUserService()

	userID := uuid.New()
	hashed, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo.On("GetUserByEmail", mock.Anything, "chef@example.com").
		Return(&entities.User{ID: userID, Email: "chef@example.com", Password: string(hashed)}, nil)
	jwtService.On("GenerateTokenUser", userID.String(), domain.RoleUser).Return("signed-token")

	res, err := service.Login(context.Background(), domain.UserLoginRequest{
		Email:    "chef@example.com",
		Password: "supersecret",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", res.Token)
	assert.Equal(t, domain.RoleUser, res.Role)
}

func TestGetUserDetailSubscriptionFlag(t *testing.T) {
	service, userRepo, _ := newTestUserService()

	requesterID := uuid.New().String()
	author := &entities.User{ID: uuid.New(), Email: "author@example.com", Username: "author"}

	userRepo.On("GetUserByID", mock.Anything, author.ID.String()).Return(author, nil)
	userRepo.On("IsSubscribed", mock.Anything, requesterID, author.ID.String()).Return(true, nil)

	res, err := service.GetUserDetail(context.Background(), author.ID.String(), requesterID)

	require.NoError(t, err)
	assert.True(t, res.IsSubscribed)
}

func TestResetPassword(t *testing.T) {
	service, userRepo, jwtService := newTestUserService()

	existing := &entities.User{ID: uuid.New(), Email: "chef@example.com", Password: "old-hash"}

	jwtService.On("ValidateTokenForgetPassword", "reset-token").
		Return(jwtlib.MapClaims{"email": "chef@example.com"}, nil)
	userRepo.On("GetUserByEmail", mock.Anything, "chef@example.com").Return(existing, nil)

	var updated *entities.User
	userRepo.On("UpdateUser", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(*entities.User)
		}).
		Return(nil)

	err := service.ResetPassword(context.Background(), domain.ResetPasswordRequest{
		Token:       "reset-token",
		NewPassword: "freshsecret",
	})

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("freshsecret")))
}

func TestResetPasswordExpiredToken(t *testing.T) {
	service, userRepo, jwtService := newTestUserService()

	jwtService.On("ValidateTokenForgetPassword", "stale-token").
		Return(nil, domain.ErrTokenExpired)

	err := service.ResetPassword(context.Background(), domain.ResetPasswordRequest{
		Token:       "stale-token",
		NewPassword: "freshsecret",
	})

	assert.ErrorIs(t, err, domain.ErrTokenExpired)
	userRepo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}
