package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bagdasarian/crm-service/internal/config"
	"github.com/bagdasarian/crm-service/internal/domain"
	"github.com/bagdasarian/crm-service/internal/repository"
	"github.com/bagdasarian/crm-service/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var testAdmin = config.AdminConfig{Username: "admin", Password: "s3cret"}

func newTestUserService(repo *MockUserRepository) UserService {
	return NewUserService(repo, testAdmin, bcrypt.MinCost, scheduler.FixedClock(testNow), zap.NewNop())
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestUserService_Register(t *testing.T) {
	t.Run("успешная регистрация сотрудника", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := newTestUserService(mockUserRepo)

		mockUserRepo.On("GetByUsername", mock.Anything, "ana").Return(nil, repository.ErrUserNotFound).Once()
		mockUserRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "ana" &&
				u.Role == domain.RoleEmployee &&
				!u.IsConnected &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pw")) == nil
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = "u1"
		}).Return(nil).Once()

		user, err := service.Register(context.Background(), domain.RegisterUserCommand{Username: "ana", Password: "pw"})

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.Empty(t, user.PasswordHash)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("ошибка: имя занято", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := newTestUserService(mockUserRepo)

		mockUserRepo.On("GetByUsername", mock.Anything, "ana").Return(&domain.User{ID: "u1"}, nil).Once()

		_, err := service.Register(context.Background(), domain.RegisterUserCommand{Username: "ana", Password: "pw"})

		assert.True(t, errors.Is(err, domain.ErrConflict))
		mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ошибка: гонка на уникальном индексе", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := newTestUserService(mockUserRepo)

		mockUserRepo.On("GetByUsername", mock.Anything, "ana").Return(nil, repository.ErrUserNotFound).Once()
		mockUserRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateKey).Once()

		_, err := service.Register(context.Background(), domain.RegisterUserCommand{Username: "ana", Password: "pw"})

		assert.True(t, errors.Is(err, domain.ErrConflict))
	})

	t.Run("ошибка: имя встроенного администратора", func(t *testing.T) {
		service := newTestUserService(new(MockUserRepository))

		_, err := service.Register(context.Background(), domain.RegisterUserCommand{Username: "admin", Password: "pw"})

		assert.True(t, errors.Is(err, domain.ErrConflict))
	})

	t.Run("ошибка: пустой пароль", func(t *testing.T) {
		service := newTestUserService(new(MockUserRepository))

		_, err := service.Register(context.Background(), domain.RegisterUserCommand{Username: "ana"})

		assert.True(t, errors.Is(err, domain.ErrValidation))
	})
}

func TestUserService_Login(t *testing.T) {
	t.Run("встроенный администратор без обращения к БД", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := newTestUserService(mockUserRepo)

		user, err := service.Login(context.Background(), "admin", "s3cret")

		require.NoError(t, err)
		assert.Equal(t, BypassUserID, user.ID)
		assert.Equal(t, domain.RoleAdmin, user.Role)
		mockUserRepo.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
	})

	t.Run("вход сотрудника отмечает его онлайн", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := newTestUserService(mockUserRepo)

		stored := &domain.User{ID: "u1", Username: "ana", PasswordHash: hashFor(t, "pw"), Role: domain.RoleEmployee}
		mockUserRepo.On("GetByUsername", mock.Anything, "ana").Return(stored, nil).Once()
		mockUserRepo.On("SetConnected", mock.Anything, "u1", true, mock.AnythingOfType("*time.Time")).Return(nil).Once()

		user, err := service.Login(context.Background(), "ana", "pw")

		require.NoError(t, err)
		assert.True(t, user.IsConnected)
		require.NotNil(t, user.LastLogin)
		assert.Equal(t, testNow, *user.LastLogin)
		assert.Empty(t, user.PasswordHash)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("ошибка: неверный пароль", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := newTestUserService(mockUserRepo)

		stored := &domain.User{ID: "u1", Username: "ana", PasswordHash: hashFor(t, "pw")}
		mockUserRepo.On("GetByUsername", mock.Anything, "ana").Return(stored, nil).Once()

		_, err := service.Login(context.Background(), "ana", "wrong")

		assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
		mockUserRepo.AssertNotCalled(t, "SetConnected", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ошибка: неизвестный пользователь", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := newTestUserService(mockUserRepo)

		mockUserRepo.On("GetByUsername", mock.Anything, "nobody").Return(nil, repository.ErrUserNotFound).Once()

		_, err := service.Login(context.Background(), "nobody", "pw")

		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	})

	t.Run("без пароля администратора обход отключен", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := NewUserService(mockUserRepo, config.AdminConfig{Username: "admin"}, bcrypt.MinCost,
			scheduler.FixedClock(testNow), zap.NewNop())

		mockUserRepo.On("GetByUsername", mock.Anything, "admin").Return(nil, repository.ErrUserNotFound).Once()

		_, err := service.Login(context.Background(), "admin", "")

		assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
	})
}

func TestUserService_Logout(t *testing.T) {
	t.Run("снимает отметку онлайн", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := newTestUserService(mockUserRepo)

		mockUserRepo.On("SetConnected", mock.Anything, "u1", false, (*time.Time)(nil)).Return(nil).Once()

		err := service.Logout(context.Background(), domain.Session{UserID: "u1"})

		require.NoError(t, err)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("встроенный администратор не пишет в БД", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := newTestUserService(mockUserRepo)

		err := service.Logout(context.Background(), domain.Session{UserID: BypassUserID, Role: domain.RoleAdmin})

		require.NoError(t, err)
		mockUserRepo.AssertNotCalled(t, "SetConnected", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ошибка: нет сессии", func(t *testing.T) {
		service := newTestUserService(new(MockUserRepository))

		err := service.Logout(context.Background(), domain.Session{})

		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	})
}

func TestUserService_ListEmployees(t *testing.T) {
	t.Run("только сотрудники и без хешей", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := newTestUserService(mockUserRepo)

		mockUserRepo.On("List", mock.Anything).Return([]*domain.User{
			{ID: "a", Role: domain.RoleAdmin, PasswordHash: "h"},
			{ID: "e", Role: domain.RoleEmployee, PasswordHash: "h"},
		}, nil).Once()

		users, err := service.ListEmployees(context.Background())

		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "e", users[0].ID)
		assert.Empty(t, users[0].PasswordHash)
	})
}
