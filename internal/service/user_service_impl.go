package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bagdasarian/crm-service/internal/config"
	"github.com/bagdasarian/crm-service/internal/domain"
	"github.com/bagdasarian/crm-service/internal/repository"
	"github.com/bagdasarian/crm-service/internal/scheduler"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// BypassUserID - идентификатор встроенного администратора, в БД его нет
const BypassUserID = "admin"

type userService struct {
	userRepo   repository.UserRepository
	admin      config.AdminConfig
	bcryptCost int
	clock      scheduler.Clock
	log        *zap.Logger
}

func NewUserService(
	userRepo repository.UserRepository,
	admin config.AdminConfig,
	bcryptCost int,
	clock scheduler.Clock,
	logger *zap.Logger,
) UserService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		userRepo:   userRepo,
		admin:      admin,
		bcryptCost: bcryptCost,
		clock:      clock,
		log:        logger,
	}
}

// Register создает учетную запись с bcrypt-хешем пароля. Имя пользователя уникально.
func (s *userService) Register(ctx context.Context, cmd domain.RegisterUserCommand) (*domain.User, error) {
	username := strings.TrimSpace(cmd.Username)
	if username == "" {
		return nil, domain.NewValidationError("username is required")
	}
	if cmd.Password == "" {
		return nil, domain.NewValidationError("password is required")
	}
	role := cmd.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	if role != domain.RoleAdmin && role != domain.RoleEmployee {
		return nil, domain.NewValidationError("unknown role %q", role)
	}
	if username == s.admin.Username && s.admin.Password != "" {
		return nil, domain.ErrUsernameTaken
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		IsConnected:  false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(role)))

	return withoutCredential(user), nil
}

// Login сначала проверяет встроенного администратора (без обращения к БД),
// затем учетную запись из хранилища. Успешный вход отмечает пользователя онлайн.
func (s *userService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if s.isBypass(username, password) {
		now := s.clock.Now()
		return &domain.User{
			ID:          BypassUserID,
			Username:    s.admin.Username,
			Role:        domain.RoleAdmin,
			IsConnected: true,
			LastLogin:   &now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}, nil
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.clock.Now()
	if err := s.userRepo.SetConnected(ctx, user.ID, true, &now); err != nil {
		return nil, userErr(err, user.ID)
	}
	user.IsConnected = true
	user.LastLogin = &now

	s.log.Info("user logged in", zap.String("user_id", user.ID))

	return withoutCredential(user), nil
}

// Logout снимает отметку онлайн; для встроенного администратора записи нет
func (s *userService) Logout(ctx context.Context, session domain.Session) error {
	if session.UserID == "" {
		return domain.ErrUnauthorized
	}
	if session.UserID == BypassUserID {
		return nil
	}
	if err := s.userRepo.SetConnected(ctx, session.UserID, false, nil); err != nil {
		return userErr(err, session.UserID)
	}
	return nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, userErr(err, id)
	}
	return withoutCredential(user), nil
}

// ListUsers никогда не отдает хеши паролей
func (s *userService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i, u := range users {
		users[i] = withoutCredential(u)
	}
	return users, nil
}

func (s *userService) ListEmployees(ctx context.Context) ([]*domain.User, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	employees := make([]*domain.User, 0, len(users))
	for _, u := range users {
		if u.Role == domain.RoleEmployee {
			employees = append(employees, u)
		}
	}
	return employees, nil
}

func (s *userService) isBypass(username, password string) bool {
	return s.admin.Password != "" && username == s.admin.Username && password == s.admin.Password
}

func withoutCredential(u *domain.User) *domain.User {
	c := *u
	c.PasswordHash = ""
	return &c
}

func userErr(err error, id string) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return domain.NewNotFoundError("user with id " + id)
	}
	return err
}
