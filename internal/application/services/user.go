package services

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"docmanager-api/internal/application/ports"
	"docmanager-api/internal/domain/user"
	"docmanager-api/internal/infrastructure/metrics"
)

const bcryptCost = 10

type UserService struct {
	userRepository user.Repository
	mCounter       *prometheus.CounterVec
	logger         *zap.Logger
}

func NewUserService(
	userRepository user.Repository,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		mCounter:       mCounter,
		logger:         logger,
	}
}

func (us *UserService) FindUserByID(ctx context.Context, id user.UUID) (*user.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) ListUsers(ctx context.Context) (user.Summaries, error) {
	return us.userRepository.FetchUserSummaries(ctx)
}

// Register always creates a plain user; admins only come from EnsureAdmin.
func (us *UserService) Register(ctx context.Context, username, name, password string) (*user.User, error) {
	u, err := us.create(ctx, username, name, password, user.RoleUser)
	if err != nil {
		return nil, err
	}

	metrics.Inc(us.mCounter, metrics.UsersRegistered)

	return u, nil
}

func (us *UserService) ResetPassword(ctx context.Context, username, newPassword string) error {
	u, err := us.userRepository.FetchUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if u == nil {
		return user.ErrNotFound
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	updated, err := us.userRepository.UpdatePassword(ctx, u.ID, hash)
	if err != nil {
		return err
	}
	if updated == nil {
		return user.ErrNotFound
	}

	metrics.Inc(us.mCounter, metrics.PasswordsReset)

	return nil
}

// EnsureAdmin creates the bootstrap admin once; an existing account is left untouched.
func (us *UserService) EnsureAdmin(ctx context.Context, username, name, password string) error {
	if username == "" || password == "" {
		return nil
	}

	existing, err := us.userRepository.FetchUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.Role != user.RoleAdmin {
			us.logger.Warn("bootstrap admin username belongs to a non-admin account", zap.String("username", username))
		}
		return nil
	}

	if _, err = us.create(ctx, username, name, password, user.RoleAdmin); err != nil {
		return err
	}

	us.logger.Info("bootstrap admin created", zap.String("username", username))

	return nil
}

func (us *UserService) create(ctx context.Context, username, name, password string, role user.Role) (*user.User, error) {
	existing, err := us.userRepository.FetchUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, user.ErrUsernameTaken
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	return us.userRepository.CreateUser(ctx, user.User{
		Username:     username,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
	})
}

func hashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}
