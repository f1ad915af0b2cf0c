package ports

import (
	"context"

	"docmanager-api/internal/domain/user"
)

type UserService interface {
	Register(ctx context.Context, username, name, password string) (*user.User, error)
	ResetPassword(ctx context.Context, username, newPassword string) error
	EnsureAdmin(ctx context.Context, username, name, password string) error
	FindUserByID(ctx context.Context, id user.UUID) (*user.User, error)
	ListUsers(ctx context.Context) (user.Summaries, error)
}
