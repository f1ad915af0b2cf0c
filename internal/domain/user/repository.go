package user

import (
	"context"
)

// Repository lookups return (nil, nil) when the user does not exist.
type Repository interface {
	FetchUserByID(ctx context.Context, id UUID) (*User, error)
	FetchUserByUsername(ctx context.Context, username string) (*User, error)
	FetchUserSummaries(ctx context.Context) (Summaries, error)
	CreateUser(ctx context.Context, req User) (*User, error)
	UpdatePassword(ctx context.Context, id UUID, passwordHash string) (*User, error)
}
