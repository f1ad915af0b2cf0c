package ports

import (
	"context"

	"docmanager-api/internal/domain/user"
)

type Auth interface {
	Authenticate(ctx context.Context, username, password string) (string, *user.User, error)
}
