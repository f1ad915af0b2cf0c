package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type (
	UUID = uuid.UUID
	Role string
	User struct {
		ID           UUID
		Username     string
		Name         string
		PasswordHash string
		Role         Role

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User

	// Summary is a user with the number of documents they own.
	Summary struct {
		User
		DocumentCount int64
	}
	Summaries []*Summary

	// Identity is what a validated session token says about its bearer.
	Identity struct {
		ID       UUID
		Username string
		Role     Role
	}
)

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

var (
	ErrNotFound      = errors.New("User not found")
	ErrUsernameTaken = errors.New("username already registered")
	ErrForbidden     = errors.New("forbidden")
)

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleUser }

// Require is the single role guard used in front of admin-only operations.
func (i Identity) Require(role Role) error {
	if i.Role != role {
		return ErrForbidden
	}
	return nil
}

func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username, Role: u.Role}
}
