package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		ID           uuid.UUID
		Username     string
		Name         string
		PasswordHash string
		Role         string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User

	Summary struct {
		User
		DocumentCount int64
	}
	Summaries []*Summary
)
