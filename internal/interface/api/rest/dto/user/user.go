package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		ID        uuid.UUID  `json:"_id"`
		Username  string     `json:"username"`
		Name      string     `json:"name"`
		Role      string     `json:"role"`
		CreatedAt *time.Time `json:"createdAt,omitempty"`
		UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	}
	Users []User

	WithDocCount struct {
		User
		DocumentCount int64 `json:"documentCount"`
	}
	WithDocCounts []WithDocCount
)
