package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. PasswordHash never leaves the process.
type User struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"`
	PhotoProfile  *string   `json:"photoProfile"`
	PhotoPublicID *string   `json:"photoPublicId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BlacklistedToken is a revoked access token, keyed by its raw value.
type BlacklistedToken struct {
	Token     string
	CreatedAt time.Time
}
