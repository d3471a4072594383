package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/satriobayu/authsvc/internal/model"
)

// UserStore is the credential store. Username lookups are collation-aware
// (case-insensitive); misses return db.ErrNotFound and a uniqueness clash on
// write returns db.ErrUsernameTaken.
type UserStore interface {
	FindUserByUsername(ctx context.Context, username string) (*model.User, error)
	FindUserByUsernameExcluding(ctx context.Context, username string, excludeID uuid.UUID) (*model.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	InsertUser(ctx context.Context, user *model.User) error
	UpdateUser(ctx context.Context, user *model.User) error
}

// RevocationStore holds revoked access tokens. Blacklist is idempotent.
type RevocationStore interface {
	IsBlacklisted(ctx context.Context, token string) (bool, error)
	Blacklist(ctx context.Context, token string) error
}

type AvatarStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
