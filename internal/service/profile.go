package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/satriobayu/authsvc/internal/apperror"
	"github.com/satriobayu/authsvc/internal/db"
	"github.com/satriobayu/authsvc/internal/model"
	"go.uber.org/zap"
)

var ErrAvatarStorageDisabled = errors.New("avatar storage is not configured")

var avatarExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// SupportedAvatarType reports whether contentType may be stored as an avatar.
func SupportedAvatarType(contentType string) bool {
	_, ok := avatarExtensions[contentType]
	return ok
}

// ProfileService applies mutations an authenticated user makes to their own
// record.
type ProfileService struct {
	users   UserStore
	hasher  *PasswordHasher
	avatars AvatarStore
	logger  *zap.Logger
}

// NewProfileService accepts a nil avatars store; avatar updates then fail
// with ErrAvatarStorageDisabled.
func NewProfileService(users UserStore, hasher *PasswordHasher, avatars AvatarStore, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		users:   users,
		hasher:  hasher,
		avatars: avatars,
		logger:  logger,
	}
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperror.New(apperror.KindUserNotFound)
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// UpdateUsername renames the user. Renaming to a case variant of the current
// name is a no-op and reports changed=false.
func (s *ProfileService) UpdateUsername(ctx context.Context, userID uuid.UUID, username string) (changed bool, err error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	if model.SameUsername(user.Username, username) {
		return false, nil
	}

	_, err = s.users.FindUserByUsernameExcluding(ctx, username, user.ID)
	switch {
	case err == nil:
		return false, apperror.New(apperror.KindUsernameInUse)
	case !errors.Is(err, db.ErrNotFound):
		return false, apperror.Internal(err)
	}

	user.Username = username
	if err := s.save(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ProfileService) UpdatePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Matches(user.PasswordHash, current)
	if err != nil {
		return apperror.Internal(err)
	}
	if !ok {
		return apperror.New(apperror.KindWrongCurrentPassword)
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return apperror.Internal(err)
	}
	user.PasswordHash = hash
	return s.save(ctx, user)
}

// UpdateAvatar stores a new picture, points the user at it and then removes
// the previous object. A failed cleanup is logged, not returned.
func (s *ProfileService) UpdateAvatar(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (*model.User, error) {
	if s.avatars == nil {
		return nil, apperror.Internal(ErrAvatarStorageDisabled)
	}
	ext, ok := avatarExtensions[contentType]
	if !ok || len(data) == 0 {
		return nil, apperror.New(apperror.KindAvatarRequired)
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avatars/%s/%s%s", user.ID, uuid.NewString(), ext)
	url, err := s.avatars.Put(ctx, key, data, contentType)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	previous := user.PhotoPublicID
	user.PhotoProfile = &url
	user.PhotoPublicID = &key
	if err := s.save(ctx, user); err != nil {
		if delErr := s.avatars.Delete(ctx, key); delErr != nil {
			s.logger.Warn("failed to remove orphaned avatar", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}

	if previous != nil && *previous != "" {
		if err := s.avatars.Delete(ctx, *previous); err != nil {
			s.logger.Warn("failed to remove previous avatar", zap.String("key", *previous), zap.Error(err))
		}
	}
	return user, nil
}

func (s *ProfileService) save(ctx context.Context, user *model.User) error {
	err := s.users.UpdateUser(ctx, user)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, db.ErrUsernameTaken):
		return apperror.New(apperror.KindUsernameInUse)
	case errors.Is(err, db.ErrNotFound):
		return apperror.New(apperror.KindUserNotFound)
	default:
		return apperror.Internal(err)
	}
}
