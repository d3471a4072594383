package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/satriobayu/authsvc/internal/apperror"
	"github.com/satriobayu/authsvc/internal/db"
	"github.com/satriobayu/authsvc/internal/metrics"
	"github.com/satriobayu/authsvc/internal/model"
	"go.uber.org/zap"
)

// Session is the result of a successful login. RefreshToken travels only in
// the cookie.
type Session struct {
	User         *model.User
	AccessToken  string
	RefreshToken string
}

type LogoutInput struct {
	RefreshToken string
	Username     string
	AccessToken  string
}

// SessionService drives register, login, authenticate, logout and refresh.
// It holds no per-session state; every durable fact lives in the stores.
type SessionService struct {
	users   UserStore
	revoked RevocationStore
	tokens  *TokenService
	hasher  *PasswordHasher
	logger  *zap.Logger
}

func NewSessionService(users UserStore, revoked RevocationStore, tokens *TokenService, hasher *PasswordHasher, logger *zap.Logger) *SessionService {
	return &SessionService{
		users:   users,
		revoked: revoked,
		tokens:  tokens,
		hasher:  hasher,
		logger:  logger,
	}
}

func (s *SessionService) Register(ctx context.Context, username, password string) (user *model.User, err error) {
	defer func() { s.observe("register", err) }()

	_, err = s.users.FindUserByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, apperror.New(apperror.KindUsernameExists)
	case !errors.Is(err, db.ErrNotFound):
		return nil, apperror.Internal(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user = &model.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.InsertUser(ctx, user); err != nil {
		// Lost the race with a concurrent registration of the same name.
		if errors.Is(err, db.ErrUsernameTaken) {
			return nil, apperror.New(apperror.KindUsernameExists)
		}
		return nil, apperror.Internal(err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

// Login checks credentials, then refuses when the client already carries a
// refresh cookie.
func (s *SessionService) Login(ctx context.Context, username, password string, hasRefreshCookie bool) (session *Session, err error) {
	defer func() { s.observe("login", err) }()

	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperror.New(apperror.KindInvalidCredentials)
		}
		return nil, apperror.Internal(err)
	}

	ok, err := s.hasher.Matches(user.PasswordHash, password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !ok {
		return nil, apperror.New(apperror.KindInvalidCredentials)
	}

	if hasRefreshCookie {
		return nil, apperror.New(apperror.KindAlreadyLoggedIn)
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))
	return &Session{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Authenticate resolves a bearer token to its user. Checks run in a fixed
// order: presence, revocation, signature/expiry, user existence.
func (s *SessionService) Authenticate(ctx context.Context, accessToken string) (user *model.User, err error) {
	defer func() { s.observe("authenticate", err) }()

	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, apperror.New(apperror.KindNoToken)
	}

	revoked, err := s.revoked.IsBlacklisted(ctx, accessToken)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if revoked {
		return nil, apperror.New(apperror.KindTokenBlacklisted)
	}

	userID, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, invalidToken(err)
	}

	return s.resolveUser(ctx, userID)
}

// Logout revokes the supplied access token. Only the access token is
// blacklisted; the refresh token stays valid until its own expiry.
func (s *SessionService) Logout(ctx context.Context, in LogoutInput) (err error) {
	defer func() { s.observe("logout", err) }()

	if strings.TrimSpace(in.RefreshToken) == "" {
		return apperror.New(apperror.KindNotLoggedIn)
	}

	userID, err := s.tokens.VerifyAccessToken(in.AccessToken)
	if err != nil {
		return invalidToken(err)
	}

	user, err := s.resolveUser(ctx, userID)
	if err != nil {
		return err
	}
	if !model.SameUsername(user.Username, in.Username) {
		return apperror.New(apperror.KindTokenUserMismatch)
	}

	if err := s.revoked.Blacklist(ctx, in.AccessToken); err != nil {
		return apperror.Internal(err)
	}

	s.logger.Info("user logged out", zap.String("user_id", user.ID.String()))
	return nil
}

// Refresh mints a new access token from a refresh token. The refresh token
// is neither rotated nor consumed.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (accessToken string, err error) {
	defer func() { s.observe("refresh", err) }()

	if strings.TrimSpace(refreshToken) == "" {
		return "", apperror.New(apperror.KindNoToken)
	}

	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", invalidToken(err)
	}

	user, err := s.resolveUser(ctx, userID)
	if err != nil {
		return "", err
	}

	accessToken, err = s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return accessToken, nil
}

func (s *SessionService) resolveUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperror.New(apperror.KindUserNotFound)
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (s *SessionService) observe(transition string, err error) {
	outcome := metrics.OutcomeOK
	if err != nil {
		_, body := apperror.Render(err)
		outcome = body.Errors[0].Code
		if apperror.Is(err, apperror.KindInternal) {
			s.logger.Error("session transition failed",
				zap.String("transition", transition),
				zap.Error(err),
			)
		}
	}
	metrics.ObserveTransition(transition, outcome)
}

func invalidToken(err error) error {
	return apperror.WithDetail(apperror.KindInvalidToken, err.Error())
}
