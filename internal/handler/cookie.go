package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/satriobayu/authsvc/internal/config"
)

const refreshCookieName = "refreshToken"

var ErrInvalidCookieConfig = errors.New("refresh cookie config invalid")

type CookieConfig struct {
	Name     string
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
	MaxAge   int
}

func NewCookieConfig(cfg config.AuthConfig) (CookieConfig, error) {
	sameSite, err := parseSameSite(cfg.CookieSameSite)
	if err != nil {
		return CookieConfig{}, err
	}
	if sameSite == http.SameSiteNoneMode && !cfg.CookieSecure {
		return CookieConfig{}, fmt.Errorf("%w: SameSite=None requires Secure cookie", ErrInvalidCookieConfig)
	}
	if cfg.CookieMaxAge <= 0 {
		return CookieConfig{}, fmt.Errorf("%w: AUTH_COOKIE_MAX_AGE must be positive", ErrInvalidCookieConfig)
	}

	path := cfg.CookiePath
	if strings.TrimSpace(path) == "" {
		path = "/"
	}

	return CookieConfig{
		Name:     refreshCookieName,
		Path:     path,
		Domain:   cfg.CookieDomain,
		Secure:   cfg.CookieSecure,
		SameSite: sameSite,
		MaxAge:   int(cfg.CookieMaxAge.Seconds()),
	}, nil
}

func (cfg CookieConfig) set(c *gin.Context, token string) {
	c.SetSameSite(cfg.SameSite)
	c.SetCookie(cfg.Name, token, cfg.MaxAge, cfg.Path, cfg.Domain, cfg.Secure, true)
}

func (cfg CookieConfig) clear(c *gin.Context) {
	c.SetSameSite(cfg.SameSite)
	c.SetCookie(cfg.Name, "", -1, cfg.Path, cfg.Domain, cfg.Secure, true)
}

// read returns the refresh token cookie, or "" when absent.
func (cfg CookieConfig) read(c *gin.Context) string {
	value, err := c.Cookie(cfg.Name)
	if err != nil {
		return ""
	}
	return value
}

func parseSameSite(value string) (http.SameSite, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	switch value {
	case "", "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	default:
		return 0, fmt.Errorf("%w: invalid AUTH_COOKIE_SAMESITE %q", ErrInvalidCookieConfig, value)
	}
}
