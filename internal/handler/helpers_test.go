package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/satriobayu/authsvc/internal/apperror"
	"github.com/satriobayu/authsvc/internal/config"
	"github.com/satriobayu/authsvc/internal/db"
	"github.com/satriobayu/authsvc/internal/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "Password1!"

type memoryAvatars struct {
	objects map[string][]byte
}

func (m *memoryAvatars) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	m.objects[key] = data
	return "https://cdn.test/" + key, nil
}

func (m *memoryAvatars) Delete(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

type testServer struct {
	router  *gin.Engine
	store   *db.Memory
	tokens  *service.TokenService
	avatars *memoryAvatars
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithLogger(t, zap.NewNop())
}

func newTestServerWithLogger(t *testing.T, logger *zap.Logger) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authCfg := config.AuthConfig{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     config.DefaultAccessTokenTTL,
		RefreshTokenTTL:    config.DefaultRefreshTokenTTL,
		CookieMaxAge:       config.DefaultRefreshCookieMaxAge,
		CookiePath:         "/",
		CookieSecure:       true,
		CookieSameSite:     "lax",
	}
	tokens, err := service.NewTokenService(authCfg)
	require.NoError(t, err)
	hasher, err := service.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	cookie, err := NewCookieConfig(authCfg)
	require.NoError(t, err)

	store := db.NewMemory()
	avatars := &memoryAvatars{objects: map[string][]byte{}}

	router, err := NewRouter(RouterDeps{
		Sessions:       service.NewSessionService(store, store, tokens, hasher, logger),
		Profiles:       service.NewProfileService(store, hasher, avatars, logger),
		Cookie:         cookie,
		Logger:         logger,
		AllowedOrigins: []string{"http://app.test"},
		AvatarMaxBytes: 1024,
	})
	require.NoError(t, err)

	return &testServer{router: router, store: store, tokens: tokens, avatars: avatars}
}

type request struct {
	method  string
	path    string
	body    any
	raw     string
	bearer  string
	cookies []*http.Cookie
}

func (s *testServer) do(t *testing.T, r request) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader = http.NoBody
	switch {
	case r.raw != "":
		body = bytes.NewBufferString(r.raw)
	case r.body != nil:
		payload, err := json.Marshal(r.body)
		require.NoError(t, err)
		body = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(r.method, r.path, body)
	req.Header.Set("Content-Type", "application/json")
	if r.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+r.bearer)
	}
	for _, c := range r.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) upload(t *testing.T, bearer, field string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, "avatar.bin")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPatch, "/api/user/avatar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+bearer)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// register and login a user, returning the access token and refresh cookie.
func (s *testServer) login(t *testing.T, username string) (string, *http.Cookie) {
	t.Helper()
	w := s.do(t, request{method: http.MethodPost, path: "/api/user/register", body: map[string]string{"username": username, "password": testPassword}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, request{method: http.MethodPost, path: "/api/user/login", body: map[string]string{"username": username, "password": testPassword}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken, refreshCookie(t, w)
}

func refreshCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == refreshCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", refreshCookieName)
	return nil
}

func decodeErrors(t *testing.T, w *httptest.ResponseRecorder) []apperror.Item {
	t.Helper()
	var body apperror.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Errors
}

func requireError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) apperror.Item {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	items := decodeErrors(t, w)
	require.Len(t, items, 1)
	require.Equal(t, code, items[0].Code)
	return items[0]
}

const base64URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// flipSignaturePadding changes only the unused low bit of the token's final
// base64url character.
func flipSignaturePadding(t *testing.T, token string) string {
	t.Helper()
	last := strings.IndexByte(base64URLAlphabet, token[len(token)-1])
	require.GreaterOrEqual(t, last, 0)
	return token[:len(token)-1] + string(base64URLAlphabet[last^1])
}
