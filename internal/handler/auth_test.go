package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionScenario(t *testing.T) {
	s := newTestServer(t)
	creds := map[string]string{"username": "Jabran", "password": testPassword}

	w := s.do(t, request{method: http.MethodPost, path: "/api/user/register", body: creds})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var registered struct {
		Message string         `json:"message"`
		User    map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.Equal(t, "User registered successfully", registered.Message)
	assert.Equal(t, "Jabran", registered.User["username"])
	assert.NotContains(t, registered.User, "passwordHash")
	assert.NotContains(t, w.Body.String(), "$2a$")
	assert.Empty(t, w.Result().Cookies(), "registration must not log in")

	w = s.do(t, request{method: http.MethodPost, path: "/api/user/register", body: creds})
	requireError(t, w, http.StatusConflict, "E-004")

	w = s.do(t, request{method: http.MethodPost, path: "/api/user/login", body: map[string]string{"username": "jabran", "password": testPassword}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.AccessToken)
	assert.NotContains(t, w.Body.String(), "refreshToken")

	cookie := refreshCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 7*24*60*60, cookie.MaxAge)
	assert.NotEmpty(t, cookie.Value)

	w = s.do(t, request{method: http.MethodGet, path: "/api/user/me", bearer: login.AccessToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var me struct {
		User map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, registered.User["id"], me.User["id"])

	w = s.do(t, request{
		method:  http.MethodPost,
		path:    "/api/user/logout",
		body:    map[string]string{"username": "Jabran", "token": login.AccessToken},
		cookies: []*http.Cookie{cookie},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Less(t, refreshCookie(t, w).MaxAge, 0)

	w = s.do(t, request{method: http.MethodGet, path: "/api/user/me", bearer: login.AccessToken})
	requireError(t, w, http.StatusUnauthorized, "E-009")

	w = s.do(t, request{method: http.MethodGet, path: "/api/user/me", bearer: flipSignaturePadding(t, login.AccessToken)})
	requireError(t, w, http.StatusForbidden, "E-010")
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name      string
		body      any
		raw       string
		wantCodes []string
		wantMsg   string
	}{
		{name: "empty object", body: map[string]string{}, wantCodes: []string{"E-001", "E-002"}},
		{name: "empty body", wantCodes: []string{"E-001", "E-002"}},
		{name: "missing password", body: map[string]string{"username": "bayu"}, wantCodes: []string{"E-002"}},
		{name: "short password", body: map[string]string{"username": "bayu", "password": "Pa1!"}, wantCodes: []string{"E-003"}, wantMsg: "Password must be at least 8 characters long"},
		{name: "no uppercase", body: map[string]string{"username": "bayu", "password": "password1!"}, wantCodes: []string{"E-003"}, wantMsg: "Password must contain at least 1 uppercase letter"},
		{name: "no special", body: map[string]string{"username": "bayu", "password": "Password1"}, wantCodes: []string{"E-003"}, wantMsg: "Password must contain at least 1 special character"},
		{name: "malformed json", raw: `{"username":`, wantCodes: []string{"E-018"}},
		{name: "wrong type", raw: `{"username": 42, "password": "Password1!"}`, wantCodes: []string{"E-018"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, request{method: http.MethodPost, path: "/api/user/register", body: tt.body, raw: tt.raw})
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			items := decodeErrors(t, w)
			codes := make([]string, 0, len(items))
			for _, item := range items {
				codes = append(codes, item.Code)
			}
			assert.ElementsMatch(t, tt.wantCodes, codes)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, items[0].Message)
			}
		})
	}
}

func TestLoginFailures(t *testing.T) {
	s := newTestServer(t)
	_, cookie := s.login(t, "Jabran")

	wrongPassword := s.do(t, request{method: http.MethodPost, path: "/api/user/login", body: map[string]string{"username": "Jabran", "password": "Password2!"}})
	unknownUser := s.do(t, request{method: http.MethodPost, path: "/api/user/login", body: map[string]string{"username": "ghost", "password": testPassword}})
	a := requireError(t, wrongPassword, http.StatusUnauthorized, "E-005")
	b := requireError(t, unknownUser, http.StatusUnauthorized, "E-005")
	assert.Equal(t, a, b)

	w := s.do(t, request{
		method:  http.MethodPost,
		path:    "/api/user/login",
		body:    map[string]string{"username": "Jabran", "password": testPassword},
		cookies: []*http.Cookie{cookie},
	})
	requireError(t, w, http.StatusForbidden, "E-006")

	// Login only checks presence, not strength.
	w = s.do(t, request{method: http.MethodPost, path: "/api/user/login", body: map[string]string{"username": "Jabran", "password": "weak"}})
	requireError(t, w, http.StatusUnauthorized, "E-005")
}

func TestRefresh(t *testing.T) {
	s := newTestServer(t)
	_, cookie := s.login(t, "Jabran")

	w := s.do(t, request{method: http.MethodPost, path: "/api/user/refresh"})
	requireError(t, w, http.StatusUnauthorized, "E-008")

	w = s.do(t, request{method: http.MethodPost, path: "/api/user/refresh", cookies: []*http.Cookie{{Name: refreshCookieName, Value: "forged"}}})
	requireError(t, w, http.StatusForbidden, "E-010")

	orphan, err := s.tokens.IssueRefreshToken(uuid.New())
	require.NoError(t, err)
	w = s.do(t, request{method: http.MethodPost, path: "/api/user/refresh", cookies: []*http.Cookie{{Name: refreshCookieName, Value: orphan}}})
	requireError(t, w, http.StatusForbidden, "E-012")

	var tokens []string
	for i := 0; i < 2; i++ {
		w = s.do(t, request{method: http.MethodPost, path: "/api/user/refresh", cookies: []*http.Cookie{cookie}})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			AccessToken string `json:"accessToken"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		tokens = append(tokens, resp.AccessToken)

		me := s.do(t, request{method: http.MethodGet, path: "/api/user/me", bearer: resp.AccessToken})
		assert.Equal(t, http.StatusOK, me.Code)
	}
	assert.NotEqual(t, tokens[0], tokens[1])
}

func TestLogoutFailures(t *testing.T) {
	s := newTestServer(t)
	token, cookie := s.login(t, "Jabran")
	s.login(t, "bayu")

	w := s.do(t, request{method: http.MethodPost, path: "/api/user/logout", body: map[string]string{"username": "Jabran", "token": token}})
	requireError(t, w, http.StatusForbidden, "E-011")

	w = s.do(t, request{method: http.MethodPost, path: "/api/user/logout", body: map[string]string{"username": "Jabran"}, cookies: []*http.Cookie{cookie}})
	requireError(t, w, http.StatusBadRequest, "E-015")

	w = s.do(t, request{method: http.MethodPost, path: "/api/user/logout", body: map[string]string{"username": "Jabran", "token": "junk"}, cookies: []*http.Cookie{cookie}})
	requireError(t, w, http.StatusForbidden, "E-010")

	w = s.do(t, request{method: http.MethodPost, path: "/api/user/logout", body: map[string]string{"username": "bayu", "token": token}, cookies: []*http.Cookie{cookie}})
	requireError(t, w, http.StatusForbidden, "E-013")

	// The token was never revoked by the failed attempts.
	w = s.do(t, request{method: http.MethodGet, path: "/api/user/me", bearer: token})
	assert.Equal(t, http.StatusOK, w.Code)
}
