package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/satriobayu/authsvc/internal/model"
	"github.com/satriobayu/authsvc/internal/service"
)

type AuthHandler struct {
	svc    *service.SessionService
	cookie CookieConfig
}

func NewAuthHandler(svc *service.SessionService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{svc: svc, cookie: cookie}
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account. Registration does not log the user in.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.CredentialsRequest true "Username and password"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} apperror.Body
// @Failure 409 {object} apperror.Body
// @Failure 500 {object} apperror.Body
// @Router /api/user/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.CredentialsRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.UserResponse{
		Message: "User registered successfully",
		User:    user,
	})
}

// Login godoc
// @Summary Login
// @Description Returns an access token and sets the refreshToken cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Username and password"
// @Success 200 {object} model.AccessTokenResponse
// @Failure 400 {object} apperror.Body
// @Failure 401 {object} apperror.Body
// @Failure 403 {object} apperror.Body
// @Failure 500 {object} apperror.Body
// @Router /api/user/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	hasSession := h.cookie.read(c) != ""
	session, err := h.svc.Login(c.Request.Context(), req.Username, req.Password, hasSession)
	if err != nil {
		writeError(c, err)
		return
	}

	h.cookie.set(c, session.RefreshToken)
	c.JSON(http.StatusOK, model.AccessTokenResponse{AccessToken: session.AccessToken})
}

// Logout godoc
// @Summary Logout
// @Description Revokes the given access token and clears the refreshToken cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LogoutRequest true "Username and access token"
// @Success 200 {object} model.MessageResponse
// @Failure 400 {object} apperror.Body
// @Failure 403 {object} apperror.Body
// @Failure 500 {object} apperror.Body
// @Router /api/user/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req model.LogoutRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.svc.Logout(c.Request.Context(), service.LogoutInput{
		RefreshToken: h.cookie.read(c),
		Username:     req.Username,
		AccessToken:  req.Token,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.cookie.clear(c)
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Logged out successfully"})
}

// Refresh godoc
// @Summary Refresh access token
// @Description Uses the refreshToken cookie. The cookie is not rotated.
// @Tags auth
// @Produce json
// @Success 200 {object} model.AccessTokenResponse
// @Failure 401 {object} apperror.Body
// @Failure 403 {object} apperror.Body
// @Failure 500 {object} apperror.Body
// @Router /api/user/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	accessToken, err := h.svc.Refresh(c.Request.Context(), h.cookie.read(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.AccessTokenResponse{AccessToken: accessToken})
}
