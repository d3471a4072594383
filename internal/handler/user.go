package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/satriobayu/authsvc/internal/apperror"
	"github.com/satriobayu/authsvc/internal/model"
	"github.com/satriobayu/authsvc/internal/service"
)

const avatarField = "avatar"

type UserHandler struct {
	svc            *service.ProfileService
	avatarMaxBytes int64
}

func NewUserHandler(svc *service.ProfileService, avatarMaxBytes int64) *UserHandler {
	return &UserHandler{svc: svc, avatarMaxBytes: avatarMaxBytes}
}

// Me godoc
// @Summary Get current user
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserResponse
// @Failure 401 {object} apperror.Body
// @Failure 403 {object} apperror.Body
// @Router /api/user/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.svc.Get(c.Request.Context(), MustAuthUser(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.UserResponse{User: user})
}

// UpdateUsername godoc
// @Summary Change username
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.UpdateUsernameRequest true "New username"
// @Success 200 {object} model.MessageResponse
// @Failure 400 {object} apperror.Body
// @Failure 403 {object} apperror.Body
// @Failure 409 {object} apperror.Body
// @Failure 500 {object} apperror.Body
// @Router /api/user/username [patch]
func (h *UserHandler) UpdateUsername(c *gin.Context) {
	var req model.UpdateUsernameRequest
	if !bindJSON(c, &req) {
		return
	}

	changed, err := h.svc.UpdateUsername(c.Request.Context(), MustAuthUser(c).ID, req.Username)
	if err != nil {
		writeError(c, err)
		return
	}

	msg := "Username updated successfully"
	if !changed {
		msg = "No operation was performed since the new username is the same as the old username"
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: msg})
}

// UpdatePassword godoc
// @Summary Change password
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.UpdatePasswordRequest true "Current and new password"
// @Success 200 {object} model.MessageResponse
// @Failure 400 {object} apperror.Body
// @Failure 401 {object} apperror.Body
// @Failure 403 {object} apperror.Body
// @Failure 500 {object} apperror.Body
// @Router /api/user/password [patch]
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req model.UpdatePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.svc.UpdatePassword(c.Request.Context(), MustAuthUser(c).ID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Password updated successfully"})
}

// UpdateAvatar godoc
// @Summary Upload avatar
// @Tags user
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "PNG, JPEG, GIF or WebP image"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} apperror.Body
// @Failure 403 {object} apperror.Body
// @Failure 500 {object} apperror.Body
// @Router /api/user/avatar [patch]
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	data, contentType, ok := h.readAvatar(c)
	if !ok {
		return
	}

	user, err := h.svc.UpdateAvatar(c.Request.Context(), MustAuthUser(c).ID, data, contentType)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.UserResponse{
		Message: "Avatar updated successfully",
		User:    user,
	})
}

func (h *UserHandler) readAvatar(c *gin.Context) ([]byte, string, bool) {
	fail := func(detail string) ([]byte, string, bool) {
		err := apperror.New(apperror.KindAvatarRequired)
		if detail != "" {
			err = apperror.WithDetail(apperror.KindAvatarRequired, detail)
		}
		writeError(c, err)
		return nil, "", false
	}

	header, err := c.FormFile(avatarField)
	if err != nil {
		return fail("")
	}
	tooLarge := fmt.Sprintf("Avatar must be at most %d bytes", h.avatarMaxBytes)
	if header.Size > h.avatarMaxBytes {
		return fail(tooLarge)
	}

	f, err := header.Open()
	if err != nil {
		writeError(c, apperror.Internal(err))
		return nil, "", false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.avatarMaxBytes+1))
	if err != nil {
		writeError(c, apperror.Internal(err))
		return nil, "", false
	}
	if int64(len(data)) > h.avatarMaxBytes {
		return fail(tooLarge)
	}
	if len(data) == 0 {
		return fail("")
	}

	contentType := mimetype.Detect(data).String()
	if !service.SupportedAvatarType(contentType) {
		return fail("Avatar must be a PNG, JPEG, GIF or WebP image")
	}
	return data, contentType, true
}
