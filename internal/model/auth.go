package model

type CredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,password"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LogoutRequest struct {
	Username string `json:"username" binding:"required"`
	Token    string `json:"token" binding:"required"`
}

type UpdateUsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,password"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type UserResponse struct {
	Message string `json:"message,omitempty"`
	User    *User  `json:"user"`
}
