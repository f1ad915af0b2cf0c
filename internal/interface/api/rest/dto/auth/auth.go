package auth

import "docmanager-api/internal/interface/api/rest/dto/user"

type (
	LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	LoginResponse struct {
		AccessToken string    `json:"access_token"`
		TokenType   string    `json:"token_type"`
		User        user.User `json:"user"`
	}

	RegisterRequest struct {
		Username string `json:"username"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}

	ForgotPasswordRequest struct {
		Username        string `json:"username"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}

	MessageResponse struct {
		Message string `json:"message"`
	}
)
