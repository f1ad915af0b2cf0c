package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"docmanager-api/internal/application/ports"
	"docmanager-api/internal/interface/api/rest/dto/auth"
	"docmanager-api/internal/interface/api/rest/dto/user"
	"docmanager-api/internal/interface/api/rest/validator"
)

type AuthController struct {
	logger      *zap.Logger
	userService ports.UserService
	authService ports.Auth
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	userService ports.UserService,
	authService ports.Auth,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		userService: userService,
		authService: authService,
	}

	r.POST(RouteLogin, ac.LoginHandler)
	r.POST(RouteRegister, ac.RegisterHandler)
	r.POST(RouteForgotPassword, ac.ForgotPasswordHandler)

	return ac
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateLogin(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	token, u, err := ac.authService.Authenticate(c.Request.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		writeServiceError(c, ac.logger, err, "failed to sign in")
		return
	}

	c.JSON(http.StatusOK, auth.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		User:        user.ToResponseUser(*u),
	})
}

func (ac *AuthController) RegisterHandler(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateRegister(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	if _, err := ac.userService.Register(
		c.Request.Context(),
		req.Username,
		strings.TrimSpace(req.Name),
		req.Password,
	); err != nil {
		writeServiceError(c, ac.logger, err, "failed to register")
		return
	}

	c.JSON(http.StatusCreated, auth.MessageResponse{Message: "Registration successful. Please sign in."})
}

func (ac *AuthController) ForgotPasswordHandler(c *gin.Context) {
	var req auth.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateForgotPassword(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	if err := ac.userService.ResetPassword(c.Request.Context(), req.Username, req.NewPassword); err != nil {
		writeServiceError(c, ac.logger, err, "failed to reset password")
		return
	}

	c.JSON(http.StatusOK, auth.MessageResponse{Message: "Password changed. Please sign in."})
}
