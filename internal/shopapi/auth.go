package shopapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/greenbasket/greenbasket/internal/domain"
	"github.com/greenbasket/greenbasket/internal/webserver"
)

type loginPayload struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type registerPayload struct {
	FirstName       string `json:"first_name" form:"first_name" validate:"omitempty,max=150"`
	LastName        string `json:"last_name" form:"last_name" validate:"omitempty,max=150"`
	Username        string `json:"username" form:"username" validate:"required,min=3,max=150"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required"`
}

func (h *Handler) home(c echo.Context) error {
	return webserver.OK(c, map[string]string{
		"name":    "greenbasket",
		"message": "Fresh fruits and vegetables, delivered.",
	})
}

func (h *Handler) loginPrompt(c echo.Context) error {
	return webserver.OKMessage(c, "Please sign in.", nil)
}

func (h *Handler) login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.HandleValidationError(c, err)
	}

	var user domain.SysUser
	err := h.db.WithContext(c.Request().Context()).
		Where("username = ?", strings.TrimSpace(payload.Username)).
		First(&user).Error
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)) != nil {
		return webserver.Fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password.", nil)
	}

	if err := webserver.SignIn(c, &user); err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to start session", nil)
	}
	if err := webserver.TouchLastLogin(h.db, user.ID); err != nil {
		zap.L().Warn("failed to update last login", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	landing := webserver.CustomerDashboardPath
	if user.IsAdmin() {
		landing = webserver.AdminDashboardPath
	}
	return webserver.OKMessage(c, "Signed in.", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
		"level":    user.Level,
		"redirect": landing,
	})
}

func (h *Handler) logout(c echo.Context) error {
	if err := webserver.SignOut(c); err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to end session", nil)
	}
	return webserver.OKMessage(c, "You have been logged out successfully.", nil)
}

func (h *Handler) register(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse registration", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.HandleValidationError(c, err)
	}
	if payload.Password != payload.ConfirmPassword {
		return webserver.Fail(c, http.StatusBadRequest, "PASSWORD_MISMATCH", "Passwords do not match.", nil)
	}

	db := h.db.WithContext(c.Request().Context())
	username := strings.TrimSpace(payload.Username)
	email := strings.TrimSpace(payload.Email)

	var count int64
	db.Model(&domain.SysUser{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return webserver.Fail(c, http.StatusConflict, "USERNAME_EXISTS", "Username already exists.", nil)
	}
	db.Model(&domain.SysUser{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return webserver.Fail(c, http.StatusConflict, "EMAIL_EXISTS", "Email already exists.", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create account", nil)
	}

	user := domain.SysUser{
		Username:  username,
		Email:     email,
		FirstName: strings.TrimSpace(payload.FirstName),
		LastName:  strings.TrimSpace(payload.LastName),
		Password:  string(hashed),
		Level:     domain.LevelCustomer,
		LastLogin: time.Time{},
	}
	if err := db.Create(&user).Error; err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create account", nil)
	}

	zap.L().Info("customer registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return webserver.OKMessage(c, "Account created successfully! Please login.", map[string]interface{}{
		"user_id": user.ID,
	})
}
