package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"formhub/internal/authz"
	"formhub/internal/errors"
	"formhub/internal/sanitize"
	"formhub/internal/service"
)

// AuthHandler handles registration, login and self-service endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	Email        string `json:"email" validate:"required,email,max=255"`
	Password     string `json:"password" validate:"required,min=8"`
	CaptchaToken string `json:"captchaToken" validate:"required"`
}

func (r *RegisterRequest) sanitize() {
	r.Name = sanitize.String(r.Name)
	r.Email = sanitize.String(r.Email)
	r.Password = sanitize.String(r.Password)
	r.CaptchaToken = sanitize.String(r.CaptchaToken)
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
	CaptchaToken string `json:"captchaToken" validate:"required"`
}

func (r *LoginRequest) sanitize() {
	r.Email = sanitize.String(r.Email)
	r.Password = sanitize.String(r.Password)
	r.CaptchaToken = sanitize.String(r.CaptchaToken)
}

// UpdateCredentialsRequest represents a self-service credential change.
// Absent fields are left untouched; a password change requires the current
// password and a matching retype.
type UpdateCredentialsRequest struct {
	Email          *string `json:"email" validate:"omitempty,email,max=255"`
	OldPassword    string  `json:"oldPassword" validate:"required_with=NewPassword"`
	NewPassword    *string `json:"newPassword" validate:"omitempty,min=8"`
	RetypePassword *string `json:"retypePassword" validate:"required_with=NewPassword,omitempty,eqfield=NewPassword"`
}

func (r *UpdateCredentialsRequest) sanitize() {
	sanitizePtr(r.Email)
	r.OldPassword = sanitize.String(r.OldPassword)
	sanitizePtr(r.NewPassword)
	sanitizePtr(r.RetypePassword)
}

func sanitizePtr(s *string) {
	if s != nil {
		*s = sanitize.String(*s)
	}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]string
// @Failure 422 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errors.ErrorResponse{Message: "Invalid registration data"})
	}

	req.sanitize()
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, "Invalid registration data", err)
	}

	if _, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.CaptchaToken); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

// Login godoc
// @Summary Login and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errors.ErrorResponse{Message: "Invalid login data"})
	}

	req.sanitize()
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, "Invalid login data", err)
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, req.CaptchaToken)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Logout godoc
// @Summary Revoke all of the caller's tokens
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	user := authz.CurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{Message: "Unauthenticated"})
	}

	if err := h.authService.Logout(c.Request().Context(), user.ID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// Profile godoc
// @Summary Current user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /user [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	user := authz.CurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{Message: "Unauthenticated"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"name":  user.Name,
		"email": user.Email,
		"roles": user.RoleNames(),
	})
}

// UpdateCredentials godoc
// @Summary Update own email and/or password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateCredentialsRequest true "Credential changes"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /user [put]
func (h *AuthHandler) UpdateCredentials(c echo.Context) error {
	user := authz.CurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{Message: "Unauthenticated"})
	}

	var req UpdateCredentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errors.ErrorResponse{Message: "Invalid data"})
	}

	req.sanitize()
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, "Invalid data", err)
	}

	if err := h.authService.UpdateCredentials(c.Request().Context(), user.ID, req.Email, req.OldPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "User credentials updated successfully"})
}
