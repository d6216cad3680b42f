package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"formhub/internal/errors"
	"formhub/internal/service"
)

// UserHandler handles the admin-facing user and role management endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateUserRequest represents an admin update of another user's details.
type UpdateUserRequest struct {
	Name           *string `json:"name" validate:"omitempty,max=255"`
	Email          *string `json:"email" validate:"omitempty,email,max=255"`
	NewPassword    *string `json:"newPassword" validate:"omitempty,min=8"`
	RetypePassword *string `json:"retypePassword" validate:"required_with=NewPassword,omitempty,eqfield=NewPassword"`
}

func (r *UpdateUserRequest) sanitize() {
	sanitizePtr(r.Name)
	sanitizePtr(r.Email)
	sanitizePtr(r.NewPassword)
	sanitizePtr(r.RetypePassword)
}

// RoleRequest carries the role id for attach/detach operations.
type RoleRequest struct {
	RoleID uint `json:"role_id" validate:"required"`
}

// ListUsers godoc
// @Summary List all users with their roles
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Get a user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, errors.ErrorResponse{Message: "User not found"})
	}

	user, err := h.userService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update a user's details
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /user/{id}/update-user [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, errors.ErrorResponse{Message: "User not found"})
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errors.ErrorResponse{Message: "Invalid input data"})
	}

	req.sanitize()
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, "Invalid input data", err)
	}

	if _, err := h.userService.UpdateDetails(c.Request().Context(), id, req.Name, req.Email, req.NewPassword); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "User details updated successfully"})
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, errors.ErrorResponse{Message: "User not found"})
	}

	if err := h.userService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// ListRoles godoc
// @Summary List available roles
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Role
// @Router /list-roles [get]
func (h *UserHandler) ListRoles(c echo.Context) error {
	roles, err := h.userService.ListRoles(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, roles)
}

// AssignRole godoc
// @Summary Attach a role to a user
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body RoleRequest true "Role to attach"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /user/{id}/add-role [put]
func (h *UserHandler) AssignRole(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, errors.ErrorResponse{Message: "User not found"})
	}

	var req RoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errors.ErrorResponse{Message: "Invalid data"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, "Invalid data", err)
	}

	if err := h.userService.AssignRole(c.Request().Context(), id, req.RoleID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Role assigned successfully"})
}

// RemoveRole godoc
// @Summary Detach a role from a user
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body RoleRequest true "Role to detach"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /user/{id}/remove-role [delete]
func (h *UserHandler) RemoveRole(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, errors.ErrorResponse{Message: "User not found"})
	}

	var req RoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errors.ErrorResponse{Message: "Invalid data"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, "Invalid data", err)
	}

	if err := h.userService.RemoveRole(c.Request().Context(), id, req.RoleID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Role removed successfully"})
}
