package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"usersadmin/internal/auth"
	"usersadmin/internal/errors"
	"usersadmin/internal/model"
	"usersadmin/internal/notify"
	"usersadmin/internal/service"
)

// UserHandler bundles the JSON user management endpoints.
type UserHandler struct {
	svc    service.UserService
	status auth.AdminStatusProvider
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, status auth.AdminStatusProvider) *UserHandler {
	return &UserHandler{svc: svc, status: status}
}

// UpdateRoleRequest is the body of a role change.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin secretaire lecteur"`
}

// MessageResponse carries a user-facing confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ListUsers godoc
// @Summary List users with their resolved role
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.EnrichedUser
// @Failure 401 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list users: %v", err)
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateRole godoc
// @Summary Replace a user's role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body UpdateRoleRequest true "New role"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id}/role [put]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_ROLE",
		})
	}

	if err := h.svc.UpdateRole(c.Request().Context(), c.Param("id"), model.Role(req.Role)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			c.Logger().Errorf("update role of %s: %v", c.Param("id"), err)
			httpErr.Message = notify.MsgRoleUpdateFailed
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: notify.MsgRoleUpdated})
}

// AdminStatus godoc
// @Summary Admin status of the current viewer
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} auth.AdminStatus
// @Failure 401 {object} map[string]string
// @Router /me/admin-status [get]
func (h *UserHandler) AdminStatus(c echo.Context) error {
	_, status, err := authorize(c, h.status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}

func (h *UserHandler) requireAdmin(c echo.Context) error {
	_, status, err := authorize(c, h.status)
	if err != nil {
		return err
	}
	switch auth.Gate(status) {
	case auth.DecisionAllow:
		return nil
	case auth.DecisionDefer:
		c.Response().Header().Set("Retry-After", "1")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "admin status still loading")
	default:
		httpErr := errors.MapErrorToHTTP(errors.ErrForbidden)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
}
