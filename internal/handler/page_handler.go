package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"usersadmin/internal/auth"
	"usersadmin/internal/model"
	"usersadmin/internal/notify"
	"usersadmin/internal/service"
	"usersadmin/internal/view"
)

// RootPath is where non-admins are sent back to.
const RootPath = "/"

// UsersPagePath is the user management page.
const UsersPagePath = "/admin/users"

// PageHandler serves the HTML user management page.
type PageHandler struct {
	svc     service.UserService
	status  auth.AdminStatusProvider
	flashes FlashQueue
}

// NewPageHandler creates a page handler.
func NewPageHandler(svc service.UserService, status auth.AdminStatusProvider, flashes FlashQueue) *PageHandler {
	return &PageHandler{svc: svc, status: status, flashes: flashes}
}

// Users renders one card per user, gated to admins.
func (h *PageHandler) Users(c echo.Context) error {
	viewerID, status, err := authorize(c, h.status)
	if err != nil {
		return err
	}

	switch auth.Gate(status) {
	case auth.DecisionDefer:
		return c.Render(http.StatusOK, view.PageLoading, view.HomePage{})
	case auth.DecisionDeny:
		return h.turnAway(c, viewerID)
	}

	ctx := c.Request().Context()
	page := view.UsersPage{}
	users, err := h.svc.ListUsers(ctx)
	if err != nil {
		c.Logger().Errorf("list users: %v", err)
		page.Failed = true
	} else {
		page.Users = users
	}
	page.Toasts = h.drain(c, viewerID)

	return c.Render(http.StatusOK, view.PageUsers, page)
}

// UpdateRole applies the role chosen in a card's selector and returns to the page.
func (h *PageHandler) UpdateRole(c echo.Context) error {
	viewerID, status, err := authorize(c, h.status)
	if err != nil {
		return err
	}
	switch auth.Gate(status) {
	case auth.DecisionDefer:
		// nothing applied; the page shows its loading state until the status resolves
		return c.Redirect(http.StatusSeeOther, UsersPagePath)
	case auth.DecisionDeny:
		return h.turnAway(c, viewerID)
	}

	ctx := c.Request().Context()
	newRole := model.Role(c.FormValue("role"))
	if err := h.svc.UpdateRole(ctx, c.Param("id"), newRole); err != nil {
		c.Logger().Warnf("update role of %s: %v", c.Param("id"), err)
		h.notify(c, h.flashes.Error(ctx, viewerID, notify.ErrorMessage(err, notify.MsgRoleUpdateFailed)))
	} else {
		h.notify(c, h.flashes.Success(ctx, viewerID, notify.MsgRoleUpdated))
	}

	return c.Redirect(http.StatusSeeOther, UsersPagePath)
}

// Home is the application root; it only shows pending notifications.
func (h *PageHandler) Home(c echo.Context) error {
	viewer, err := auth.ViewerFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return c.Render(http.StatusOK, view.PageHome, view.HomePage{Toasts: h.drain(c, viewer.UserID)})
}

// turnAway notifies a non-admin once and sends them to the root without rendering content.
func (h *PageHandler) turnAway(c echo.Context, viewerID string) error {
	h.notify(c, h.flashes.Error(c.Request().Context(), viewerID, notify.MsgUnauthorized))
	return c.Redirect(http.StatusSeeOther, RootPath)
}

func (h *PageHandler) drain(c echo.Context, viewerID string) []notify.Flash {
	toasts, err := h.flashes.Drain(c.Request().Context(), viewerID)
	if err != nil {
		c.Logger().Warnf("drain notifications: %v", err)
	}
	return toasts
}

func (h *PageHandler) notify(c echo.Context, err error) {
	if err != nil {
		c.Logger().Warnf("queue notification: %v", err)
	}
}
