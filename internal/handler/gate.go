package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"usersadmin/internal/auth"
	"usersadmin/internal/notify"
)

// FlashQueue queues notifications and hands them back on the next render.
type FlashQueue interface {
	notify.Notifier
	Drain(ctx context.Context, viewerID string) ([]notify.Flash, error)
}

// authorize resolves the viewer and runs the admin gate for the request.
func authorize(c echo.Context, provider auth.AdminStatusProvider) (string, auth.AdminStatus, error) {
	viewer, err := auth.ViewerFromContext(c)
	if err != nil {
		return "", auth.AdminStatus{}, echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	status := auth.ResolveStatus(c.Request().Context(), provider, viewer.UserID)
	return viewer.UserID, status, nil
}
