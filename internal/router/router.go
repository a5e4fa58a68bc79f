package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"usersadmin/internal/auth"
	"usersadmin/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	pageHandler *handler.PageHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	secured := auth.Middleware(jwtService)

	// HTML pages
	e.GET(handler.RootPath, pageHandler.Home, secured)
	admin := e.Group("/admin", secured)
	admin.GET("/users", pageHandler.Users)
	admin.POST("/users/:id/role", pageHandler.UpdateRole)

	// JSON API
	api := e.Group("/api", secured)
	api.GET("/me/admin-status", userHandler.AdminStatus)
	api.GET("/users", userHandler.ListUsers)
	api.PUT("/users/:id/role", userHandler.UpdateRole)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
