package auth

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	// TokenCookie carries the access token for browser requests to the HTML page.
	TokenCookie = "access_token"

	contextKey = "user"
)

// ErrNoViewer is returned when a request carries no valid viewer claims.
var ErrNoViewer = errors.New("no authenticated viewer")

// Middleware validates the bearer token (header or cookie) and stores it on the echo context.
func Middleware(s *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  s.Secret(),
		ContextKey:  contextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ,cookie:" + TokenCookie,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
		},
	})
}

// ViewerFromContext returns the claims placed on the context by Middleware.
func ViewerFromContext(c echo.Context) (*Claims, error) {
	token, ok := c.Get(contextKey).(*jwt.Token)
	if !ok {
		return nil, ErrNoViewer
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return nil, ErrNoViewer
	}
	return claims, nil
}
