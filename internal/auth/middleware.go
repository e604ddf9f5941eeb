package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// Identity is the authenticated caller as carried by a verified token.
type Identity struct {
	SubjectID string
	Role      string
}

// Middleware returns the bearer-token middleware for the authenticated route
// group. Missing, malformed, tampered and expired tokens all short-circuit
// with 401 before any handler runs.
func Middleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		},
	})
}

// CallerIdentity extracts the identity stored by Middleware. It fails when
// called on a route outside the authenticated group.
func CallerIdentity(c echo.Context) (Identity, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return Identity{}, false
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Identity{}, false
	}
	return Identity{SubjectID: claims.UserID, Role: claims.UserRole}, true
}
