package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/veda242/taskmanager/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject into the request context.  The provided
// secret must match the one used when issuing tokens.  This middleware
// wraps every task route so that handlers can read the authenticated user
// via `c.Get("user_id")`; no handler runs on a failed check.
//
// The stage itself is stateless: the result is a pure function of the
// Authorization header, the signing secret and the clock.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if auth == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "No token, authorization denied"})
			}
			// Clients vary: some send "Bearer <token>", some send the bare
			// token.  Tolerate a missing prefix rather than rejecting it.
			raw := strings.TrimPrefix(auth, "Bearer ")

			uid, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "Token is not valid"})
			}

			c.Set("user_id", uid)
			return next(c)
		}
	}
}
