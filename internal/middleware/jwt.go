package middleware // package middleware contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware
)

// Context keys under which the authenticated principal is stored.  Handlers
// read these back via c.Get().
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
)

type errBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject and username claims into the request
// context.  The provided secret must match the one used when issuing
// tokens.  Requests without a well-formed "Authorization: Bearer <token>"
// header, or with a token that fails signature or expiry checks, are
// short-circuited with 401 before any handler logic runs.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, errBody{Message: "not authorized, token missing"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse the token, pinning the signing method to HMAC so a
			// token signed with a different algorithm is rejected outright.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, errBody{Message: "invalid or expired token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errBody{Message: "invalid or expired token"})
			}

			// Attach the decoded principal to the context.  Numeric claims
			// come back as float64 from the JSON decoder; type assertions
			// are left to consumers.
			c.Set(CtxUserID, claims["sub"])
			c.Set(CtxUsername, claims["username"])
			return next(c)
		}
	}
}
