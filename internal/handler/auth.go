package handler

import (
	"context"  // context with cancellation for DB calls
	"errors"   // sentinel comparisons
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/book-inventory/internal/config"     // app configuration
	"github.com/iliyamo/book-inventory/internal/repository" // DB repositories
	"github.com/iliyamo/book-inventory/internal/utils"      // helper functions (hashing, token issuing)
)

// AuthHandler bundles dependencies for the login endpoint.
type AuthHandler struct {
	Cfg   config.Config
	Users repository.UserStore
}

func NewAuthHandler(cfg config.Config, u repository.UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies the static credential and mints a signed access token.
// Unknown username and wrong password both produce the identical
// invalid-credentials response so the endpoint leaks no user-enumeration
// signal.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))

	var fieldErrs []FieldError
	if req.Username == "" {
		fieldErrs = append(fieldErrs, FieldError{Field: "username", Message: "username is required"})
	}
	if req.Password == "" {
		fieldErrs = append(fieldErrs, FieldError{Field: "password", Message: "password is required"})
	}
	if len(fieldErrs) > 0 {
		return respondFieldErrors(c, fieldErrs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return respondError(c, http.StatusUnauthorized, "invalid credentials")
		}
		return respondError(c, http.StatusInternalServerError, "query failed")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return respondError(c, http.StatusUnauthorized, "invalid credentials")
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Username, h.Cfg.AccessTTLMin)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "issue token failed")
	}

	return c.JSON(http.StatusOK, Envelope{Success: true, Token: access.Token})
}
