package router // package router defines how HTTP routes are registered for the API

import (
	"strings"

	"github.com/labstack/echo/v4"                   // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // Echo's bundled middleware (CORS, recover)

	"github.com/iliyamo/book-inventory/internal/config"
	"github.com/iliyamo/book-inventory/internal/handler"
	"github.com/iliyamo/book-inventory/internal/middleware"
)

// RegisterRoutes wires middleware and every route onto the provided Echo
// instance.  /auth/login and /healthz are open; the /books group sits behind
// the JWT access guard so no book handler runs without a verified principal.
func RegisterRoutes(e *echo.Echo, cfg config.Config, auth *handler.AuthHandler, books *handler.BookHandler) {
	e.HideBanner = true
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(cfg.Env)

	// Recover panics into the error handler instead of killing the process,
	// and answer browser preflights for the SPA.
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: splitOrigins(cfg.CORSOrigins),
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.GET("/healthz", handler.Health)

	e.POST("/auth/login", auth.Login)

	g := e.Group("/books", middleware.JWTAuth(cfg.JWTSecret))
	g.POST("", books.Create)
	g.GET("", books.List)
	g.GET("/:id", books.Get)
	g.PUT("/:id", books.Update)
	g.DELETE("/:id", books.Delete)
}

func splitOrigins(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		out = []string{"*"}
	}
	return out
}
