// Package http provides the HTTP server implementation for the conversation service.
package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/DragonEmporer001/fiverr-clone/internal/auth"
	"github.com/DragonEmporer001/fiverr-clone/internal/hub"
	"github.com/DragonEmporer001/fiverr-clone/internal/service"
	v1 "github.com/DragonEmporer001/fiverr-clone/internal/transport/http/v1"
)

// NewServer creates and configures the public HTTP server.
func NewServer(svc *service.Service, identity *auth.Identity, stream *hub.Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc:  func(origin string) (bool, error) { return true, nil },
		AllowCredentials: true,
	}))

	// Register Routes
	v1.NewHandler(svc, identity, stream).RegisterRoutes(e)

	return e
}
