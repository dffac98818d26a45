// Package v1 provides the version 1 HTTP handlers.
package v1

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DragonEmporer001/fiverr-clone/internal/auth"
	"github.com/DragonEmporer001/fiverr-clone/internal/domain"
	"github.com/DragonEmporer001/fiverr-clone/internal/hub"
	"github.com/DragonEmporer001/fiverr-clone/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service  *service.Service
	identity *auth.Identity
	stream   *hub.Server
}

// NewHandler creates a new handler. stream may be nil, which disables the
// event stream endpoint.
func NewHandler(service *service.Service, identity *auth.Identity, stream *hub.Server) *Handler {
	return &Handler{
		service:  service,
		identity: identity,
		stream:   stream,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	conversations := e.Group("/v1/conversations", h.identity.Required())
	conversations.POST("", h.CreateConversation)
	conversations.GET("", h.GetConversations)
	conversations.GET("/stream", h.StreamConversations)
	conversations.GET("/single/:conversationID", h.GetSingleConversation)
	conversations.PUT("/:conversationID", h.UpdateConversation)
	conversations.PATCH("/:conversationID", h.UpdateConversation)

	e.GET("/v1/navigation", h.GetNavigation, h.identity.Optional())
	e.GET("/v1/auth/session", h.GetSession, h.identity.Required())
	e.POST("/v1/auth/logout", h.Logout)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func respondError(c echo.Context, err error) error {
	status := domain.StatusOf(err)
	if status >= http.StatusInternalServerError {
		log.Printf("ERROR: %s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(status, ErrorResponse{Error: true, Message: domain.MessageOf(err)})
}

func requester(c echo.Context) (domain.Requester, error) {
	r, ok := auth.RequesterFrom(c)
	if !ok {
		return domain.Requester{}, domain.NewError(http.StatusUnauthorized, "You are not authenticated!")
	}
	return r, nil
}
