package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/DragonEmporer001/fiverr-clone/internal/domain"
)

var (
	errInvalidBody = errors.New("invalid request body")
	errToRequired  = errors.New("to is required")
)

// CreateConversationRequest is the request to open a conversation.
type CreateConversationRequest struct {
	To string `json:"to"`
}

// CreateConversation opens a conversation with the user in "to".
// POST /v1/conversations
func (h *Handler) CreateConversation(c echo.Context) error {
	r, err := requester(c)
	if err != nil {
		return respondError(c, err)
	}

	// Malformed input fails like any other write error, with a 500.
	var req CreateConversationRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errInvalidBody)
	}
	req.To = strings.TrimSpace(req.To)
	if req.To == "" {
		return respondError(c, errToRequired)
	}

	conversation, err := h.service.CreateConversation(c.Request().Context(), r, req.To)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, conversation)
}

// GetConversations lists the requester's conversations.
// GET /v1/conversations
func (h *Handler) GetConversations(c echo.Context) error {
	r, err := requester(c)
	if err != nil {
		return respondError(c, err)
	}

	conversations, err := h.service.ListConversations(c.Request().Context(), r)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, conversations)
}

// GetSingleConversation returns one conversation.
// GET /v1/conversations/single/:conversationID
func (h *Handler) GetSingleConversation(c echo.Context) error {
	r, err := requester(c)
	if err != nil {
		return respondError(c, err)
	}

	conversation, err := h.service.GetConversation(c.Request().Context(), r, c.Param("conversationID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, conversation)
}

// UpdateConversation marks the conversation read on the requester's side.
// PUT /v1/conversations/:conversationID
func (h *Handler) UpdateConversation(c echo.Context) error {
	r, err := requester(c)
	if err != nil {
		return respondError(c, err)
	}

	conversation, err := h.service.UpdateConversation(c.Request().Context(), r, c.Param("conversationID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, conversation)
}

// StreamConversations upgrades to a WebSocket carrying the requester's
// conversation events.
// GET /v1/conversations/stream
func (h *Handler) StreamConversations(c echo.Context) error {
	r, err := requester(c)
	if err != nil {
		return respondError(c, err)
	}
	if h.stream == nil {
		return respondError(c, domain.NewError(http.StatusServiceUnavailable, "event stream disabled"))
	}
	return h.stream.Serve(c.Response(), c.Request(), r.UserID)
}
