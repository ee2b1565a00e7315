package handler

import (
	"errors"
	"net/http"
	"strconv"

	"pairchat/internal/services"
	"pairchat/internal/transport/httpdto"
	chat_errors "pairchat/pkg/errors"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service *services.ChatService
}

func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

func (h *ChatHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/conversations", h.ListConversations)
	r.POST("/conversations", h.CreateConversation)
	r.POST("/messages", h.CreateMessage)
	r.GET("/conversations/:id/messages", h.GetChat)
}

func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	items, err := h.service.ListConversations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromConversationSummarySlice(items)))
}

func (h *ChatHandler) CreateConversation(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	var req httpdto.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	conv, err := h.service.CreateConversation(c.Request.Context(), userID, req.FriendID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromConversation(conv)))
}

func (h *ChatHandler) CreateMessage(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	var req httpdto.NewMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	msg, err := h.service.CreateMessage(c.Request.Context(), userID, services.NewMessageInput{
		ConversationID: req.ConversationID,
		Message:        req.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromMessage(msg)))
}

func (h *ChatHandler) GetChat(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	conversationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid conversation id", "INVALID_REQUEST"))
		return
	}
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	page, err := h.service.GetChat(c.Request.Context(), userID, conversationID, skip)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromChatPage(page)))
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat_errors.ErrUserNotFound):
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse(err.Error(), "USER_NOT_FOUND"))
	case errors.Is(err, chat_errors.ErrIdentityUnavailable):
		c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "AUTH_UNAVAILABLE"))
	case errors.Is(err, chat_errors.ErrNotFound):
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse(err.Error(), "NOT_FOUND"))
	default:
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse(err.Error(), "INTERNAL_ERROR"))
	}
}
