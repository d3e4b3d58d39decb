package handlers

import (
	"net/http"

	"charitybridge/internal/services"
	"charitybridge/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	*BaseHandler
	messageService services.MessageService
}

func NewMessageHandler(base *BaseHandler, messageService services.MessageService) *MessageHandler {
	return &MessageHandler{
		BaseHandler:    base,
		messageService: messageService,
	}
}

func (h *MessageHandler) RegisterRoutes(r *gin.RouterGroup) {
	thread := r.Group("/claims/:id/messages")
	{
		thread.GET("", h.ListMessages)
		thread.POST("", h.PostMessage)
		thread.POST("/read", h.MarkThreadRead)
	}
	r.PATCH("/messages/:id/read", h.MarkMessageRead)
}

func (h *MessageHandler) ListMessages(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	claimID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	thread, err := h.messageService.ListMessages(c.Request.Context(), h.GetDB(c), actor, claimID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, thread)
}

func (h *MessageHandler) PostMessage(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	claimID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	var req dto.PostMessageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	message, err := h.messageService.PostMessage(c.Request.Context(), h.GetDB(c), actor, claimID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

func (h *MessageHandler) MarkThreadRead(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	claimID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	updated, err := h.messageService.MarkThreadRead(c.Request.Context(), h.GetDB(c), actor, claimID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MarkReadResponse{Updated: updated})
}

func (h *MessageHandler) MarkMessageRead(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	messageID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	message, err := h.messageService.MarkMessageRead(c.Request.Context(), h.GetDB(c), actor, messageID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}
