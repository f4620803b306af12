// Message HTTP handlers.
//
// This file exposes:
//   - POST /v1/chats/messages/{client_type}   (record one turn)
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fndrorato/chatbot-backend/internal/services"
)

// CreateMessageRequest is one conversation turn.
type CreateMessageRequest struct {
	ChatID        string  `json:"chat_id" example:"0c7a1f1e-6f2b-4f6e-9d59-3b0f1c2d4e5f"`
	ContactID     string  `json:"contact_id" example:"5511988887777"`
	ContentInput  string  `json:"content_input" example:"Vocês têm quarto para 2 adultos?"`
	ContentOutput *string `json:"content_output" example:"Temos sim! Para quais datas?"`
	Origin        *string `json:"origin" example:"whatsapp"`
}

// CreateMessageResponse identifies the stored message.
type CreateMessageResponse struct {
	MessageID string    `json:"message_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CreateMessage godoc
// @ID          createMessage
// @Summary     Record a message
// @Description Stores the contact's text and, when known, the assistant's reply. The optional origin
// @Description is matched by name, case-insensitively.
// @Tags        Messages
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       client_type  path  string                          true  "Client type"  Enums(hotel)
// @Param       body         body  handlers.CreateMessageRequest   true  "Message"
//
// @Success     201  {object}  handlers.CreateMessageResponse
// @Failure     400  {object}  handlers.ErrorResponse  "chat_id and contact_id are required"
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /v1/chats/messages/{client_type} [post]
func (h *Handlers) CreateMessage(c *gin.Context) {
	t, found := tenant(c)
	if !found {
		return
	}
	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, MsgInvalidJSON)
		return
	}
	if strings.TrimSpace(req.ChatID) == "" || strings.TrimSpace(req.ContactID) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, MsgMessageFieldsMiss)
		return
	}

	m, err := h.msgSvc.Create(c.Request.Context(), t.ID, services.MessageInput{
		ChatID:        req.ChatID,
		ContactID:     req.ContactID,
		ContentInput:  req.ContentInput,
		ContentOutput: req.ContentOutput,
		Origin:        req.Origin,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, CreateMessageResponse{MessageID: m.ID, Timestamp: m.Timestamp})
}
