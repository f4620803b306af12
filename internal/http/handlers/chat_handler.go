// Chat HTTP handlers.
//
// This file exposes REST endpoints for chat resources:
//   - POST   /v1/chats/validate                     (reuse or create)
//   - PUT    /v1/chats/chat/update                  (flow flags)
//   - DELETE /v1/chats/delete/chat/{client_type}    (archive)
//   - GET    /v1/chats/chat/log/{chat_id}           (transcript)
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fndrorato/chatbot-backend/internal/services"
)

//
// DTOs
//

// ValidateChatRequest is the JSON payload for chat validation.
type ValidateChatRequest struct {
	ContactID string `json:"contact_id" example:"5511988887777"`
	Origin    string `json:"origin" example:"whatsapp"`
}

// ValidateChatResponse describes both outcomes of validation: an open chat
// reused (200, with its flow state) or a new chat created (201, with its
// creation time).
type ValidateChatResponse struct {
	ChatExists  bool       `json:"chat_exists"`
	ChatCreated *time.Time `json:"chat_created,omitempty" example:"2025-03-14T09:26:53Z"`
	ChatID      string     `json:"chat_id" example:"0c7a1f1e-6f2b-4f6e-9d59-3b0f1c2d4e5f"`
	Flow        *bool      `json:"flow,omitempty"`
	FlowOption  *int       `json:"flow_option,omitempty"`
}

// UpdateChatFlowRequest is the JSON payload for updating chat flow flags.
// Omitted fields are left unchanged.
type UpdateChatFlowRequest struct {
	ChatID     string `json:"chat_id" example:"0c7a1f1e-6f2b-4f6e-9d59-3b0f1c2d4e5f"`
	Flow       *bool  `json:"flow" example:"true"`
	FlowOption *int   `json:"flow_option" example:"2"`
}

// ChatFlowResponse is the chat's flow state after an update.
type ChatFlowResponse struct {
	ChatID     string `json:"chat_id"`
	Flow       *bool  `json:"flow"`
	FlowOption *int   `json:"flow_option"`
}

// ArchiveChatRequest identifies the chat to archive.
type ArchiveChatRequest struct {
	ChatID string `json:"chat_id" example:"0c7a1f1e-6f2b-4f6e-9d59-3b0f1c2d4e5f"`
}

//
// Handlers
//

// ValidateChat godoc
// @ID          validateChat
// @Summary     Reuse or create the contact's chat
// @Description Returns the contact's open chat when one was active inside the dedup window and the
// @Description classifier says the conversation is still going; otherwise creates a chat on the origin.
// @Tags        Chats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.ValidateChatRequest  true  "Contact and origin"
//
// @Success     200  {object}  handlers.ValidateChatResponse  "Existing chat"
// @Success     201  {object}  handlers.ValidateChatResponse  "Chat created"
// @Failure     400  {object}  handlers.ErrorResponse  "Missing required fields"
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     404  {object}  handlers.ErrorResponse  "Origin not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /v1/chats/validate [post]
func (h *Handlers) ValidateChat(c *gin.Context) {
	t, found := tenant(c)
	if !found {
		return
	}
	var req ValidateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, MsgInvalidJSON)
		return
	}
	req.ContactID = strings.TrimSpace(req.ContactID)
	req.Origin = strings.TrimSpace(req.Origin)
	if req.ContactID == "" || req.Origin == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, services.MsgMissingFields)
		return
	}

	d, err := h.chatSvc.Validate(c.Request.Context(), t.ID, req.ContactID, req.Origin)
	if err != nil {
		if errors.Is(err, services.ErrOriginNotFound) {
			fail(c, http.StatusNotFound, ErrCodeOriginNotFound, fmt.Sprintf("Origin '%s' not found", req.Origin))
			return
		}
		failErr(c, err)
		return
	}

	if d.Exists {
		ok(c, http.StatusOK, ValidateChatResponse{
			ChatExists: true,
			ChatID:     d.Chat.ID,
			Flow:       d.Chat.Flow,
			FlowOption: d.Chat.FlowOption,
		})
		return
	}
	created := d.Chat.CreatedAt
	ok(c, http.StatusCreated, ValidateChatResponse{
		ChatExists:  false,
		ChatCreated: &created,
		ChatID:      d.Chat.ID,
	})
}

// UpdateChatFlow godoc
// @ID          updateChatFlow
// @Summary     Update a chat's flow flags
// @Tags        Chats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.UpdateChatFlowRequest  true  "Chat id and new flags"
//
// @Success     200  {object}  handlers.ChatFlowResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing chat_id"
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     404  {object}  handlers.ErrorResponse  "Chat not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /v1/chats/chat/update [put]
func (h *Handlers) UpdateChatFlow(c *gin.Context) {
	t, found := tenant(c)
	if !found {
		return
	}
	var req UpdateChatFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, MsgInvalidJSON)
		return
	}
	if strings.TrimSpace(req.ChatID) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, MsgMissingChatID)
		return
	}

	ch, err := h.chatSvc.UpdateFlow(c.Request.Context(), t.ID, req.ChatID, req.Flow, req.FlowOption)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ChatFlowResponse{ChatID: ch.ID, Flow: ch.Flow, FlowOption: ch.FlowOption})
}

// ArchiveChat godoc
// @ID          archiveChat
// @Summary     Archive a chat
// @Description Chats are never deleted; the chat is marked archived and stops being reused.
// @Description The chat id may be sent in the JSON body or as the chat_id query parameter.
// @Tags        Chats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       client_type  path   string                           true   "Client type"  Enums(hotel)
// @Param       chat_id      query  string                           false  "Chat id"
// @Param       body         body   handlers.ArchiveChatRequest      false  "Chat id"
//
// @Success     204  "Archived"
// @Failure     400  {object}  handlers.ErrorResponse  "chat_id is required"
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     404  {object}  handlers.ErrorResponse  "Chat not found for this client"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /v1/chats/delete/chat/{client_type} [delete]
func (h *Handlers) ArchiveChat(c *gin.Context) {
	t, found := tenant(c)
	if !found {
		return
	}
	chatID := strings.TrimSpace(c.Query("chat_id"))
	if chatID == "" {
		body, valid := readObject(c)
		if !valid {
			return
		}
		if s, isStr := body["chat_id"].(string); isStr {
			chatID = strings.TrimSpace(s)
		}
	}
	if chatID == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, MsgChatIDRequired)
		return
	}

	if err := h.chatSvc.Archive(c.Request.Context(), t.ID, chatID); err != nil {
		if errors.Is(err, services.ErrChatNotFound) {
			fail(c, http.StatusNotFound, ErrCodeChatNotFound, MsgChatLogNotFound)
			return
		}
		failErr(c, err)
		return
	}
	noContent(c)
}

// ChatLog godoc
// @ID          chatLog
// @Summary     Transcript of a chat
// @Description Concatenates every message of the chat's contact on the chat's origin, oldest first.
// @Tags        Chats
// @Produce     json
// @Security    BearerAuth
//
// @Param       chat_id  path  string  true  "Chat id"
//
// @Success     200  {object}  services.ChatLog
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     404  {object}  handlers.ErrorResponse  "Chat not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /v1/chats/chat/log/{chat_id} [get]
func (h *Handlers) ChatLog(c *gin.Context) {
	t, found := tenant(c)
	if !found {
		return
	}
	l, err := h.chatSvc.Log(c.Request.Context(), t.ID, c.Param("chat_id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, l)
}
