package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fndrorato/chatbot-backend/internal/services"
)

// GetPromptRequest names the prompt to fetch; "main" when empty.
type GetPromptRequest struct {
	PromptName string `json:"prompt_name" example:"main"`
}

// PromptResponse is an active system prompt.
type PromptResponse struct {
	Prompt  string `json:"prompt"`
	Version string `json:"version" example:"1.0"`
	Name    string `json:"name" example:"main"`
}

// PublishPromptRequest stores a new version of a prompt.
type PublishPromptRequest struct {
	Name    string `json:"name" example:"main"`
	Version string `json:"version" example:"1.1"`
	Prompt  string `json:"prompt" example:"Você é o assistente virtual do hotel..."`
}

// PromptVersionResponse identifies a stored prompt version.
type PromptVersionResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Active  bool   `json:"active"`
}

// GetPrompt godoc
// @ID          getPrompt
// @Summary     Active system prompt
// @Tags        Prompts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.GetPromptRequest  false  "Prompt name"
//
// @Success     200  {object}  handlers.PromptResponse
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     404  {object}  handlers.ErrorResponse  "Prompt não encontrado"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /v1/systems/prompt [post]
func (h *Handlers) GetPrompt(c *gin.Context) {
	t, found := tenant(c)
	if !found {
		return
	}
	body, valid := readObject(c)
	if !valid {
		return
	}
	name, _ := body["prompt_name"].(string)
	if strings.TrimSpace(name) == "" {
		name = services.DefaultPromptName
	}

	p, err := h.promptSvc.Get(c.Request.Context(), t.ID, name)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, PromptResponse{Prompt: p.Prompt, Version: p.Version, Name: p.Name})
}

// PublishPrompt godoc
// @ID          publishPrompt
// @Summary     Publish a new prompt version
// @Description The new version becomes the active one; other versions with the same name are deactivated.
// @Tags        Prompts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.PublishPromptRequest  true  "Prompt"
//
// @Success     201  {object}  handlers.PromptVersionResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing required fields"
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /v1/systems/prompt/publish [post]
func (h *Handlers) PublishPrompt(c *gin.Context) {
	t, found := tenant(c)
	if !found {
		return
	}
	var req PublishPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, MsgInvalidJSON)
		return
	}

	p, err := h.promptSvc.Publish(c.Request.Context(), t.ID, req.Name, strings.TrimSpace(req.Version), req.Prompt)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, PromptVersionResponse{ID: p.ID, Name: p.Name, Version: p.Version, Active: p.Active})
}

// ActivatePrompt godoc
// @ID          activatePrompt
// @Summary     Activate a prompt version
// @Tags        Prompts
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Prompt id"
//
// @Success     200  {object}  handlers.PromptVersionResponse
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     404  {object}  handlers.ErrorResponse  "Prompt não encontrado"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /v1/systems/prompt/{id}/activate [put]
func (h *Handlers) ActivatePrompt(c *gin.Context) {
	t, found := tenant(c)
	if !found {
		return
	}
	p, err := h.promptSvc.Activate(c.Request.Context(), t.ID, c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, PromptVersionResponse{ID: p.ID, Name: p.Name, Version: p.Version, Active: p.Active})
}
