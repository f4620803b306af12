// Context HTTP handlers.
//
// This file exposes the tenant knowledge endpoints:
//   - POST /v1/systems/context/relevant   (rank snippets for a message)
//   - POST /v1/systems/context            (upsert by category)
//   - GET  /v1/systems/context            (list, ETag support)
//   - POST /v1/clients/context/process    (structure raw hotel text)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fndrorato/chatbot-backend/internal/services"
)

//
// DTOs
//

// RelevantContextRequest asks for the snippets matching a message.
type RelevantContextRequest struct {
	Message     string   `json:"message" example:"Qual o horário do café da manhã?"`
	MaxContexts int      `json:"max_contexts" example:"3"`
	Categories  []string `json:"categories" example:"horarios,servicos"`
}

// UpsertContextRequest creates or replaces the snippet of a category.
type UpsertContextRequest struct {
	Category string   `json:"category" example:"horarios"`
	Content  string   `json:"content" example:"Café da manhã das 7h às 10h."`
	Keywords []string `json:"keywords" example:"café,manhã,horário"`
	Priority int      `json:"priority" example:"5"`
}

// UpsertContextResponse reports the stored snippet.
type UpsertContextResponse struct {
	Message  string `json:"message" example:"Contexto criado"`
	Category string `json:"category" example:"horarios"`
	ID       string `json:"id"`
}

// ContextItem is one listed snippet.
type ContextItem struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Content  string   `json:"content"`
	Keywords []string `json:"keywords"`
	Priority int      `json:"priority"`
}

// ListContextsResponse wraps the tenant's active snippets.
type ListContextsResponse struct {
	Contexts []ContextItem `json:"contexts"`
}

// ProcessContextRequest carries raw hotel text (HTML or plain).
type ProcessContextRequest struct {
	RawText string `json:"raw_text" example:"<p>Check-in a partir das 14h</p>"`
}

// ProcessContextResponse returns the structured document that was stored.
type ProcessContextResponse struct {
	Message           string         `json:"message" example:"Contexto processado e salvo com sucesso"`
	StructuredContext map[string]any `json:"structured_context"`
}

const (
	msgContextCreated   = "Contexto criado"
	msgContextUpdated   = "Contexto atualizado"
	msgContextProcessed = "Contexto processado e salvo com sucesso"
)

//
// Handlers
//

// RelevantContext godoc
// @ID          relevantContext
// @Summary     Select prompt context for a message
// @Description Scores the tenant's active snippets by keyword hits and priority. Snippets with
// @Description priority 10 or more are always included.
// @Tags        Context
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.RelevantContextRequest  true  "Message"
//
// @Success     200  {object}  services.RelevantContext
// @Failure     400  {object}  handlers.ErrorResponse  "Campo 'message' é obrigatório"
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /v1/systems/context/relevant [post]
func (h *Handlers) RelevantContext(c *gin.Context) {
	t, found := tenant(c)
	if !found {
		return
	}
	var req RelevantContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, MsgInvalidJSON)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, MsgMessageRequired)
		return
	}

	rc, err := h.contextSvc.Relevant(c.Request.Context(), t.ID, req.Message, req.MaxContexts, req.Categories)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, rc)
}

// UpsertContext godoc
// @ID          upsertContext
// @Summary     Create or replace a context snippet
// @Description There is one snippet per category. Valid categories: quartos, horarios, pagamento,
// @Description servicos, contato, politicas, instrucoes_atendimento.
// @Tags        Context
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.UpsertContextRequest  true  "Snippet"
//
// @Success     201  {object}  handlers.UpsertContextResponse  "Created"
// @Success     200  {object}  handlers.UpsertContextResponse  "Updated"
// @Failure     400  {object}  handlers.ErrorResponse  "category e content são obrigatórios"
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /v1/systems/context [post]
func (h *Handlers) UpsertContext(c *gin.Context) {
	t, found := tenant(c)
	if !found {
		return
	}
	var req UpsertContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, MsgInvalidJSON)
		return
	}
	if strings.TrimSpace(req.Category) == "" || strings.TrimSpace(req.Content) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, MsgContextFields)
		return
	}

	snip, created, err := h.contextSvc.Upsert(c.Request.Context(), t.ID, services.ContextInput{
		Category: req.Category,
		Content:  req.Content,
		Keywords: req.Keywords,
		Priority: req.Priority,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	status, msg := http.StatusOK, msgContextUpdated
	if created {
		status, msg = http.StatusCreated, msgContextCreated
	}
	ok(c, status, UpsertContextResponse{Message: msg, Category: snip.Category, ID: snip.ID})
}

// ListContexts godoc
// @ID          listContexts
// @Summary     List active context snippets
// @Description Supports weak ETag via If-None-Match and may return 304.
// @Tags        Context
// @Produce     json
// @Security    BearerAuth
//
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"  example(W/\"ctx-2-1700000000\")
//
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     200  {object}  handlers.ListContextsResponse
// @Success     304  {string}  string  "Not Modified"
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /v1/systems/context [get]
func (h *Handlers) ListContexts(c *gin.Context) {
	t, found := tenant(c)
	if !found {
		return
	}
	items, etag, err := h.contextSvc.List(c.Request.Context(), t.ID)
	if err != nil {
		failErr(c, err)
		return
	}
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return
	}

	out := ListContextsResponse{Contexts: make([]ContextItem, 0, len(items))}
	for _, it := range items {
		kw := it.Keywords
		if kw == nil {
			kw = []string{}
		}
		out.Contexts = append(out.Contexts, ContextItem{
			ID:       it.ID,
			Category: it.Category,
			Content:  it.Content,
			Keywords: kw,
			Priority: it.Priority,
		})
	}
	ok(c, http.StatusOK, out)
}

// ProcessContext godoc
// @ID          processContext
// @Summary     Structure raw hotel text
// @Description Strips markup, asks the language model to organize the text by context category and
// @Description stores the result as the tenant's information document.
// @Tags        Clients
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.ProcessContextRequest  true  "Raw text"
//
// @Success     200  {object}  handlers.ProcessContextResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Campo 'raw_text' é obrigatório"
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /v1/clients/context/process [post]
func (h *Handlers) ProcessContext(c *gin.Context) {
	t, found := tenant(c)
	if !found {
		return
	}
	var req ProcessContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, MsgInvalidJSON)
		return
	}
	if strings.TrimSpace(req.RawText) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, MsgRawTextRequired)
		return
	}

	doc, err := h.contextSvc.Process(c.Request.Context(), t.ID, req.RawText)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ProcessContextResponse{Message: msgContextProcessed, StructuredContext: doc})
}
