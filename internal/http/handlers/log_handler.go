// Integration log HTTP handlers.
//
//   - POST /v1/systems/logs/integration          (record)
//   - GET  /v1/systems/logs/integration/export   (XLSX download)
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fndrorato/chatbot-backend/internal/export"
	"github.com/fndrorato/chatbot-backend/internal/services"
	"github.com/fndrorato/chatbot-backend/internal/utils"
)

// IntegrationLogRequest is a log entry posted by an external flow. Content
// and Response are stored as given.
type IntegrationLogRequest struct {
	ContactID  string          `json:"contact_id" example:"5511988887777"`
	Origin     string          `json:"origin" example:"n8n"`
	To         string          `json:"to" example:"https://pms.example.com/api/reservas"`
	Content    json.RawMessage `json:"content" swaggertype:"object"`
	Response   json.RawMessage `json:"response" swaggertype:"object"`
	StatusHTTP int             `json:"status_http" example:"200"`
}

// IntegrationLogResponse identifies the stored entry.
type IntegrationLogResponse struct {
	LogID     string    `json:"log_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateIntegrationLog godoc
// @ID          createIntegrationLog
// @Summary     Record an integration log
// @Tags        Logs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.IntegrationLogRequest  true  "Log entry"
//
// @Success     201  {object}  handlers.IntegrationLogResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /v1/systems/logs/integration [post]
func (h *Handlers) CreateIntegrationLog(c *gin.Context) {
	t, found := tenant(c)
	if !found {
		return
	}
	var req IntegrationLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, MsgInvalidJSON)
		return
	}

	l, err := h.auditSvc.Record(c.Request.Context(), t.ID, services.ManualLog{
		ContactID:  req.ContactID,
		Origin:     req.Origin,
		To:         req.To,
		Content:    req.Content,
		Response:   req.Response,
		StatusHTTP: req.StatusHTTP,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, IntegrationLogResponse{LogID: l.ID, CreatedAt: l.CreatedAt})
}

// ExportIntegrationLogs godoc
// @ID          exportIntegrationLogs
// @Summary     Download integration logs as a spreadsheet
// @Description Bare dates are whole days: from=2025-03-01&to=2025-03-01 exports that day.
// @Tags        Logs
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
//
// @Param       from  query  string  false  "Start (YYYY-MM-DD or RFC 3339)"
// @Param       to    query  string  false  "End (YYYY-MM-DD or RFC 3339)"
//
// @Success     200  {file}    file
// @Failure     400  {object}  handlers.ErrorResponse  "Bad time parameter"
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     500  {object}  handlers.ErrorResponse  "Export failed"
// @Router      /v1/systems/logs/integration/export [get]
func (h *Handlers) ExportIntegrationLogs(c *gin.Context) {
	t, found := tenant(c)
	if !found {
		return
	}
	rawFrom, rawTo := c.Query("from"), c.Query("to")
	from, err := utils.ParseTimeParam(rawFrom, h.loc)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	to, err := utils.ParseTimeParam(rawTo, h.loc)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	to = utils.EndOfDayIfDate(rawTo, to)
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "'to' must not be before 'from'")
		return
	}

	data, err := h.auditSvc.Export(c.Request.Context(), t.ID, from, to)
	if err != nil {
		failDetails(c, http.StatusInternalServerError, ErrCodeExportFailed, "export failed", err.Error())
		return
	}
	name := fmt.Sprintf("integration_logs_%s.xlsx", time.Now().In(h.loc).Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, export.ContentType, data)
}
