package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ClientInfoResponse carries the tenant's information document.
type ClientInfoResponse struct {
	Information string `json:"information"`
}

// ClientInfo godoc
// @ID          clientInfo
// @Summary     Tenant information document
// @Description Returns the document last stored by the context processor (JSON text, possibly empty).
// @Tags        Clients
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  handlers.ClientInfoResponse
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /v1/clients/info [get]
func (h *Handlers) ClientInfo(c *gin.Context) {
	t, found := tenant(c)
	if !found {
		return
	}
	info, err := h.tenantSvc.Information(c.Request.Context(), t.ID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ClientInfoResponse{Information: info})
}
