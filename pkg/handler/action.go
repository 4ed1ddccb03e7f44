package handler

import (
	"net/http"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/gin-gonic/gin"
)

// CreateAction stores an action and returns its short link.
// Body: flat JSON with action_type and the fields of that variant.
func (h *Handler) CreateAction(c *gin.Context) {
	var input models.CreateActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.CreateLink(c.Request.Context(), input)
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetAction(c *gin.Context) {
	rec, err := h.service.GetAction(c.Request.Context(), c.Param("shortId"))
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *Handler) TransactionStatus(c *gin.Context) {
	st, err := h.service.TransactionStatus(c.Request.Context(), c.Param("hash"))
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, st)
}
