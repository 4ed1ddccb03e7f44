package handler

import (
	"net/http"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/devesh1011/EtherBlinks/pkg/service"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const invalidLinkMessage = "invalid or corrupt action link"

type Error struct {
	Message string `json:"error"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	logrus.Error(message)
	c.AbortWithStatusJSON(statusCode, Error{Message: message})
}

// errorResponse maps a service error to its status. Internal details are
// logged but only shown to the client for validation failures.
func errorResponse(c *gin.Context, err error) {
	status, message := classify(err)
	if status >= http.StatusInternalServerError {
		logrus.WithError(err).Errorf("%s %s", c.Request.Method, c.Request.URL.Path)
		c.AbortWithStatusJSON(status, Error{Message: message})
		return
	}
	newErrorResponse(c, status, message)
}

func classify(err error) (int, string) {
	var (
		verr *models.ValidationError
		swe  *models.StoreWriteError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, models.ErrActionNotFound):
		return http.StatusNotFound, "action not found"
	case models.IsInvalidLink(err):
		return http.StatusNotFound, invalidLinkMessage
	case errors.As(err, &swe):
		return http.StatusInternalServerError, "failed to store action"
	case errors.Is(err, service.ErrNoChainClient):
		return http.StatusServiceUnavailable, "chain client is not configured"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
