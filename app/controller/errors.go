package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pookadai/models"
)

// statusForKind maps a store error kind to its HTTP status
func statusForKind(kind models.ErrorKind) int {
	switch kind {
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindValidation:
		return http.StatusBadRequest
	case models.KindInvalidTransition, models.KindConcurrentOperation:
		return http.StatusConflict
	case models.KindPaymentDeclined:
		return http.StatusPaymentRequired
	case models.KindUnauthorized:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as an ErrorResponse. Internal errors are logged and
// their details are not sent to the client.
func writeError(c *gin.Context, logger *zap.Logger, err error, orderID string) {
	kind := models.KindOf(err)
	status := statusForKind(kind)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("order_id", orderID),
			zap.Error(err))
		message = "internal error"
	}

	c.JSON(status, models.ErrorResponse{
		Error:   message,
		Kind:    kind.String(),
		OrderID: orderID,
	})
}

// badRequest renders a request decoding failure
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: "invalid request body: " + err.Error(),
		Kind:  models.KindValidation.String(),
	})
}
