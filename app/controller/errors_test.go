package controller

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"pookadai/models"
)

func TestStatusForKind(t *testing.T) {
	expected := map[models.ErrorKind]int{
		models.KindNotFound:            http.StatusNotFound,
		models.KindValidation:          http.StatusBadRequest,
		models.KindInvalidTransition:   http.StatusConflict,
		models.KindConcurrentOperation: http.StatusConflict,
		models.KindPaymentDeclined:     http.StatusPaymentRequired,
		models.KindUnauthorized:        http.StatusForbidden,
		models.KindInternal:            http.StatusInternalServerError,
	}
	for kind, status := range expected {
		assert.Equal(t, status, statusForKind(kind), kind.String())
	}
}
