// Package handler exposes the HTTP API with gin. Each handler struct
// wraps one service; the router wires them together.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ksuzuki/yaritai/internal/service"
	"github.com/ksuzuki/yaritai/internal/storage"
)

// abort writes the error with a status derived from its kind: unknown
// rows are 404, rejected transitions 409, validation failures 400,
// everything else 500.
func abort(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrAlreadyShared), errors.Is(err, storage.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidGroup),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrDateRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
