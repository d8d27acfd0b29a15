package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/child"
	"github.com/bigfeelings/bigfeelings/internal/journal"
)

// errBadRequest marks request validation failures.
var errBadRequest = errors.New("bad request")

// writeError maps domain errors to status codes.
func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, child.ErrNotFound),
		errors.Is(err, catalog.ErrStoryNotFound),
		errors.Is(err, journal.ErrEntryNotFound):
		status = http.StatusNotFound
	case errors.Is(err, child.ErrNameRequired),
		errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		h.log.Error("request failed",
			zap.Error(err),
			zap.String("trace_id", GetTraceID(c)),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
