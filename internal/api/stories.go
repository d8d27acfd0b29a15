package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
)

// ListStories handles GET /api/stories. ?ageRange=4-6 filters by band.
func (h *Handler) ListStories(c *gin.Context) {
	if h.svc.Catalog.HasError() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "story catalog unavailable"})
		return
	}
	stories := h.svc.Catalog.All()
	if q := c.Query("ageRange"); q != "" {
		band, err := catalog.ParseAgeBand(q)
		if err != nil {
			h.writeError(c, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
		stories = h.svc.Catalog.ByAgeBand(band)
	}
	c.JSON(http.StatusOK, gin.H{"stories": stories})
}

// GetStory handles GET /api/stories/:id.
func (h *Handler) GetStory(c *gin.Context) {
	s, err := h.svc.Catalog.Get(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
