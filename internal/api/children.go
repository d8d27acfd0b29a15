package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bigfeelings/bigfeelings/internal/child"
)

type childRequest struct {
	Name  string  `json:"name" binding:"required,max=64"`
	Age   *int    `json:"age" binding:"omitempty,min=1,max=18"`
	Notes *string `json:"notes"`
}

// ListChildren handles GET /api/children.
func (h *Handler) ListChildren(c *gin.Context) {
	ctx := c.Request.Context()
	resp := gin.H{"children": h.svc.Profiles.List(ctx)}
	if sel, ok := h.svc.Profiles.Selected(ctx); ok {
		resp["selected"] = sel.ID
	}
	c.JSON(http.StatusOK, resp)
}

// CreateChild handles POST /api/children.
func (h *Handler) CreateChild(c *gin.Context) {
	var req childRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	created, err := h.svc.Profiles.Create(c.Request.Context(), req.Name, req.Age, req.Notes)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateChild handles PUT /api/children/:id.
func (h *Handler) UpdateChild(c *gin.Context) {
	var req childRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	updated, err := h.svc.Profiles.Update(c.Request.Context(), c.Param("id"), req.Name, req.Age, req.Notes)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteChild handles DELETE /api/children/:id. All of the child's data goes
// with it.
func (h *Handler) DeleteChild(c *gin.Context) {
	if err := h.svc.Profiles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SelectChild handles POST /api/children/:id/select.
func (h *Handler) SelectChild(c *gin.Context) {
	selected, err := h.svc.Profiles.Select(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, selected)
}

// lookupChild loads the :id child or writes the error response.
func (h *Handler) lookupChild(c *gin.Context) (child.Child, bool) {
	ch, err := h.svc.Profiles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return child.Child{}, false
	}
	return ch, true
}
