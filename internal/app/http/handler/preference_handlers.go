package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"projectview/internal/app/dto"
)

func (h *Handler) PreferenceGet(c *gin.Context) {
	p, err := h.PreferenceSvc.Get(c.Request.Context(), c.Param("workspace"), c.Param("key"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Preference{
		Key:       p.Key,
		Value:     p.Value,
		UpdatedAt: p.UpdatedAt,
	})
}

func (h *Handler) PreferencePut(c *gin.Context) {
	var body dto.PreferenceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if len(body.Value) == 0 {
		h.badRequest(c, "value is required")
		return
	}

	p, err := h.PreferenceSvc.Save(c.Request.Context(), c.Param("workspace"), c.Param("key"), body.Value)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Preference{
		Key:       p.Key,
		Value:     p.Value,
		UpdatedAt: p.UpdatedAt,
	})
}

func (h *Handler) PreferenceDelete(c *gin.Context) {
	if err := h.PreferenceSvc.Delete(c.Request.Context(), c.Param("workspace"), c.Param("key")); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
