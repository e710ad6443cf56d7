package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"projectview/internal/app/dto"
	"projectview/internal/domain/project"
	"projectview/internal/domain/sorting"
)

const (
	defaultProjectsPageSize = 10
	maxProjectsPageSize     = 1000
)

func (h *Handler) ProjectsList(c *gin.Context) {
	workspace := c.Param("workspace")

	page, ok := h.intQuery(c, "page", 1, 1, 0)
	if !ok {
		return
	}
	size, ok := h.intQuery(c, "size", defaultProjectsPageSize, 1, maxProjectsPageSize)
	if !ok {
		return
	}

	sorts, err := sorting.Parse(c.Query("sorting"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := sorting.Projects.Validate(sorts); err != nil {
		h.writeError(c, err)
		return
	}

	view, err := h.ProjectSvc.ListWithStatistics(c.Request.Context(), project.ListParams{
		WorkspaceName: workspace,
		Search:        c.Query("search"),
		Sorting:       sorts,
		Page:          page,
		Size:          size,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := dto.ProjectsResponse{
		Data: dto.ProjectPage{
			Content: make([]map[string]any, 0, len(view.Data.Content)),
			Total:   view.Data.Total,
			Page:    view.Data.Page,
			Size:    view.Data.Size,
		},
		IsPending:       view.Pending,
		NamesIncomplete: view.NamesIncomplete,
	}
	for _, r := range view.Data.Content {
		resp.Data.Content = append(resp.Data.Content, r)
	}

	c.JSON(http.StatusOK, resp)
}

// intQuery reads an optional integer query parameter. hi <= 0 means no
// upper bound. On failure it writes a 400 and returns false.
func (h *Handler) intQuery(c *gin.Context, name string, def, lo, hi int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || (hi > 0 && n > hi) {
		if hi > 0 {
			h.badRequest(c, name+" must be an integer between "+strconv.Itoa(lo)+" and "+strconv.Itoa(hi))
		} else {
			h.badRequest(c, name+" must be an integer >= "+strconv.Itoa(lo))
		}
		return 0, false
	}
	return n, true
}
