package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"projectview/internal/app/dto"
	"projectview/internal/domain/queue"
)

func (h *Handler) AnnotationQueueGet(c *gin.Context) {
	q, err := h.QueueSvc.Get(c.Request.Context(), c.Param("workspace"), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQueueDTO(q))
}

func (h *Handler) AnnotationQueueItems(c *gin.Context) {
	values := c.Request.URL.Query()

	query := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			query[k] = v[0]
		}
	}

	var selected []string
	for _, v := range values["selected"] {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				selected = append(selected, id)
			}
		}
	}

	view, err := h.QueueSvc.Items(c.Request.Context(), queue.TabRequest{
		WorkspaceName: c.Param("workspace"),
		QueueID:       c.Param("id"),
		Query:         query,
		Selected:      selected,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := dto.QueueItemsResponse{
		Scope:             string(view.Scope),
		Content:           make([]map[string]any, 0, len(view.Rows)),
		Total:             view.Total,
		SortableBy:        view.SortableBy,
		Page:              view.Page,
		Size:              view.Size,
		Search:            view.Search,
		SearchPlaceholder: view.SearchHint,
		Filters:           make([]dto.Filter, 0, len(view.Filters)),
		Sorting:           make([]dto.Sort, 0, len(view.Sorting)),
		RowHeight:         string(view.RowHeight),
		Columns:           make([]dto.Column, 0, len(view.Columns)),
		FilterColumns:     make([]dto.Column, 0, len(view.FilterColumns)),
		ColumnPinning: dto.ColumnPinning{
			Left:  view.Pinning.Left,
			Right: view.Pinning.Right,
		},
		EmptyState:        view.EmptyState,
		NoDataText:        view.NoDataText,
		SelectedRows:      view.SelectedRows,
		RefetchIntervalMS: view.RefetchInterval.Milliseconds(),
	}

	for _, r := range view.Rows {
		resp.Content = append(resp.Content, r)
	}
	for _, f := range view.Filters {
		resp.Filters = append(resp.Filters, dto.Filter{
			ID:       f.ID,
			Field:    f.Field,
			Type:     f.Type,
			Operator: f.Operator,
			Key:      f.Key,
			Value:    f.Value,
		})
	}
	for _, s := range view.Sorting {
		resp.Sorting = append(resp.Sorting, dto.Sort{Field: s.Field, Direction: string(s.Direction)})
	}
	for _, col := range view.Columns {
		resp.Columns = append(resp.Columns, dto.Column{
			ID:        col.ID,
			Label:     col.Label,
			Type:      string(col.Type),
			FieldType: col.FieldType,
			Width:     col.Width,
			Sortable:  col.Sortable,
		})
	}
	for _, col := range view.FilterColumns {
		resp.FilterColumns = append(resp.FilterColumns, dto.Column{
			ID:        col.ID,
			Label:     col.Label,
			Type:      string(col.Type),
			FieldType: col.FieldType,
		})
	}

	c.JSON(http.StatusOK, resp)
}

func toQueueDTO(q queue.AnnotationQueue) dto.AnnotationQueue {
	res := dto.AnnotationQueue{
		ID:                      q.ID,
		ProjectID:               q.ProjectID,
		ProjectName:             q.ProjectName,
		Name:                    q.Name,
		Description:             q.Description,
		Scope:                   string(q.Scope),
		Instructions:            q.Instructions,
		CommentsEnabled:         q.CommentsEnabled,
		FeedbackDefinitionNames: append([]string{}, q.FeedbackDefinitionNames...),
		Reviewers:               make([]dto.Reviewer, 0, len(q.Reviewers)),
		FeedbackScores:          make([]dto.FeedbackScore, 0, len(q.FeedbackScores)),
		ItemsCount:              q.ItemsCount,
		CreatedAt:               q.CreatedAt,
		CreatedBy:               q.CreatedBy,
		LastUpdatedAt:           q.LastUpdatedAt,
		LastUpdatedBy:           q.LastUpdatedBy,
		LastScoredAt:            q.LastScoredAt,
	}
	for _, r := range q.Reviewers {
		res.Reviewers = append(res.Reviewers, dto.Reviewer{Username: r.Username, Status: r.Status})
	}
	for _, s := range q.FeedbackScores {
		res.FeedbackScores = append(res.FeedbackScores, dto.FeedbackScore{Name: s.Name, Value: s.Value})
	}
	return res
}
