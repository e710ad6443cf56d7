package upstream

import (
	"context"
	"net/url"
	"strconv"

	"projectview/internal/domain"
	"projectview/internal/domain/project"
	"projectview/internal/domain/sorting"
)

const (
	projectsPath          = "/v1/private/projects"
	projectStatisticsPath = "/v1/private/projects/stats"
	statisticsListField   = "stats"
	statisticNameField    = "name"
	statisticValueField   = "value"
)

type pageResponse struct {
	Content    []map[string]any `json:"content"`
	Page       int              `json:"page"`
	Size       int              `json:"size"`
	Total      int              `json:"total"`
	SortableBy []string         `json:"sortable_by"`
}

func (r pageResponse) snapshot(transform func(domain.Record) domain.Record) *domain.Page[domain.Record] {
	content := make([]domain.Record, 0, len(r.Content))
	for _, c := range r.Content {
		rec := domain.Record(c)
		if transform != nil {
			rec = transform(rec)
		}
		content = append(content, rec)
	}
	return &domain.Page[domain.Record]{
		Content:    content,
		Total:      r.Total,
		Page:       r.Page,
		Size:       r.Size,
		SortableBy: r.SortableBy,
	}
}

func projectQuery(p project.ListParams) url.Values {
	q := url.Values{}
	if p.Search != "" {
		q.Set("name", p.Search)
	}
	if s := sorting.Encode(p.Sorting); s != "" {
		q.Set("sorting", s)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Size > 0 {
		q.Set("size", strconv.Itoa(p.Size))
	}
	return q
}

func (c *Client) ListProjects(ctx context.Context, p project.ListParams) (*project.Snapshot, error) {
	var resp pageResponse
	if err := c.getJSON(ctx, projectsPath, p.WorkspaceName, projectQuery(p), &resp); err != nil {
		return nil, translate("projects", err)
	}
	return resp.snapshot(nil), nil
}

func (c *Client) ListProjectStatistics(ctx context.Context, p project.ListParams) (*project.Snapshot, error) {
	var resp pageResponse
	if err := c.getJSON(ctx, projectStatisticsPath, p.WorkspaceName, projectQuery(p), &resp); err != nil {
		return nil, translate("project statistics", err)
	}
	return resp.snapshot(flattenStatistics), nil
}

// flattenStatistics lifts the backend's [{name, value}] statistics list into
// top-level fields, e.g. duration -> {p50, p90, p99}.
func flattenStatistics(rec domain.Record) domain.Record {
	list, ok := rec[statisticsListField].([]any)
	if !ok {
		return rec
	}

	out := make(domain.Record, len(rec)+len(list))
	for k, v := range rec {
		if k != statisticsListField {
			out[k] = v
		}
	}
	for _, item := range list {
		stat, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := stat[statisticNameField].(string)
		if name == "" {
			continue
		}
		out[name] = stat[statisticValueField]
	}
	return out
}
