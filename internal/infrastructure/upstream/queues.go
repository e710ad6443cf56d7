package upstream

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"projectview/internal/domain/queue"
	"projectview/internal/domain/sorting"
)

const (
	annotationQueuesPath = "/v1/private/annotation-queues/"
	tracesPath           = "/v1/private/traces"
	threadsPath          = "/v1/private/traces/threads"
)

type annotationQueueResponse struct {
	ID                      string     `json:"id"`
	ProjectID               string     `json:"project_id"`
	ProjectName             string     `json:"project_name"`
	Name                    string     `json:"name"`
	Description             string     `json:"description"`
	Scope                   string     `json:"scope"`
	Instructions            string     `json:"instructions"`
	CommentsEnabled         bool       `json:"comments_enabled"`
	FeedbackDefinitionNames []string   `json:"feedback_definition_names"`
	ItemsCount              int        `json:"items_count"`
	CreatedAt               *time.Time `json:"created_at"`
	CreatedBy               string     `json:"created_by"`
	LastUpdatedAt           *time.Time `json:"last_updated_at"`
	LastUpdatedBy           string     `json:"last_updated_by"`
	LastScoredAt            *time.Time `json:"last_scored_at"`
	Reviewers               []struct {
		Username string `json:"username"`
		Status   int    `json:"status"`
	} `json:"reviewers"`
	FeedbackScores []struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	} `json:"feedback_scores"`
}

func (r annotationQueueResponse) toDomain() queue.AnnotationQueue {
	q := queue.AnnotationQueue{
		ID:                      r.ID,
		ProjectID:               r.ProjectID,
		ProjectName:             r.ProjectName,
		Name:                    r.Name,
		Description:             r.Description,
		Scope:                   queue.Scope(r.Scope),
		Instructions:            r.Instructions,
		CommentsEnabled:         r.CommentsEnabled,
		FeedbackDefinitionNames: append([]string(nil), r.FeedbackDefinitionNames...),
		ItemsCount:              r.ItemsCount,
		CreatedAt:               r.CreatedAt,
		CreatedBy:               r.CreatedBy,
		LastUpdatedAt:           r.LastUpdatedAt,
		LastUpdatedBy:           r.LastUpdatedBy,
		LastScoredAt:            r.LastScoredAt,
	}
	for _, rv := range r.Reviewers {
		q.Reviewers = append(q.Reviewers, queue.Reviewer{Username: rv.Username, Status: rv.Status})
	}
	for _, fs := range r.FeedbackScores {
		q.FeedbackScores = append(q.FeedbackScores, queue.FeedbackScore{Name: fs.Name, Value: fs.Value})
	}
	return q
}

func (c *Client) GetAnnotationQueue(ctx context.Context, workspace, id string) (queue.AnnotationQueue, error) {
	var resp annotationQueueResponse
	if err := c.getJSON(ctx, annotationQueuesPath+url.PathEscape(id), workspace, url.Values{}, &resp); err != nil {
		return queue.AnnotationQueue{}, translate("annotation queue", err)
	}
	return resp.toDomain(), nil
}

func itemsQuery(p queue.ItemsParams) url.Values {
	q := url.Values{}
	q.Set("project_id", p.ProjectID)
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if f := queue.EncodeFilters(p.Filters); f != "" {
		q.Set("filters", f)
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
	q.Set("truncate", strconv.FormatBool(p.Truncate))
	return q
}

func (c *Client) ListTraces(ctx context.Context, p queue.ItemsParams) (*queue.ItemsPage, error) {
	var resp pageResponse
	if err := c.getJSON(ctx, tracesPath, p.WorkspaceName, itemsQuery(p), &resp); err != nil {
		return nil, translate("traces", err)
	}
	return resp.snapshot(nil), nil
}

func (c *Client) ListThreads(ctx context.Context, p queue.ItemsParams) (*queue.ItemsPage, error) {
	var resp pageResponse
	if err := c.getJSON(ctx, threadsPath, p.WorkspaceName, itemsQuery(p), &resp); err != nil {
		return nil, translate("threads", err)
	}
	return resp.snapshot(nil), nil
}
