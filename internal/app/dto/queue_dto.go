package dto

import "time"

type Reviewer struct {
	Username string `json:"username"`
	Status   int    `json:"status"`
}

type FeedbackScore struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type AnnotationQueue struct {
	ID                      string          `json:"id"`
	ProjectID               string          `json:"project_id"`
	ProjectName             string          `json:"project_name,omitempty"`
	Name                    string          `json:"name"`
	Description             string          `json:"description,omitempty"`
	Scope                   string          `json:"scope"`
	Instructions            string          `json:"instructions,omitempty"`
	CommentsEnabled         bool            `json:"comments_enabled"`
	FeedbackDefinitionNames []string        `json:"feedback_definition_names"`
	Reviewers               []Reviewer      `json:"reviewers"`
	FeedbackScores          []FeedbackScore `json:"feedback_scores"`
	ItemsCount              int             `json:"items_count"`
	CreatedAt               *time.Time      `json:"created_at,omitempty"`
	CreatedBy               string          `json:"created_by,omitempty"`
	LastUpdatedAt           *time.Time      `json:"last_updated_at,omitempty"`
	LastUpdatedBy           string          `json:"last_updated_by,omitempty"`
	LastScoredAt            *time.Time      `json:"last_scored_at,omitempty"`
}

type Column struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Type      string `json:"type"`
	FieldType string `json:"field_type,omitempty"`
	Width     int    `json:"width,omitempty"`
	Sortable  bool   `json:"sortable"`
}

type ColumnPinning struct {
	Left  []string `json:"left"`
	Right []string `json:"right"`
}

type Sort struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

type Filter struct {
	ID       string `json:"id,omitempty"`
	Field    string `json:"field"`
	Type     string `json:"type,omitempty"`
	Operator string `json:"operator"`
	Key      string `json:"key,omitempty"`
	Value    any    `json:"value"`
}

type QueueItemsResponse struct {
	Scope             string           `json:"scope"`
	Content           []map[string]any `json:"content"`
	Total             int              `json:"total"`
	SortableBy        []string         `json:"sortable_by"`
	Page              int              `json:"page"`
	Size              int              `json:"size"`
	Search            string           `json:"search"`
	SearchPlaceholder string           `json:"search_placeholder"`
	Filters           []Filter         `json:"filters"`
	Sorting           []Sort           `json:"sorting"`
	RowHeight         string           `json:"row_height"`
	Columns           []Column         `json:"columns"`
	FilterColumns     []Column         `json:"filter_columns"`
	ColumnPinning     ColumnPinning    `json:"column_pinning"`
	EmptyState        bool             `json:"empty_state"`
	NoDataText        string           `json:"no_data_text"`
	SelectedRows      []string         `json:"selected_rows"`
	RefetchIntervalMS int64            `json:"refetch_interval_ms"`
}
