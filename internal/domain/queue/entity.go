package queue

import (
	"time"

	"projectview/internal/domain"
	"projectview/internal/domain/sorting"
)

type Scope string

const (
	ScopeTrace  Scope = "trace"
	ScopeThread Scope = "thread"
)

type Reviewer struct {
	Username string
	Status   int
}

type FeedbackScore struct {
	Name  string
	Value float64
}

type AnnotationQueue struct {
	ID                      string
	ProjectID               string
	ProjectName             string
	Name                    string
	Description             string
	Scope                   Scope
	Instructions            string
	CommentsEnabled         bool
	FeedbackDefinitionNames []string
	Reviewers               []Reviewer
	FeedbackScores          []FeedbackScore
	ItemsCount              int
	CreatedAt               *time.Time
	CreatedBy               string
	LastUpdatedAt           *time.Time
	LastUpdatedBy           string
	LastScoredAt            *time.Time
}

// ItemsParams is one request to the traces or threads listing of a project.
type ItemsParams struct {
	WorkspaceName string
	ProjectID     string
	Search        string
	Filters       []Filter
	Sorting       []sorting.Sort
	Page          int
	Size          int
	Truncate      bool
}

type ItemsPage = domain.Page[domain.Record]
