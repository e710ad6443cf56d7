package project

import (
	"projectview/internal/domain"
	"projectview/internal/domain/sorting"
)

const (
	fieldID        = "id"
	fieldName      = "name"
	fieldProjectID = "project_id"
)

// Snapshot is an immutable page captured from the projects or the project
// statistics listing. A nil snapshot means the data is not available yet.
type Snapshot = domain.Page[domain.Record]

// ListParams is a single logical request for a page of projects.
type ListParams struct {
	WorkspaceName string
	Search        string
	Sorting       []sorting.Sort
	Page          int
	Size          int
}

// ResultPage is the merged list. Page and Size are zero when the governing
// snapshot did not report them.
type ResultPage struct {
	Content []domain.Record
	Total   int
	Page    int
	Size    int
}

type View struct {
	Data    ResultPage
	Pending bool
	// NamesIncomplete is set when metrics sorting is active and the project
	// listing could not cover every project in the workspace, so some rows
	// may fall back to their id as name.
	NamesIncomplete bool
}
