package dto

type ProjectPage struct {
	Content []map[string]any `json:"content"`
	Total   int              `json:"total"`
	Page    int              `json:"page,omitempty"`
	Size    int              `json:"size,omitempty"`
}

type ProjectsResponse struct {
	Data            ProjectPage `json:"data"`
	IsPending       bool        `json:"is_pending"`
	NamesIncomplete bool        `json:"names_incomplete,omitempty"`
}
