package project

import "projectview/internal/domain/sorting"

const DefaultAllProjectsPageSize = 1000

type FetchPlan struct {
	Projects   ListParams
	Statistics ListParams
}

// PlanFetch derives the two outbound requests for one logical request.
// Under metrics sorting the statistics listing decides order and paging, so
// the projects request asks for the whole workspace by name to have a
// display name for whatever statistics page is shown.
func PlanFetch(p ListParams, mode SortMode, allProjectsPageSize int) FetchPlan {
	if allProjectsPageSize <= 0 {
		allProjectsPageSize = DefaultAllProjectsPageSize
	}

	projects := p
	projects.Sorting = append([]sorting.Sort(nil), p.Sorting...)
	if mode == SortModeMetrics {
		projects.Sorting = []sorting.Sort{{Field: sorting.FieldName, Direction: sorting.ASC}}
		projects.Page = 1
		projects.Size = allProjectsPageSize
	}

	stats := p
	stats.Sorting = append([]sorting.Sort(nil), p.Sorting...)

	return FetchPlan{Projects: projects, Statistics: stats}
}
