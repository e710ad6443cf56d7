package project

import (
	"strings"

	"projectview/internal/domain/sorting"
)

type SortMode int

const (
	SortModeBasic SortMode = iota
	SortModeMetrics
)

func (m SortMode) String() string {
	if m == SortModeMetrics {
		return "metrics"
	}
	return "basic"
}

// IsMetricsField reports whether a sort field can only be served by the
// statistics listing.
func IsMetricsField(field string) bool {
	return strings.HasPrefix(field, sorting.FieldDuration) ||
		field == sorting.FieldTotalEstimatedCostSum
}

func ClassifySortMode(sorts []sorting.Sort) SortMode {
	for _, s := range sorts {
		if IsMetricsField(s.Field) {
			return SortModeMetrics
		}
	}
	return SortModeBasic
}

func IsMetricsSorting(sorts []sorting.Sort) bool {
	return ClassifySortMode(sorts) == SortModeMetrics
}
