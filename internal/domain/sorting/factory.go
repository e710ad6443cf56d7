package sorting

import (
	"strings"

	"projectview/internal/domain"
)

const (
	FieldID                    = "id"
	FieldName                  = "name"
	FieldLastUpdatedAt         = "last_updated_at"
	FieldCreatedAt             = "created_at"
	FieldLastUpdatedTraceAt    = "last_updated_trace_at"
	FieldDuration              = "duration"
	FieldTotalEstimatedCostSum = "total_estimated_cost_sum"
)

// Factory lists the fields an entity can be sorted by. Entries ending in
// "*" match by prefix.
type Factory struct {
	Entity string
	Fields []string
}

var Projects = Factory{
	Entity: "projects",
	Fields: []string{
		FieldID,
		FieldName,
		FieldLastUpdatedAt,
		FieldCreatedAt,
		FieldLastUpdatedTraceAt,
		FieldDuration + "*",
		FieldTotalEstimatedCostSum,
	},
}

func (f Factory) Sortable(field string) bool {
	for _, allowed := range f.Fields {
		if prefix, ok := strings.CutSuffix(allowed, "*"); ok {
			if strings.HasPrefix(field, prefix) {
				return true
			}
			continue
		}
		if field == allowed {
			return true
		}
	}
	return false
}

func (f Factory) Validate(sorts []Sort) error {
	for _, s := range sorts {
		if !f.Sortable(s.Field) {
			return domain.BadRequest("%s cannot be sorted by %q", f.Entity, s.Field)
		}
	}
	return nil
}
