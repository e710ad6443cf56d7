package queue

import (
	"encoding/json"
	"strings"

	"projectview/internal/domain"
)

type Filter struct {
	ID       string `json:"id,omitempty"`
	Field    string `json:"field"`
	Type     string `json:"type,omitempty"`
	Operator string `json:"operator"`
	Key      string `json:"key,omitempty"`
	Value    any    `json:"value"`
}

// ParseFilters decodes the JSON filter list of a tab and rejects filters on
// columns the tab does not offer.
func ParseFilters(raw string, columns []Column) ([]Filter, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []Filter{}, nil
	}

	var filters []Filter
	if err := json.Unmarshal([]byte(raw), &filters); err != nil {
		return nil, domain.BadRequest("invalid filters: %v", err)
	}

	allowed := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		allowed[c.ID] = struct{}{}
	}

	for _, f := range filters {
		if _, ok := allowed[f.Field]; !ok {
			return nil, domain.BadRequest("filtering by %q is not supported", f.Field)
		}
		if f.Operator == "" {
			return nil, domain.BadRequest("filter on %q has no operator", f.Field)
		}
	}

	if filters == nil {
		filters = []Filter{}
	}
	return filters, nil
}

func EncodeFilters(filters []Filter) string {
	if len(filters) == 0 {
		return ""
	}
	b, err := json.Marshal(filters)
	if err != nil {
		return ""
	}
	return string(b)
}
