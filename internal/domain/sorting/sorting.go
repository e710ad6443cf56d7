package sorting

import (
	"encoding/json"
	"strings"

	"projectview/internal/domain"
)

type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

type Sort struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// wireSort accepts both the backend form ({field, direction}) and the
// table widget form ({id, desc}).
type wireSort struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
	ID        string `json:"id"`
	Desc      *bool  `json:"desc"`
}

// Parse decodes a JSON sorting parameter. An empty string means no sorting.
func Parse(raw string) ([]Sort, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var items []wireSort
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, domain.BadRequest("invalid sorting: %v", err)
	}

	res := make([]Sort, 0, len(items))
	for _, it := range items {
		field := it.Field
		if field == "" {
			field = it.ID
		}
		if field == "" {
			return nil, domain.BadRequest("invalid sorting: field is required")
		}

		dir := ASC
		switch {
		case it.Direction != "":
			switch Direction(strings.ToUpper(it.Direction)) {
			case ASC:
			case DESC:
				dir = DESC
			default:
				return nil, domain.BadRequest("invalid sorting direction %q", it.Direction)
			}
		case it.Desc != nil && *it.Desc:
			dir = DESC
		}

		res = append(res, Sort{Field: field, Direction: dir})
	}

	return res, nil
}

// Encode renders sorting in the form the backend expects. Nil or empty
// sorting encodes to "".
func Encode(sorts []Sort) string {
	if len(sorts) == 0 {
		return ""
	}
	b, err := json.Marshal(sorts)
	if err != nil {
		return ""
	}
	return string(b)
}
