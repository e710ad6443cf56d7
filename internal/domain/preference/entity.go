package preference

import (
	"encoding/json"
	"time"

	"projectview/internal/domain/sorting"
)

// Preference is one persisted UI setting, e.g. the selected columns of a
// table. Values are opaque JSON.
type Preference struct {
	Workspace string
	Key       string
	Value     json.RawMessage
	UpdatedAt time.Time
}

// Values is a set of loaded preferences keyed by preference key. Typed
// accessors fall back to the given default when a key is missing or holds
// a value of the wrong shape.
type Values map[string]json.RawMessage

func (v Values) Int(key string, def int) int {
	var n int
	if !v.decode(key, &n) || n <= 0 {
		return def
	}
	return n
}

func (v Values) String(key, def string) string {
	var s string
	if !v.decode(key, &s) || s == "" {
		return def
	}
	return s
}

func (v Values) Strings(key string, def []string) []string {
	var list []string
	if !v.decode(key, &list) || list == nil {
		return append([]string(nil), def...)
	}
	return list
}

func (v Values) Widths(key string) map[string]int {
	var m map[string]int
	if !v.decode(key, &m) || m == nil {
		return map[string]int{}
	}
	return m
}

func (v Values) Sorting(key string) []sorting.Sort {
	raw, ok := v[key]
	if !ok {
		return nil
	}
	sorts, err := sorting.Parse(string(raw))
	if err != nil {
		return nil
	}
	return sorts
}

func (v Values) decode(key string, dst any) bool {
	raw, ok := v[key]
	if !ok || len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}
