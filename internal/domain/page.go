package domain

// Record is a JSON object returned by the backend. Fields the service does
// not interpret are carried through untouched.
type Record map[string]any

func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Clone returns a shallow copy. Nested values are shared and must not be
// mutated.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Page is one page of a paginated backend listing.
type Page[T any] struct {
	Content    []T
	Total      int
	Page       int
	Size       int
	SortableBy []string
}
