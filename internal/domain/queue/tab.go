package queue

import "time"

type ColumnType string

const ColumnTypeString ColumnType = "string"

type RowHeight string

const (
	RowHeightSmall  RowHeight = "small"
	RowHeightMedium RowHeight = "medium"
	RowHeightLarge  RowHeight = "large"
)

func (h RowHeight) Valid() bool {
	switch h {
	case RowHeightSmall, RowHeightMedium, RowHeightLarge:
		return true
	}
	return false
}

const (
	ColumnIDID      = "id"
	ColumnIDSelect  = "select"
	ColumnIDActions = "actions"
)

type Column struct {
	ID    string
	Label string
	Size  int
	Type  ColumnType
	// FieldType tells the cell renderer which payload it shows.
	FieldType string
}

type ColumnPinning struct {
	Left  []string
	Right []string
}

// TabConfig describes one queue items table: which columns it offers, how
// its state is named in the query string and under which keys its view
// preferences are stored.
type TabConfig struct {
	Scope            Scope
	QueryPrefix      string
	PreferencePrefix string
	Columns          []Column
	DefaultSelected  []string
	Pinning          ColumnPinning
	DefaultPageSize  int
	DefaultRowHeight RowHeight
	RefetchInterval  time.Duration
	SearchHint       string
}

const refetchInterval = 30 * time.Second

var defaultPinning = ColumnPinning{
	Left:  []string{ColumnIDSelect, ColumnIDID},
	Right: []string{ColumnIDActions},
}

var TraceTab = TabConfig{
	Scope:            ScopeTrace,
	QueryPrefix:      "trace_",
	PreferencePrefix: "queue-trace-",
	Columns: []Column{
		{ID: "name", Label: "Name", Size: 200, Type: ColumnTypeString},
		{ID: "input", Label: "Input", Size: 400, Type: ColumnTypeString, FieldType: "input"},
		{ID: "output", Label: "Output", Size: 400, Type: ColumnTypeString, FieldType: "output"},
	},
	DefaultSelected:  []string{"name", "input", "output"},
	Pinning:          defaultPinning,
	DefaultPageSize:  100,
	DefaultRowHeight: RowHeightSmall,
	RefetchInterval:  refetchInterval,
	SearchHint:       "Search by ID",
}

var ThreadTab = TabConfig{
	Scope:            ScopeThread,
	QueryPrefix:      "thread_",
	PreferencePrefix: "queue-thread-",
	Columns: []Column{
		{ID: "first_message", Label: "First message", Size: 400, Type: ColumnTypeString, FieldType: "input"},
		{ID: "last_message", Label: "Last message", Size: 400, Type: ColumnTypeString, FieldType: "output"},
	},
	DefaultSelected:  []string{"first_message", "last_message"},
	Pinning:          defaultPinning,
	DefaultPageSize:  100,
	DefaultRowHeight: RowHeightSmall,
	RefetchInterval:  refetchInterval,
	SearchHint:       "Search by ID",
}

func TabFor(scope Scope) (TabConfig, bool) {
	switch scope {
	case ScopeTrace:
		return TraceTab, true
	case ScopeThread:
		return ThreadTab, true
	}
	return TabConfig{}, false
}

// FilterColumns are the columns a tab can be filtered by: the ID plus every
// data column.
func (c TabConfig) FilterColumns() []Column {
	res := make([]Column, 0, len(c.Columns)+1)
	res = append(res, Column{ID: ColumnIDID, Label: "ID", Type: ColumnTypeString})
	return append(res, c.Columns...)
}

// Query parameter names. Page size is shared by both tabs.
func (c TabConfig) SearchParam() string  { return c.QueryPrefix + "search" }
func (c TabConfig) PageParam() string    { return c.QueryPrefix + "page" }
func (c TabConfig) SizeParam() string    { return "size" }
func (c TabConfig) HeightParam() string  { return c.QueryPrefix + "height" }
func (c TabConfig) FiltersParam() string { return c.QueryPrefix + "filters" }
func (c TabConfig) SortingParam() string { return c.QueryPrefix + "sorting" }

// Preference keys.
func (c TabConfig) SizeKey() string            { return c.PreferencePrefix + "pagination-size" }
func (c TabConfig) HeightKey() string          { return c.PreferencePrefix + "row-height" }
func (c TabConfig) SortingKey() string         { return c.PreferencePrefix + "columns-sort" }
func (c TabConfig) SelectedColumnsKey() string { return c.PreferencePrefix + "selected-columns" }
func (c TabConfig) ColumnsOrderKey() string    { return c.PreferencePrefix + "columns-order" }
func (c TabConfig) ColumnsWidthKey() string    { return c.PreferencePrefix + "columns-width" }

func (c TabConfig) PreferenceKeys() []string {
	return []string{
		c.SizeKey(),
		c.HeightKey(),
		c.SortingKey(),
		c.SelectedColumnsKey(),
		c.ColumnsOrderKey(),
		c.ColumnsWidthKey(),
	}
}
