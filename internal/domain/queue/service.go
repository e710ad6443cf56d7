package queue

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"projectview/internal/domain"
	"projectview/internal/domain/preference"
	"projectview/internal/domain/sorting"
)

const (
	noItemsText   = "There are no items in this queue yet"
	noResultsText = "No search results"
	maxPageSize   = 1000
)

// TabRequest carries the raw query string of an items tab. Only keys that
// were present in the request are set; names depend on the queue scope.
type TabRequest struct {
	WorkspaceName string
	QueueID       string
	Query         map[string]string
	Selected      []string
}

type TabView struct {
	Queue           AnnotationQueue
	Scope           Scope
	Rows            []domain.Record
	Total           int
	SortableBy      []string
	Page            int
	Size            int
	Search          string
	SearchHint      string
	Filters         []Filter
	Sorting         []sorting.Sort
	RowHeight       RowHeight
	Columns         []ColumnView
	FilterColumns   []Column
	Pinning         ColumnPinning
	EmptyState      bool
	NoDataText      string
	SelectedRows    []string
	RefetchInterval time.Duration
}

type Service interface {
	Get(ctx context.Context, workspace, id string) (AnnotationQueue, error)
	Items(ctx context.Context, req TabRequest) (TabView, error)
}

type service struct {
	source Source
	prefs  preference.Service
	events domain.EventBus
	log    *zap.Logger
}

func NewService(source Source, prefs preference.Service, events domain.EventBus, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		source: source,
		prefs:  prefs,
		events: events,
		log:    log,
	}
}

func (s *service) Get(ctx context.Context, workspace, id string) (AnnotationQueue, error) {
	q, err := s.source.GetAnnotationQueue(ctx, workspace, id)
	if err != nil {
		return AnnotationQueue{}, s.upstreamErr("annotation queue", err)
	}
	return q, nil
}

// tabState is the resolved view state of a tab before fetching.
type tabState struct {
	search  string
	page    int
	size    int
	height  RowHeight
	filters []Filter
	sorting []sorting.Sort

	// values taken from the query string that must be written back to
	// preferences
	sync preference.Values
}

func (s *service) Items(ctx context.Context, req TabRequest) (TabView, error) {
	q, err := s.Get(ctx, req.WorkspaceName, req.QueueID)
	if err != nil {
		return TabView{}, err
	}

	cfg, ok := TabFor(q.Scope)
	if !ok {
		return TabView{}, domain.BadRequest("annotation queue has unsupported scope %q", q.Scope)
	}

	prefs, err := s.prefs.Load(ctx, req.WorkspaceName, cfg.PreferenceKeys()...)
	if err != nil {
		return TabView{}, err
	}

	st, err := resolveState(cfg, req.Query, prefs)
	if err != nil {
		return TabView{}, err
	}

	if len(st.sync) > 0 {
		if err := s.prefs.SaveMany(ctx, req.WorkspaceName, st.sync); err != nil {
			return TabView{}, err
		}
	}

	params := ItemsParams{
		WorkspaceName: req.WorkspaceName,
		ProjectID:     q.ProjectID,
		Search:        st.search,
		Filters:       st.filters,
		Sorting:       st.sorting,
		Page:          st.page,
		Size:          st.size,
		Truncate:      true,
	}

	var page *ItemsPage
	switch cfg.Scope {
	case ScopeThread:
		page, err = s.source.ListThreads(ctx, params)
	default:
		page, err = s.source.ListTraces(ctx, params)
	}
	if err != nil {
		return TabView{}, s.upstreamErr(string(cfg.Scope)+"s", err)
	}

	rows := []domain.Record{}
	total := 0
	var sortableBy []string
	if page != nil {
		if page.Content != nil {
			rows = page.Content
		}
		total = page.Total
		sortableBy = page.SortableBy
	}
	if sortableBy == nil {
		sortableBy = []string{}
	}

	noFilters := st.search == "" && len(st.filters) == 0
	noDataText := noResultsText
	if noFilters {
		noDataText = noItemsText
	}

	view := TabView{
		Queue:      q,
		Scope:      cfg.Scope,
		Rows:       rows,
		Total:      total,
		SortableBy: sortableBy,
		Page:       st.page,
		Size:       st.size,
		Search:     st.search,
		SearchHint: cfg.SearchHint,
		Filters:    st.filters,
		Sorting:    st.sorting,
		RowHeight:  st.height,
		Columns: BuildColumns(
			cfg,
			prefs.Strings(cfg.ColumnsOrderKey(), nil),
			prefs.Strings(cfg.SelectedColumnsKey(), cfg.DefaultSelected),
			prefs.Widths(cfg.ColumnsWidthKey()),
			sortableBy,
		),
		FilterColumns:   cfg.FilterColumns(),
		Pinning:         cfg.Pinning,
		EmptyState:      noFilters && len(rows) == 0 && st.page == 1,
		NoDataText:      noDataText,
		SelectedRows:    selectRows(rows, req.Selected),
		RefetchInterval: cfg.RefetchInterval,
	}

	if s.events != nil {
		s.events.Publish(ctx, domain.Event{
			Type:      domain.EventQueueItemsListed,
			Workspace: req.WorkspaceName,
			Payload: map[string]any{
				"queue_id": q.ID,
				"scope":    string(cfg.Scope),
				"page":     st.page,
				"returned": len(rows),
				"total":    total,
			},
		})
	}

	return view, nil
}

// resolveState applies query string values over stored preferences over
// tab defaults.
func resolveState(cfg TabConfig, query map[string]string, prefs preference.Values) (tabState, error) {
	st := tabState{
		search:  strings.TrimSpace(query[cfg.SearchParam()]),
		page:    1,
		size:    prefs.Int(cfg.SizeKey(), cfg.DefaultPageSize),
		height:  RowHeight(prefs.String(cfg.HeightKey(), string(cfg.DefaultRowHeight))),
		sorting: prefs.Sorting(cfg.SortingKey()),
		sync:    preference.Values{},
	}
	if !st.height.Valid() {
		st.height = cfg.DefaultRowHeight
	}
	// stored values are writable through the preferences API
	st.size = min(st.size, maxPageSize)

	if raw, ok := query[cfg.PageParam()]; ok && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return tabState{}, domain.BadRequest("%s must be a positive integer", cfg.PageParam())
		}
		st.page = n
	}

	if raw, ok := query[cfg.SizeParam()]; ok && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPageSize {
			return tabState{}, domain.BadRequest("%s must be between 1 and %d", cfg.SizeParam(), maxPageSize)
		}
		if n != st.size {
			st.sync[cfg.SizeKey()] = mustJSON(n)
		}
		st.size = n
	}

	if raw, ok := query[cfg.HeightParam()]; ok && raw != "" {
		h := RowHeight(raw)
		if !h.Valid() {
			return tabState{}, domain.BadRequest("invalid %s %q", cfg.HeightParam(), raw)
		}
		if h != st.height {
			st.sync[cfg.HeightKey()] = mustJSON(string(h))
		}
		st.height = h
	}

	filters, err := ParseFilters(query[cfg.FiltersParam()], cfg.FilterColumns())
	if err != nil {
		return tabState{}, err
	}
	st.filters = filters

	if raw, ok := query[cfg.SortingParam()]; ok {
		sorts, err := sorting.Parse(raw)
		if err != nil {
			return tabState{}, err
		}
		encoded := sorting.Encode(sorts)
		if encoded == "" {
			encoded = "[]"
		}
		if encoded != sortingJSON(st.sorting) {
			st.sync[cfg.SortingKey()] = json.RawMessage(encoded)
		}
		st.sorting = sorts
	}

	return st, nil
}

func sortingJSON(sorts []sorting.Sort) string {
	if s := sorting.Encode(sorts); s != "" {
		return s
	}
	return "[]"
}

func mustJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

func selectRows(rows []domain.Record, selected []string) []string {
	res := []string{}
	if len(selected) == 0 {
		return res
	}
	want := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		want[id] = struct{}{}
	}
	for _, r := range rows {
		id := r.String("id")
		if _, ok := want[id]; ok {
			res = append(res, id)
		}
	}
	return res
}

func (s *service) upstreamErr(what string, err error) error {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	s.log.Error("backend request failed", zap.String("resource", what), zap.Error(err))
	return domain.Upstream(what + " unavailable")
}
