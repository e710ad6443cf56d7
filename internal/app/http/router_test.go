package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httpapi "projectview/internal/app/http"
	"projectview/internal/app/http/handler"
	"projectview/internal/domain"
	"projectview/internal/domain/preference"
	"projectview/internal/domain/project"
	"projectview/internal/domain/queue"
)

type projectSvcFake struct {
	got  project.ListParams
	view project.View
	err  error
}

func (f *projectSvcFake) ListWithStatistics(ctx context.Context, p project.ListParams) (project.View, error) {
	f.got = p
	return f.view, f.err
}

type queueSvcFake struct {
	req  queue.TabRequest
	view queue.TabView
	err  error
}

func (f *queueSvcFake) Get(ctx context.Context, workspace, id string) (queue.AnnotationQueue, error) {
	if id != "q1" {
		return queue.AnnotationQueue{}, domain.NotFound("annotation queue not found")
	}
	return queue.AnnotationQueue{ID: "q1", Name: "Feedback", Scope: queue.ScopeTrace}, nil
}

func (f *queueSvcFake) Items(ctx context.Context, req queue.TabRequest) (queue.TabView, error) {
	f.req = req
	return f.view, f.err
}

type prefSvcFake struct {
	values map[string]json.RawMessage
}

func (f *prefSvcFake) Get(ctx context.Context, workspace, key string) (preference.Preference, error) {
	v, ok := f.values[key]
	if !ok {
		return preference.Preference{}, domain.NotFound("preference not found")
	}
	return preference.Preference{Workspace: workspace, Key: key, Value: v}, nil
}

func (f *prefSvcFake) Load(ctx context.Context, workspace string, keys ...string) (preference.Values, error) {
	return preference.Values{}, nil
}

func (f *prefSvcFake) Save(ctx context.Context, workspace, key string, value json.RawMessage) (preference.Preference, error) {
	f.values[key] = value
	return preference.Preference{Workspace: workspace, Key: key, Value: value, UpdatedAt: time.Now()}, nil
}

func (f *prefSvcFake) SaveMany(ctx context.Context, workspace string, values preference.Values) error {
	return nil
}

func (f *prefSvcFake) Delete(ctx context.Context, workspace, key string) error {
	if _, ok := f.values[key]; !ok {
		return domain.NotFound("preference not found")
	}
	delete(f.values, key)
	return nil
}

type fixture struct {
	router   *gin.Engine
	projects *projectSvcFake
	queues   *queueSvcFake
	prefs    *prefSvcFake
}

func newFixture() fixture {
	gin.SetMode(gin.TestMode)
	f := fixture{
		projects: &projectSvcFake{},
		queues:   &queueSvcFake{},
		prefs:    &prefSvcFake{values: map[string]json.RawMessage{}},
	}
	h := handler.New(f.projects, f.queues, f.prefs, zap.NewNop())
	f.router = httpapi.NewRouter(h, zap.NewNop())
	return f
}

func (f fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	f := newFixture()
	w := f.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestProjectsList(t *testing.T) {
	f := newFixture()
	f.projects.view = project.View{
		Data: project.ResultPage{
			Content: []domain.Record{{"id": "p1", "name": "Alpha", "duration_p50": 90}},
			Total:   37,
			Page:    2,
			Size:    10,
		},
	}

	sortParam := url.QueryEscape(`[{"field":"duration.p50","direction":"DESC"}]`)
	w := f.do(http.MethodGet, "/v1/workspaces/ws/projects?search=al&page=2&size=10&sorting="+sortParam, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "ws", f.projects.got.WorkspaceName)
	assert.Equal(t, "al", f.projects.got.Search)
	assert.Equal(t, 2, f.projects.got.Page)
	require.Len(t, f.projects.got.Sorting, 1)
	assert.Equal(t, "duration.p50", f.projects.got.Sorting[0].Field)

	var resp struct {
		Data struct {
			Content []map[string]any `json:"content"`
			Total   int              `json:"total"`
			Page    int              `json:"page"`
			Size    int              `json:"size"`
		} `json:"data"`
		IsPending bool `json:"is_pending"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 37, resp.Data.Total)
	assert.Equal(t, 2, resp.Data.Page)
	assert.Equal(t, "Alpha", resp.Data.Content[0]["name"])
	assert.False(t, resp.IsPending)
}

func TestProjectsList_Defaults(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/v1/workspaces/ws/projects", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, f.projects.got.Page)
	assert.Equal(t, 10, f.projects.got.Size)
	assert.Contains(t, w.Body.String(), `"content":[]`)
}

func TestProjectsList_BadRequests(t *testing.T) {
	f := newFixture()

	for _, target := range []string{
		"/v1/workspaces/ws/projects?page=0",
		"/v1/workspaces/ws/projects?size=5000",
		"/v1/workspaces/ws/projects?size=abc",
		"/v1/workspaces/ws/projects?sorting=nope",
		"/v1/workspaces/ws/projects?sorting=" + url.QueryEscape(`[{"field":"description"}]`),
	} {
		w := f.do(http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Contains(t, w.Body.String(), "BAD_REQUEST", target)
	}
}

func TestProjectsList_ServiceErrors(t *testing.T) {
	f := newFixture()

	f.projects.err = domain.NotFound("projects not found")
	w := f.do(http.MethodGet, "/v1/workspaces/ws/projects", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	f.projects.err = assert.AnError
	w = f.do(http.MethodGet, "/v1/workspaces/ws/projects", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestAnnotationQueueGet(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/v1/workspaces/ws/annotation-queues/q1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"scope":"trace"`)

	w = f.do(http.MethodGet, "/v1/workspaces/ws/annotation-queues/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnnotationQueueItems(t *testing.T) {
	f := newFixture()
	f.queues.view = queue.TabView{
		Scope:      queue.ScopeTrace,
		Rows:       []domain.Record{{"id": "t1"}},
		Total:      1,
		SortableBy: []string{"id"},
		Page:       1,
		Size:       100,
		RowHeight:  queue.RowHeightSmall,
		Columns: []queue.ColumnView{
			{ID: "id", Label: "ID", Type: queue.ColumnTypeString, Sortable: true},
		},
		Pinning:         queue.TraceTab.Pinning,
		NoDataText:      "There are no items in this queue yet",
		SelectedRows:    []string{"t1"},
		RefetchInterval: 30 * time.Second,
	}

	w := f.do(http.MethodGet, "/v1/workspaces/ws/annotation-queues/q1/items?trace_search=x&size=100&selected=t1,t2&selected=t3", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "q1", f.queues.req.QueueID)
	assert.Equal(t, "x", f.queues.req.Query["trace_search"])
	assert.Equal(t, "100", f.queues.req.Query["size"])
	assert.Equal(t, []string{"t1", "t2", "t3"}, f.queues.req.Selected)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(30000), resp["refetch_interval_ms"])
	assert.Equal(t, "small", resp["row_height"])
	assert.Len(t, resp["columns"], 1)
}

func TestPreferences(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/v1/workspaces/ws/preferences/queue-trace-row-height", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(http.MethodPut, "/v1/workspaces/ws/preferences/queue-trace-row-height", `{"value":"large"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"value":"large"`)

	w = f.do(http.MethodGet, "/v1/workspaces/ws/preferences/queue-trace-row-height", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodPut, "/v1/workspaces/ws/preferences/queue-trace-row-height", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPut, "/v1/workspaces/ws/preferences/queue-trace-row-height", `nope`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodDelete, "/v1/workspaces/ws/preferences/queue-trace-row-height", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
