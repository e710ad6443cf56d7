package preference_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"projectview/internal/domain"
	"projectview/internal/domain/preference"
	"projectview/internal/domain/sorting"
)

type uowStub struct {
	calls     int
	commitErr error
}

func (u *uowStub) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	u.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return u.commitErr
}

type eventBusFake struct{ events []domain.Event }

func (e *eventBusFake) Publish(ctx context.Context, ev domain.Event) { e.events = append(e.events, ev) }

type repoFake struct {
	items   map[string]preference.Preference
	failKey string
}

func newRepoFake() *repoFake { return &repoFake{items: map[string]preference.Preference{}} }

func id(ws, key string) string { return ws + "/" + key }

func (r *repoFake) Get(ctx context.Context, workspace, key string) (preference.Preference, error) {
	p, ok := r.items[id(workspace, key)]
	if !ok {
		return preference.Preference{}, domain.NotFound("preference not found")
	}
	return p, nil
}

func (r *repoFake) GetMany(ctx context.Context, workspace string, keys []string) ([]preference.Preference, error) {
	var res []preference.Preference
	for _, k := range keys {
		if p, ok := r.items[id(workspace, k)]; ok {
			res = append(res, p)
		}
	}
	return res, nil
}

func (r *repoFake) Upsert(ctx context.Context, p preference.Preference) (preference.Preference, error) {
	if p.Key == r.failKey {
		return preference.Preference{}, errors.New("write failed")
	}
	p.UpdatedAt = time.Now().UTC()
	r.items[id(p.Workspace, p.Key)] = p
	return p, nil
}

func (r *repoFake) Delete(ctx context.Context, workspace, key string) error {
	if _, ok := r.items[id(workspace, key)]; !ok {
		return domain.NotFound("preference not found")
	}
	delete(r.items, id(workspace, key))
	return nil
}

func isDomainErr(err error, code domain.ErrorCode) bool {
	var de *domain.DomainError
	return errors.As(err, &de) && de.Code == code
}

func TestSaveAndGet(t *testing.T) {
	uow := &uowStub{}
	repo := newRepoFake()
	events := &eventBusFake{}
	svc := preference.NewService(uow, repo, events)

	saved, err := svc.Save(context.Background(), "ws", "queue-trace-selected-columns", json.RawMessage(`["name"]`))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.UpdatedAt.IsZero() {
		t.Fatalf("expected UpdatedAt to be set")
	}
	if uow.calls != 1 {
		t.Fatalf("expected save inside a transaction")
	}
	if len(events.events) != 1 || events.events[0].Type != "preference.saved" {
		t.Fatalf("unexpected events: %v", events.events)
	}

	got, err := svc.Get(context.Background(), "ws", "queue-trace-selected-columns")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got.Value) != `["name"]` {
		t.Fatalf("unexpected value %s", got.Value)
	}

	if _, err := svc.Get(context.Background(), "other", "queue-trace-selected-columns"); !isDomainErr(err, domain.ErrorCodeNotFound) {
		t.Fatalf("expected not found in another workspace, got %v", err)
	}
}

func TestSave_Validation(t *testing.T) {
	svc := preference.NewService(&uowStub{}, newRepoFake(), nil)

	if _, err := svc.Save(context.Background(), "ws", "Bad Key", json.RawMessage(`1`)); !isDomainErr(err, domain.ErrorCodeBadRequest) {
		t.Fatalf("expected bad request for key, got %v", err)
	}
	if _, err := svc.Save(context.Background(), "ws", "size", json.RawMessage(`{`)); !isDomainErr(err, domain.ErrorCodeBadRequest) {
		t.Fatalf("expected bad request for value, got %v", err)
	}
}

func TestSaveMany_StopsOnError(t *testing.T) {
	repo := newRepoFake()
	repo.failKey = "b"
	events := &eventBusFake{}
	svc := preference.NewService(&uowStub{}, repo, events)

	err := svc.SaveMany(context.Background(), "ws", preference.Values{
		"a": json.RawMessage(`1`),
		"b": json.RawMessage(`2`),
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(events.events) != 0 {
		t.Fatalf("rolled back writes must not publish, got %+v", events.events)
	}
}

func TestSave_CommitFailurePublishesNothing(t *testing.T) {
	commitErr := errors.New("commit failed")
	events := &eventBusFake{}
	svc := preference.NewService(&uowStub{commitErr: commitErr}, newRepoFake(), events)

	if _, err := svc.Save(context.Background(), "ws", "size", json.RawMessage(`50`)); !errors.Is(err, commitErr) {
		t.Fatalf("expected commit error, got %v", err)
	}
	if err := svc.SaveMany(context.Background(), "ws", preference.Values{"size": json.RawMessage(`50`)}); !errors.Is(err, commitErr) {
		t.Fatalf("expected commit error, got %v", err)
	}
	if len(events.events) != 0 {
		t.Fatalf("expected no events, got %+v", events.events)
	}
}

func TestDelete(t *testing.T) {
	repo := newRepoFake()
	svc := preference.NewService(&uowStub{}, repo, nil)

	if err := svc.Delete(context.Background(), "ws", "size"); !isDomainErr(err, domain.ErrorCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Save(context.Background(), "ws", "size", json.RawMessage(`50`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := svc.Delete(context.Background(), "ws", "size"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestLoadAndTypedValues(t *testing.T) {
	repo := newRepoFake()
	svc := preference.NewService(&uowStub{}, repo, nil)
	ctx := context.Background()

	must := func(key, raw string) {
		t.Helper()
		if _, err := svc.Save(ctx, "ws", key, json.RawMessage(raw)); err != nil {
			t.Fatalf("Save %s: %v", key, err)
		}
	}
	must("size", `50`)
	must("height", `"large"`)
	must("order", `["output","name"]`)
	must("widths", `{"name":320}`)
	must("sort", `[{"id":"name","desc":true}]`)
	must("broken", `"not-a-number"`)

	v, err := svc.Load(ctx, "ws", "size", "height", "order", "widths", "sort", "broken", "missing")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if v.Int("size", 100) != 50 {
		t.Fatalf("unexpected size %d", v.Int("size", 100))
	}
	if v.Int("broken", 100) != 100 || v.Int("missing", 100) != 100 {
		t.Fatalf("expected default for broken/missing ints")
	}
	if v.String("height", "small") != "large" {
		t.Fatalf("unexpected height")
	}
	if got := v.Strings("order", nil); len(got) != 2 || got[0] != "output" {
		t.Fatalf("unexpected order %v", got)
	}
	if got := v.Strings("missing", []string{"x"}); len(got) != 1 || got[0] != "x" {
		t.Fatalf("expected default strings, got %v", got)
	}
	if v.Widths("widths")["name"] != 320 || len(v.Widths("missing")) != 0 {
		t.Fatalf("unexpected widths")
	}
	if got := v.Sorting("sort"); len(got) != 1 || got[0].Direction != sorting.DESC {
		t.Fatalf("unexpected sorting %v", got)
	}
}
