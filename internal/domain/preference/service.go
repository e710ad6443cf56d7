package preference

import (
	"context"
	"encoding/json"
	"regexp"
	"sort"

	"projectview/internal/domain"
)

const maxValueBytes = 64 << 10

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{0,127}$`)

type Service interface {
	Get(ctx context.Context, workspace, key string) (Preference, error)
	Load(ctx context.Context, workspace string, keys ...string) (Values, error)
	Save(ctx context.Context, workspace, key string, value json.RawMessage) (Preference, error)
	SaveMany(ctx context.Context, workspace string, values Values) error
	Delete(ctx context.Context, workspace, key string) error
}

type service struct {
	uow    domain.UnitOfWork
	repo   Repository
	events domain.EventBus
}

func NewService(uow domain.UnitOfWork, repo Repository, events domain.EventBus) Service {
	return &service{
		uow:    uow,
		repo:   repo,
		events: events,
	}
}

func (s *service) Get(ctx context.Context, workspace, key string) (Preference, error) {
	if err := validateKey(key); err != nil {
		return Preference{}, err
	}
	return s.repo.Get(ctx, workspace, key)
}

func (s *service) Load(ctx context.Context, workspace string, keys ...string) (Values, error) {
	prefs, err := s.repo.GetMany(ctx, workspace, keys)
	if err != nil {
		return nil, err
	}

	res := make(Values, len(prefs))
	for _, p := range prefs {
		res[p.Key] = p.Value
	}
	return res, nil
}

func (s *service) Save(ctx context.Context, workspace, key string, value json.RawMessage) (Preference, error) {
	if err := validateKey(key); err != nil {
		return Preference{}, err
	}
	if err := validateValue(value); err != nil {
		return Preference{}, err
	}

	var res Preference
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		saved, err := s.repo.Upsert(ctx, Preference{Workspace: workspace, Key: key, Value: value})
		if err != nil {
			return err
		}
		res = saved
		return nil
	})
	if err != nil {
		return Preference{}, err
	}

	s.publish(ctx, domain.EventPreferenceSaved, workspace, key)
	return res, nil
}

func (s *service) SaveMany(ctx context.Context, workspace string, values Values) error {
	if len(values) == 0 {
		return nil
	}

	keys := make([]string, 0, len(values))
	for k, v := range values {
		if err := validateKey(k); err != nil {
			return err
		}
		if err := validateValue(v); err != nil {
			return err
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		for _, k := range keys {
			if _, err := s.repo.Upsert(ctx, Preference{Workspace: workspace, Key: k, Value: values[k]}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// events only for committed writes
	for _, k := range keys {
		s.publish(ctx, domain.EventPreferenceSaved, workspace, k)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, workspace, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, workspace, key)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, domain.EventPreferenceDeleted, workspace, key)
	return nil
}

func (s *service) publish(ctx context.Context, typ, workspace, key string) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, domain.Event{
		Type:      typ,
		Workspace: workspace,
		Payload:   map[string]any{"key": key},
	})
}

func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return domain.BadRequest("invalid preference key %q", key)
	}
	return nil
}

func validateValue(value json.RawMessage) error {
	if len(value) == 0 || !json.Valid(value) {
		return domain.BadRequest("preference value must be valid JSON")
	}
	if len(value) > maxValueBytes {
		return domain.BadRequest("preference value exceeds %d bytes", maxValueBytes)
	}
	return nil
}
