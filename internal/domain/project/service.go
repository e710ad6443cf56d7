package project

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"projectview/internal/domain"
)

type Service interface {
	ListWithStatistics(ctx context.Context, p ListParams) (View, error)
}

type service struct {
	source              Source
	events              domain.EventBus
	log                 *zap.Logger
	allProjectsPageSize int
}

func NewService(source Source, events domain.EventBus, log *zap.Logger, allProjectsPageSize int) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		source:              source,
		events:              events,
		log:                 log,
		allProjectsPageSize: allProjectsPageSize,
	}
}

func (s *service) ListWithStatistics(ctx context.Context, p ListParams) (View, error) {
	mode := ClassifySortMode(p.Sorting)
	plan := PlanFetch(p, mode, s.allProjectsPageSize)

	var (
		basic, stats       *Snapshot
		basicErr, statsErr error
	)

	// Each fetch records its own failure so one source going away never
	// cancels the other.
	var g errgroup.Group
	g.Go(func() error {
		basic, basicErr = s.source.ListProjects(ctx, plan.Projects)
		return nil
	})
	g.Go(func() error {
		stats, statsErr = s.source.ListProjectStatistics(ctx, plan.Statistics)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return View{}, err
	}

	var de *domain.DomainError
	if basicErr != nil && errors.As(basicErr, &de) {
		return View{}, basicErr
	}
	// Under metrics sorting the statistics snapshot decides order and paging.
	if mode == SortModeMetrics && statsErr != nil && errors.As(statsErr, &de) {
		return View{}, statsErr
	}

	if statsErr != nil {
		s.log.Warn("project statistics unavailable",
			zap.String("workspace", p.WorkspaceName),
			zap.Error(statsErr),
		)
		stats = nil
	}

	view := View{}
	if basicErr != nil {
		s.log.Error("projects unavailable",
			zap.String("workspace", p.WorkspaceName),
			zap.Error(basicErr),
		)
		basic = nil
		view.Pending = true
	}

	// Without statistics the all-projects snapshot fetched for a metrics
	// sort matches neither the requested order nor its paging.
	if mode == SortModeMetrics && stats == nil {
		basic = nil
		view.Pending = true
	}

	view.Data = Merge(basic, stats, mode)

	if mode == SortModeMetrics && basic != nil && basic.Total > len(basic.Content) {
		view.NamesIncomplete = true
		s.log.Warn("project names truncated under metrics sorting",
			zap.String("workspace", p.WorkspaceName),
			zap.Int("projects_total", basic.Total),
			zap.Int("projects_fetched", len(basic.Content)),
		)
	}

	if s.events != nil {
		s.events.Publish(ctx, domain.Event{
			Type:      domain.EventProjectsListed,
			Workspace: p.WorkspaceName,
			Payload: map[string]any{
				"sort_mode": mode.String(),
				"page":      p.Page,
				"returned":  len(view.Data.Content),
				"total":     view.Data.Total,
				"pending":   view.Pending,
			},
		})
	}

	return view, nil
}
