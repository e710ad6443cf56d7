package handler

import (
	"projectview/internal/domain/preference"
	"projectview/internal/domain/project"
	"projectview/internal/domain/queue"

	"go.uber.org/zap"
)

type Handler struct {
	ProjectSvc    project.Service
	QueueSvc      queue.Service
	PreferenceSvc preference.Service
	Log           *zap.Logger
}

func New(
	projectSvc project.Service,
	queueSvc queue.Service,
	preferenceSvc preference.Service,
	log *zap.Logger,
) *Handler {
	return &Handler{
		ProjectSvc:    projectSvc,
		QueueSvc:      queueSvc,
		PreferenceSvc: preferenceSvc,
		Log:           log,
	}
}
