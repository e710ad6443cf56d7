package domain

import "context"

const (
	EventProjectsListed    = "projects.listed"
	EventQueueItemsListed  = "queue.items_listed"
	EventPreferenceSaved   = "preference.saved"
	EventPreferenceDeleted = "preference.deleted"
)

// Event is a fire-and-forget notification about something a service did.
// Workspace is set for every event; Payload carries the rest.
type Event struct {
	Type      string
	Workspace string
	Payload   map[string]any
}

type EventBus interface {
	Publish(ctx context.Context, e Event)
}
