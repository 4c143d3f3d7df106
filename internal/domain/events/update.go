package events

import (
	"strings"

	"github.com/eventlane/server/internal/domain/categories"
)

// applyUpdate merges the optional PATCH fields into the event and reports
// whether anything changed. Text fields containing only whitespace are
// ignored, matching PATCH semantics where absent and blank both mean "keep".
// The category, when requested, must already be resolved by the caller.
func applyUpdate(event *Event, params UpdateParams, category *categories.Category) bool {
	changed := false

	if params.Annotation != nil && strings.TrimSpace(*params.Annotation) != "" {
		event.Annotation = *params.Annotation
		changed = true
	}
	if category != nil {
		event.Category = *category
		changed = true
	}
	if params.Description != nil && strings.TrimSpace(*params.Description) != "" {
		event.Description = *params.Description
		changed = true
	}
	if params.Location != nil {
		event.Location = *params.Location
		changed = true
	}
	if params.ParticipantLimit != nil {
		event.ParticipantLimit = *params.ParticipantLimit
		changed = true
	}
	if params.Paid != nil {
		event.Paid = *params.Paid
		changed = true
	}
	if params.RequestModeration != nil {
		event.RequestModeration = *params.RequestModeration
		changed = true
	}
	if params.Title != nil && strings.TrimSpace(*params.Title) != "" {
		event.Title = *params.Title
		changed = true
	}

	return changed
}
