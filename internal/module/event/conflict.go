package event

import (
	"context"
	"sync"
	"time"

	"campus-connect/internal/global/database"
	"campus-connect/internal/model"
)

// conflictBuffer is the minimum gap required between two events on the same
// campus, so back-to-back bookings keep an hour for setup and teardown.
const conflictBuffer = time.Hour

// createMu serializes conflict check plus insert. Without it two concurrent
// creates could both pass the check and both land in the store.
var createMu sync.Mutex

// findConflicts returns the existing campus events that sit closer than
// conflictBuffer to the candidate slot [start, end]. An event without an
// explicit end is assumed to run two hours. excludeID skips the event being
// rescheduled so it never conflicts with itself.
func findConflicts(ctx context.Context, campusID uint, start time.Time, end *time.Time, excludeID uint) ([]model.Event, error) {
	effEnd := start.Add(model.DefaultEventDuration)
	if end != nil {
		effEnd = *end
	}

	// The range query keys on start times only, so probe back far enough to
	// pick up a default-duration event whose padded window still reaches the
	// candidate slot.
	probeStart := start.Add(-(conflictBuffer + model.DefaultEventDuration))
	probeEnd := effEnd.Add(conflictBuffer)
	candidates, err := database.Store.GetEventsInDateRange(ctx, campusID, probeStart, probeEnd)
	if err != nil {
		return nil, err
	}

	var conflicts []model.Event
	for _, existing := range candidates {
		if existing.ID == excludeID {
			continue
		}
		// Conflict when the gap between the two intervals is under an hour:
		// each event's padded window must not reach into the other's slot.
		if start.Before(existing.EffectiveEnd().Add(conflictBuffer)) &&
			existing.DateTime.Before(effEnd.Add(conflictBuffer)) {
			conflicts = append(conflicts, existing)
		}
	}
	return conflicts, nil
}
