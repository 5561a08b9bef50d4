package event

import (
	"context"
	"testing"
	"time"

	"campus-connect/internal/global/database"
	"campus-connect/internal/global/jwt"
	"campus-connect/internal/global/response"
	"campus-connect/internal/model"
	"campus-connect/internal/store"
	"campus-connect/test"

	"github.com/stretchr/testify/require"
)

func setupEventTest(t *testing.T) *store.MemStore {
	t.Helper()
	s := store.NewMemStore()
	database.Store = s
	(&ModuleEvent{}).Init()
	return s
}

func seedEvent(t *testing.T, s *store.MemStore, campusID uint, start string, end *string) model.Event {
	t.Helper()
	event := model.Event{
		Name:        "Seeded",
		ProgramType: model.ProgramTalk,
		Mode:        model.ModeOffline,
		Rating:      1,
		DateTime:    mustTime(t, start),
		CampusID:    campusID,
		CreatedBy:   1,
	}
	if end != nil {
		parsed := mustTime(t, *end)
		event.EndDateTime = &parsed
	}
	require.NoError(t, s.CreateEvent(context.Background(), &event))
	return event
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

// An event at 10:00 without an end runs until 12:00, so its padded window is
// [09:00, 13:00]. Proposals inside that window are rejected, the first slot
// outside it is accepted.
func TestFindConflictsPaddedWindow(t *testing.T) {
	s := setupEventTest(t)
	existing := seedEvent(t, s, 1, "2025-03-01T10:00:00Z", nil)
	ctx := context.Background()

	conflicts, err := findConflicts(ctx, 1, mustTime(t, "2025-03-01T12:30:00Z"), nil, 0)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	require.Equal(t, existing.ID, conflicts[0].ID)

	conflicts, err = findConflicts(ctx, 1, mustTime(t, "2025-03-01T13:30:00Z"), nil, 0)
	require.NoError(t, err)
	require.Empty(t, conflicts)
}

func TestFindConflictsBoundaryIsExclusive(t *testing.T) {
	s := setupEventTest(t)
	seedEvent(t, s, 1, "2025-03-01T10:00:00Z", nil)

	// Exactly one hour after the effective end is the first free slot.
	conflicts, err := findConflicts(context.Background(), 1, mustTime(t, "2025-03-01T13:00:00Z"), nil, 0)
	require.NoError(t, err)
	require.Empty(t, conflicts)
}

func TestFindConflictsCandidateBeforeExisting(t *testing.T) {
	s := setupEventTest(t)
	seedEvent(t, s, 1, "2025-03-01T10:00:00Z", nil)
	ctx := context.Background()

	// Ends at 09:30, only half an hour before the existing start.
	tooClose := mustTime(t, "2025-03-01T09:30:00Z")
	conflicts, err := findConflicts(ctx, 1, mustTime(t, "2025-03-01T07:00:00Z"), &tooClose, 0)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)

	// Ends at 08:30, a comfortable ninety minutes ahead.
	clear := mustTime(t, "2025-03-01T08:30:00Z")
	conflicts, err = findConflicts(ctx, 1, mustTime(t, "2025-03-01T07:00:00Z"), &clear, 0)
	require.NoError(t, err)
	require.Empty(t, conflicts)
}

func TestFindConflictsScopedToCampus(t *testing.T) {
	s := setupEventTest(t)
	seedEvent(t, s, 2, "2025-03-01T10:00:00Z", nil)

	conflicts, err := findConflicts(context.Background(), 1, mustTime(t, "2025-03-01T10:30:00Z"), nil, 0)
	require.NoError(t, err)
	require.Empty(t, conflicts)
}

func TestFindConflictsExcludesRescheduledEvent(t *testing.T) {
	s := setupEventTest(t)
	existing := seedEvent(t, s, 1, "2025-03-01T10:00:00Z", nil)

	// Nudging the same event by half an hour must not collide with itself.
	conflicts, err := findConflicts(context.Background(), 1, mustTime(t, "2025-03-01T10:30:00Z"), nil, existing.ID)
	require.NoError(t, err)
	require.Empty(t, conflicts)
}

func leadPayload() *jwt.Claims {
	return &jwt.Claims{Payload: jwt.Payload{UserID: 1, Role: model.RoleCampusLead}}
}

func TestCreateEventRejectsConflictingSlot(t *testing.T) {
	setupEventTest(t)

	first := test.DoAuthedRequest(t, CreateEvent, leadPayload(), CreateEventReq{
		Name:        "Spring Hackathon",
		ProgramType: model.ProgramHackathon,
		Mode:        model.ModeOffline,
		DateTime:    "2025-03-01T10:00:00Z",
		CampusID:    1,
	})
	test.CreatedOK(t, first)

	second := test.DoAuthedRequest(t, CreateEvent, leadPayload(), CreateEventReq{
		Name:        "Overlapping Talk",
		ProgramType: model.ProgramTalk,
		Mode:        model.ModeOffline,
		DateTime:    "2025-03-01T12:30:00Z",
		CampusID:    1,
	})
	test.ErrorEqual(t, response.ErrEventConflict, second)

	third := test.DoAuthedRequest(t, CreateEvent, leadPayload(), CreateEventReq{
		Name:        "Evening Talk",
		ProgramType: model.ProgramTalk,
		Mode:        model.ModeOffline,
		DateTime:    "2025-03-01T13:30:00Z",
		CampusID:    1,
	})
	test.CreatedOK(t, third)
}

func TestCreateEventRejectsEndBeforeStart(t *testing.T) {
	setupEventTest(t)

	resp := test.DoAuthedRequest(t, CreateEvent, leadPayload(), CreateEventReq{
		Name:        "Backwards",
		ProgramType: model.ProgramTalk,
		Mode:        model.ModeOnline,
		DateTime:    "2025-03-01T10:00:00Z",
		EndDateTime: "2025-03-01T09:00:00Z",
		CampusID:    1,
	})
	test.CodeEqual(t, response.ErrInvalidRequest, resp)
}

func TestCreateEventAcceptsDatetimeLocalFormat(t *testing.T) {
	setupEventTest(t)

	resp := test.DoAuthedRequest(t, CreateEvent, leadPayload(), CreateEventReq{
		Name:        "Browser Form",
		ProgramType: model.ProgramWorkshop,
		Mode:        model.ModeHybrid,
		DateTime:    "2025-03-01T10:00",
		CampusID:    1,
	})
	test.CreatedOK(t, resp)
}
