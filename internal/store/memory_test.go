package store

import (
	"context"
	"testing"
	"time"

	"campus-connect/internal/model"

	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func newTestEvent(campusID uint, name, programType string, dateTime time.Time) model.Event {
	return model.Event{
		Name:        name,
		ProgramType: programType,
		Mode:        model.ModeOffline,
		Rating:      1,
		DateTime:    dateTime,
		CampusID:    campusID,
		CreatedBy:   1,
	}
}

func TestCreateEventAssignsSequentialIDs(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	first := newTestEvent(1, "Go Meetup", model.ProgramTalk, mustDate(t, "2025-03-01T10:00:00Z"))
	second := newTestEvent(1, "Rust Meetup", model.ProgramTalk, mustDate(t, "2025-04-01T10:00:00Z"))

	require.NoError(t, s.CreateEvent(ctx, &first))
	require.NoError(t, s.CreateEvent(ctx, &second))

	require.Equal(t, uint(1), first.ID)
	require.Equal(t, uint(2), second.ID)
	require.False(t, first.CreatedAt.IsZero())
	require.NotNil(t, first.Images)
}

func TestGetEventsByCampusSortedByDateDescending(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	older := newTestEvent(1, "January Talk", model.ProgramTalk, mustDate(t, "2025-01-15T18:00:00Z"))
	newest := newTestEvent(1, "March Hackathon", model.ProgramHackathon, mustDate(t, "2025-03-20T09:00:00Z"))
	middle := newTestEvent(1, "February Workshop", model.ProgramWorkshop, mustDate(t, "2025-02-10T14:00:00Z"))
	otherCampus := newTestEvent(2, "Elsewhere", model.ProgramTalk, mustDate(t, "2025-02-01T10:00:00Z"))

	for _, e := range []*model.Event{&older, &newest, &middle, &otherCampus} {
		require.NoError(t, s.CreateEvent(ctx, e))
	}

	events, err := s.GetEventsByCampus(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.Equal(t, "March Hackathon", events[0].Name)
	require.Equal(t, "February Workshop", events[1].Name)
	require.Equal(t, "January Talk", events[2].Name)
}

func TestGetEventsInDateRangeIsInclusive(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	start := mustDate(t, "2025-03-01T09:00:00Z")
	end := mustDate(t, "2025-03-01T13:00:00Z")

	onStart := newTestEvent(1, "At Start", model.ProgramTalk, start)
	onEnd := newTestEvent(1, "At End", model.ProgramTalk, end)
	inside := newTestEvent(1, "Inside", model.ProgramTalk, mustDate(t, "2025-03-01T11:00:00Z"))
	before := newTestEvent(1, "Before", model.ProgramTalk, mustDate(t, "2025-03-01T08:59:00Z"))
	after := newTestEvent(1, "After", model.ProgramTalk, mustDate(t, "2025-03-01T13:01:00Z"))

	for _, e := range []*model.Event{&onStart, &onEnd, &inside, &before, &after} {
		require.NoError(t, s.CreateEvent(ctx, e))
	}

	events, err := s.GetEventsInDateRange(ctx, 1, start, end)
	require.NoError(t, err)
	require.Len(t, events, 3)
	for _, e := range events {
		require.NotEqual(t, "Before", e.Name)
		require.NotEqual(t, "After", e.Name)
	}
}

func TestUpdateEventMergesOnlyProvidedFields(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	end := mustDate(t, "2025-03-01T16:00:00Z")
	event := newTestEvent(1, "Cloud Workshop", model.ProgramWorkshop, mustDate(t, "2025-03-01T14:00:00Z"))
	event.Description = "Hands-on Kubernetes intro"
	event.ParticipantCount = 40
	event.Expense = 1200.50
	event.EndDateTime = &end
	event.Images = model.ImageList{"https://img.example.com/a.png"}
	require.NoError(t, s.CreateEvent(ctx, &event))

	rating := 5
	updated, err := s.UpdateEvent(ctx, event.ID, EventUpdate{Rating: &rating})
	require.NoError(t, err)

	require.Equal(t, 5, updated.Rating)
	require.Equal(t, event.Name, updated.Name)
	require.Equal(t, event.Description, updated.Description)
	require.Equal(t, event.ProgramType, updated.ProgramType)
	require.Equal(t, event.Mode, updated.Mode)
	require.Equal(t, event.ParticipantCount, updated.ParticipantCount)
	require.Equal(t, event.Expense, updated.Expense)
	require.True(t, event.DateTime.Equal(updated.DateTime))
	require.NotNil(t, updated.EndDateTime)
	require.True(t, end.Equal(*updated.EndDateTime))
	require.Equal(t, event.Images, updated.Images)
	require.Equal(t, event.CampusID, updated.CampusID)
}

func TestUpdateEventMissingIDIsNotFound(t *testing.T) {
	s := NewMemStore()

	name := "Renamed"
	_, err := s.UpdateEvent(context.Background(), 42, EventUpdate{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteEventReportsExistence(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	event := newTestEvent(1, "One Shot", model.ProgramTalk, mustDate(t, "2025-05-01T10:00:00Z"))
	require.NoError(t, s.CreateEvent(ctx, &event))

	deleted, err := s.DeleteEvent(ctx, event.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	// Deleting a missing id is not an error, just a false.
	deleted, err = s.DeleteEvent(ctx, event.ID)
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestEventTypeDistributionCountsPerType(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	dates := []string{
		"2025-01-10T10:00:00Z", "2025-02-10T10:00:00Z", "2025-03-10T10:00:00Z",
		"2025-04-10T10:00:00Z", "2025-05-10T10:00:00Z",
	}
	types := []string{
		model.ProgramWorkshop, model.ProgramWorkshop, model.ProgramWorkshop,
		model.ProgramTalk, model.ProgramHackathon,
	}
	for i := range types {
		e := newTestEvent(1, "Event", types[i], mustDate(t, dates[i]))
		require.NoError(t, s.CreateEvent(ctx, &e))
	}

	distribution, err := s.EventTypeDistribution(ctx, 1)
	require.NoError(t, err)

	counts := make(map[string]int, len(distribution))
	for _, bucket := range distribution {
		counts[bucket.Type] = bucket.Count
	}
	require.Equal(t, map[string]int{
		model.ProgramWorkshop:  3,
		model.ProgramTalk:      1,
		model.ProgramHackathon: 1,
	}, counts)
	// Largest bucket first.
	require.Equal(t, model.ProgramWorkshop, distribution[0].Type)
}

func TestMonthlyParticipationOmitsEmptyMonths(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	march1 := newTestEvent(1, "March A", model.ProgramTalk, mustDate(t, "2025-03-05T10:00:00Z"))
	march1.ParticipantCount = 30
	march2 := newTestEvent(1, "March B", model.ProgramWorkshop, mustDate(t, "2025-03-20T10:00:00Z"))
	march2.ParticipantCount = 20
	june := newTestEvent(1, "June", model.ProgramHackathon, mustDate(t, "2025-06-12T10:00:00Z"))
	june.ParticipantCount = 100
	lastYear := newTestEvent(1, "Old", model.ProgramTalk, mustDate(t, "2024-03-05T10:00:00Z"))
	lastYear.ParticipantCount = 500

	for _, e := range []*model.Event{&march1, &march2, &june, &lastYear} {
		require.NoError(t, s.CreateEvent(ctx, e))
	}

	participation, err := s.MonthlyParticipation(ctx, 1, 2025)
	require.NoError(t, err)
	require.Equal(t, []MonthParticipation{
		{Month: "March", Participants: 50},
		{Month: "June", Participants: 100},
	}, participation)
}

func TestMonthlyParticipationEmptyYearReturnsEmptyList(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	e := newTestEvent(1, "Somewhen", model.ProgramTalk, mustDate(t, "2025-03-05T10:00:00Z"))
	require.NoError(t, s.CreateEvent(ctx, &e))

	participation, err := s.MonthlyParticipation(ctx, 1, 1999)
	require.NoError(t, err)
	require.Empty(t, participation)
	require.NotNil(t, participation)
}

func TestTopRatedEventsTruncatesToLimit(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	ratings := []int{3, 5, 1, 4, 2}
	for i, rating := range ratings {
		e := newTestEvent(1, "Event", model.ProgramTalk, mustDate(t, "2025-03-05T10:00:00Z").Add(time.Duration(i)*24*time.Hour))
		e.Rating = rating
		require.NoError(t, s.CreateEvent(ctx, &e))
	}

	top, err := s.TopRatedEvents(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	require.Equal(t, 5, top[0].Rating)
	require.Equal(t, 4, top[1].Rating)
	require.Equal(t, 3, top[2].Rating)
}

func TestGetUserByEmailIsCaseInsensitive(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	user := model.User{Email: "lead@techuniversity.edu", Password: "hash", Name: "Lead"}
	require.NoError(t, s.CreateUser(ctx, &user))

	found, err := s.GetUserByEmail(ctx, "Lead@TechUniversity.edu")
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)

	_, err = s.GetUserByEmail(ctx, "nobody@techuniversity.edu")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateCampusMergesOnlyProvidedFields(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	campus := model.Campus{Name: "North Campus", Description: "Main site", MemberCount: 300}
	require.NoError(t, s.CreateCampus(ctx, &campus))

	count := 450
	updated, err := s.UpdateCampus(ctx, campus.ID, CampusUpdate{MemberCount: &count})
	require.NoError(t, err)
	require.Equal(t, 450, updated.MemberCount)
	require.Equal(t, "North Campus", updated.Name)
	require.Equal(t, "Main site", updated.Description)
}

func TestGetChatHistoryNewestFirstWithLimit(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		chat := model.ChatSession{UserID: 1, Message: "q", Response: "a"}
		require.NoError(t, s.CreateChatSession(ctx, &chat))
	}
	other := model.ChatSession{UserID: 2, Message: "q", Response: "a"}
	require.NoError(t, s.CreateChatSession(ctx, &other))

	history, err := s.GetChatHistory(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, history, 3)
	// Ties on CreatedAt fall back to id descending, so the latest session
	// leads even when the clock does not advance between inserts.
	require.Equal(t, uint(5), history[0].ID)
	require.Equal(t, uint(4), history[1].ID)
	require.Equal(t, uint(3), history[2].ID)
}
