package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campus-connect/internal/global/database"
	"campus-connect/internal/global/response"
	"campus-connect/internal/model"
	"campus-connect/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func setupAnalyticsTest(t *testing.T) *store.MemStore {
	t.Helper()
	s := store.NewMemStore()
	database.Store = s
	(&ModuleAnalytics{}).Init()
	return s
}

func seedRatedEvent(t *testing.T, s *store.MemStore, programType string, rating, participants int, date string) {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, date)
	require.NoError(t, err)
	event := model.Event{
		Name:             "Seeded",
		ProgramType:      programType,
		Mode:             model.ModeOffline,
		Rating:           rating,
		ParticipantCount: participants,
		DateTime:         parsed,
		CampusID:         1,
		CreatedBy:        1,
	}
	require.NoError(t, s.CreateEvent(context.Background(), &event))
}

func doGet(t *testing.T, handler gin.HandlerFunc, campusID, query string) response.ResponseBody {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test"+query, nil)
	c.Params = gin.Params{{Key: "campusId", Value: campusID}}
	handler(c)

	var resp response.ResponseBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestEventTypeDistributionHandler(t *testing.T) {
	s := setupAnalyticsTest(t)
	seedRatedEvent(t, s, model.ProgramWorkshop, 4, 30, "2025-02-01T10:00:00Z")
	seedRatedEvent(t, s, model.ProgramWorkshop, 3, 25, "2025-03-01T10:00:00Z")
	seedRatedEvent(t, s, model.ProgramTalk, 5, 60, "2025-04-01T10:00:00Z")

	resp := doGet(t, EventTypeDistribution, "1", "")
	require.Equal(t, int32(200), resp.Code)

	var distribution []store.TypeCount
	require.NoError(t, json.Unmarshal(resp.Data, &distribution))
	require.Len(t, distribution, 2)
	require.Equal(t, store.TypeCount{Type: model.ProgramWorkshop, Count: 2}, distribution[0])
}

func TestMonthlyParticipationHandlerHonorsYear(t *testing.T) {
	s := setupAnalyticsTest(t)
	seedRatedEvent(t, s, model.ProgramTalk, 4, 50, "2025-03-01T10:00:00Z")
	seedRatedEvent(t, s, model.ProgramTalk, 4, 70, "2024-03-01T10:00:00Z")

	resp := doGet(t, MonthlyParticipation, "1", "?year=2024")
	require.Equal(t, int32(200), resp.Code)

	var participation []store.MonthParticipation
	require.NoError(t, json.Unmarshal(resp.Data, &participation))
	require.Equal(t, []store.MonthParticipation{{Month: "March", Participants: 70}}, participation)
}

func TestTopRatedHandlerDefaultsAndLimits(t *testing.T) {
	s := setupAnalyticsTest(t)
	for i, rating := range []int{2, 5, 3, 4, 1, 5} {
		seedRatedEvent(t, s, model.ProgramTalk, rating, 10,
			time.Date(2025, time.March, i+1, 10, 0, 0, 0, time.UTC).Format(time.RFC3339))
	}

	resp := doGet(t, TopRatedEvents, "1", "")
	var events []model.Event
	require.NoError(t, json.Unmarshal(resp.Data, &events))
	require.Len(t, events, DefaultTopRatedLimit)
	require.Equal(t, 5, events[0].Rating)

	resp = doGet(t, TopRatedEvents, "1", "?limit=2")
	events = nil
	require.NoError(t, json.Unmarshal(resp.Data, &events))
	require.Len(t, events, 2)
	require.Equal(t, 5, events[0].Rating)
	require.Equal(t, 5, events[1].Rating)
}

func TestAnalyticsRejectsBadCampusID(t *testing.T) {
	setupAnalyticsTest(t)

	resp := doGet(t, EventTypeDistribution, "abc", "")
	require.Equal(t, response.ErrInvalidRequest.Code, resp.Code)
}
