package analytics

import (
	"strconv"
	"time"

	"campus-connect/internal/global/cache"
	"campus-connect/internal/global/database"
	"campus-connect/internal/global/response"
	"campus-connect/internal/global/sentry/tracing"
	"campus-connect/internal/model"
	"campus-connect/internal/store"

	"github.com/gin-gonic/gin"
)

// DefaultTopRatedLimit is how many events the leaderboard shows when the
// client does not ask for a specific count.
const DefaultTopRatedLimit = 5

func parseCampusID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("campusId"), 10, 32)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("campusId must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

// EventTypeDistribution counts campus events per display category.
func EventTypeDistribution(c *gin.Context) {
	campusID, ok := parseCampusID(c)
	if !ok {
		return
	}

	ctx := tracing.ContextWithSpan(c)
	key := cache.AnalyticsKey(campusID, "event-types")

	var distribution []store.TypeCount
	if cache.GetJSON(ctx, key, &distribution) {
		response.Success(c, distribution)
		return
	}

	distribution, err := database.Store.EventTypeDistribution(ctx, campusID)
	if err != nil {
		log.Error("type distribution query failed", "error", err, "campus_id", campusID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	cache.SetJSON(ctx, key, distribution)
	response.Success(c, distribution)
}

// MonthlyParticipation sums participant counts per month of a year. Months
// without events are left out rather than zero-filled.
func MonthlyParticipation(c *gin.Context) {
	campusID, ok := parseCampusID(c)
	if !ok {
		return
	}

	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1970 || parsed > 9999 {
			response.Fail(c, response.ErrInvalidRequest.WithTips("year must be a four-digit year"))
			return
		}
		year = parsed
	}

	ctx := tracing.ContextWithSpan(c)
	key := cache.AnalyticsKey(campusID, "monthly-participation", year)

	var participation []store.MonthParticipation
	if cache.GetJSON(ctx, key, &participation) {
		response.Success(c, participation)
		return
	}

	participation, err := database.Store.MonthlyParticipation(ctx, campusID, year)
	if err != nil {
		log.Error("monthly participation query failed", "error", err, "campus_id", campusID, "year", year)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	cache.SetJSON(ctx, key, participation)
	response.Success(c, participation)
}

// TopRatedEvents returns the highest rated campus events, best first.
func TopRatedEvents(c *gin.Context) {
	campusID, ok := parseCampusID(c)
	if !ok {
		return
	}

	limit := DefaultTopRatedLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			response.Fail(c, response.ErrInvalidRequest.WithTips("limit must be between 1 and 100"))
			return
		}
		limit = parsed
	}

	ctx := tracing.ContextWithSpan(c)
	key := cache.AnalyticsKey(campusID, "top-rated", limit)

	var events []model.Event
	if cache.GetJSON(ctx, key, &events) {
		response.Success(c, events)
		return
	}

	events, err := database.Store.TopRatedEvents(ctx, campusID, limit)
	if err != nil {
		log.Error("top rated query failed", "error", err, "campus_id", campusID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	cache.SetJSON(ctx, key, events)
	response.Success(c, events)
}
