package event

import (
	"strconv"
	"time"

	"campus-connect/internal/global/cache"
	"campus-connect/internal/global/database"
	"campus-connect/internal/global/imagebed"
	"campus-connect/internal/global/jwt"
	"campus-connect/internal/global/response"
	"campus-connect/internal/global/sentry/tracing"
	"campus-connect/internal/model"
	"campus-connect/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// parseDateTime accepts RFC3339 or the datetime-local format browsers emit.
func parseDateTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		return time.Time{}, errors.Errorf("unparseable date-time %q", value)
	}
	return t, nil
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips(name+" must be a positive integer"))
		return 0, false
	}
	return uint(v), true
}

// ListCampusEvents returns every event of a campus, newest first.
func ListCampusEvents(c *gin.Context) {
	campusID, ok := parseUintParam(c, "campusId")
	if !ok {
		return
	}

	ctx := tracing.ContextWithSpan(c)
	events, err := database.Store.GetEventsByCampus(ctx, campusID)
	if err != nil {
		log.Error("listing campus events failed", "error", err, "campus_id", campusID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, events)
}

// ListEventsInRange returns campus events starting within [start, end],
// both bounds inclusive. Backs the calendar view.
func ListEventsInRange(c *gin.Context) {
	campusID, ok := parseUintParam(c, "campusId")
	if !ok {
		return
	}

	start, err := parseDateTime(c.Query("start"))
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("start must be a valid date-time"))
		return
	}
	end, err := parseDateTime(c.Query("end"))
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("end must be a valid date-time"))
		return
	}
	if end.Before(start) {
		response.Fail(c, response.ErrInvalidRequest.WithTips("end must not precede start"))
		return
	}

	ctx := tracing.ContextWithSpan(c)
	events, err := database.Store.GetEventsInDateRange(ctx, campusID, start, end)
	if err != nil {
		log.Error("range query failed", "error", err, "campus_id", campusID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, events)
}

// GetEvent returns one event by id.
func GetEvent(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	ctx := tracing.ContextWithSpan(c)
	event, err := database.Store.GetEvent(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("event not found"))
		return
	case err != nil:
		log.Error("event lookup failed", "error", err, "event_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, event)
}

// CreateEventReq carries a new event. Date-times arrive as strings so both
// RFC3339 and datetime-local inputs parse.
type CreateEventReq struct {
	Name             string   `json:"name" binding:"required,max=100"`
	Description      string   `json:"description" binding:"max=255"`
	ProgramType      string   `json:"programType" binding:"required"`
	Mode             string   `json:"mode" binding:"required,oneof=Online Offline Hybrid"`
	ParticipantCount int      `json:"participantCount" binding:"omitempty,gte=0"`
	Expense          float64  `json:"expense" binding:"omitempty,gte=0"`
	Rating           int      `json:"rating" binding:"omitempty,min=1,max=5"`
	DateTime         string   `json:"dateTime" binding:"required"`
	EndDateTime      string   `json:"endDateTime"`
	Images           []string `json:"images" binding:"omitempty,max=3"`
	CampusID         uint     `json:"campusId" binding:"required"`
}

// CreateEvent stores a new event unless it lands too close to an existing
// one on the same campus.
func CreateEvent(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req CreateEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("binding create event request failed", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	dateTime, err := parseDateTime(req.DateTime)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("dateTime must be a valid date-time"))
		return
	}
	var endDateTime *time.Time
	if req.EndDateTime != "" {
		end, err := parseDateTime(req.EndDateTime)
		if err != nil {
			response.Fail(c, response.ErrInvalidRequest.WithTips("endDateTime must be a valid date-time"))
			return
		}
		if end.Before(dateTime) {
			response.Fail(c, response.ErrInvalidRequest.WithTips("endDateTime must not precede dateTime"))
			return
		}
		endDateTime = &end
	}

	rating := req.Rating
	if rating == 0 {
		rating = 1
	}

	event := model.Event{
		Name:             req.Name,
		Description:      req.Description,
		ProgramType:      req.ProgramType,
		Mode:             req.Mode,
		ParticipantCount: req.ParticipantCount,
		Expense:          req.Expense,
		Rating:           rating,
		DateTime:         dateTime,
		EndDateTime:      endDateTime,
		Images:           model.ImageList(req.Images),
		CampusID:         req.CampusID,
		CreatedBy:        payload.UserID,
	}

	ctx := tracing.ContextWithSpan(c)

	createMu.Lock()
	defer createMu.Unlock()

	conflicts, err := findConflicts(ctx, req.CampusID, dateTime, endDateTime, 0)
	if err != nil {
		log.Error("conflict check failed", "error", err, "campus_id", req.CampusID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if len(conflicts) > 0 {
		log.Warn("event rejected, scheduling conflict",
			"campus_id", req.CampusID, "date_time", dateTime, "conflicts", len(conflicts))
		response.FailWithData(c, response.ErrEventConflict, gin.H{"conflicts": conflicts})
		return
	}

	if err := database.Store.CreateEvent(ctx, &event); err != nil {
		log.Error("creating event failed", "error", err, "campus_id", req.CampusID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	cache.InvalidateCampus(ctx, event.CampusID)
	log.Info("event created", "event_id", event.ID, "campus_id", event.CampusID, "name", event.Name)

	response.Created(c, event)
}

// UpdateEventReq is a partial update; nil fields stay untouched. Images, when
// present, replaces the whole list.
type UpdateEventReq struct {
	Name             *string  `json:"name" binding:"omitempty,max=100"`
	Description      *string  `json:"description" binding:"omitempty,max=255"`
	ProgramType      *string  `json:"programType"`
	Mode             *string  `json:"mode" binding:"omitempty,oneof=Online Offline Hybrid"`
	ParticipantCount *int     `json:"participantCount" binding:"omitempty,gte=0"`
	Expense          *float64 `json:"expense" binding:"omitempty,gte=0"`
	Rating           *int     `json:"rating" binding:"omitempty,min=1,max=5"`
	DateTime         *string  `json:"dateTime"`
	EndDateTime      *string  `json:"endDateTime"`
	Images           []string `json:"images" binding:"omitempty,max=3"`
	CampusID         *uint    `json:"campusId"`
}

// UpdateEvent merges the provided fields over the stored event. Rescheduling
// re-runs the conflict check against every other event of the campus.
func UpdateEvent(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("binding update event request failed", "error", err, "event_id", id)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	ctx := tracing.ContextWithSpan(c)
	current, err := database.Store.GetEvent(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("event not found"))
		return
	case err != nil:
		log.Error("event lookup failed", "error", err, "event_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	updates := store.EventUpdate{
		Name:             req.Name,
		Description:      req.Description,
		ProgramType:      req.ProgramType,
		Mode:             req.Mode,
		ParticipantCount: req.ParticipantCount,
		Expense:          req.Expense,
		Rating:           req.Rating,
		CampusID:         req.CampusID,
	}
	if req.Images != nil {
		updates.Images = model.ImageList(req.Images)
	}

	newStart := current.DateTime
	if req.DateTime != nil {
		parsed, err := parseDateTime(*req.DateTime)
		if err != nil {
			response.Fail(c, response.ErrInvalidRequest.WithTips("dateTime must be a valid date-time"))
			return
		}
		updates.DateTime = &parsed
		newStart = parsed
	}
	newEnd := current.EndDateTime
	if req.EndDateTime != nil {
		parsed, err := parseDateTime(*req.EndDateTime)
		if err != nil {
			response.Fail(c, response.ErrInvalidRequest.WithTips("endDateTime must be a valid date-time"))
			return
		}
		updates.EndDateTime = &parsed
		newEnd = &parsed
	}
	if newEnd != nil && newEnd.Before(newStart) {
		response.Fail(c, response.ErrInvalidRequest.WithTips("endDateTime must not precede dateTime"))
		return
	}

	createMu.Lock()
	defer createMu.Unlock()

	if req.DateTime != nil || req.EndDateTime != nil {
		campusID := current.CampusID
		if req.CampusID != nil {
			campusID = *req.CampusID
		}
		conflicts, err := findConflicts(ctx, campusID, newStart, newEnd, id)
		if err != nil {
			log.Error("conflict check failed", "error", err, "event_id", id)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		if len(conflicts) > 0 {
			log.Warn("reschedule rejected, scheduling conflict", "event_id", id, "conflicts", len(conflicts))
			response.FailWithData(c, response.ErrEventConflict, gin.H{"conflicts": conflicts})
			return
		}
	}

	updated, err := database.Store.UpdateEvent(ctx, id, updates)
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("event not found"))
		return
	case err != nil:
		log.Error("updating event failed", "error", err, "event_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	cache.InvalidateCampus(ctx, current.CampusID)
	if updated.CampusID != current.CampusID {
		cache.InvalidateCampus(ctx, updated.CampusID)
	}
	log.Info("event updated", "event_id", updated.ID)

	response.Success(c, updated)
}

// DeleteEvent removes an event; a missing id is a 404.
func DeleteEvent(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	ctx := tracing.ContextWithSpan(c)
	event, err := database.Store.GetEvent(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("event not found"))
		return
	case err != nil:
		log.Error("event lookup failed", "error", err, "event_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	deleted, err := database.Store.DeleteEvent(ctx, id)
	if err != nil {
		log.Error("deleting event failed", "error", err, "event_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if !deleted {
		response.Fail(c, response.ErrNotFound.WithTips("event not found"))
		return
	}

	cache.InvalidateCampus(ctx, event.CampusID)
	log.Info("event deleted", "event_id", id, "campus_id", event.CampusID)

	response.Success(c)
}

// UploadImage streams a multipart image into object storage and returns its
// public URL for attachment to an event.
func UploadImage(c *gin.Context) {
	if !imagebed.Enabled() {
		response.Fail(c, response.ErrUnavailable.WithTips("image storage is not configured"))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("multipart field 'image' is required"))
		return
	}

	ctx := tracing.ContextWithSpan(c)
	url, err := imagebed.Default.UploadImage(ctx, fileHeader)
	if err != nil {
		log.Error("image upload failed", "error", err, "filename", fileHeader.Filename)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	log.Info("image uploaded", "filename", fileHeader.Filename)

	response.Success(c, gin.H{"url": url})
}

// PresignImageUploadReq asks for a direct-to-bucket upload URL.
type PresignImageUploadReq struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType"`
	ExpiresIn   int64  `json:"expiresIn" binding:"omitempty,gte=0"`
}

// PresignImageUpload hands the client a presigned PUT so large images skip
// this service entirely.
func PresignImageUpload(c *gin.Context) {
	if !imagebed.Enabled() {
		response.Fail(c, response.ErrUnavailable.WithTips("image storage is not configured"))
		return
	}

	var req PresignImageUploadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	ctx := tracing.ContextWithSpan(c)
	presigned, err := imagebed.Default.GeneratePresignedUploadURL(ctx, imagebed.PresignedUploadRequest{
		Filename:    req.Filename,
		ContentType: req.ContentType,
		ExpiresIn:   req.ExpiresIn,
	})
	if err != nil {
		log.Error("presigning upload failed", "error", err, "filename", req.Filename)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}
	response.Success(c, presigned)
}
