// Package store holds the event records and answers the aggregate queries
// behind the dashboard. Two interchangeable backends exist: an in-memory one
// (default, also used by tests) and a GORM/MySQL one for durable deployments.
package store

import (
	"context"
	"time"

	"campus-connect/internal/model"

	"gorm.io/gorm"
)

// ErrNotFound is returned when an operation targets a nonexistent id. It
// aliases gorm's sentinel so both backends fail identically.
var ErrNotFound = gorm.ErrRecordNotFound

// TypeCount is one bucket of the event-type distribution.
type TypeCount struct {
	Type  string `gorm:"column:type" json:"type"`
	Count int    `gorm:"column:count" json:"count"`
}

// MonthParticipation sums participant counts for one calendar month.
// Months without events are omitted, never zero-filled.
type MonthParticipation struct {
	Month        string `json:"month"`
	Participants int    `json:"participants"`
}

// EventUpdate is a partial update: nil fields keep their prior value.
type EventUpdate struct {
	Name             *string
	Description      *string
	ProgramType      *string
	Mode             *string
	ParticipantCount *int
	Expense          *float64
	Rating           *int
	DateTime         *time.Time
	EndDateTime      *time.Time
	Images           model.ImageList
	CampusID         *uint
	CreatedBy        *uint
}

func (u *EventUpdate) apply(e *model.Event) {
	if u.Name != nil {
		e.Name = *u.Name
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.ProgramType != nil {
		e.ProgramType = *u.ProgramType
	}
	if u.Mode != nil {
		e.Mode = *u.Mode
	}
	if u.ParticipantCount != nil {
		e.ParticipantCount = *u.ParticipantCount
	}
	if u.Expense != nil {
		e.Expense = *u.Expense
	}
	if u.Rating != nil {
		e.Rating = *u.Rating
	}
	if u.DateTime != nil {
		e.DateTime = *u.DateTime
	}
	if u.EndDateTime != nil {
		end := *u.EndDateTime
		e.EndDateTime = &end
	}
	if u.Images != nil {
		e.Images = u.Images
	}
	if u.CampusID != nil {
		e.CampusID = *u.CampusID
	}
	if u.CreatedBy != nil {
		e.CreatedBy = *u.CreatedBy
	}
}

// CampusUpdate is a partial campus update: nil fields keep their prior value.
type CampusUpdate struct {
	Name        *string
	Description *string
	LogoURL     *string
	BannerURL   *string
	MemberCount *int
}

func (u *CampusUpdate) apply(c *model.Campus) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.LogoURL != nil {
		c.LogoURL = *u.LogoURL
	}
	if u.BannerURL != nil {
		c.BannerURL = *u.BannerURL
	}
	if u.MemberCount != nil {
		c.MemberCount = *u.MemberCount
	}
}

// Store is a dumb repository plus the analytics queries. Conflict detection
// is deliberately NOT here: it is creation-time policy owned by the event
// module, which queries GetEventsInDateRange before calling CreateEvent.
type Store interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUserPassword(ctx context.Context, id uint, hash string) error

	GetCampus(ctx context.Context, id uint) (*model.Campus, error)
	ListCampuses(ctx context.Context) ([]model.Campus, error)
	CreateCampus(ctx context.Context, campus *model.Campus) error
	UpdateCampus(ctx context.Context, id uint, updates CampusUpdate) (*model.Campus, error)

	GetEvent(ctx context.Context, id uint) (*model.Event, error)
	// GetEventsByCampus returns the campus events sorted by dateTime
	// descending, ties broken by id, so pagination stays deterministic.
	GetEventsByCampus(ctx context.Context, campusID uint) ([]model.Event, error)
	// GetEventsInDateRange returns campus events whose dateTime falls within
	// [start, end] inclusive.
	GetEventsInDateRange(ctx context.Context, campusID uint, start, end time.Time) ([]model.Event, error)
	CreateEvent(ctx context.Context, event *model.Event) error
	UpdateEvent(ctx context.Context, id uint, updates EventUpdate) (*model.Event, error)
	// DeleteEvent reports whether a record existed; deleting a missing id is
	// not an error.
	DeleteEvent(ctx context.Context, id uint) (bool, error)

	CreateChatSession(ctx context.Context, chat *model.ChatSession) error
	GetChatHistory(ctx context.Context, userID uint, limit int) ([]model.ChatSession, error)

	EventTypeDistribution(ctx context.Context, campusID uint) ([]TypeCount, error)
	MonthlyParticipation(ctx context.Context, campusID uint, year int) ([]MonthParticipation, error)
	TopRatedEvents(ctx context.Context, campusID uint, limit int) ([]model.Event, error)
}
