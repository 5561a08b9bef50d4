package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Known program types. The column stays an open string: unknown values are
// kept as-is and fall back to a default display category.
const (
	ProgramTalk       = "Talk"
	ProgramWorkshop   = "Workshop"
	ProgramHackathon  = "Hackathon"
	ProgramNetworking = "Networking"
	ProgramSeminar    = "Seminar"

	ProgramOther = "Other"
)

const (
	ModeOnline  = "Online"
	ModeOffline = "Offline"
	ModeHybrid  = "Hybrid"
)

// MaxEventImages caps the image list per event.
const MaxEventImages = 3

// DefaultEventDuration is the assumed length of an event without an explicit
// end, used only for conflict-window computation.
const DefaultEventDuration = 2 * time.Hour

// ImageList stores an ordered list of image URLs as a JSON text column so the
// same struct serves both the memory and the MySQL backend.
type ImageList []string

func (l ImageList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *ImageList) Scan(value any) error {
	if value == nil {
		*l = ImageList{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported image list column type %T", value)
	}
	if len(raw) == 0 {
		*l = ImageList{}
		return nil
	}
	return json.Unmarshal(raw, l)
}

type Event struct {
	Model
	Name             string     `gorm:"type:varchar(100);not null" json:"name"`
	Description      string     `gorm:"type:varchar(255)" json:"description"`
	ProgramType      string     `gorm:"type:varchar(50);not null" json:"programType"`
	Mode             string     `gorm:"type:varchar(20);not null" json:"mode"`
	ParticipantCount int        `gorm:"default:0" json:"participantCount"`
	Expense          float64    `gorm:"type:decimal(10,2);default:0" json:"expense"`
	Rating           int        `gorm:"default:1" json:"rating"`
	DateTime         time.Time  `gorm:"index;not null" json:"dateTime"`
	EndDateTime      *time.Time `json:"endDateTime"`
	Images           ImageList  `gorm:"type:text" json:"images"`
	CampusID         uint       `gorm:"index;not null" json:"campusId"`
	CreatedBy        uint       `gorm:"not null" json:"createdBy"`
}

// EffectiveEnd is EndDateTime when present, otherwise DateTime plus the
// default two-hour duration. Used for conflict-window computation.
func (e *Event) EffectiveEnd() time.Time {
	if e.EndDateTime != nil {
		return *e.EndDateTime
	}
	return e.DateTime.Add(DefaultEventDuration)
}

// DisplayCategory maps a program type to its display bucket; anything
// outside the fixed enumeration renders as "Other".
func DisplayCategory(programType string) string {
	switch programType {
	case ProgramTalk, ProgramWorkshop, ProgramHackathon, ProgramNetworking, ProgramSeminar:
		return programType
	default:
		return ProgramOther
	}
}
