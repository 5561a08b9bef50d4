package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"campus-connect/internal/model"
)

// MemStore keeps every entity in a keyed map with a per-entity monotonic
// counter. A single RWMutex serializes all read/modify/write sequences; id
// assignment and insert happen under one lock acquisition.
//
// Instances are explicitly constructed, never process-global, so tests run
// against isolated stores.
type MemStore struct {
	mu sync.RWMutex

	users    map[uint]model.User
	campuses map[uint]model.Campus
	events   map[uint]model.Event
	chats    map[uint]model.ChatSession

	nextUserID   uint
	nextCampusID uint
	nextEventID  uint
	nextChatID   uint
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:        make(map[uint]model.User),
		campuses:     make(map[uint]model.Campus),
		events:       make(map[uint]model.Event),
		chats:        make(map[uint]model.ChatSession),
		nextUserID:   1,
		nextCampusID: 1,
		nextEventID:  1,
		nextChatID:   1,
	}
}

func (s *MemStore) GetUser(_ context.Context, id uint) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.nextUserID
	s.nextUserID++
	user.CreatedAt = time.Now()
	if user.Role == "" {
		user.Role = model.RoleMember
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemStore) UpdateUserPassword(_ context.Context, id uint, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	user.Password = hash
	s.users[id] = user
	return nil
}

func (s *MemStore) GetCampus(_ context.Context, id uint) (*model.Campus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	campus, ok := s.campuses[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &campus, nil
}

func (s *MemStore) ListCampuses(_ context.Context) ([]model.Campus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	campuses := make([]model.Campus, 0, len(s.campuses))
	for _, campus := range s.campuses {
		campuses = append(campuses, campus)
	}
	sort.Slice(campuses, func(i, j int) bool { return campuses[i].ID < campuses[j].ID })
	return campuses, nil
}

func (s *MemStore) CreateCampus(_ context.Context, campus *model.Campus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	campus.ID = s.nextCampusID
	s.nextCampusID++
	campus.CreatedAt = time.Now()
	s.campuses[campus.ID] = *campus
	return nil
}

func (s *MemStore) UpdateCampus(_ context.Context, id uint, updates CampusUpdate) (*model.Campus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	campus, ok := s.campuses[id]
	if !ok {
		return nil, ErrNotFound
	}
	updates.apply(&campus)
	s.campuses[id] = campus
	return &campus, nil
}

func (s *MemStore) GetEvent(_ context.Context, id uint) (*model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &event, nil
}

func (s *MemStore) GetEventsByCampus(_ context.Context, campusID uint) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.campusEventsLocked(campusID), nil
}

// campusEventsLocked collects the campus events sorted by dateTime
// descending, id ascending on ties. Callers must hold at least the read lock.
func (s *MemStore) campusEventsLocked(campusID uint) []model.Event {
	events := make([]model.Event, 0)
	for _, event := range s.events {
		if event.CampusID == campusID {
			events = append(events, event)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].DateTime.Equal(events[j].DateTime) {
			return events[i].DateTime.After(events[j].DateTime)
		}
		return events[i].ID < events[j].ID
	})
	return events
}

func (s *MemStore) GetEventsInDateRange(_ context.Context, campusID uint, start, end time.Time) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]model.Event, 0)
	for _, event := range s.campusEventsLocked(campusID) {
		if !event.DateTime.Before(start) && !event.DateTime.After(end) {
			events = append(events, event)
		}
	}
	return events, nil
}

func (s *MemStore) CreateEvent(_ context.Context, event *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.ID = s.nextEventID
	s.nextEventID++
	event.CreatedAt = time.Now()
	if event.Images == nil {
		event.Images = model.ImageList{}
	}
	s.events[event.ID] = *event
	return nil
}

func (s *MemStore) UpdateEvent(_ context.Context, id uint, updates EventUpdate) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	updates.apply(&event)
	s.events[id] = event
	return &event, nil
}

func (s *MemStore) DeleteEvent(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return false, nil
	}
	delete(s.events, id)
	return true, nil
}

func (s *MemStore) CreateChatSession(_ context.Context, chat *model.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat.ID = s.nextChatID
	s.nextChatID++
	chat.CreatedAt = time.Now()
	s.chats[chat.ID] = *chat
	return nil
}

func (s *MemStore) GetChatHistory(_ context.Context, userID uint, limit int) ([]model.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]model.ChatSession, 0)
	for _, chat := range s.chats {
		if chat.UserID == userID {
			sessions = append(sessions, chat)
		}
	}
	// Most recent first; ids break ties since sessions created in the same
	// instant still have a defined order.
	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
		}
		return sessions[i].ID > sessions[j].ID
	})
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

func (s *MemStore) EventTypeDistribution(_ context.Context, campusID uint) ([]TypeCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for _, event := range s.events {
		if event.CampusID == campusID {
			counts[event.ProgramType]++
		}
	}
	distribution := make([]TypeCount, 0, len(counts))
	for programType, count := range counts {
		distribution = append(distribution, TypeCount{Type: programType, Count: count})
	}
	// No contractual order; sorted for stable output.
	sort.Slice(distribution, func(i, j int) bool {
		if distribution[i].Count != distribution[j].Count {
			return distribution[i].Count > distribution[j].Count
		}
		return distribution[i].Type < distribution[j].Type
	})
	return distribution, nil
}

func (s *MemStore) MonthlyParticipation(_ context.Context, campusID uint, year int) ([]MonthParticipation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	totals := make(map[time.Month]int)
	for _, event := range s.events {
		if event.CampusID != campusID || event.DateTime.Year() != year {
			continue
		}
		totals[event.DateTime.Month()] += event.ParticipantCount
	}
	participation := make([]MonthParticipation, 0, len(totals))
	for month := time.January; month <= time.December; month++ {
		if total, ok := totals[month]; ok {
			participation = append(participation, MonthParticipation{
				Month:        month.String(),
				Participants: total,
			})
		}
	}
	return participation, nil
}

func (s *MemStore) TopRatedEvents(_ context.Context, campusID uint, limit int) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := s.campusEventsLocked(campusID)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Rating > events[j].Rating
	})
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}
