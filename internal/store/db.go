package store

import (
	"context"
	"time"

	"campus-connect/internal/model"

	"gorm.io/gorm"
)

// DBStore is the durable backend: one table per entity, integer keys,
// aggregation pushed down to SQL. It implements the same Store contract as
// MemStore, so the modules never know which backend they run on.
type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *DBStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *DBStore) CreateUser(ctx context.Context, user *model.User) error {
	if user.Role == "" {
		user.Role = model.RoleMember
	}
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *DBStore) UpdateUserPassword(ctx context.Context, id uint, hash string) error {
	res := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("password", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DBStore) GetCampus(ctx context.Context, id uint) (*model.Campus, error) {
	var campus model.Campus
	if err := s.db.WithContext(ctx).First(&campus, id).Error; err != nil {
		return nil, err
	}
	return &campus, nil
}

func (s *DBStore) ListCampuses(ctx context.Context) ([]model.Campus, error) {
	var campuses []model.Campus
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&campuses).Error; err != nil {
		return nil, err
	}
	return campuses, nil
}

func (s *DBStore) CreateCampus(ctx context.Context, campus *model.Campus) error {
	return s.db.WithContext(ctx).Create(campus).Error
}

func (s *DBStore) UpdateCampus(ctx context.Context, id uint, updates CampusUpdate) (*model.Campus, error) {
	var campus model.Campus
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&campus, id).Error; err != nil {
			return err
		}
		updates.apply(&campus)
		return tx.Save(&campus).Error
	})
	if err != nil {
		return nil, err
	}
	return &campus, nil
}

func (s *DBStore) GetEvent(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	if err := s.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *DBStore) GetEventsByCampus(ctx context.Context, campusID uint) ([]model.Event, error) {
	var events []model.Event
	err := s.db.WithContext(ctx).
		Where("campus_id = ?", campusID).
		Order("date_time DESC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *DBStore) GetEventsInDateRange(ctx context.Context, campusID uint, start, end time.Time) ([]model.Event, error) {
	var events []model.Event
	err := s.db.WithContext(ctx).
		Where("campus_id = ? AND date_time >= ? AND date_time <= ?", campusID, start, end).
		Order("date_time DESC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *DBStore) CreateEvent(ctx context.Context, event *model.Event) error {
	if event.Images == nil {
		event.Images = model.ImageList{}
	}
	return s.db.WithContext(ctx).Create(event).Error
}

func (s *DBStore) UpdateEvent(ctx context.Context, id uint, updates EventUpdate) (*model.Event, error) {
	var event model.Event
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&event, id).Error; err != nil {
			return err
		}
		updates.apply(&event)
		return tx.Save(&event).Error
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *DBStore) DeleteEvent(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&model.Event{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *DBStore) CreateChatSession(ctx context.Context, chat *model.ChatSession) error {
	return s.db.WithContext(ctx).Create(chat).Error
}

func (s *DBStore) GetChatHistory(ctx context.Context, userID uint, limit int) ([]model.ChatSession, error) {
	var sessions []model.ChatSession
	query := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *DBStore) EventTypeDistribution(ctx context.Context, campusID uint) ([]TypeCount, error) {
	var distribution []TypeCount
	err := s.db.WithContext(ctx).
		Model(&model.Event{}).
		Select("program_type AS type, COUNT(*) AS count").
		Where("campus_id = ?", campusID).
		Group("program_type").
		Order("count DESC, type ASC").
		Scan(&distribution).Error
	if err != nil {
		return nil, err
	}
	return distribution, nil
}

func (s *DBStore) MonthlyParticipation(ctx context.Context, campusID uint, year int) ([]MonthParticipation, error) {
	var rows []struct {
		MonthNum     int `gorm:"column:month_num"`
		Participants int `gorm:"column:participants"`
	}
	err := s.db.WithContext(ctx).
		Model(&model.Event{}).
		Select("MONTH(date_time) AS month_num, SUM(participant_count) AS participants").
		Where("campus_id = ? AND YEAR(date_time) = ?", campusID, year).
		Group("MONTH(date_time)").
		Order("month_num ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	participation := make([]MonthParticipation, 0, len(rows))
	for _, row := range rows {
		participation = append(participation, MonthParticipation{
			Month:        time.Month(row.MonthNum).String(),
			Participants: row.Participants,
		})
	}
	return participation, nil
}

func (s *DBStore) TopRatedEvents(ctx context.Context, campusID uint, limit int) ([]model.Event, error) {
	var events []model.Event
	query := s.db.WithContext(ctx).
		Where("campus_id = ?", campusID).
		Order("rating DESC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
