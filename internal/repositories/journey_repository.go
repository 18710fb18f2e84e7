package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tripiki/internal/aggregates"
	"tripiki/internal/models/db_models"
)

// JourneyStore is the aggregate store the coordinator runs its
// load / apply / conditional-save loop against. Save only commits when the
// stored version still equals expectedVersion; a miss is aggregates.ErrConflict
// and the coordinator reloads and retries. Any other storage failure comes
// back wrapped in aggregates.ErrUnavailable.
type JourneyStore interface {
	Create(ctx context.Context, journey aggregates.Journey) error
	Load(ctx context.Context, journeyID string) (aggregates.Journey, int64, error)
	Save(ctx context.Context, journey aggregates.Journey, expectedVersion int64) error
	CountByParticipant(ctx context.Context, userID string) (int64, error)
	ListByParticipant(ctx context.Context, userID string, page, pageSize int) ([]aggregates.Journey, error)
}

type journeyStore struct {
	db *gorm.DB
}

func NewJourneyStore(db *gorm.DB) JourneyStore {
	return &journeyStore{db: db}
}

func (s *journeyStore) Create(ctx context.Context, journey aggregates.Journey) error {
	record, err := toJourneyRecord(journey)
	if err != nil {
		return err
	}
	record.Version = 1

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return replaceMembers(tx, record.ID, journey.Participants)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", aggregates.ErrUnavailable, err)
	}
	return nil
}

func (s *journeyStore) Load(ctx context.Context, journeyID string) (aggregates.Journey, int64, error) {
	var record db_models.JourneyRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", journeyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return aggregates.Journey{}, 0, aggregates.ErrNotFound
		}
		return aggregates.Journey{}, 0, fmt.Errorf("%w: %v", aggregates.ErrUnavailable, err)
	}

	journey, err := fromJourneyRecord(record)
	if err != nil {
		return aggregates.Journey{}, 0, err
	}
	return journey, record.Version, nil
}

// Save is the compare-and-swap: the UPDATE carries the version read at load
// time in its WHERE clause, so exactly one writer wins per version.
func (s *journeyStore) Save(ctx context.Context, journey aggregates.Journey, expectedVersion int64) error {
	record, err := toJourneyRecord(journey)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db_models.JourneyRecord{}).
			Where("id = ? AND version = ?", record.ID, expectedVersion).
			Updates(map[string]any{
				"name":         record.Name,
				"start_date":   record.StartDate,
				"end_date":     record.EndDate,
				"theme_path":   record.ThemePath,
				"participants": record.Participants,
				"tags":         record.Tags,
				"pikmis":       record.Pikmis,
				"pikis":        record.Pikis,
				"version":      expectedVersion + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return aggregates.ErrConflict
		}
		return replaceMembers(tx, record.ID, journey.Participants)
	})
	if err != nil {
		if errors.Is(err, aggregates.ErrConflict) {
			return aggregates.ErrConflict
		}
		return fmt.Errorf("%w: %v", aggregates.ErrUnavailable, err)
	}
	return nil
}

func (s *journeyStore) CountByParticipant(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&db_models.JourneyMember{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", aggregates.ErrUnavailable, err)
	}
	return count, nil
}

func (s *journeyStore) ListByParticipant(ctx context.Context, userID string, page, pageSize int) ([]aggregates.Journey, error) {
	var records []db_models.JourneyRecord
	err := s.db.WithContext(ctx).
		Joins("JOIN journey_members ON journey_members.journey_record_id = journey_records.id").
		Where("journey_members.user_id = ?", userID).
		Order("journey_records.start_date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", aggregates.ErrUnavailable, err)
	}

	journeys := make([]aggregates.Journey, 0, len(records))
	for _, record := range records {
		journey, err := fromJourneyRecord(record)
		if err != nil {
			return nil, err
		}
		journeys = append(journeys, journey)
	}
	return journeys, nil
}

func replaceMembers(tx *gorm.DB, journeyID uuid.UUID, participants []string) error {
	if err := tx.Where("journey_record_id = ?", journeyID).
		Delete(&db_models.JourneyMember{}).Error; err != nil {
		return err
	}
	members := make([]db_models.JourneyMember, 0, len(participants))
	for _, userID := range participants {
		members = append(members, db_models.JourneyMember{
			JourneyRecordID: journeyID,
			UserID:          userID,
		})
	}
	if len(members) == 0 {
		return nil
	}
	return tx.Create(&members).Error
}

func toJourneyRecord(journey aggregates.Journey) (db_models.JourneyRecord, error) {
	id, err := uuid.Parse(journey.ID)
	if err != nil {
		return db_models.JourneyRecord{}, fmt.Errorf("%w: journey id %q", aggregates.ErrValidation, journey.ID)
	}

	participants, err := json.Marshal(journey.Participants)
	if err != nil {
		return db_models.JourneyRecord{}, err
	}
	tags, err := json.Marshal(journey.Tags)
	if err != nil {
		return db_models.JourneyRecord{}, err
	}
	pikmis, err := json.Marshal(journey.Pikmis)
	if err != nil {
		return db_models.JourneyRecord{}, err
	}
	pikis, err := json.Marshal(journey.Pikis)
	if err != nil {
		return db_models.JourneyRecord{}, err
	}

	record := db_models.JourneyRecord{
		Name:         journey.Name,
		StartDate:    journey.StartDate,
		EndDate:      journey.EndDate,
		ThemePath:    journey.ThemePath,
		Participants: participants,
		Tags:         tags,
		Pikmis:       pikmis,
		Pikis:        pikis,
	}
	record.ID = id
	return record, nil
}

func fromJourneyRecord(record db_models.JourneyRecord) (aggregates.Journey, error) {
	journey := aggregates.Journey{
		ID:        record.ID.String(),
		Name:      record.Name,
		StartDate: record.StartDate,
		EndDate:   record.EndDate,
		ThemePath: record.ThemePath,
	}
	if err := json.Unmarshal(record.Participants, &journey.Participants); err != nil {
		return aggregates.Journey{}, err
	}
	if err := json.Unmarshal(record.Tags, &journey.Tags); err != nil {
		return aggregates.Journey{}, err
	}
	if err := json.Unmarshal(record.Pikmis, &journey.Pikmis); err != nil {
		return aggregates.Journey{}, err
	}
	if err := json.Unmarshal(record.Pikis, &journey.Pikis); err != nil {
		return aggregates.Journey{}, err
	}
	return journey, nil
}
