package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// JourneyRecord is the stored form of one journey aggregate: scalar columns
// for the fields we query on, jsonb documents for the nested collections, and
// a version column the conditional save compares against.
type JourneyRecord struct {
	BaseModel
	Name      string
	StartDate int64
	EndDate   int64
	ThemePath string

	Participants datatypes.JSON `gorm:"type:jsonb"`
	Tags         datatypes.JSON `gorm:"type:jsonb"`
	Pikmis       datatypes.JSON `gorm:"type:jsonb"`
	Pikis        datatypes.JSON `gorm:"type:jsonb"`

	Version int64 `gorm:"not null;default:1"`

	Members []JourneyMember
}

// JourneyMember mirrors the participants document into a queryable side table
// so per-user counts and listings stay plain SQL. Rewritten on every save in
// the same transaction as the record itself.
type JourneyMember struct {
	JourneyRecordID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          string    `gorm:"primaryKey;index"`
}
