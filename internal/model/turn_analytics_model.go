package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TurnAnalytics struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Role          string         `gorm:"type:varchar(32);not null;index"`
	Query         string         `gorm:"type:text;not null"`
	QueryType     string         `gorm:"type:varchar(32);not null"`
	AnswerLen     int            `gorm:"not null"`
	LatencyMs     int64          `gorm:"not null"`
	Success       bool           `gorm:"not null"`
	FallbackUsed  bool           `gorm:"not null"`
	Details       datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"autoCreateTime;index"`
}

func (TurnAnalytics) TableName() string {
	return "turn_analytics"
}
