package model

import (
	"time"

	"github.com/google/uuid"
)

type VisitorMessage struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID `gorm:"type:uuid;not null;index"`
	Contact       string    `gorm:"type:text"`
	Body          string    `gorm:"type:text;not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (VisitorMessage) TableName() string {
	return "visitor_messages"
}
