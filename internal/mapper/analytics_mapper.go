package mapper

import (
	"encoding/json"

	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/model"

	"gorm.io/datatypes"
)

type AnalyticsMapper struct{}

func NewAnalyticsMapper() *AnalyticsMapper {
	return &AnalyticsMapper{}
}

func (m *AnalyticsMapper) ToModel(a *entity.TurnAnalytics) *model.TurnAnalytics {
	if a == nil {
		return nil
	}

	var details datatypes.JSON
	if a.Details != nil {
		if raw, err := json.Marshal(a.Details); err == nil {
			details = datatypes.JSON(raw)
		}
	}

	return &model.TurnAnalytics{
		Id:            a.Id,
		ChatSessionId: a.ChatSessionId,
		Role:          a.Role,
		Query:         a.Query,
		QueryType:     a.QueryType,
		AnswerLen:     a.AnswerLen,
		LatencyMs:     a.LatencyMs,
		Success:       a.Success,
		FallbackUsed:  a.FallbackUsed,
		Details:       details,
		CreatedAt:     a.CreatedAt,
	}
}

func (m *AnalyticsMapper) ToEntity(a *model.TurnAnalytics) *entity.TurnAnalytics {
	if a == nil {
		return nil
	}

	var details map[string]interface{}
	if len(a.Details) > 0 {
		_ = json.Unmarshal(a.Details, &details)
	}

	return &entity.TurnAnalytics{
		Id:            a.Id,
		ChatSessionId: a.ChatSessionId,
		Role:          a.Role,
		Query:         a.Query,
		QueryType:     a.QueryType,
		AnswerLen:     a.AnswerLen,
		LatencyMs:     a.LatencyMs,
		Success:       a.Success,
		FallbackUsed:  a.FallbackUsed,
		Details:       details,
		CreatedAt:     a.CreatedAt,
	}
}

func (m *AnalyticsMapper) VisitorMessageToModel(v *entity.VisitorMessage) *model.VisitorMessage {
	if v == nil {
		return nil
	}
	return &model.VisitorMessage{
		Id:            v.Id,
		ChatSessionId: v.ChatSessionId,
		Contact:       v.Contact,
		Body:          v.Body,
		CreatedAt:     v.CreatedAt,
	}
}

func (m *AnalyticsMapper) VisitorMessageToEntity(v *model.VisitorMessage) *entity.VisitorMessage {
	if v == nil {
		return nil
	}
	return &entity.VisitorMessage{
		Id:            v.Id,
		ChatSessionId: v.ChatSessionId,
		Contact:       v.Contact,
		Body:          v.Body,
		CreatedAt:     v.CreatedAt,
	}
}
