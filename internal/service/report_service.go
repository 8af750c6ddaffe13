package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"persona-chat-be/internal/constant"
	"persona-chat-be/internal/dto"
	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/repository/specification"
	"persona-chat-be/internal/repository/unitofwork"
)

// IReportService renders the text reports behind render_report actions and
// serves the owner-facing analytics endpoints.
type IReportService interface {
	Render(ctx context.Context, kind string) (string, error)
	EngagementStats(ctx context.Context) (*dto.EngagementStatsResponse, error)
	VisitorMessages(ctx context.Context) ([]dto.VisitorMessageResponse, error)
}

type reportService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewReportService(uowFactory unitofwork.RepositoryFactory) IReportService {
	return &reportService{uowFactory: uowFactory}
}

// Render produces the body for one report kind. Narrative reports come from
// curated knowledge-base documents; stats reports aggregate turn analytics.
func (s *reportService) Render(ctx context.Context, kind string) (string, error) {
	switch kind {
	case "career_summary":
		return s.renderDocument(ctx, "career-summary")
	case "stack_overview":
		return s.renderDocument(ctx, "stack-overview")
	case "engagement_stats", "site_stats", "usage_stats":
		return s.renderStats(ctx)
	default:
		return "", fmt.Errorf("unknown report kind %q", kind)
	}
}

func (s *reportService) renderDocument(ctx context.Context, sourceId string) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	chunks, err := uow.KnowledgeChunkRepository().FindAll(ctx,
		specification.BySourceID{SourceID: sourceId},
		specification.ByKind{Kind: entity.ChunkKindDoc},
		specification.OrderBy{Field: "chunk_index"},
	)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return "", fmt.Errorf("report document %q is not seeded", sourceId)
	}

	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Content
	}
	return strings.Join(parts, "\n\n"), nil
}

func (s *reportService) renderStats(ctx context.Context) (string, error) {
	stats, err := s.EngagementStats(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"Site engagement so far: %d conversation turns (%d as recruiter, %d as engineer, %d as visitor). %d turns fell back to suggested topics.",
		stats.TotalTurns, stats.RecruiterTurns, stats.EngineerTurns, stats.VisitorTurns, stats.FallbackTurns,
	), nil
}

func (s *reportService) EngagementStats(ctx context.Context) (*dto.EngagementStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.TurnAnalyticsRepository()

	total, err := repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	fallback, err := repo.Count(ctx, specification.ByFallbackUsed{})
	if err != nil {
		return nil, err
	}
	failed, err := repo.Count(ctx, specification.ByFailed{})
	if err != nil {
		return nil, err
	}

	perRole := map[string]int64{}
	for _, role := range constant.AllRoles {
		n, err := repo.Count(ctx, specification.ByRole{Role: role})
		if err != nil {
			return nil, err
		}
		perRole[role] = n
	}

	return &dto.EngagementStatsResponse{
		TotalTurns:     total,
		FallbackTurns:  fallback,
		FailedTurns:    failed,
		RecruiterTurns: perRole[constant.RoleRecruiter],
		EngineerTurns:  perRole[constant.RoleEngineer],
		VisitorTurns:   perRole[constant.RoleVisitor],
		GeneratedAt:    time.Now(),
	}, nil
}

func (s *reportService) VisitorMessages(ctx context.Context) ([]dto.VisitorMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.VisitorMessageRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.VisitorMessageResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, dto.VisitorMessageResponse{
			Contact:   m.Contact,
			Body:      m.Body,
			CreatedAt: m.CreatedAt,
		})
	}
	return res, nil
}
