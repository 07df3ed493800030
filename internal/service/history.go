package service

import (
	"context"

	"emailtriage/internal/model"
	"emailtriage/internal/repository"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// ClassificationListResult is the service-level DTO for paginated audit events.
type ClassificationListResult struct {
	Items []model.ClassificationEvent `json:"data"`
	Total int                         `json:"total"`
}

// HistoryService exposes the classification audit log.
type HistoryService interface {
	// List returns events newest first using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*ClassificationListResult, error)

	// Stats returns event counts per category and decision source.
	Stats(ctx context.Context) ([]model.CategoryCount, error)
}

type historyService struct {
	repo repository.ClassificationEventRepository
}

// NewHistoryService constructs a new HistoryService.
func NewHistoryService(repo repository.ClassificationEventRepository) HistoryService {
	return &historyService{repo: repo}
}

func (s *historyService) List(ctx context.Context, limit, offset int) (*ClassificationListResult, error) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ClassificationListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *historyService) Stats(ctx context.Context) ([]model.CategoryCount, error) {
	return s.repo.CountByCategory(ctx)
}
