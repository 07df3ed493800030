package repository

import (
	"context"

	"emailtriage/internal/model"
)

// ClassificationEventRepository stores classification outcomes for auditing.
// Implementations only persist and query rows.
type ClassificationEventRepository interface {
	// Create inserts an event and returns the stored row.
	Create(ctx context.Context, ev *model.ClassificationEvent) (*model.ClassificationEvent, error)

	// List returns events newest first together with the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.ClassificationEvent], error)

	// CountByCategory aggregates events by category and decision source.
	CountByCategory(ctx context.Context) ([]model.CategoryCount, error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
