package postgres

import (
	"context"
	"database/sql"

	"emailtriage/internal/model"
	"emailtriage/internal/repository"
)

// ClassificationPostgres is a PostgreSQL implementation of repository.ClassificationEventRepository.
type ClassificationPostgres struct {
	db *sql.DB
}

// NewClassificationPostgres creates a new ClassificationPostgres repository.
func NewClassificationPostgres(db *sql.DB) *ClassificationPostgres {
	return &ClassificationPostgres{db: db}
}

var _ repository.ClassificationEventRepository = (*ClassificationPostgres)(nil)

const eventColumns = `id, request_id, category, source, matched_rule, matched_term,
		input_kind, encoding, char_count, reply_source, duration_ms, created_at`

// Create inserts a classification event and returns the stored row.
func (r *ClassificationPostgres) Create(ctx context.Context, ev *model.ClassificationEvent) (*model.ClassificationEvent, error) {
	const q = `
		INSERT INTO classification_events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + eventColumns
	row := r.db.QueryRowContext(ctx, q,
		ev.ID,
		ev.RequestID,
		ev.Category,
		ev.Source,
		ev.MatchedRule,
		ev.MatchedTerm,
		ev.InputKind,
		ev.Encoding,
		ev.CharCount,
		ev.ReplySource,
		ev.DurationMs,
		ev.CreatedAt,
	)
	var out model.ClassificationEvent
	if err := scanEvent(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns events using LIMIT/OFFSET pagination and a total count.
func (r *ClassificationPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.ClassificationEvent], error) {
	const qCount = `SELECT COUNT(*) FROM classification_events`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + eventColumns + `
		FROM classification_events
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ClassificationEvent, 0)
	for rows.Next() {
		var ev model.ClassificationEvent
		if err := scanEvent(rows, &ev); err != nil {
			return nil, err
		}
		items = append(items, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.ClassificationEvent]{
		Items: items,
		Total: total,
	}, nil
}

// CountByCategory returns event counts grouped by category and source.
func (r *ClassificationPostgres) CountByCategory(ctx context.Context) ([]model.CategoryCount, error) {
	const q = `
		SELECT category, source, COUNT(*)
		FROM classification_events
		GROUP BY category, source
		ORDER BY category, source
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]model.CategoryCount, 0)
	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.Category, &c.Source, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner, ev *model.ClassificationEvent) error {
	return s.Scan(
		&ev.ID,
		&ev.RequestID,
		&ev.Category,
		&ev.Source,
		&ev.MatchedRule,
		&ev.MatchedTerm,
		&ev.InputKind,
		&ev.Encoding,
		&ev.CharCount,
		&ev.ReplySource,
		&ev.DurationMs,
		&ev.CreatedAt,
	)
}
