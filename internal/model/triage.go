package model

import "time"

// Category is the outcome of classifying one email.
type Category string

const (
	Productive   Category = "Productive"
	Unproductive Category = "Unproductive"
)

// Triage is the response returned for one classified email.
type Triage struct {
	Category   Category `json:"category"`
	Suggestion string   `json:"suggestion"`
}

// ClassificationEvent records the outcome of one classification for auditing.
// It deliberately holds no email content, filename, or reply text.
type ClassificationEvent struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"request_id"`
	Category    Category  `json:"category"`
	Source      string    `json:"source"`
	MatchedRule string    `json:"matched_rule,omitempty"`
	MatchedTerm string    `json:"matched_term,omitempty"`
	InputKind   string    `json:"input_kind"`
	Encoding    string    `json:"encoding,omitempty"`
	CharCount   int       `json:"char_count"`
	ReplySource string    `json:"reply_source"`
	DurationMs  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryCount is one row of the aggregated audit statistics.
type CategoryCount struct {
	Category Category `json:"category"`
	Source   string   `json:"source"`
	Count    int      `json:"count"`
}
