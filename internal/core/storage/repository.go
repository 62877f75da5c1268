package storage

import (
	"context"
)

// Row is one result row keyed by column alias.
type Row map[string]any

// QueryExecutor runs a read-only parameterized query and returns every row.
// Params are positional and bound in order; they are never interpolated.
type QueryExecutor interface {
	ExecuteQuery(ctx context.Context, query string, params ...any) ([]Row, error)
}

// Cause is one entry of the stop-cause reference table.
type Cause struct {
	ID          int64   `json:"id,string"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
	AffectsTRS  bool    `json:"affectTRS"`
}

// CauseFilter selects, orders and pages causes. Fields are validated by the caller.
type CauseFilter struct {
	Search     string
	Category   string
	AffectsTRS *bool
	SortBy     string // code | name | category | affectTRS
	SortDesc   bool
	Offset     int
	Limit      int
}

// CauseStore lists causes and counts the full match set.
type CauseStore interface {
	ListCauses(ctx context.Context, filter CauseFilter) ([]Cause, int, error)
}
