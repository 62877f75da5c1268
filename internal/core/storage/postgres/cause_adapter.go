package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/delta-line/line-metrics/internal/core/storage"
)

// CauseAdapter implements storage.CauseStore over the causes table.
type CauseAdapter struct {
	db *sql.DB
}

// NewCauseAdapter creates a CauseAdapter sharing the given connection.
func NewCauseAdapter(db *sql.DB) *CauseAdapter {
	return &CauseAdapter{db: db}
}

// ListCauses returns one page of causes and the total number of matches.
func (a *CauseAdapter) ListCauses(ctx context.Context, filter storage.CauseFilter) ([]storage.Cause, int, error) {
	where, args := causeWhere(filter)

	var total int
	if err := a.db.QueryRowContext(ctx, queryCountCauses+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count causes: %w", err)
	}

	sortCol, ok := causeSortColumns[filter.SortBy]
	if !ok {
		sortCol = causeSortColumns["code"]
	}
	dir := "ASC"
	if filter.SortDesc {
		dir = "DESC"
	}

	listArgs := append(append([]any(nil), args...), filter.Limit, filter.Offset)
	query := fmt.Sprintf("%s%s ORDER BY %s %s, c.id ASC LIMIT $%d OFFSET $%d",
		queryListCauses, where, sortCol, dir, len(args)+1, len(args)+2)

	rows, err := a.db.QueryContext(ctx, query, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list causes: %w", err)
	}
	defer rows.Close()

	causes := make([]storage.Cause, 0)
	for rows.Next() {
		var c storage.Cause
		var description sql.NullString
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Category, &description, &c.AffectsTRS); err != nil {
			return nil, 0, fmt.Errorf("failed to scan cause row: %w", err)
		}
		if description.Valid {
			d := description.String
			c.Description = &d
		}
		causes = append(causes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating causes: %w", err)
	}

	return causes, total, nil
}

// causeWhere renders the filter predicates in a fixed order: category, search, affect_trs.
func causeWhere(filter storage.CauseFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("c.category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(c.code ILIKE $%d OR c.name ILIKE $%d)", n, n))
	}
	if filter.AffectsTRS != nil {
		args = append(args, *filter.AffectsTRS)
		conds = append(conds, fmt.Sprintf("c.affect_trs = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
