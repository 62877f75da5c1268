package postgres

const (
	// queryTableExists reports whether a table is visible in the current database.
	queryTableExists = `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = $1
			  AND table_schema = COALESCE(NULLIF($2, ''), current_schema())
		)
	`

	// queryCountCauses is completed with the WHERE clause built by CauseAdapter.
	queryCountCauses = `SELECT COUNT(*) FROM causes c`

	// queryListCauses is completed with WHERE, ORDER BY, LIMIT and OFFSET clauses.
	queryListCauses = `SELECT c.id, c.code, c.name, c.category, c.description, c.affect_trs FROM causes c`
)

// causeSortColumns whitelists sortable columns; request values never reach SQL text.
var causeSortColumns = map[string]string{
	"code":      "c.code",
	"name":      "c.name",
	"category":  "c.category",
	"affectTRS": "c.affect_trs",
}
