package store

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of all schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create satisfaction records",
		SQL: `
			CREATE TABLE satisfaction_records (
				id          TEXT PRIMARY KEY,
				message_id  TEXT NOT NULL DEFAULT '',
				rating      INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
				comment     TEXT NOT NULL DEFAULT '',
				timestamp   TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE INDEX idx_satisfaction_timestamp ON satisfaction_records (timestamp);
		`,
	},
	{
		Version: 2,
		Name:    "create evaluation history",
		SQL: `
			CREATE TABLE evaluation_history (
				id                  INTEGER PRIMARY KEY AUTOINCREMENT,
				query               TEXT NOT NULL,
				response            TEXT NOT NULL,
				context_precision   REAL NOT NULL,
				context_recall      REAL NOT NULL,
				faithfulness        REAL NOT NULL,
				answer_relevancy    REAL NOT NULL,
				retrieval_accuracy  REAL NOT NULL,
				overall_score       REAL NOT NULL,
				degraded            INTEGER NOT NULL DEFAULT 0,
				doc_count           INTEGER NOT NULL DEFAULT 0,
				latency_ms          INTEGER NOT NULL DEFAULT 0,
				evaluated_at        TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE INDEX idx_evaluation_evaluated ON evaluation_history (evaluated_at);
		`,
	},
}
