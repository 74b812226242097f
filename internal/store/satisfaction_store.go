package store

import (
	"fmt"
	"time"

	"convoscore/internal/domain"
)

// SQLiteSatisfactionStore implements satisfaction.Store backed by SQLite.
// Insertion order is the implicit rowid, so Recent windows match append order
// even when timestamps collide.
type SQLiteSatisfactionStore struct {
	db *DB
}

// NewSQLiteSatisfactionStore creates a satisfaction store using the given database.
func NewSQLiteSatisfactionStore(db *DB) *SQLiteSatisfactionStore {
	return &SQLiteSatisfactionStore{db: db}
}

// Append inserts one satisfaction record. Records are never edited or deleted.
func (s *SQLiteSatisfactionStore) Append(rec domain.SatisfactionRecord) error {
	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := s.db.sql.Exec(
		`INSERT INTO satisfaction_records (id, message_id, rating, comment, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.MessageID, rec.Rating, rec.Comment, ts.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting satisfaction record: %w", err)
	}
	return nil
}

// Recent returns the last n records in insertion order, or all records when
// n <= 0.
func (s *SQLiteSatisfactionStore) Recent(n int) ([]domain.SatisfactionRecord, error) {
	query := `SELECT id, message_id, rating, comment, timestamp
	          FROM satisfaction_records ORDER BY rowid`
	args := []any{}
	if n > 0 {
		// Take the newest n, then flip back to insertion order.
		query = `SELECT id, message_id, rating, comment, timestamp FROM (
		           SELECT rowid AS rid, id, message_id, rating, comment, timestamp
		           FROM satisfaction_records ORDER BY rowid DESC LIMIT ?
		         ) ORDER BY rid`
		args = append(args, n)
	}

	rows, err := s.db.sql.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying satisfaction records: %w", err)
	}
	defer rows.Close()

	var recs []domain.SatisfactionRecord
	for rows.Next() {
		var rec domain.SatisfactionRecord
		var ts string
		if err := rows.Scan(&rec.ID, &rec.MessageID, &rec.Rating, &rec.Comment, &ts); err != nil {
			return nil, fmt.Errorf("scanning satisfaction record: %w", err)
		}
		rec.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Count returns the number of records in the log.
func (s *SQLiteSatisfactionStore) Count() (int, error) {
	var n int
	if err := s.db.sql.QueryRow("SELECT COUNT(*) FROM satisfaction_records").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting satisfaction records: %w", err)
	}
	return n, nil
}
