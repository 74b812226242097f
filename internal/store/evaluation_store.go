package store

import (
	"fmt"
	"time"

	"convoscore/internal/domain"
)

// SQLiteEvaluationStore persists quality assessments so rolling summaries
// survive process restarts.
type SQLiteEvaluationStore struct {
	db *DB
}

// NewSQLiteEvaluationStore creates an evaluation store using the given database.
func NewSQLiteEvaluationStore(db *DB) *SQLiteEvaluationStore {
	return &SQLiteEvaluationStore{db: db}
}

// Append records one quality assessment.
func (s *SQLiteEvaluationStore) Append(a domain.QualityAssessment) error {
	evaluatedAt := a.EvaluatedAt
	if evaluatedAt.IsZero() {
		evaluatedAt = time.Now()
	}

	_, err := s.db.sql.Exec(
		`INSERT INTO evaluation_history
		 (query, response, context_precision, context_recall, faithfulness,
		  answer_relevancy, retrieval_accuracy, overall_score, degraded, doc_count,
		  latency_ms, evaluated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Query, a.Response,
		a.Metrics.ContextPrecision, a.Metrics.ContextRecall, a.Metrics.Faithfulness,
		a.Metrics.AnswerRelevancy, a.Metrics.RetrievalAccuracy,
		a.OverallScore, boolToInt(a.Degraded), a.DocCount,
		a.Latency.Milliseconds(), evaluatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting evaluation: %w", err)
	}
	return nil
}

// Recent returns the last n assessments in insertion order, or all of them
// when n <= 0.
func (s *SQLiteEvaluationStore) Recent(n int) ([]domain.QualityAssessment, error) {
	query := `SELECT query, response, context_precision, context_recall, faithfulness,
	                 answer_relevancy, retrieval_accuracy, overall_score, degraded,
	                 doc_count, latency_ms, evaluated_at
	          FROM evaluation_history ORDER BY id`
	args := []any{}
	if n > 0 {
		query = `SELECT query, response, context_precision, context_recall, faithfulness,
		                answer_relevancy, retrieval_accuracy, overall_score, degraded,
		                doc_count, latency_ms, evaluated_at
		         FROM (
		           SELECT * FROM evaluation_history ORDER BY id DESC LIMIT ?
		         ) ORDER BY id`
		args = append(args, n)
	}

	rows, err := s.db.sql.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying evaluations: %w", err)
	}
	defer rows.Close()

	var out []domain.QualityAssessment
	for rows.Next() {
		var a domain.QualityAssessment
		var degraded, latencyMS int64
		var evaluatedAt string
		if err := rows.Scan(
			&a.Query, &a.Response,
			&a.Metrics.ContextPrecision, &a.Metrics.ContextRecall, &a.Metrics.Faithfulness,
			&a.Metrics.AnswerRelevancy, &a.Metrics.RetrievalAccuracy,
			&a.OverallScore, &degraded, &a.DocCount, &latencyMS, &evaluatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning evaluation: %w", err)
		}
		a.Degraded = degraded != 0
		a.Latency = time.Duration(latencyMS) * time.Millisecond
		a.EvaluatedAt, _ = time.Parse(time.RFC3339Nano, evaluatedAt)
		out = append(out, a)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
