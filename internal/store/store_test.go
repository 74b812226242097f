package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"convoscore/internal/domain"
	"convoscore/internal/logging"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	log := logging.New(nil, "silent")
	db, err := Open(":memory:", log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// --- DB/Migration tests ---

func TestOpen_InMemory(t *testing.T) {
	db := testDB(t)
	assert.NotNil(t, db)
	assert.NotNil(t, db.SQL())
}

func TestMigrations_Applied(t *testing.T) {
	db := testDB(t)

	var count int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), count)
}

func TestMigrations_Idempotent(t *testing.T) {
	db := testDB(t)

	// Running migrate again should be a no-op
	err := db.migrate()
	require.NoError(t, err)

	var count int
	err = db.sql.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), count)
}

func TestSchema_TablesExist(t *testing.T) {
	db := testDB(t)

	tables := []string{"satisfaction_records", "evaluation_history"}
	for _, table := range tables {
		var name string
		err := db.sql.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

// --- Satisfaction store tests ---

func satisfactionRec(id string, rating int) domain.SatisfactionRecord {
	return domain.SatisfactionRecord{
		ID:        id,
		MessageID: "msg-" + id,
		Rating:    rating,
		Comment:   "comment",
		Timestamp: time.Now(),
	}
}

func TestSatisfactionStore_AppendAndRecent(t *testing.T) {
	ss := NewSQLiteSatisfactionStore(testDB(t))

	for i, rec := range []domain.SatisfactionRecord{
		satisfactionRec("a", 2),
		satisfactionRec("b", 4),
		satisfactionRec("c", 5),
	} {
		require.NoError(t, ss.Append(rec), "record %d", i)
	}

	all, err := ss.Recent(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "c", all[2].ID)
	assert.Equal(t, 4, all[1].Rating)
	assert.Equal(t, "msg-b", all[1].MessageID)
	assert.False(t, all[0].Timestamp.IsZero())

	last, err := ss.Recent(2)
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, "b", last[0].ID, "window keeps insertion order")
	assert.Equal(t, "c", last[1].ID)
}

func TestSatisfactionStore_RejectsInvalidRating(t *testing.T) {
	ss := NewSQLiteSatisfactionStore(testDB(t))

	err := ss.Append(satisfactionRec("bad", 7))
	assert.Error(t, err, "CHECK constraint enforces the 1..5 range")
}

func TestSatisfactionStore_Count(t *testing.T) {
	ss := NewSQLiteSatisfactionStore(testDB(t))

	n, err := ss.Count()
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, ss.Append(satisfactionRec("a", 3)))
	n, err = ss.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// --- Evaluation store tests ---

func evalAssessment(query string, overall float64) domain.QualityAssessment {
	return domain.QualityAssessment{
		Query:    query,
		Response: "response for " + query,
		Metrics: domain.QualityMetrics{
			ContextPrecision:  0.8,
			ContextRecall:     0.7,
			Faithfulness:      0.9,
			AnswerRelevancy:   0.85,
			RetrievalAccuracy: 0.75,
		},
		OverallScore: overall,
		Degraded:     true,
		DocCount:     3,
		EvaluatedAt:  time.Now(),
		Latency:      1500 * time.Millisecond,
	}
}

func TestEvaluationStore_RoundTrip(t *testing.T) {
	es := NewSQLiteEvaluationStore(testDB(t))

	require.NoError(t, es.Append(evalAssessment("q1", 0.6)))
	require.NoError(t, es.Append(evalAssessment("q2", 0.8)))

	all, err := es.Recent(0)
	require.NoError(t, err)
	require.Len(t, all, 2)

	got := all[0]
	assert.Equal(t, "q1", got.Query)
	assert.Equal(t, "response for q1", got.Response)
	assert.Equal(t, 0.8, got.Metrics.ContextPrecision)
	assert.Equal(t, 0.75, got.Metrics.RetrievalAccuracy)
	assert.Equal(t, 0.6, got.OverallScore)
	assert.True(t, got.Degraded)
	assert.Equal(t, 3, got.DocCount)
	assert.Equal(t, 1500*time.Millisecond, got.Latency)
	assert.False(t, got.EvaluatedAt.IsZero())
}

func TestEvaluationStore_RecentWindow(t *testing.T) {
	es := NewSQLiteEvaluationStore(testDB(t))

	for _, q := range []string{"q1", "q2", "q3", "q4"} {
		require.NoError(t, es.Append(evalAssessment(q, 0.5)))
	}

	last, err := es.Recent(2)
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, "q3", last[0].Query)
	assert.Equal(t, "q4", last[1].Query)
}
