package satisfaction

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRatings(t *testing.T, tr *Tracker, ratings ...int) {
	t.Helper()
	for _, r := range ratings {
		_, err := tr.Record("msg", r, "")
		require.NoError(t, err)
	}
}

func TestRecord(t *testing.T) {
	tr := NewTracker(NewMemoryStore())

	rec, err := tr.Record("msg-1", 4, "quick resolution")
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "msg-1", rec.MessageID)
	assert.Equal(t, 4, rec.Rating)
	assert.Equal(t, "quick resolution", rec.Comment)
	assert.False(t, rec.Timestamp.IsZero())
}

func TestRecordRejectsOutOfRange(t *testing.T) {
	tr := NewTracker(NewMemoryStore())

	for _, bad := range []int{0, 6, -1} {
		_, err := tr.Record("msg", bad, "")
		assert.Error(t, err, "rating %d", bad)
	}
	count, err := NewMemoryStore().Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAverageRating(t *testing.T) {
	tr := NewTracker(NewMemoryStore())

	_, ok, err := tr.AverageRating(0)
	require.NoError(t, err)
	assert.False(t, ok, "empty log has no average")

	seedRatings(t, tr, 2, 4, 5, 5)

	avg, ok, err := tr.AverageRating(0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 4.0, avg, 1e-9)

	avg, ok, err = tr.AverageRating(2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 5.0, avg, 1e-9)
}

func TestTrend(t *testing.T) {
	cases := []struct {
		name    string
		ratings []int
		window  int
		want    TrendDirection
	}{
		{"empty", nil, 5, TrendInsufficientData},
		{"below two windows", []int{5, 5, 5, 5, 5, 5, 5, 5, 5}, 5, TrendInsufficientData},
		{"improving", []int{2, 2, 2, 2, 2, 4, 4, 4, 4, 4}, 5, TrendImproving},
		{"declining", []int{5, 5, 5, 1, 1, 1}, 3, TrendDeclining},
		{"stable", []int{3, 3, 3, 3}, 2, TrendStable},
		{"delta at threshold is stable", []int{3, 3, 3, 3, 3, 3, 4, 4, 3, 3}, 5, TrendStable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := NewTracker(NewMemoryStore())
			seedRatings(t, tr, tc.ratings...)

			got, err := tr.Trend(tc.window)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Direction)
			assert.Equal(t, len(tc.ratings), got.RecordCount)
		})
	}
}

func TestTrendWindowAverages(t *testing.T) {
	tr := NewTracker(NewMemoryStore())
	seedRatings(t, tr, 2, 2, 2, 2, 2, 4, 4, 4, 4, 4)

	got, err := tr.Trend(5)
	require.NoError(t, err)
	assert.Equal(t, TrendImproving, got.Direction)
	assert.InDelta(t, 2.0, got.FirstAverage, 1e-9)
	assert.InDelta(t, 4.0, got.LastAverage, 1e-9)
	assert.InDelta(t, 2.0, got.Delta, 1e-9)

	avg, ok, err := tr.AverageRating(0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 3.0, avg, 1e-9)
}

func TestMemoryStoreConcurrentAppends(t *testing.T) {
	store := NewMemoryStore()
	tr := NewTracker(store)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_, err := tr.Record("msg", 3, "")
				assert.NoError(t, err)
				recs, err := store.Recent(0)
				assert.NoError(t, err)
				for _, r := range recs {
					assert.Equal(t, 3, r.Rating, "reads never observe a torn record")
				}
			}
		}()
	}
	wg.Wait()

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 200, count)
}
