// Package satisfaction maintains the append-only customer rating log and
// derives rolling averages and trend classifications from it. The log has an
// independent lifetime from any single conversation.
package satisfaction

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"convoscore/internal/domain"
)

// TrendDirection classifies how ratings are moving over the log.
type TrendDirection string

const (
	TrendImproving        TrendDirection = "improving"
	TrendDeclining        TrendDirection = "declining"
	TrendStable           TrendDirection = "stable"
	TrendInsufficientData TrendDirection = "insufficient_data"
)

// trendThreshold is the minimum window-average delta treated as movement.
const trendThreshold = 0.4

// Store persists satisfaction records. Appends are never edited or deleted;
// Recent returns the last n records in insertion order, or all of them when
// n <= 0.
type Store interface {
	Append(rec domain.SatisfactionRecord) error
	Recent(n int) ([]domain.SatisfactionRecord, error)
	Count() (int, error)
}

// Trend is the classified movement between the oldest and newest rating
// windows.
type Trend struct {
	Direction    TrendDirection `json:"direction"`
	Delta        float64        `json:"delta"`
	FirstAverage float64        `json:"firstAverage"`
	LastAverage  float64        `json:"lastAverage"`
	RecordCount  int            `json:"recordCount"`
}

// Tracker records explicit customer ratings and summarizes them.
type Tracker struct {
	store Store
}

// NewTracker creates a tracker over the given store.
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store}
}

// Record appends a rating to the log. Ratings are integers from 1 to 5.
func (t *Tracker) Record(messageID string, rating int, comment string) (domain.SatisfactionRecord, error) {
	if rating < 1 || rating > 5 {
		return domain.SatisfactionRecord{}, fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}

	rec := domain.SatisfactionRecord{
		ID:        uuid.NewString(),
		MessageID: messageID,
		Rating:    rating,
		Comment:   comment,
		Timestamp: time.Now(),
	}
	if err := t.store.Append(rec); err != nil {
		return domain.SatisfactionRecord{}, fmt.Errorf("appending satisfaction record: %w", err)
	}
	return rec, nil
}

// AverageRating returns the mean rating over the last n records, or over the
// whole log when n <= 0. The second return is false when the log is empty.
func (t *Tracker) AverageRating(n int) (float64, bool, error) {
	recs, err := t.store.Recent(n)
	if err != nil {
		return 0, false, err
	}
	if len(recs) == 0 {
		return 0, false, nil
	}

	sum := 0
	for _, r := range recs {
		sum += r.Rating
	}
	return float64(sum) / float64(len(recs)), true, nil
}

// Trend compares the mean of the first window records against the mean of the
// last window records. It needs at least 2*window records, otherwise the
// direction is insufficient_data.
func (t *Tracker) Trend(window int) (Trend, error) {
	if window < 1 {
		window = 1
	}

	recs, err := t.store.Recent(0)
	if err != nil {
		return Trend{}, err
	}
	if len(recs) < 2*window {
		return Trend{Direction: TrendInsufficientData, RecordCount: len(recs)}, nil
	}

	first := windowMean(recs[:window])
	last := windowMean(recs[len(recs)-window:])
	delta := last - first

	direction := TrendStable
	if delta > trendThreshold {
		direction = TrendImproving
	} else if delta < -trendThreshold {
		direction = TrendDeclining
	}

	return Trend{
		Direction:    direction,
		Delta:        delta,
		FirstAverage: first,
		LastAverage:  last,
		RecordCount:  len(recs),
	}, nil
}

func windowMean(recs []domain.SatisfactionRecord) float64 {
	sum := 0
	for _, r := range recs {
		sum += r.Rating
	}
	return float64(sum) / float64(len(recs))
}
