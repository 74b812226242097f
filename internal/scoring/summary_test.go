package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"convoscore/internal/domain"
)

func evalWith(overall float64) domain.QualityAssessment {
	return domain.QualityAssessment{
		Metrics: domain.QualityMetrics{
			ContextPrecision:  overall,
			ContextRecall:     overall,
			Faithfulness:      overall,
			AnswerRelevancy:   overall,
			RetrievalAccuracy: overall,
		},
		OverallScore: overall,
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil, 10)
	assert.Equal(t, 0, got.TotalEvaluations)
	assert.Equal(t, TrendInsufficientData, got.Trend)
}

func TestSummarizeAverages(t *testing.T) {
	history := []domain.QualityAssessment{
		evalWith(0.4), evalWith(0.6), evalWith(0.8),
	}

	got := Summarize(history, 10)

	assert.Equal(t, 3, got.TotalEvaluations)
	assert.InDelta(t, 0.6, got.AverageOverall, 1e-9)
	assert.InDelta(t, 0.6, got.AverageMetrics.Faithfulness, 1e-9)
	assert.Equal(t, TrendInsufficientData, got.Trend, "fewer than five evaluations")
}

func TestSummarizeWindow(t *testing.T) {
	history := []domain.QualityAssessment{
		evalWith(0.1), evalWith(0.9), evalWith(0.9),
	}

	got := Summarize(history, 2)

	assert.Equal(t, 2, got.TotalEvaluations)
	assert.InDelta(t, 0.9, got.AverageOverall, 1e-9)
}

func TestSummarizeTrend(t *testing.T) {
	cases := []struct {
		name    string
		overall []float64
		want    TrendDirection
	}{
		{"improving", []float64{0.4, 0.4, 0.6, 0.7, 0.8}, TrendImproving},
		{"declining", []float64{0.8, 0.8, 0.6, 0.5, 0.4}, TrendDeteriorating},
		{"stable", []float64{0.6, 0.61, 0.6, 0.62, 0.6}, TrendStable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var history []domain.QualityAssessment
			for _, v := range tc.overall {
				history = append(history, evalWith(v))
			}
			assert.Equal(t, tc.want, Summarize(history, 0).Trend)
		})
	}
}
