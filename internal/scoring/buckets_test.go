package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"convoscore/internal/domain"
)

func TestSentimentLabelFor(t *testing.T) {
	cases := []struct {
		score float64
		want  domain.SentimentLabel
	}{
		{0.0, domain.SentimentVeryNegative},
		{0.19, domain.SentimentVeryNegative},
		{0.2, domain.SentimentNegative},
		{0.39, domain.SentimentNegative},
		{0.4, domain.SentimentNeutral},
		{0.5, domain.SentimentNeutral},
		{0.6, domain.SentimentPositive},
		{0.79, domain.SentimentPositive},
		{0.8, domain.SentimentVeryPositive},
		{1.0, domain.SentimentVeryPositive},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SentimentLabelFor(tc.score), "score %v", tc.score)
	}
}

func TestRiskLevelFor(t *testing.T) {
	cases := []struct {
		score float64
		want  domain.RiskLevel
	}{
		{0.0, domain.RiskLow},
		{0.29, domain.RiskLow},
		{0.3, domain.RiskMedium},
		{0.59, domain.RiskMedium},
		{0.6, domain.RiskHigh},
		{0.79, domain.RiskHigh},
		{0.8, domain.RiskCritical},
		{1.0, domain.RiskCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RiskLevelFor(tc.score), "score %v", tc.score)
	}
}

func TestBoundariesBelongToUpperBucket(t *testing.T) {
	// Every interior boundary resolves to the bucket it opens, not the one
	// it closes.
	assert.Equal(t, domain.SentimentNegative, SentimentLabelFor(0.2))
	assert.Equal(t, domain.SentimentNeutral, SentimentLabelFor(0.4))
	assert.Equal(t, domain.SentimentPositive, SentimentLabelFor(0.6))
	assert.Equal(t, domain.SentimentVeryPositive, SentimentLabelFor(0.8))
	assert.Equal(t, domain.RiskMedium, RiskLevelFor(0.3))
	assert.Equal(t, domain.RiskHigh, RiskLevelFor(0.6))
	assert.Equal(t, domain.RiskCritical, RiskLevelFor(0.8))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-0.5))
	assert.Equal(t, 1.0, clamp01(1.5))
	assert.Equal(t, 0.7, clamp01(0.7))
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, mean(nil))
	assert.InDelta(t, 0.5, mean([]float64{0.2, 0.8}), 1e-9)
}
