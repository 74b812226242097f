package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"convoscore/internal/domain"
)

func TestSelectTone(t *testing.T) {
	ptr := func(v float64) *float64 { return &v }

	cases := []struct {
		name      string
		sentiment domain.SentimentAssessment
		satAvg    *float64
		want      domain.Tone
	}{
		{
			name:      "low satisfaction with negative sentiment",
			sentiment: domain.SentimentAssessment{Score: 0.3},
			satAvg:    ptr(2.5),
			want:      domain.ToneApologetic,
		},
		{
			name:      "low satisfaction with ok sentiment",
			sentiment: domain.SentimentAssessment{Score: 0.6},
			satAvg:    ptr(2.5),
			want:      domain.ToneEmpathetic,
		},
		{
			name:      "high satisfaction and positive sentiment",
			sentiment: domain.SentimentAssessment{Score: 0.7},
			satAvg:    ptr(4.5),
			want:      domain.ToneReassuring,
		},
		{
			name:      "high satisfaction but neutral sentiment falls through",
			sentiment: domain.SentimentAssessment{Score: 0.55},
			satAvg:    ptr(4.5),
			want:      domain.ToneProfessional,
		},
		{
			name:      "urgency beats low score rules",
			sentiment: domain.SentimentAssessment{Score: 0.2, Urgency: 0.9},
			want:      domain.ToneUrgent,
		},
		{
			name:      "very negative with anger",
			sentiment: domain.SentimentAssessment{Score: 0.2, PrimaryEmotion: domain.EmotionAnger},
			want:      domain.ToneEmpathetic,
		},
		{
			name:      "very negative with frustration",
			sentiment: domain.SentimentAssessment{Score: 0.25, PrimaryEmotion: domain.EmotionFrustration},
			want:      domain.ToneEmpathetic,
		},
		{
			name:      "very negative without anger",
			sentiment: domain.SentimentAssessment{Score: 0.2, PrimaryEmotion: domain.EmotionConfusion},
			want:      domain.ToneApologetic,
		},
		{
			name:      "mildly negative",
			sentiment: domain.SentimentAssessment{Score: 0.45},
			want:      domain.ToneEmpathetic,
		},
		{
			name:      "neutral",
			sentiment: domain.SentimentAssessment{Score: 0.6},
			want:      domain.ToneProfessional,
		},
		{
			name:      "positive",
			sentiment: domain.SentimentAssessment{Score: 0.85},
			want:      domain.ToneReassuring,
		},
		{
			name:      "satisfaction override beats urgency",
			sentiment: domain.SentimentAssessment{Score: 0.3, Urgency: 0.95},
			satAvg:    ptr(2.0),
			want:      domain.ToneApologetic,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SelectTone(tc.sentiment, tc.satAvg))
		})
	}
}
