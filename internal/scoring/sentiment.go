package scoring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"convoscore/internal/domain"
	"convoscore/internal/judge"
	"convoscore/internal/logging"
)

// TrendDirection classifies how customer sentiment is moving across a
// conversation window.
type TrendDirection string

const (
	TrendImproving        TrendDirection = "improving"
	TrendDeteriorating    TrendDirection = "deteriorating"
	TrendStable           TrendDirection = "stable"
	TrendInsufficientData TrendDirection = "insufficient_data"
)

// SentimentTrend summarizes the sentiment movement over scored customer
// messages.
type SentimentTrend struct {
	Direction    TrendDirection `json:"direction"`
	Strength     float64        `json:"strength"`
	CurrentScore float64        `json:"currentScore"`
	AverageScore float64        `json:"averageScore"`
	ScoreRange   float64        `json:"scoreRange"`
	MessageCount int            `json:"messageCount"`
}

// SentimentScorer produces per-message sentiment assessments via the judge
// service, with a fixed neutral fallback when the judge fails.
type SentimentScorer struct {
	judge judge.Client
	log   *logging.Logger
}

// NewSentimentScorer creates a sentiment scorer using the given judge client.
func NewSentimentScorer(j judge.Client, log *logging.Logger) *SentimentScorer {
	return &SentimentScorer{judge: j, log: log.Sub("sentiment")}
}

const sentimentSystemPrompt = "You are an expert sentiment and emotion analysis AI. " +
	"Provide accurate, nuanced analysis of customer communications."

type sentimentJudgment struct {
	SentimentScore float64  `json:"sentiment_score"`
	Confidence     float64  `json:"confidence"`
	PrimaryEmotion string   `json:"primary_emotion"`
	Urgency        float64  `json:"urgency"`
	Indicators     []string `json:"indicators"`
}

// Assess analyzes the sentiment and emotional state of a customer message.
// It never fails: judge errors produce the fixed neutral fallback assessment.
func (s *SentimentScorer) Assess(ctx context.Context, text string) domain.SentimentAssessment {
	raw, err := s.judge.EvaluateJSON(ctx, judge.Request{
		System:      sentimentSystemPrompt,
		Instruction: sentimentInstruction(text),
		Temperature: 0.3,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("sentiment analysis failed, using neutral fallback")
		return FallbackSentiment()
	}

	var j sentimentJudgment
	if err := judge.Decode(raw, &j); err != nil {
		s.log.Warn().Err(err).Msg("sentiment judgment unparsable, using neutral fallback")
		return FallbackSentiment()
	}

	score := clamp01(j.SentimentScore)
	emotion := domain.Emotion(j.PrimaryEmotion)
	if !validEmotion(emotion) {
		emotion = domain.EmotionNeutral
	}
	indicators := j.Indicators
	if len(indicators) > 3 {
		indicators = indicators[:3]
	}

	return domain.SentimentAssessment{
		Score:          score,
		Label:          SentimentLabelFor(score),
		Confidence:     clamp01(j.Confidence),
		PrimaryEmotion: emotion,
		Urgency:        clamp01(j.Urgency),
		Indicators:     indicators,
		AnalyzedAt:     time.Now(),
	}
}

// FallbackSentiment is the exact assessment returned when the judge is
// unavailable or its response is unusable.
func FallbackSentiment() domain.SentimentAssessment {
	return domain.SentimentAssessment{
		Score:          0.5,
		Label:          domain.SentimentNeutral,
		Confidence:     0.1,
		PrimaryEmotion: domain.EmotionNeutral,
		Urgency:        0.5,
		Indicators:     []string{"analysis_failed"},
		AnalyzedAt:     time.Now(),
	}
}

// Trend analyzes the sentiment movement across scored customer messages.
// Requires at least two scored messages; with three or more it compares the
// average of the last three against the average of everything before them.
func (s *SentimentScorer) Trend(history domain.History) SentimentTrend {
	scores := history.SentimentScores()
	if len(scores) < 2 {
		return SentimentTrend{Direction: TrendInsufficientData, MessageCount: len(scores)}
	}

	var delta float64
	if len(scores) >= 3 {
		recent := mean(scores[len(scores)-3:])
		earlier := scores[0]
		if len(scores) > 3 {
			earlier = mean(scores[:len(scores)-3])
		}
		delta = recent - earlier
	} else {
		delta = scores[len(scores)-1] - scores[0]
	}

	direction := TrendStable
	if delta > 0.1 {
		direction = TrendImproving
	} else if delta < -0.1 {
		direction = TrendDeteriorating
	}

	minScore, maxScore := scores[0], scores[0]
	for _, v := range scores[1:] {
		if v < minScore {
			minScore = v
		}
		if v > maxScore {
			maxScore = v
		}
	}

	strength := delta
	if strength < 0 {
		strength = -strength
	}

	return SentimentTrend{
		Direction:    direction,
		Strength:     strength,
		CurrentScore: scores[len(scores)-1],
		AverageScore: mean(scores),
		ScoreRange:   maxScore - minScore,
		MessageCount: len(scores),
	}
}

func sentimentInstruction(text string) string {
	emotions := make([]string, len(domain.Emotions))
	for i, e := range domain.Emotions {
		emotions[i] = string(e)
	}

	return fmt.Sprintf(`Analyze the sentiment and emotional state of the following customer message.
Provide a comprehensive analysis including:

1. Sentiment score (0.0 = very negative, 1.0 = very positive)
2. Confidence level (0.0 to 1.0)
3. Primary emotion from: %s
4. Urgency level (0.0 = low, 1.0 = urgent)
5. Up to 3 key indicators that led to this analysis

Customer message: %q

Respond with JSON in this exact format:
{
    "sentiment_score": number,
    "confidence": number,
    "primary_emotion": "emotion_name",
    "urgency": number,
    "indicators": ["indicator1", "indicator2", "indicator3"]
}`, strings.Join(emotions, ", "), text)
}

func validEmotion(e domain.Emotion) bool {
	for _, known := range domain.Emotions {
		if e == known {
			return true
		}
	}
	return false
}
