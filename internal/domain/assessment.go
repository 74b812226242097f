package domain

import "time"

// SentimentLabel buckets a sentiment score into a coarse category.
type SentimentLabel string

const (
	SentimentVeryNegative SentimentLabel = "very_negative"
	SentimentNegative     SentimentLabel = "negative"
	SentimentNeutral      SentimentLabel = "neutral"
	SentimentPositive     SentimentLabel = "positive"
	SentimentVeryPositive SentimentLabel = "very_positive"
)

// Emotion is the primary emotion detected in a customer message.
type Emotion string

const (
	EmotionAnger          Emotion = "anger"
	EmotionFrustration    Emotion = "frustration"
	EmotionDisappointment Emotion = "disappointment"
	EmotionConfusion      Emotion = "confusion"
	EmotionNeutral        Emotion = "neutral"
	EmotionSatisfaction   Emotion = "satisfaction"
	EmotionHappiness      Emotion = "happiness"
	EmotionExcitement     Emotion = "excitement"
)

// Emotions lists every recognized primary emotion, in prompt order.
var Emotions = []Emotion{
	EmotionAnger, EmotionFrustration, EmotionDisappointment, EmotionConfusion,
	EmotionNeutral, EmotionSatisfaction, EmotionHappiness, EmotionExcitement,
}

// SentimentAssessment is the per-message sentiment judgment. Label is always
// the bucket of Score; the two are never set independently.
type SentimentAssessment struct {
	Score          float64        `json:"score"`
	Label          SentimentLabel `json:"label"`
	Confidence     float64        `json:"confidence"`
	PrimaryEmotion Emotion        `json:"primaryEmotion"`
	Urgency        float64        `json:"urgency"`
	Indicators     []string       `json:"indicators"`
	AnalyzedAt     time.Time      `json:"analyzedAt"`
}

// RiskLevel buckets an escalation risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskAssessment is the escalation risk judgment for the current turn.
type RiskAssessment struct {
	Score              float64       `json:"score"`
	Level              RiskLevel     `json:"level"`
	Confidence         float64       `json:"confidence"`
	PrimaryFactors     []string      `json:"primaryFactors,omitempty"`
	RecommendedActions []string      `json:"recommendedActions"`
	Priority           string        `json:"priority"`
	TargetResponseTime time.Duration `json:"targetResponseTime"`
	Degraded           bool          `json:"degraded,omitempty"`
}

// Tone is the response tone selected for the agent's reply.
type Tone string

const (
	ToneEmpathetic   Tone = "empathetic"
	ToneProfessional Tone = "professional"
	ToneApologetic   Tone = "apologetic"
	ToneReassuring   Tone = "reassuring"
	ToneUrgent       Tone = "urgent"
)

// QualityMetrics holds the five independent response quality sub-metrics,
// each in [0,1].
type QualityMetrics struct {
	ContextPrecision  float64 `json:"contextPrecision"`
	ContextRecall     float64 `json:"contextRecall"`
	Faithfulness      float64 `json:"faithfulness"`
	AnswerRelevancy   float64 `json:"answerRelevancy"`
	RetrievalAccuracy float64 `json:"retrievalAccuracy"`
}

// QualityAssessment is the aggregated evaluation of a generated response
// against its retrieved context. Degraded is set when any sub-metric fell
// back because the judge was unavailable.
type QualityAssessment struct {
	Query        string         `json:"query"`
	Response     string         `json:"response"`
	Metrics      QualityMetrics `json:"metrics"`
	OverallScore float64        `json:"overallScore"`
	Degraded     bool           `json:"degraded"`
	DocCount     int            `json:"retrievedDocsCount"`
	EvaluatedAt  time.Time      `json:"evaluatedAt"`
	Latency      time.Duration  `json:"latency"`
}

// SatisfactionRecord is one explicit user rating. Records are append-only;
// they are never edited or deleted.
type SatisfactionRecord struct {
	ID        string    `json:"id"`
	MessageID string    `json:"messageId"`
	Rating    int       `json:"rating"` // 1-5
	Comment   string    `json:"comment,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
