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

// triggerKeywords are scanned by DetectTriggers. A superset of the signal
// extractor's escalation keywords.
var triggerKeywords = []string{
	"manager", "supervisor", "complaint", "unacceptable",
	"terrible", "awful", "worst", "cancel", "refund",
	"lawsuit", "attorney", "fraud", "scam", "useless",
}

// recommendation is the fixed action plan for one risk level.
type recommendation struct {
	Actions            []string
	Priority           string
	TargetResponseTime time.Duration
}

var recommendations = map[domain.RiskLevel]recommendation{
	domain.RiskLow: {
		Actions:            []string{"Continue standard support", "Monitor sentiment"},
		Priority:           "normal",
		TargetResponseTime: 24 * time.Hour,
	},
	domain.RiskMedium: {
		Actions:            []string{"Prioritize response", "Consider proactive follow-up", "Manager review"},
		Priority:           "high",
		TargetResponseTime: 4 * time.Hour,
	},
	domain.RiskHigh: {
		Actions:            []string{"Immediate supervisor involvement", "Expedited resolution", "Proactive communication"},
		Priority:           "urgent",
		TargetResponseTime: time.Hour,
	},
	domain.RiskCritical: {
		Actions:            []string{"Immediate escalation", "Manager intervention", "Priority handling"},
		Priority:           "critical",
		TargetResponseTime: 15 * time.Minute,
	},
}

// TriggerResult is the outcome of scanning a message for escalation triggers.
type TriggerResult struct {
	TriggersFound        []string         `json:"triggersFound"`
	EscalationLikelihood float64          `json:"escalationLikelihood"`
	Severity             domain.RiskLevel `json:"severity"`
	Reasoning            string           `json:"reasoning,omitempty"`
	KeywordCount         int              `json:"keywordCount"`
}

// EscalationScorer predicts how likely a conversation is to require human or
// managerial intervention. It prefers a judge-backed prediction and falls
// back to a deterministic rule-based score when the judge is unavailable.
type EscalationScorer struct {
	judge judge.Client
	log   *logging.Logger
}

// NewEscalationScorer creates an escalation scorer using the given judge client.
func NewEscalationScorer(j judge.Client, log *logging.Logger) *EscalationScorer {
	return &EscalationScorer{judge: j, log: log.Sub("escalation")}
}

const escalationSystemPrompt = "You are an expert in customer service escalation prediction. " +
	"Analyze conversations to predict when customers might escalate issues."

type escalationJudgment struct {
	EscalationRisk float64  `json:"escalation_risk"`
	Confidence     float64  `json:"confidence"`
	PrimaryFactors []string `json:"primary_factors"`
	Recommendation string   `json:"recommendation"`
}

// Predict returns the escalation risk score in [0,1] for the current message
// given the conversation so far.
func (s *EscalationScorer) Predict(ctx context.Context, message string, history domain.History) float64 {
	return s.Assess(ctx, message, history).Score
}

// Assess computes the full risk assessment: score, bucketed level, and the
// fixed recommendation set for that level.
func (s *EscalationScorer) Assess(ctx context.Context, message string, history domain.History) domain.RiskAssessment {
	sig := ExtractSignals(message, history)

	score, confidence, factors, degraded := s.judgePredict(ctx, message, sig, history)
	if degraded {
		score = FallbackRisk(sig)
		confidence = 0.5
		factors = nil
		s.log.Debug().Float64("score", score).Msg("using rule-based escalation fallback")
	}

	level := RiskLevelFor(score)
	rec := recommendations[level]

	return domain.RiskAssessment{
		Score:              score,
		Level:              level,
		Confidence:         confidence,
		PrimaryFactors:     factors,
		RecommendedActions: rec.Actions,
		Priority:           rec.Priority,
		TargetResponseTime: rec.TargetResponseTime,
		Degraded:           degraded,
	}
}

func (s *EscalationScorer) judgePredict(ctx context.Context, message string, sig SignalVector, history domain.History) (score, confidence float64, factors []string, degraded bool) {
	raw, err := s.judge.EvaluateJSON(ctx, judge.Request{
		System:      escalationSystemPrompt,
		Instruction: escalationInstruction(message, sig, history),
		Temperature: 0.3,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("escalation prediction failed")
		return 0, 0, nil, true
	}

	var j escalationJudgment
	if err := judge.Decode(raw, &j); err != nil {
		s.log.Warn().Err(err).Msg("escalation judgment unparsable")
		return 0, 0, nil, true
	}

	return clamp01(j.EscalationRisk), clamp01(j.Confidence), j.PrimaryFactors, false
}

// FallbackRisk is the deterministic rule-based escalation prediction used
// when the judge is unavailable. Each contribution is capped independently
// before summing; the result is clamped to 1.0.
func FallbackRisk(sig SignalVector) float64 {
	risk := 0.0

	switch {
	case sig.CurrentSentiment < 0.3:
		risk += 0.4
	case sig.CurrentSentiment < 0.5:
		risk += 0.2
	}

	risk += min(0.3, float64(sig.EscalationKeywordCount)*0.1)
	risk += min(0.2, float64(sig.UrgencyWordCount)*0.1)

	switch {
	case sig.CustomerMessageCount > 10:
		risk += 0.3
	case sig.CustomerMessageCount > 5:
		risk += 0.1
	}

	if sig.SentimentTrend < -0.2 {
		risk += 0.3
	}

	return min(1.0, risk)
}

// Recommendation returns the fixed action plan for a risk score's level.
func Recommendation(score float64) (domain.RiskLevel, []string, string, time.Duration) {
	level := RiskLevelFor(score)
	rec := recommendations[level]
	return level, rec.Actions, rec.Priority, rec.TargetResponseTime
}

type triggerJudgment struct {
	EscalationLikelihood float64 `json:"escalation_likelihood"`
	Severity             string  `json:"severity"`
	Reasoning            string  `json:"reasoning"`
}

// DetectTriggers scans a message for escalation trigger keywords. Without any
// hit it returns a zero result and never calls the judge; with hits it asks
// the judge to rate likelihood and severity, defaulting to a medium result
// when the judge fails.
func (s *EscalationScorer) DetectTriggers(ctx context.Context, text string) TriggerResult {
	lower := strings.ToLower(text)
	var found []string
	for _, kw := range triggerKeywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}

	if len(found) == 0 {
		return TriggerResult{
			TriggersFound:        []string{},
			EscalationLikelihood: 0.0,
			Severity:             domain.RiskLow,
			Reasoning:            "No escalation keywords detected",
			KeywordCount:         0,
		}
	}

	result := TriggerResult{
		TriggersFound: found,
		KeywordCount:  len(found),
	}

	raw, err := s.judge.EvaluateJSON(ctx, judge.Request{
		Instruction: triggerInstruction(text, found),
		Temperature: 0.2,
	})
	var j triggerJudgment
	if err == nil {
		err = judge.Decode(raw, &j)
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("trigger analysis failed, using defaults")
		result.EscalationLikelihood = 0.5
		result.Severity = domain.RiskMedium
		return result
	}

	result.EscalationLikelihood = clamp01(j.EscalationLikelihood)
	result.Severity = parseSeverity(j.Severity)
	result.Reasoning = j.Reasoning
	return result
}

func parseSeverity(s string) domain.RiskLevel {
	switch domain.RiskLevel(s) {
	case domain.RiskLow, domain.RiskMedium, domain.RiskHigh, domain.RiskCritical:
		return domain.RiskLevel(s)
	}
	return domain.RiskMedium
}

func escalationInstruction(message string, sig SignalVector, history domain.History) string {
	var context strings.Builder
	for _, m := range history.Recent(5) {
		fmt.Fprintf(&context, "%s: %s\n", m.Sender, m.Content)
	}

	return fmt.Sprintf(`Analyze the escalation risk for this customer support conversation.

Current customer message: %q

Recent conversation context:
%s
Conversation features:
- Message count: %d
- Conversation duration: %.0f seconds
- Sentiment trend: %.2f (negative = deteriorating)
- Current sentiment: %.2f
- Escalation keywords found: %d
- Urgency indicators: %d
- Caps usage ratio: %.2f

Consider these factors:
1. Sentiment deterioration over time
2. Use of escalation keywords
3. Urgency and frustration indicators
4. Length and complexity of the issue
5. Customer communication patterns

Provide an escalation risk score from 0.0 (no risk) to 1.0 (immediate escalation likely).

Respond with JSON:
{
    "escalation_risk": number,
    "confidence": number,
    "primary_factors": ["factor1", "factor2", "factor3"],
    "recommendation": "action_recommendation"
}`,
		message, context.String(),
		sig.CustomerMessageCount, sig.ConversationDurationSeconds,
		sig.SentimentTrend, sig.CurrentSentiment,
		sig.EscalationKeywordCount, sig.UrgencyWordCount, sig.CapsRatio)
}

func triggerInstruction(text string, found []string) string {
	return fmt.Sprintf(`Analyze this customer message for escalation intent and severity.
Message: %q

Keywords detected: %s

Rate the escalation likelihood (0.0 to 1.0) and provide reasoning.
Respond with JSON:
{
    "escalation_likelihood": number,
    "severity": "low|medium|high|critical",
    "reasoning": "explanation"
}`, text, strings.Join(found, ", "))
}
