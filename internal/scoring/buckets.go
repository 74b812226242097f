// Package scoring implements the conversation risk and quality scoring engine:
// signal extraction, sentiment assessment, escalation risk prediction,
// response quality evaluation, and tone selection. All score-producing
// operations return values in [0,1] and degrade to documented fallbacks when
// the judge service is unavailable.
package scoring

import "convoscore/internal/domain"

// scoreBucket maps a half-open score interval [Lower, Upper) to a label.
// The final bucket is closed on the upper bound so 1.0 resolves to it.
type scoreBucket struct {
	Lower float64
	Upper float64
	Label string
}

var sentimentBuckets = []scoreBucket{
	{0.0, 0.2, string(domain.SentimentVeryNegative)},
	{0.2, 0.4, string(domain.SentimentNegative)},
	{0.4, 0.6, string(domain.SentimentNeutral)},
	{0.6, 0.8, string(domain.SentimentPositive)},
	{0.8, 1.0, string(domain.SentimentVeryPositive)},
}

var riskBuckets = []scoreBucket{
	{0.0, 0.3, string(domain.RiskLow)},
	{0.3, 0.6, string(domain.RiskMedium)},
	{0.6, 0.8, string(domain.RiskHigh)},
	{0.8, 1.0, string(domain.RiskCritical)},
}

// lookupBucket scans an ordered bucket table for the interval containing
// score. Scores at or above the last lower bound resolve to the last bucket,
// scores below zero to the first.
func lookupBucket(buckets []scoreBucket, score float64) string {
	for i, b := range buckets {
		last := i == len(buckets)-1
		if score >= b.Lower && (score < b.Upper || last) {
			return b.Label
		}
	}
	// Unreachable with a non-empty table; scores below the first lower bound
	// fall through the loop only if negative.
	return buckets[0].Label
}

// SentimentLabelFor buckets a sentiment score into its label.
func SentimentLabelFor(score float64) domain.SentimentLabel {
	return domain.SentimentLabel(lookupBucket(sentimentBuckets, score))
}

// RiskLevelFor buckets an escalation risk score into its level.
func RiskLevelFor(score float64) domain.RiskLevel {
	return domain.RiskLevel(lookupBucket(riskBuckets, score))
}

// clamp01 clamps v to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
