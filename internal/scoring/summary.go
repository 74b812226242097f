package scoring

import "convoscore/internal/domain"

// EvaluationSummary is a rolling view over recent quality assessments.
type EvaluationSummary struct {
	TotalEvaluations int                   `json:"totalEvaluations"`
	AverageMetrics   domain.QualityMetrics `json:"averageMetrics"`
	AverageOverall   float64               `json:"averageOverall"`
	Trend            TrendDirection        `json:"trend"`
}

// Summarize computes rolling averages over the last n assessments and an
// overall-score trend. The trend compares the mean of the older half against
// the newer half and needs at least five assessments to be meaningful.
func Summarize(history []domain.QualityAssessment, n int) EvaluationSummary {
	if n > 0 && len(history) > n {
		history = history[len(history)-n:]
	}
	if len(history) == 0 {
		return EvaluationSummary{Trend: TrendInsufficientData}
	}

	var sum domain.QualityMetrics
	overall := make([]float64, len(history))
	for i, a := range history {
		sum.ContextPrecision += a.Metrics.ContextPrecision
		sum.ContextRecall += a.Metrics.ContextRecall
		sum.Faithfulness += a.Metrics.Faithfulness
		sum.AnswerRelevancy += a.Metrics.AnswerRelevancy
		sum.RetrievalAccuracy += a.Metrics.RetrievalAccuracy
		overall[i] = a.OverallScore
	}
	count := float64(len(history))

	return EvaluationSummary{
		TotalEvaluations: len(history),
		AverageMetrics: domain.QualityMetrics{
			ContextPrecision:  sum.ContextPrecision / count,
			ContextRecall:     sum.ContextRecall / count,
			Faithfulness:      sum.Faithfulness / count,
			AnswerRelevancy:   sum.AnswerRelevancy / count,
			RetrievalAccuracy: sum.RetrievalAccuracy / count,
		},
		AverageOverall: mean(overall),
		Trend:          overallTrend(overall),
	}
}

func overallTrend(overall []float64) TrendDirection {
	if len(overall) < 5 {
		return TrendInsufficientData
	}
	mid := len(overall) / 2
	delta := mean(overall[mid:]) - mean(overall[:mid])
	if delta > 0.05 {
		return TrendImproving
	}
	if delta < -0.05 {
		return TrendDeteriorating
	}
	return TrendStable
}
