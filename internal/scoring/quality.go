package scoring

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"convoscore/internal/domain"
	"convoscore/internal/judge"
	"convoscore/internal/logging"
)

// Fixed weights for the overall score. contextRecall is computed and reported
// but intentionally excluded from the weighted sum.
var overallWeights = map[string]float64{
	"contextPrecision":  0.2,
	"faithfulness":      0.3,
	"answerRelevancy":   0.3,
	"retrievalAccuracy": 0.2,
}

// maxContextChars bounds how much retrieved content is embedded in a prompt.
const maxContextChars = 2000

// maxDocChars bounds per-document content in relevance prompts.
const maxDocChars = 500

// ResponseQualityScorer evaluates a generated response against its retrieved
// context using five independent sub-metrics. The sub-metrics are evaluated
// concurrently; each falls back to 0.5 on judge failure and never raises.
type ResponseQualityScorer struct {
	judge judge.Client
	log   *logging.Logger
}

// NewResponseQualityScorer creates a quality scorer using the given judge client.
func NewResponseQualityScorer(j judge.Client, log *logging.Logger) *ResponseQualityScorer {
	return &ResponseQualityScorer{judge: j, log: log.Sub("quality")}
}

// Evaluate computes the quality assessment for a response. groundTruth is
// optional; when empty, contextRecall uses the similarity-score heuristic
// instead of a judge call.
func (s *ResponseQualityScorer) Evaluate(ctx context.Context, query, response string, docs []domain.Document, groundTruth string) domain.QualityAssessment {
	start := time.Now()

	var m domain.QualityMetrics
	var degraded struct {
		sync.Mutex
		any bool
	}
	markDegraded := func(fell bool) {
		if fell {
			degraded.Lock()
			degraded.any = true
			degraded.Unlock()
		}
	}

	// The five sub-metrics share no mutable state, so they run concurrently
	// and total latency is bounded by the slowest single call.
	var g errgroup.Group
	g.Go(func() error {
		var fell bool
		m.ContextPrecision, fell = s.contextPrecision(ctx, query, docs)
		markDegraded(fell)
		return nil
	})
	g.Go(func() error {
		var fell bool
		m.ContextRecall, fell = s.contextRecall(ctx, query, docs, groundTruth)
		markDegraded(fell)
		return nil
	})
	g.Go(func() error {
		var fell bool
		m.Faithfulness, fell = s.faithfulness(ctx, response, docs)
		markDegraded(fell)
		return nil
	})
	g.Go(func() error {
		var fell bool
		m.AnswerRelevancy, fell = s.answerRelevancy(ctx, query, response)
		markDegraded(fell)
		return nil
	})
	g.Go(func() error {
		var fell bool
		m.RetrievalAccuracy, fell = s.retrievalAccuracy(ctx, query, docs)
		markDegraded(fell)
		return nil
	})
	g.Wait()

	return domain.QualityAssessment{
		Query:        query,
		Response:     response,
		Metrics:      m,
		OverallScore: OverallScore(m),
		Degraded:     degraded.any,
		DocCount:     len(docs),
		EvaluatedAt:  time.Now(),
		Latency:      time.Since(start),
	}
}

// OverallScore combines the sub-metrics with the fixed weights.
func OverallScore(m domain.QualityMetrics) float64 {
	return m.ContextPrecision*overallWeights["contextPrecision"] +
		m.Faithfulness*overallWeights["faithfulness"] +
		m.AnswerRelevancy*overallWeights["answerRelevancy"] +
		m.RetrievalAccuracy*overallWeights["retrievalAccuracy"]
}

// contextPrecision rates the relevance-vs-noise of the retrieved context.
func (s *ResponseQualityScorer) contextPrecision(ctx context.Context, query string, docs []domain.Document) (float64, bool) {
	if len(docs) == 0 {
		return 0.0, false
	}

	instruction := fmt.Sprintf(`Evaluate the precision of the retrieved context for answering the query.

Query: %q

Retrieved Context:
%s

Rate the precision from 0.0 to 1.0 based on:
1. How relevant each piece of context is to the query
2. How much irrelevant information is included
3. Whether the context directly addresses the query

Respond with JSON:
{
    "precision_score": number,
    "reasoning": "explanation"
}`, query, joinedContent(docs))

	score, err := s.scoreCall(ctx, instruction, "precision_score")
	if err != nil {
		s.log.Warn().Err(err).Msg("context precision evaluation failed")
		return 0.5, true
	}
	return score, false
}

// contextRecall rates how much of the needed information was retrieved.
// Without ground truth it uses a similarity-score heuristic and makes no
// judge call.
func (s *ResponseQualityScorer) contextRecall(ctx context.Context, query string, docs []domain.Document, groundTruth string) (float64, bool) {
	if len(docs) == 0 {
		return 0.0, false
	}

	if groundTruth == "" {
		scores := make([]float64, len(docs))
		for i, d := range docs {
			scores[i] = d.Score
		}
		return min(1.0, mean(scores)*1.2), false
	}

	instruction := fmt.Sprintf(`Evaluate how well the retrieved context covers the information needed to answer the query.

Query: %q
Ground Truth Answer: %q

Retrieved Context:
%s

Rate the recall from 0.0 to 1.0 based on:
1. How much of the needed information is present in the context
2. Whether key facts from ground truth are covered
3. Completeness of the retrieved information

Respond with JSON:
{
    "recall_score": number,
    "reasoning": "explanation"
}`, query, groundTruth, joinedContent(docs))

	score, err := s.scoreCall(ctx, instruction, "recall_score")
	if err != nil {
		s.log.Warn().Err(err).Msg("context recall evaluation failed")
		return 0.5, true
	}
	return score, false
}

// faithfulness rates how well the response avoids claims unsupported by the
// retrieved context.
func (s *ResponseQualityScorer) faithfulness(ctx context.Context, response string, docs []domain.Document) (float64, bool) {
	if len(docs) == 0 {
		return 0.5, false
	}

	instruction := fmt.Sprintf(`Evaluate how faithful the response is to the provided context.

Context:
%s

Response: %q

Rate the faithfulness from 0.0 to 1.0 based on:
1. Whether the response contains information not in the context (hallucination)
2. How accurately the response reflects the context
3. Whether facts are correctly represented

Respond with JSON:
{
    "faithfulness_score": number,
    "reasoning": "explanation"
}`, joinedContent(docs), response)

	score, err := s.scoreCall(ctx, instruction, "faithfulness_score")
	if err != nil {
		s.log.Warn().Err(err).Msg("faithfulness evaluation failed")
		return 0.5, true
	}
	return score, false
}

// answerRelevancy rates the directness and usefulness of the response for the
// query. It has no document dependency and is always attempted.
func (s *ResponseQualityScorer) answerRelevancy(ctx context.Context, query, response string) (float64, bool) {
	instruction := fmt.Sprintf(`Evaluate how relevant and helpful the response is for the given query.

Query: %q
Response: %q

Rate the relevancy from 0.0 to 1.0 based on:
1. How directly the response addresses the query
2. Whether the response provides useful information
3. How well the response would satisfy the user's need

Respond with JSON:
{
    "relevancy_score": number,
    "reasoning": "explanation"
}`, query, response)

	score, err := s.scoreCall(ctx, instruction, "relevancy_score")
	if err != nil {
		s.log.Warn().Err(err).Msg("answer relevancy evaluation failed")
		return 0.5, true
	}
	return score, false
}

// retrievalAccuracy combines each document's similarity score with a
// judge-rated relevance score, then aggregates with rank weights 1/(rank+1)
// normalized by the weight sum. A failed per-document judge call keeps that
// document's raw similarity score.
func (s *ResponseQualityScorer) retrievalAccuracy(ctx context.Context, query string, docs []domain.Document) (float64, bool) {
	if len(docs) == 0 {
		return 0.0, false
	}

	combined := make([]float64, len(docs))
	anyFell := false
	var mu sync.Mutex

	var g errgroup.Group
	for i, doc := range docs {
		g.Go(func() error {
			instruction := fmt.Sprintf(`Rate how relevant this document is to the query on a scale of 0.0 to 1.0.

Query: %q
Document Title: %q
Document Content: %q

Respond with JSON:
{
    "relevance_score": number
}`, query, doc.Title, truncateChars(doc.Content, maxDocChars))

			aiScore, err := s.scoreCall(ctx, instruction, "relevance_score")
			if err != nil {
				combined[i] = doc.Score
				mu.Lock()
				anyFell = true
				mu.Unlock()
				return nil
			}
			combined[i] = (doc.Score + aiScore) / 2
			return nil
		})
	}
	g.Wait()

	// Rank-weighted average; weights are not renormalized for the requested
	// top-k, so low-ranked documents contribute vanishingly little.
	weightedSum, totalWeight := 0.0, 0.0
	for rank, score := range combined {
		w := 1.0 / float64(rank+1)
		weightedSum += score * w
		totalWeight += w
	}
	return weightedSum / totalWeight, anyFell
}

// scoreCall asks the judge for a single numeric field and clamps it to [0,1].
func (s *ResponseQualityScorer) scoreCall(ctx context.Context, instruction, field string) (float64, error) {
	raw, err := s.judge.EvaluateJSON(ctx, judge.Request{Instruction: instruction, Temperature: 0.2})
	if err != nil {
		return 0, err
	}

	var parsed map[string]any
	if err := judge.Decode(raw, &parsed); err != nil {
		return 0, err
	}
	v, ok := parsed[field].(float64)
	if !ok {
		return 0, fmt.Errorf("%w: missing field %q", judge.ErrMalformed, field)
	}
	return clamp01(v), nil
}

func joinedContent(docs []domain.Document) string {
	parts := make([]string, len(docs))
	for i, d := range docs {
		parts[i] = d.Content
	}
	return truncateChars(strings.Join(parts, "\n"), maxContextChars)
}

func truncateChars(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
