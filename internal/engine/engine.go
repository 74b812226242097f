// Package engine orchestrates one conversation turn: signal extraction,
// sentiment assessment, escalation prediction, tone selection, response
// generation, and post-hoc quality evaluation. Sessions own their history;
// the engine holds no cross-session conversation state.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"convoscore/internal/domain"
	"convoscore/internal/judge"
	"convoscore/internal/logging"
	"convoscore/internal/respond"
	"convoscore/internal/retrieval"
	"convoscore/internal/satisfaction"
	"convoscore/internal/scoring"
)

// EvaluationSink receives quality assessments as they are produced. Optional;
// a nil sink drops them.
type EvaluationSink interface {
	Append(a domain.QualityAssessment) error
}

// Session is one live conversation. Created at session start, discarded at
// session end; nothing here is persisted.
type Session struct {
	ID      string
	History domain.History
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{ID: uuid.NewString()}
}

// TurnResult is everything the engine derived for one customer message.
type TurnResult struct {
	CustomerMessage domain.ConversationMessage `json:"customerMessage"`
	AgentMessage    domain.ConversationMessage `json:"agentMessage"`
	Signals         scoring.SignalVector       `json:"signals"`
	Sentiment       domain.SentimentAssessment `json:"sentiment"`
	Risk            domain.RiskAssessment      `json:"risk"`
	Tone            domain.Tone                `json:"tone"`
	Documents       []domain.Document          `json:"documents"`
	Response        respond.Result             `json:"response"`
	Quality         domain.QualityAssessment   `json:"quality"`
}

// Engine wires the scorers, retriever, generator, and satisfaction tracker
// into the per-turn pipeline.
type Engine struct {
	sentiment  *scoring.SentimentScorer
	escalation *scoring.EscalationScorer
	quality    *scoring.ResponseQualityScorer
	generator  *respond.Generator
	retriever  retrieval.Retriever
	tracker    *satisfaction.Tracker
	evals      EvaluationSink
	topK       int
	log        *logging.Logger
}

// Options configures engine construction.
type Options struct {
	Judge       judge.Client
	Retriever   retrieval.Retriever
	Tracker     *satisfaction.Tracker
	Evaluations EvaluationSink
	TopK        int
	Temperature float64
	Log         *logging.Logger
}

// New creates an engine from its collaborators.
func New(opts Options) *Engine {
	log := opts.Log.Sub("engine")
	topK := opts.TopK
	if topK < 1 {
		topK = 3
	}
	return &Engine{
		sentiment:  scoring.NewSentimentScorer(opts.Judge, opts.Log),
		escalation: scoring.NewEscalationScorer(opts.Judge, opts.Log),
		quality:    scoring.NewResponseQualityScorer(opts.Judge, opts.Log),
		generator:  respond.NewGenerator(opts.Judge, opts.Temperature, opts.Log),
		retriever:  opts.Retriever,
		tracker:    opts.Tracker,
		evals:      opts.Evaluations,
		topK:       topK,
		log:        log,
	}
}

// ProcessMessage runs the full pipeline for one customer message and appends
// both the assessed customer message and the generated agent reply to the
// session history. Judge and retrieval outages degrade per component; only
// invalid input is an error.
func (e *Engine) ProcessMessage(ctx context.Context, sess *Session, message string) (TurnResult, error) {
	if message == "" {
		return TurnResult{}, fmt.Errorf("empty message")
	}
	start := time.Now()

	signals := scoring.ExtractSignals(message, sess.History)
	sentiment := e.sentiment.Assess(ctx, message)
	risk := e.escalation.Assess(ctx, message, sess.History)
	tone := scoring.SelectTone(sentiment, e.satisfactionAverage())

	docs, err := e.retriever.Search(ctx, message, e.topK, nil)
	if err != nil {
		if errors.Is(err, retrieval.ErrInvalidInput) {
			return TurnResult{}, fmt.Errorf("searching knowledge base: %w", err)
		}
		e.log.Warn().Err(err).Msg("retrieval failed, continuing without context")
		docs = nil
	}

	var reply respond.Result
	if risk.Level == domain.RiskHigh || risk.Level == domain.RiskCritical {
		reply = respond.Result{
			Response:    e.generator.EscalationResponse(ctx, risk.Level, message),
			Tone:        tone,
			ContextUsed: 0,
			GeneratedAt: time.Now(),
		}
	} else {
		reply = e.generator.Generate(ctx, message, docs, sess.History, sentiment, tone)
	}

	quality := e.quality.Evaluate(ctx, message, reply.Response, docs, "")
	if e.evals != nil {
		if err := e.evals.Append(quality); err != nil {
			e.log.Warn().Err(err).Msg("recording evaluation failed")
		}
	}

	riskScore := risk.Score
	customerMsg := domain.ConversationMessage{
		ID:             uuid.NewString(),
		Sender:         domain.SenderCustomer,
		Content:        message,
		Timestamp:      start,
		Sentiment:      &sentiment,
		EscalationRisk: &riskScore,
	}
	agentMsg := domain.ConversationMessage{
		ID:                  uuid.NewString(),
		Sender:              domain.SenderAgent,
		Content:             reply.Response,
		Timestamp:           time.Now(),
		Tone:                tone,
		ResponseTimeSeconds: time.Since(start).Seconds(),
	}
	sess.History = append(sess.History, customerMsg, agentMsg)

	e.log.Info().
		Str("session", sess.ID).
		Float64("sentiment", sentiment.Score).
		Float64("risk", risk.Score).
		Str("level", string(risk.Level)).
		Str("tone", string(tone)).
		Msg("turn processed")

	return TurnResult{
		CustomerMessage: customerMsg,
		AgentMessage:    agentMsg,
		Signals:         signals,
		Sentiment:       sentiment,
		Risk:            risk,
		Tone:            tone,
		Documents:       docs,
		Response:        reply,
		Quality:         quality,
	}, nil
}

// RecordFeedback appends an explicit customer rating to the satisfaction log.
func (e *Engine) RecordFeedback(messageID string, rating int, comment string) (domain.SatisfactionRecord, error) {
	if e.tracker == nil {
		return domain.SatisfactionRecord{}, fmt.Errorf("no satisfaction tracker configured")
	}
	return e.tracker.Record(messageID, rating, comment)
}

// SentimentTrend summarizes the sentiment movement of the session so far.
func (e *Engine) SentimentTrend(sess *Session) scoring.SentimentTrend {
	return e.sentiment.Trend(sess.History)
}

// satisfactionAverage returns the recent rating average, or nil when no
// tracker is configured or the log is empty.
func (e *Engine) satisfactionAverage() *float64 {
	if e.tracker == nil {
		return nil
	}
	avg, ok, err := e.tracker.AverageRating(10)
	if err != nil {
		e.log.Warn().Err(err).Msg("reading satisfaction average failed")
		return nil
	}
	if !ok {
		return nil
	}
	return &avg
}
