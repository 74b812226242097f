// Package domain holds the plain data types shared across the scoring engine:
// conversation messages, assessments, retrieved documents, and satisfaction
// records. No behavior beyond small accessors lives here.
package domain

import "time"

// Sender identifies who authored a conversation message.
type Sender string

const (
	SenderCustomer Sender = "customer"
	SenderAgent    Sender = "agent"
)

// ConversationMessage is a single turn in a support conversation. Assessment
// fields are attached by the engine after the message is appended; the message
// is otherwise never mutated.
type ConversationMessage struct {
	ID                  string               `json:"id"`
	Sender              Sender               `json:"sender"`
	Content             string               `json:"content"`
	Timestamp           time.Time            `json:"timestamp"`
	Sentiment           *SentimentAssessment `json:"sentiment,omitempty"`
	EscalationRisk      *float64             `json:"escalationRisk,omitempty"`
	Tone                Tone                 `json:"tone,omitempty"`
	ResponseTimeSeconds float64              `json:"responseTimeSeconds,omitempty"`
}

// History is the ordered message log of one session. Insertion order defines
// recency for trend windows.
type History []ConversationMessage

// CustomerMessages returns only the customer-authored messages, in order.
func (h History) CustomerMessages() []ConversationMessage {
	var out []ConversationMessage
	for _, m := range h {
		if m.Sender == SenderCustomer {
			out = append(out, m)
		}
	}
	return out
}

// AgentCount returns the number of agent-authored messages.
func (h History) AgentCount() int {
	n := 0
	for _, m := range h {
		if m.Sender == SenderAgent {
			n++
		}
	}
	return n
}

// SentimentScores returns the sentiment scores of customer messages that have
// been assessed, in conversation order.
func (h History) SentimentScores() []float64 {
	var scores []float64
	for _, m := range h {
		if m.Sender == SenderCustomer && m.Sentiment != nil {
			scores = append(scores, m.Sentiment.Score)
		}
	}
	return scores
}

// Duration returns the wall-clock span between the first and last message,
// or zero with fewer than two messages.
func (h History) Duration() time.Duration {
	if len(h) < 2 {
		return 0
	}
	return h[len(h)-1].Timestamp.Sub(h[0].Timestamp)
}

// Recent returns the last n messages (all of them if the history is shorter).
func (h History) Recent(n int) History {
	if len(h) <= n {
		return h
	}
	return h[len(h)-n:]
}
