package scoring

import (
	"strings"
	"unicode"

	"convoscore/internal/domain"
)

// escalationKeywords are scanned in the current message when building the
// signal vector. Matching is case-insensitive substring matching.
var escalationKeywords = []string{
	"manager", "supervisor", "complaint", "unacceptable",
	"cancel", "refund", "lawsuit", "terrible", "awful",
	"frustrated", "angry", "disappointed", "urgent",
}

// urgencyWords indicate time pressure in the current message.
var urgencyWords = []string{"urgent", "asap", "immediately", "now", "today", "emergency"}

// SignalVector is the typed feature bag derived from one message plus its
// conversation history. It is recomputed fresh on every call, never mutated
// incrementally.
type SignalVector struct {
	// Conversation-level features
	CustomerMessageCount        int     `json:"customerMessageCount"`
	ConversationLength          int     `json:"conversationLength"`
	ResponseRatio               float64 `json:"responseRatio"`
	ConversationDurationSeconds float64 `json:"conversationDurationSeconds"`
	SentimentTrend              float64 `json:"sentimentTrend"`
	CurrentSentiment            float64 `json:"currentSentiment"`
	MinSentiment                float64 `json:"minSentiment"`
	RepeatedIssues              bool    `json:"repeatedIssues"`

	// Current-message features
	MessageLength          int     `json:"messageLength"`
	EscalationKeywordCount int     `json:"escalationKeywordCount"`
	CapsRatio              float64 `json:"capsRatio"`
	QuestionMarkCount      int     `json:"questionMarkCount"`
	ExclamationMarkCount   int     `json:"exclamationMarkCount"`
	UrgencyWordCount       int     `json:"urgencyWordCount"`
}

// ExtractSignals derives a SignalVector from the current message and the
// conversation history. Pure function; empty inputs produce the default
// vector (neutral sentiment, zeros elsewhere).
func ExtractSignals(message string, history domain.History) SignalVector {
	sig := SignalVector{
		CurrentSentiment: 0.5,
		MinSentiment:     0.5,
	}

	sig.ConversationLength = len(history)
	customers := history.CustomerMessages()
	sig.CustomerMessageCount = len(customers)
	sig.ResponseRatio = float64(history.AgentCount()) / float64(max(len(customers), 1))
	sig.ConversationDurationSeconds = history.Duration().Seconds()

	scores := history.SentimentScores()
	if len(scores) >= 2 {
		recent := mean(tail(scores, 3))
		earliest := mean(head(scores, 3))
		sig.SentimentTrend = recent - earliest
	}
	if len(scores) > 0 {
		sig.CurrentSentiment = scores[len(scores)-1]
		sig.MinSentiment = scores[0]
		for _, s := range scores[1:] {
			if s < sig.MinSentiment {
				sig.MinSentiment = s
			}
		}
	}

	sig.RepeatedIssues = hasRepeatedIssues(customers)

	lower := strings.ToLower(message)
	sig.MessageLength = len(message)
	sig.EscalationKeywordCount = countContains(lower, escalationKeywords)
	sig.UrgencyWordCount = countContains(lower, urgencyWords)
	sig.QuestionMarkCount = strings.Count(message, "?")
	sig.ExclamationMarkCount = strings.Count(message, "!")

	upper := 0
	for _, r := range message {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	sig.CapsRatio = float64(upper) / float64(max(len(message), 1))

	return sig
}

// hasRepeatedIssues reports whether any content word longer than four
// characters occurs more than twice across the customer messages.
func hasRepeatedIssues(customers []domain.ConversationMessage) bool {
	freq := map[string]int{}
	for _, m := range customers {
		for _, word := range strings.Fields(strings.ToLower(m.Content)) {
			if len(word) > 4 {
				freq[word]++
				if freq[word] > 2 {
					return true
				}
			}
		}
	}
	return false
}

func countContains(lower string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}

func head(vals []float64, n int) []float64 {
	if len(vals) < n {
		return vals
	}
	return vals[:n]
}

func tail(vals []float64, n int) []float64 {
	if len(vals) < n {
		return vals
	}
	return vals[len(vals)-n:]
}
