package scoring

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"convoscore/internal/domain"
)

func scoredMsg(sender domain.Sender, content string, score float64, at time.Time) domain.ConversationMessage {
	return domain.ConversationMessage{
		Sender:    sender,
		Content:   content,
		Timestamp: at,
		Sentiment: &domain.SentimentAssessment{Score: score},
	}
}

func TestExtractSignalsEmpty(t *testing.T) {
	sig := ExtractSignals("", nil)

	assert.Equal(t, 0.5, sig.CurrentSentiment)
	assert.Equal(t, 0.5, sig.MinSentiment)
	assert.Equal(t, 0, sig.CustomerMessageCount)
	assert.Equal(t, 0, sig.ConversationLength)
	assert.Equal(t, 0.0, sig.SentimentTrend)
	assert.Equal(t, 0, sig.MessageLength)
	assert.Equal(t, 0.0, sig.CapsRatio)
	assert.False(t, sig.RepeatedIssues)
}

func TestExtractSignalsMessageFeatures(t *testing.T) {
	sig := ExtractSignals("This is URGENT!! I want a refund NOW, where is my manager??", nil)

	assert.Equal(t, 3, sig.EscalationKeywordCount) // urgent, refund, manager
	assert.Equal(t, 2, sig.UrgencyWordCount)       // urgent, now
	assert.Equal(t, 2, sig.QuestionMarkCount)
	assert.Equal(t, 2, sig.ExclamationMarkCount)
	assert.Greater(t, sig.CapsRatio, 0.1)
}

func TestExtractSignalsHistoryFeatures(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	history := domain.History{
		scoredMsg(domain.SenderCustomer, "my order is late", 0.7, base),
		{Sender: domain.SenderAgent, Content: "looking into it", Timestamp: base.Add(time.Minute)},
		scoredMsg(domain.SenderCustomer, "still waiting", 0.5, base.Add(2*time.Minute)),
		scoredMsg(domain.SenderCustomer, "any update", 0.3, base.Add(3*time.Minute)),
		scoredMsg(domain.SenderCustomer, "this is taking too long", 0.2, base.Add(5*time.Minute)),
	}

	sig := ExtractSignals("hello", history)

	assert.Equal(t, 4, sig.CustomerMessageCount)
	assert.Equal(t, 5, sig.ConversationLength)
	assert.InDelta(t, 0.25, sig.ResponseRatio, 1e-9)
	assert.Equal(t, 300.0, sig.ConversationDurationSeconds)
	assert.Equal(t, 0.2, sig.CurrentSentiment)
	assert.Equal(t, 0.2, sig.MinSentiment)
	assert.Negative(t, sig.SentimentTrend)
}

func TestExtractSignalsTrendWindows(t *testing.T) {
	base := time.Now()
	var history domain.History
	for i, score := range []float64{0.2, 0.3, 0.2, 0.7, 0.8, 0.9} {
		history = append(history, scoredMsg(domain.SenderCustomer, "msg", score, base.Add(time.Duration(i)*time.Minute)))
	}

	sig := ExtractSignals("hello", history)

	// mean of last three minus mean of first three.
	require.InDelta(t, (0.7+0.8+0.9)/3-(0.2+0.3+0.2)/3, sig.SentimentTrend, 1e-9)
}

func TestHasRepeatedIssues(t *testing.T) {
	history := domain.History{
		{Sender: domain.SenderCustomer, Content: "my billing charge is wrong"},
		{Sender: domain.SenderCustomer, Content: "the billing issue again"},
		{Sender: domain.SenderCustomer, Content: "billing still broken"},
	}
	sig := ExtractSignals("", history)
	assert.True(t, sig.RepeatedIssues)

	sig = ExtractSignals("", history[:2])
	assert.False(t, sig.RepeatedIssues)

	// Short words never count even when frequent.
	short := domain.History{
		{Sender: domain.SenderCustomer, Content: "why why why why"},
	}
	sig = ExtractSignals("", short)
	assert.False(t, sig.RepeatedIssues)
}

func TestExtractSignalsCapsRatio(t *testing.T) {
	sig := ExtractSignals("ABCD", nil)
	assert.Equal(t, 1.0, sig.CapsRatio)

	sig = ExtractSignals(strings.Repeat("a", 10), nil)
	assert.Equal(t, 0.0, sig.CapsRatio)
}

func TestExtractSignalsIsPure(t *testing.T) {
	history := domain.History{
		scoredMsg(domain.SenderCustomer, "first", 0.4, time.Now()),
		scoredMsg(domain.SenderCustomer, "second", 0.6, time.Now()),
	}
	a := ExtractSignals("same message", history)
	b := ExtractSignals("same message", history)
	assert.Equal(t, a, b)
}
