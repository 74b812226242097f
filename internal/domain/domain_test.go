package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func msg(sender Sender, content string, ts time.Time) ConversationMessage {
	return ConversationMessage{Sender: sender, Content: content, Timestamp: ts}
}

func scored(sender Sender, content string, score float64, ts time.Time) ConversationMessage {
	m := msg(sender, content, ts)
	m.Sentiment = &SentimentAssessment{Score: score, Label: SentimentNeutral}
	return m
}

// --- History tests ---

func TestHistoryCustomerMessages(t *testing.T) {
	now := time.Now()
	h := History{
		msg(SenderCustomer, "hi", now),
		msg(SenderAgent, "hello", now),
		msg(SenderCustomer, "my bill is wrong", now),
	}

	customers := h.CustomerMessages()
	require.Len(t, customers, 2)
	assert.Equal(t, "hi", customers[0].Content)
	assert.Equal(t, "my bill is wrong", customers[1].Content)
	assert.Equal(t, 1, h.AgentCount())
}

func TestHistorySentimentScores(t *testing.T) {
	now := time.Now()
	h := History{
		scored(SenderCustomer, "a", 0.8, now),
		msg(SenderCustomer, "unscored", now),
		scored(SenderAgent, "agent scored ignored", 0.1, now),
		scored(SenderCustomer, "b", 0.3, now),
	}

	assert.Equal(t, []float64{0.8, 0.3}, h.SentimentScores())
}

func TestHistoryDuration(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Duration(0), History{}.Duration())
	assert.Equal(t, time.Duration(0), History{msg(SenderCustomer, "x", start)}.Duration())

	h := History{
		msg(SenderCustomer, "first", start),
		msg(SenderAgent, "mid", start.Add(30*time.Second)),
		msg(SenderCustomer, "last", start.Add(90*time.Second)),
	}
	assert.Equal(t, 90*time.Second, h.Duration())
}

func TestHistoryRecent(t *testing.T) {
	now := time.Now()
	h := History{
		msg(SenderCustomer, "1", now),
		msg(SenderAgent, "2", now),
		msg(SenderCustomer, "3", now),
	}

	assert.Len(t, h.Recent(2), 2)
	assert.Equal(t, "2", h.Recent(2)[0].Content)
	assert.Len(t, h.Recent(10), 3)
}

// --- JSON shape tests ---

func TestConversationMessageJSON(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	risk := 0.7
	m := ConversationMessage{
		ID:        "msg-1",
		Sender:    SenderCustomer,
		Content:   "this is unacceptable",
		Timestamp: now,
		Sentiment: &SentimentAssessment{
			Score:          0.15,
			Label:          SentimentVeryNegative,
			Confidence:     0.9,
			PrimaryEmotion: EmotionAnger,
			Urgency:        0.8,
			Indicators:     []string{"unacceptable"},
		},
		EscalationRisk: &risk,
		Tone:           ToneApologetic,
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded ConversationMessage
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, m.ID, decoded.ID)
	assert.Equal(t, m.Sender, decoded.Sender)
	require.NotNil(t, decoded.Sentiment)
	assert.Equal(t, SentimentVeryNegative, decoded.Sentiment.Label)
	require.NotNil(t, decoded.EscalationRisk)
	assert.Equal(t, 0.7, *decoded.EscalationRisk)
	assert.Equal(t, ToneApologetic, decoded.Tone)
}

func TestEmotionsComplete(t *testing.T) {
	assert.Len(t, Emotions, 8)
	assert.Contains(t, Emotions, EmotionAnger)
	assert.Contains(t, Emotions, EmotionExcitement)
}
