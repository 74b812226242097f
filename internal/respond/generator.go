// Package respond generates tone-styled customer replies grounded in
// retrieved knowledge-base content, with canned per-tone fallbacks when the
// language model is unreachable.
package respond

import (
	"context"
	"fmt"
	"strings"
	"time"

	"convoscore/internal/domain"
	"convoscore/internal/judge"
	"convoscore/internal/logging"
)

// toneStyles describes how each tone should read, used in generation prompts.
var toneStyles = map[domain.Tone]string{
	domain.ToneEmpathetic:   "warm, understanding, and supportive",
	domain.ToneProfessional: "formal, courteous, and business-like",
	domain.ToneApologetic:   "sorry, acknowledging fault, and remedial",
	domain.ToneReassuring:   "confident, calming, and solution-focused",
	domain.ToneUrgent:       "immediate, direct, and action-oriented",
}

// fallbackResponses are the canned replies used when generation fails.
var fallbackResponses = map[domain.Tone]string{
	domain.ToneEmpathetic:   "I understand your concern and I'm here to help. Let me look into this for you right away.",
	domain.ToneProfessional: "Thank you for contacting us. I'll be happy to assist you with your inquiry.",
	domain.ToneApologetic:   "I apologize for any inconvenience this has caused. Let me work on resolving this issue for you.",
	domain.ToneReassuring:   "I'm confident we can resolve this together. Let me guide you through the next steps.",
	domain.ToneUrgent:       "I understand this is urgent for you. Let me prioritize your request and get this resolved quickly.",
}

// escalationFallbacks are the canned escalation acknowledgements.
var escalationFallbacks = map[domain.RiskLevel]string{
	domain.RiskHigh:     "I understand your frustration, and I want to ensure we resolve this quickly for you.",
	domain.RiskCritical: "I sincerely apologize for the inconvenience you've experienced. Let me connect you with a supervisor immediately.",
}

const genericFallback = "Thank you for your message. I'm here to help you with your inquiry."

const generatorSystemPrompt = "You are an expert customer support representative. " +
	"Provide helpful, empathetic, and professional responses. " +
	"Always acknowledge the customer's feelings and provide clear solutions."

// Result is a generated reply plus how it was produced.
type Result struct {
	Response    string      `json:"response"`
	Tone        domain.Tone `json:"tone"`
	ContextUsed int         `json:"contextUsed"`
	Fallback    bool        `json:"fallback"`
	GeneratedAt time.Time   `json:"generatedAt"`
}

// Generator produces customer-facing replies through the LLM client.
type Generator struct {
	judge       judge.Client
	temperature float64
	log         *logging.Logger
}

// NewGenerator creates a response generator using the given client and
// sampling temperature.
func NewGenerator(j judge.Client, temperature float64, log *logging.Logger) *Generator {
	return &Generator{judge: j, temperature: temperature, log: log.Sub("respond")}
}

type generation struct {
	Response string `json:"response"`
}

// Generate produces a reply to the customer message in the given tone,
// grounded in the retrieved documents and recent conversation. It never
// fails: generation errors yield the canned fallback for the tone.
func (g *Generator) Generate(ctx context.Context, message string, docs []domain.Document, history domain.History, sentiment domain.SentimentAssessment, tone domain.Tone) Result {
	result := Result{
		Tone:        tone,
		ContextUsed: len(docs),
		GeneratedAt: time.Now(),
	}

	raw, err := g.judge.EvaluateJSON(ctx, judge.Request{
		System:      generatorSystemPrompt,
		Instruction: generationInstruction(message, docs, history, sentiment, tone),
		Temperature: g.temperature,
	})
	var gen generation
	if err == nil {
		err = judge.Decode(raw, &gen)
	}
	if err == nil && strings.TrimSpace(gen.Response) == "" {
		err = fmt.Errorf("%w: empty response", judge.ErrMalformed)
	}
	if err != nil {
		g.log.Warn().Err(err).Str("tone", string(tone)).Msg("generation failed, using canned response")
		result.Response = FallbackResponse(tone)
		result.Fallback = true
		result.ContextUsed = 0
		return result
	}

	result.Response = strings.TrimSpace(gen.Response)
	return result
}

// EscalationResponse produces an acknowledgement for an escalated
// conversation, falling back to a fixed template per level.
func (g *Generator) EscalationResponse(ctx context.Context, level domain.RiskLevel, message string) string {
	raw, err := g.judge.EvaluateJSON(ctx, judge.Request{
		Instruction: escalationInstruction(level, message),
		Temperature: 0.6,
	})
	var gen generation
	if err == nil {
		err = judge.Decode(raw, &gen)
	}
	if err != nil || strings.TrimSpace(gen.Response) == "" {
		g.log.Warn().Err(err).Str("level", string(level)).Msg("escalation response failed, using template")
		if canned, ok := escalationFallbacks[level]; ok {
			return canned
		}
		return "I understand your concern and want to make sure we address this properly for you."
	}
	return strings.TrimSpace(gen.Response)
}

// FallbackResponse returns the canned reply for a tone.
func FallbackResponse(tone domain.Tone) string {
	if r, ok := fallbackResponses[tone]; ok {
		return r
	}
	return genericFallback
}

func generationInstruction(message string, docs []domain.Document, history domain.History, sentiment domain.SentimentAssessment, tone domain.Tone) string {
	style, ok := toneStyles[tone]
	if !ok {
		style = "professional and helpful"
	}

	return fmt.Sprintf(`You are a customer support AI assistant. Generate a helpful, %s response to the customer.

Customer's current message: %q

Customer sentiment analysis:
- Sentiment score: %.2f (0=very negative, 1=very positive)
- Primary emotion: %s
- Urgency level: %.2f

Recent conversation context:
%s

Relevant knowledge base information:
%s

Guidelines for your response:
1. Be %s
2. Address the customer's specific concern directly
3. Use information from the knowledge base when relevant
4. Show empathy appropriate to their emotional state
5. Provide clear, actionable next steps
6. Keep response concise but complete (aim for 2-3 sentences)
7. If escalation is needed, acknowledge their frustration and offer escalation

Respond with JSON:
{
    "response": "your reply to the customer"
}`,
		style, message,
		sentiment.Score, sentiment.PrimaryEmotion, sentiment.Urgency,
		conversationContext(history), documentContext(docs), style)
}

func escalationInstruction(level domain.RiskLevel, message string) string {
	guidance := map[domain.RiskLevel]string{
		domain.RiskMedium:   "The customer seems moderately frustrated. Acknowledge their concern and offer additional assistance.",
		domain.RiskHigh:     "The customer is quite frustrated. Show empathy, apologize if appropriate, and consider escalation options.",
		domain.RiskCritical: "The customer is very upset and likely to escalate. Provide immediate empathy, sincere apology, and escalation path.",
	}
	g, ok := guidance[level]
	if !ok {
		g = "Provide a professional and helpful response."
	}

	return fmt.Sprintf(`Generate an escalation-appropriate response for this customer support scenario.

Escalation level: %s
Customer message: %q

%s

The response should:
1. Acknowledge their frustration appropriately
2. Take responsibility where applicable
3. Offer concrete next steps
4. Show genuine care for their experience

Respond with JSON:
{
    "response": "your reply to the customer"
}`, level, message, g)
}

func conversationContext(history domain.History) string {
	recent := history.Recent(4)
	if len(recent) == 0 {
		return "This is the start of the conversation."
	}

	var b strings.Builder
	for _, m := range recent {
		sender := "Customer"
		if m.Sender == domain.SenderAgent {
			sender = "Agent"
		}
		fmt.Fprintf(&b, "%s: %s\n", sender, m.Content)
	}
	return b.String()
}

func documentContext(docs []domain.Document) string {
	if len(docs) == 0 {
		return "No specific knowledge base articles found for this query."
	}

	if len(docs) > 3 {
		docs = docs[:3]
	}
	parts := make([]string, len(docs))
	for i, d := range docs {
		content := d.Content
		if len(content) > 500 {
			content = content[:500] + "..."
		}
		parts[i] = fmt.Sprintf("Article %d: %s\n%s", i+1, d.Title, content)
	}
	return strings.Join(parts, "\n\n")
}
