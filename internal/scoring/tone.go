package scoring

import "convoscore/internal/domain"

// SelectTone picks the response tone from the customer's sentiment assessment
// and the optional recent satisfaction average. Pure function; the precedence
// of the rules is fixed and the first matching rule wins.
func SelectTone(sentiment domain.SentimentAssessment, satisfactionAvg *float64) domain.Tone {
	if satisfactionAvg != nil {
		if *satisfactionAvg < 3.0 {
			if sentiment.Score < 0.4 {
				return domain.ToneApologetic
			}
			return domain.ToneEmpathetic
		}
		if *satisfactionAvg > 4.3 && sentiment.Score > 0.6 {
			return domain.ToneReassuring
		}
	}

	if sentiment.Urgency > 0.8 {
		return domain.ToneUrgent
	}

	switch {
	case sentiment.Score < 0.3:
		if sentiment.PrimaryEmotion == domain.EmotionAnger || sentiment.PrimaryEmotion == domain.EmotionFrustration {
			return domain.ToneEmpathetic
		}
		return domain.ToneApologetic
	case sentiment.Score < 0.5:
		return domain.ToneEmpathetic
	case sentiment.Score < 0.7:
		return domain.ToneProfessional
	}
	return domain.ToneReassuring
}
