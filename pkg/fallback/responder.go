package fallback

import "strings"

// Responder produces a supportive reply for a user message without calling
// any external service. It is the offline substitute for the remote
// assistant: deterministic, side-effect free, and it never fails.
//
// Rules are evaluated top to bottom and the first match wins. The order is
// policy, not an implementation detail: a message that mentions both a
// crisis keyword and any other category must always receive the crisis
// response. Keep crisis first.
type rule struct {
	category string
	keywords []string
	response string
}

const (
	crisisResponse = "It sounds like you're going through a really difficult time. Please know that you don't have to face this alone. " +
		"If you're in crisis or thinking about harming yourself, please reach out to the 988 Suicide & Crisis Lifeline right now - " +
		"call or text 988, any time, day or night. You can also connect with a professional here on MindWell. Your life matters."

	gratitudeResponse = "You're very welcome. I'm glad I could be here for you. Remember, taking care of your mental health is an ongoing " +
		"journey, and reaching out is always a sign of strength. Is there anything else on your mind?"

	anxietyResponse = "Feeling anxious can be really overwhelming. One thing that helps many people in the moment is 4-4-4 breathing: " +
		"breathe in for 4 seconds, hold for 4 seconds, and breathe out for 4 seconds. Repeat that a few times and notice how your body responds. " +
		"If anxiety keeps showing up, a professional here on MindWell can help you build longer-term strategies."

	sadnessResponse = "I'm sorry you're feeling this way. Sadness is a natural emotion, and it's okay to sit with it rather than push it away. " +
		"Gentle things like a short walk, reaching out to someone you trust, or writing down what you're feeling can help. " +
		"If these feelings persist for weeks, please consider talking to a mental health professional."

	stressResponse = "Stress has a way of piling up before we notice it. Try stepping away for a few minutes, stretching, or listing out " +
		"what's weighing on you - sometimes seeing it on paper makes it feel more manageable. Small, regular breaks matter more than one big one."

	sleepResponse = "Sleep trouble is exhausting in every sense. A consistent wind-down routine helps: dim the lights, put screens away " +
		"30 minutes before bed, and try to wake up at the same time each day. If sleepless nights continue, it's worth raising with a professional."

	defaultResponse = "Thank you for sharing that with me. I'm here to listen. Would you like to tell me more about what's been on your mind lately? " +
		"Sometimes putting feelings into words is the first step toward understanding them."
)

// crisisKeywords is shared with the forum content-safety scanner so both
// features apply the same detection policy.
var crisisKeywords = []string{"help", "crisis", "harm", "suicid"}

var rules = []rule{
	{category: "crisis", keywords: crisisKeywords, response: crisisResponse},
	{category: "gratitude", keywords: []string{"thank"}, response: gratitudeResponse},
	{category: "anxiety", keywords: []string{"anxious", "anxiety"}, response: anxietyResponse},
	{category: "sadness", keywords: []string{"sad", "depressed"}, response: sadnessResponse},
	{category: "stress", keywords: []string{"stress"}, response: stressResponse},
	{category: "sleep", keywords: []string{"sleep", "insomnia"}, response: sleepResponse},
}

// Respond maps a user message to a canned supportive response. Matching is
// case-insensitive substring containment against each rule's keywords, in
// rule order.
func Respond(userMessage string) string {
	text := strings.ToLower(userMessage)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.response
			}
		}
	}
	return defaultResponse
}

// ContainsCrisisKeywords reports whether the text trips the crisis rule.
// Used by the forum safety scanner to flag posts for professional review.
func ContainsCrisisKeywords(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range crisisKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
