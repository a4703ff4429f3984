package fallback

import (
	"strings"
	"testing"
)

func TestRespondCategories(t *testing.T) {
	tests := []struct {
		name         string
		message      string
		wantContains string
	}{
		{
			name:         "crisis keyword",
			message:      "I want to harm myself",
			wantContains: "988",
		},
		{
			name:         "crisis via help",
			message:      "please HELP me",
			wantContains: "988",
		},
		{
			name:         "anxiety",
			message:      "I feel anxious about work",
			wantContains: "4 seconds",
		},
		{
			name:         "sadness",
			message:      "I've been so depressed lately",
			wantContains: "Sadness is a natural emotion",
		},
		{
			name:         "stress",
			message:      "work stress is killing my focus",
			wantContains: "Stress has a way of piling up",
		},
		{
			name:         "sleep",
			message:      "my insomnia is back again",
			wantContains: "wind-down routine",
		},
		{
			name:         "gratitude",
			message:      "thank you so much",
			wantContains: "You're very welcome",
		},
		{
			name:         "default",
			message:      "the weather was nice today",
			wantContains: "I'm here to listen",
		},
		{
			name:         "empty input",
			message:      "",
			wantContains: "I'm here to listen",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Respond(tt.message)
			if got == "" {
				t.Fatal("Respond returned empty string")
			}
			if !strings.Contains(got, tt.wantContains) {
				t.Errorf("Respond(%q) = %q, want substring %q", tt.message, got, tt.wantContains)
			}
		})
	}
}

func TestRespondPriority(t *testing.T) {
	tests := []struct {
		name         string
		message      string
		wantContains string
	}{
		{
			name:         "crisis beats anxiety",
			message:      "I'm anxious and thinking about suicide",
			wantContains: "988",
		},
		{
			name:         "crisis beats gratitude",
			message:      "thanks but I want to harm myself",
			wantContains: "988",
		},
		{
			name:         "crisis beats sleep",
			message:      "can't sleep, everything feels like a crisis",
			wantContains: "988",
		},
		{
			// Gratitude is checked before mood keywords. Observed behavior,
			// locked here; see DESIGN.md.
			name:         "gratitude beats anxiety",
			message:      "thanks, I've been anxious",
			wantContains: "You're very welcome",
		},
		{
			name:         "anxiety beats stress",
			message:      "anxious and stressed out",
			wantContains: "4 seconds",
		},
		{
			name:         "sadness beats sleep",
			message:      "sad and can't sleep",
			wantContains: "Sadness is a natural emotion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Respond(tt.message)
			if !strings.Contains(got, tt.wantContains) {
				t.Errorf("Respond(%q) = %q, want substring %q", tt.message, got, tt.wantContains)
			}
		})
	}
}

func TestRespondIsDeterministic(t *testing.T) {
	inputs := []string{"I feel anxious", "hello there", "", "thank you", "harm"}
	for _, in := range inputs {
		first := Respond(in)
		for i := 0; i < 3; i++ {
			if got := Respond(in); got != first {
				t.Errorf("Respond(%q) not deterministic: %q != %q", in, got, first)
			}
		}
	}
}

func TestContainsCrisisKeywords(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"I need HELP right now", true},
		{"thinking about suicide", true},
		{"suicidal thoughts", true},
		{"self-harm", true},
		{"this is a crisis", true},
		{"lovely day for a walk", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ContainsCrisisKeywords(tt.text); got != tt.want {
			t.Errorf("ContainsCrisisKeywords(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
