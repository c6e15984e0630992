package utils

import (
	"regexp"
	"strings"

	"dental-chatbot-backend/models"
)

type intentPattern struct {
	intent models.Intent
	re     *regexp.Regexp
}

// IntentClassifier assigns the first intent whose pattern group matches.
// Group order is the precedence order.
type IntentClassifier struct {
	patterns []intentPattern
}

func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{
		patterns: []intentPattern{
			// greetings are whole words so "which" or "this" never greet
			{models.IntentGreeting, wordGroup(true, "hello", "hi", "hey", "good morning", "good afternoon", "good evening", "howdy", "greetings")},
			{models.IntentAppointment, wordGroup(false, "appointment", "schedule", "book", "reserve", "visit", "meet", "consult")},
			{models.IntentInsurance, wordGroup(false, "insurance", "coverage", "plan", "policy", "covered", "provider")},
			{models.IntentDoctor, wordGroup(false, "doctor", "dentist", "specialist", "orthodontist", "periodontist", "endodontist")},
			{models.IntentHospital, wordGroup(false, "hospital", "clinic", "location", "facility", "center", "branch")},
		},
	}
}

// wordGroup compiles a case-insensitive alternation anchored at a word start.
// whole also anchors the word end.
func wordGroup(whole bool, words ...string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	expr := `(?i)\b(?:` + strings.Join(quoted, "|") + `)`
	if whole {
		expr += `\b`
	}
	return regexp.MustCompile(expr)
}

func (ic *IntentClassifier) ClassifyIntent(message string) models.Intent {
	for _, p := range ic.patterns {
		if p.re.MatchString(message) {
			return p.intent
		}
	}
	return models.IntentGeneral
}
