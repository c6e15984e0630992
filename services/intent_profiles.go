package services

import (
	"strings"

	"dental-chatbot-backend/models"
)

// IntentProfile holds everything the pipeline varies per intent.
type IntentProfile struct {
	Instruction    string
	SearchHints    string
	SkipRetrieval  bool
	DefaultContext func(*FactStore) string
}

var intentProfiles = map[models.Intent]IntentProfile{
	models.IntentGreeting: {
		Instruction:   "Greet the user warmly and briefly explain that you can help with dental questions, doctors, clinic locations, insurance and booking appointments.",
		SkipRetrieval: true,
		DefaultContext: func(*FactStore) string {
			return ""
		},
	},
	models.IntentAppointment: {
		Instruction: "Help the user with scheduling a dental appointment. Explain that they can book using the appointment form and mention which dentists are available and on which days.",
		SearchHints: "appointment schedule booking",
		DefaultContext: func(s *FactStore) string {
			return joinNonEmpty(s.FAQsText(), s.DoctorsText())
		},
	},
	models.IntentInsurance: {
		Instruction:    "Answer questions about dental insurance providers, coverage types and whether a provider is currently accepted.",
		SearchHints:    "insurance coverage provider",
		DefaultContext: (*FactStore).InsuranceText,
	},
	models.IntentDoctor: {
		Instruction:    "Provide information about our dentists, their specializations and the days they are available.",
		SearchHints:    "doctor dentist specialist",
		DefaultContext: (*FactStore).DoctorsText,
	},
	models.IntentHospital: {
		Instruction:    "Provide information about our clinic locations, addresses, opening hours and urgent care availability.",
		SearchHints:    "hospital clinic location",
		DefaultContext: (*FactStore).HospitalsText,
	},
	models.IntentGeneral: {
		Instruction:    "Answer general dental health questions and questions about our clinic's services.",
		DefaultContext: (*FactStore).FAQsText,
	},
}

// ProfileFor returns the profile for intent, using the general profile for
// anything unknown.
func ProfileFor(intent models.Intent) IntentProfile {
	if p, ok := intentProfiles[intent]; ok {
		return p
	}
	return intentProfiles[models.IntentGeneral]
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, tableSeparator)
}
