package models

import "strings"

type Intent string

const (
	IntentGreeting    Intent = "greeting"
	IntentAppointment Intent = "appointment"
	IntentInsurance   Intent = "insurance"
	IntentDoctor      Intent = "doctor"
	IntentHospital    Intent = "hospital"
	IntentGeneral     Intent = "general"
)

// Intents lists every label in classifier precedence order.
var Intents = []Intent{
	IntentGreeting,
	IntentAppointment,
	IntentInsurance,
	IntentDoctor,
	IntentHospital,
	IntentGeneral,
}

// ParseIntent maps a label to a known Intent. Unknown labels report false.
func ParseIntent(label string) (Intent, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	for _, i := range Intents {
		if string(i) == label {
			return i, true
		}
	}
	return IntentGeneral, false
}

func (i Intent) String() string {
	return string(i)
}
