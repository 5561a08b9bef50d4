package chat

import (
	"regexp"
	"strings"
)

// Intent is the coarse category a free-text message falls into. Each intent
// maps to one prompt template and one model tier.
type Intent int

const (
	// IntentGeneral is the catch-all: generic event-planning advice.
	IntentGeneral Intent = iota
	// IntentPlan asks for a concrete event structure ("plan a hackathon").
	IntentPlan
	// IntentSuggest asks for event ideas ("suggest something for March").
	IntentSuggest
	// IntentAnalyze asks for insights over the campus's event data.
	IntentAnalyze
)

func (i Intent) String() string {
	switch i {
	case IntentPlan:
		return "plan"
	case IntentSuggest:
		return "suggest"
	case IntentAnalyze:
		return "analyze"
	default:
		return "general"
	}
}

var durationPattern = regexp.MustCompile(`(\d+)\s*day`)

// ClassifyIntent routes a message by case-insensitive substring matching.
// The rules are ordered and the first match wins, so a message mentioning
// both "plan" and "suggest" is a planning request.
func ClassifyIntent(message string) Intent {
	m := strings.ToLower(message)

	if strings.Contains(m, "plan") &&
		(strings.Contains(m, "hackathon") || strings.Contains(m, "workshop") || strings.Contains(m, "event")) {
		return IntentPlan
	}
	if strings.Contains(m, "suggest") || strings.Contains(m, "recommend") {
		return IntentSuggest
	}
	if strings.Contains(m, "analyz") || strings.Contains(m, "data") || strings.Contains(m, "insight") {
		return IntentAnalyze
	}
	return IntentGeneral
}

// ExtractEventType pulls the event kind out of a planning request, falling
// back to the generic "event".
func ExtractEventType(message string) string {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "hackathon"):
		return "hackathon"
	case strings.Contains(m, "workshop"):
		return "workshop"
	default:
		return "event"
	}
}

// ExtractDuration reads "<n> day" out of the message, defaulting to one day.
func ExtractDuration(message string) string {
	matches := durationPattern.FindStringSubmatch(strings.ToLower(message))
	if len(matches) == 2 {
		return matches[1] + " day"
	}
	return "1 day"
}
