package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyIntent(t *testing.T) {
	cases := []struct {
		message string
		want    Intent
	}{
		{"Plan a hackathon for next month", IntentPlan},
		{"can you PLAN a workshop?", IntentPlan},
		{"help me plan an event", IntentPlan},
		{"suggest some events for March", IntentSuggest},
		{"what do you recommend for freshers?", IntentSuggest},
		{"analyze our event data", IntentAnalyze},
		{"show me insights about attendance", IntentAnalyze},
		{"what does the data say?", IntentAnalyze},
		{"how do I book a venue?", IntentGeneral},
		{"", IntentGeneral},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, ClassifyIntent(tc.message), "message: %q", tc.message)
	}
}

// "plan" without an event keyword is not a planning request, and planning
// outranks the suggestion rule when both match.
func TestClassifyIntentRuleOrder(t *testing.T) {
	require.Equal(t, IntentGeneral, ClassifyIntent("what's the plan for today?"))
	require.Equal(t, IntentPlan, ClassifyIntent("plan an event and suggest a theme"))
	// "suggest" beats the analysis keywords the same way.
	require.Equal(t, IntentSuggest, ClassifyIntent("suggest events based on our data"))
}

func TestExtractEventType(t *testing.T) {
	require.Equal(t, "hackathon", ExtractEventType("Plan a Hackathon workshop"))
	require.Equal(t, "workshop", ExtractEventType("plan a workshop on Go"))
	require.Equal(t, "event", ExtractEventType("plan an event for juniors"))
}

func TestExtractDuration(t *testing.T) {
	require.Equal(t, "2 day", ExtractDuration("plan a 2 day hackathon"))
	require.Equal(t, "3 day", ExtractDuration("plan a 3-day... I mean 3 day event"))
	require.Equal(t, "1 day", ExtractDuration("plan a hackathon"))
	require.Equal(t, "1 day", ExtractDuration("plan a day-long workshop"))
}
