package chat

import (
	"fmt"
	"strings"
	"time"

	"campus-connect/internal/model"
)

// defaultPlannedParticipants sizes a planning request when the message does
// not state a head count.
const defaultPlannedParticipants = 50

// Canned fallbacks keep the chat usable when the AI backend is down or not
// configured; the handler never surfaces an AI failure to the client.
const (
	fallbackGeneral = "I'm currently experiencing technical difficulties. Please try again later or contact support if the issue persists."
	fallbackSuggest = "I'm having trouble generating suggestions right now. Please try again later."
	fallbackAnalyze = "I'm unable to analyze the data right now. Please try again later."
	fallbackPlan    = "I'm having trouble creating an event plan right now. Please try again later."
)

func fallbackFor(intent Intent) string {
	switch intent {
	case IntentPlan:
		return fallbackPlan
	case IntentSuggest:
		return fallbackSuggest
	case IntentAnalyze:
		return fallbackAnalyze
	default:
		return fallbackGeneral
	}
}

func buildGeneralPrompt(message string) string {
	return fmt.Sprintf(`You are an AI assistant specialized in student community event planning.

The user is asking: User message about event planning: %s. Provide helpful suggestions for student community event planning.

Provide helpful, practical advice for organizing student events, including:
- Event structure and logistics
- Timing recommendations based on student schedules
- Budget considerations
- Engagement strategies
- Venue and format suggestions

Keep responses concise but informative, and focus on actionable insights that campus leads can implement.`, message)
}

func buildSuggestPrompt(pastEvents []model.Event, month string) string {
	descriptions := make([]string, 0, len(pastEvents))
	for _, e := range pastEvents {
		descriptions = append(descriptions, fmt.Sprintf("%s (%s, %d participants, rating: %d)",
			e.Name, e.ProgramType, e.ParticipantCount, e.Rating))
	}

	return fmt.Sprintf(`Based on these past successful events: %s

Suggest 3-5 diverse event ideas for %s that would engage students. Consider:
- Seasonal timing and student availability
- Past event performance and ratings
- Variety in event types and formats
- Realistic participant expectations

Format as a numbered list with brief descriptions.`, strings.Join(descriptions, ", "), month)
}

func buildAnalyzePrompt(events []model.Event) string {
	var totalParticipants, totalRating int
	typeCounts := map[string]int{}
	for _, e := range events {
		totalParticipants += e.ParticipantCount
		totalRating += e.Rating
		typeCounts[e.ProgramType]++
	}

	avgParticipants := 0
	avgRating := 0.0
	if len(events) > 0 {
		avgParticipants = int(float64(totalParticipants)/float64(len(events)) + 0.5)
		avgRating = float64(totalRating) / float64(len(events))
	}

	typeParts := make([]string, 0, len(typeCounts))
	for t, n := range typeCounts {
		typeParts = append(typeParts, fmt.Sprintf("%s: %d", t, n))
	}

	return fmt.Sprintf(`Analyze this event data and provide insights:

Total Events: %d
Average Participants: %d
Average Rating: %.1f/5
Event Types: {%s}

Provide:
1. Key performance insights
2. Recommendations for improvement
3. Suggested focus areas for future events
4. Optimal event types based on data

Keep it practical and actionable for campus community leaders.`,
		len(events), avgParticipants, avgRating, strings.Join(typeParts, ", "))
}

func buildPlanPrompt(eventType, duration string, participantCount int) string {
	return fmt.Sprintf(`Plan a detailed structure for a %s %s with approximately %d participants.

Provide:
1. Detailed timeline and schedule
2. Resource requirements (venue, equipment, staff)
3. Budget estimation in INR
4. Registration and logistics planning
5. Risk management considerations

Make it specific and actionable for student organizers.`, duration, eventType, participantCount)
}

// currentMonthName is the locale-independent month used for suggestions.
func currentMonthName() string {
	return time.Now().Month().String()
}
