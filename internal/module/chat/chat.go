package chat

import (
	"context"
	"strconv"

	"campus-connect/internal/global/database"
	"campus-connect/internal/global/gemini"
	"campus-connect/internal/global/jwt"
	"campus-connect/internal/global/response"
	"campus-connect/internal/global/sentry/tracing"
	"campus-connect/internal/model"

	"github.com/gin-gonic/gin"
)

// DefaultHistoryLimit caps the chat transcript when no limit is requested.
const DefaultHistoryLimit = 10

// SendMessageReq carries one chat turn.
type SendMessageReq struct {
	Message string `json:"message" binding:"required"`
}

// SendMessage classifies the message, asks the AI with campus context and
// records the exchange. The endpoint always answers 200 with some text: AI
// failures degrade to a canned reply rather than an error.
func SendMessage(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req SendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("binding chat request failed", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	ctx := tracing.ContextWithSpan(c)

	// Campus events give the model something concrete to reason about.
	// Lookup failures only cost context, never the reply.
	var campusEvents []model.Event
	if user, err := database.Store.GetUser(ctx, payload.UserID); err == nil && user.CampusID != nil {
		campusEvents, err = database.Store.GetEventsByCampus(ctx, *user.CampusID)
		if err != nil {
			log.Warn("loading campus events for chat failed", "error", err, "user_id", payload.UserID)
		}
	}

	intent := ClassifyIntent(req.Message)
	reply := generateReply(ctx, intent, req.Message, campusEvents)

	session := model.ChatSession{
		UserID:   payload.UserID,
		Message:  req.Message,
		Response: reply,
	}
	if err := database.Store.CreateChatSession(ctx, &session); err != nil {
		// The reply is already computed; losing the transcript entry is
		// not worth failing the request.
		log.Error("saving chat session failed", "error", err, "user_id", payload.UserID)
	}

	log.Info("chat handled", "user_id", payload.UserID, "intent", intent.String())

	response.Success(c, gin.H{"response": reply})
}

// generateReply picks the prompt template and model tier for the intent.
// Planning and analysis go to the pro model, the rest to flash.
func generateReply(ctx context.Context, intent Intent, message string, campusEvents []model.Event) string {
	if gemini.Default == nil {
		return fallbackFor(intent)
	}

	var prompt, modelName string
	switch intent {
	case IntentPlan:
		prompt = buildPlanPrompt(ExtractEventType(message), ExtractDuration(message), defaultPlannedParticipants)
		modelName = gemini.Default.ProModel
	case IntentSuggest:
		prompt = buildSuggestPrompt(campusEvents, currentMonthName())
		modelName = gemini.Default.FlashModel
	case IntentAnalyze:
		prompt = buildAnalyzePrompt(campusEvents)
		modelName = gemini.Default.ProModel
	default:
		prompt = buildGeneralPrompt(message)
		modelName = gemini.Default.FlashModel
	}

	reply, err := gemini.Default.GenerateContent(ctx, modelName, prompt)
	if err != nil {
		log.Warn("ai generation failed", "error", err, "intent", intent.String())
		return fallbackFor(intent)
	}
	return reply
}

// GetHistory returns the latest chat turns of a user, newest first. Members
// only read their own transcript; admins may read anyone's.
func GetHistory(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("userId must be a positive integer"))
		return
	}

	if uint(userID) != payload.UserID && payload.Role != model.RoleAdmin {
		response.Fail(c, response.ErrUnauthorized.WithTips("chat history is private"))
		return
	}

	limit := DefaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			response.Fail(c, response.ErrInvalidRequest.WithTips("limit must be between 1 and 100"))
			return
		}
		limit = parsed
	}

	ctx := tracing.ContextWithSpan(c)
	history, err := database.Store.GetChatHistory(ctx, uint(userID), limit)
	if err != nil {
		log.Error("loading chat history failed", "error", err, "user_id", userID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, history)
}
