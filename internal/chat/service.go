package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xaenox/mindmate/internal/apperrors"
	"github.com/xaenox/mindmate/internal/assistant"
	"github.com/xaenox/mindmate/internal/models"
	"github.com/xaenox/mindmate/internal/storage"
)

const (
	// historyLimit bounds the context window sent to the model: only the
	// most recent turns of a conversation are included, however long the
	// conversation has grown.
	historyLimit = 10

	// titleWords is how many leading words of the first message become the
	// conversation title.
	titleWords = 5

	conversationListLimit  = 50
	defaultMessagePageSize = 50
)

// systemPrompt is the fixed persona constraint passed verbatim to the model
// on every request. The core never interprets or enforces it; topical
// enforcement is entirely delegated to the model.
const systemPrompt = `You are MindMate, a dedicated AI companion for mental health and well-being.
Your SOLE purpose is to provide emotional support, guidance on mental wellness, and empathetic listening.

STRICT RULES:
1. EXCLUSIVELY discuss topics related to mental health, emotions, stress, relationships, self-care, and well-being.
2. If the user asks about coding, math, general trivia, sports, politics, or any topic unrelated to mental health, politely decline. Say something like: "I am designed to focus only on your mental well-being and emotional health. How are you feeling today?"
3. Be empathetic, validative, and non-judgmental.
4. Never claim to replace a therapist or professional help.
5. CRISIS PROTOCOL: If the user expresses self-harm, suicide, or severe distress, immediately urge them to seek professional help and provide general emergency context, but do not provide medical advice.
6. Keep responses concise, warm, and natural.
`

// Service governs conversation lifecycle and assembles the bounded prompt
// context sent to the language model.
type Service struct {
	storage   storage.Storage
	assistant assistant.Client
	maxTokens int
	logger    *zap.Logger

	// now is injectable for deterministic tests.
	now func() time.Time
}

func NewService(store storage.Storage, client assistant.Client, maxTokens int, logger *zap.Logger) *Service {
	return &Service{
		storage:   store,
		assistant: client,
		maxTokens: maxTokens,
		logger:    logger,
		now:       time.Now,
	}
}

// SendResult is what a successful SendMessage returns: the conversation the
// exchange belongs to and both newly persisted turns.
type SendResult struct {
	ConversationID   string              `json:"conversation_id"`
	UserMessage      *models.ChatMessage `json:"user_message"`
	AssistantMessage *models.ChatMessage `json:"assistant_message"`
}

// SendMessage validates and persists a user message, assembles the bounded
// chat context, delegates to the language model and persists its reply.
//
// When the model call fails the user's turn is deliberately kept: a
// conversation may legitimately contain an unanswered user message. Only the
// assistant turn is skipped.
func (s *Service) SendMessage(ctx context.Context, userID, message, conversationID string) (*SendResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperrors.Validation("message cannot be empty")
	}

	conversationID, err := s.resolveConversation(ctx, userID, message, conversationID)
	if err != nil {
		return nil, err
	}

	userMsg := &models.ChatMessage{
		ConversationID: conversationID,
		UserID:         userID,
		Message:        message,
		Sender:         models.SenderUser,
	}
	if err := s.storage.AppendMessage(ctx, userMsg); err != nil {
		return nil, err
	}
	if err := s.storage.TouchConversation(ctx, conversationID, message, s.now()); err != nil {
		return nil, err
	}

	prompt, err := s.buildPrompt(ctx, conversationID, message)
	if err != nil {
		return nil, err
	}

	reply, err := s.assistant.Complete(ctx, prompt, s.maxTokens)
	if err != nil {
		var upstream *apperrors.UpstreamError
		if errors.As(err, &upstream) {
			return nil, err
		}
		s.logger.Error("Assistant call failed",
			zap.Error(err),
			zap.String("conversation_id", conversationID))
		return nil, apperrors.Unknown(err)
	}

	assistantMsg := &models.ChatMessage{
		ConversationID: conversationID,
		UserID:         userID,
		Message:        reply,
		Sender:         models.SenderAssistant,
	}
	if err := s.storage.AppendMessage(ctx, assistantMsg); err != nil {
		return nil, err
	}
	if err := s.storage.TouchConversation(ctx, conversationID, reply, s.now()); err != nil {
		return nil, err
	}

	return &SendResult{
		ConversationID:   conversationID,
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
	}, nil
}

// resolveConversation returns the id of the conversation the message belongs
// to, creating one lazily when none was supplied.
func (s *Service) resolveConversation(ctx context.Context, userID, message, conversationID string) (string, error) {
	if conversationID != "" {
		conv, err := s.storage.GetConversation(ctx, userID, conversationID)
		if err != nil {
			return "", err
		}
		return conv.ID, nil
	}

	conv := &models.Conversation{
		UserID:      userID,
		Title:       deriveTitle(message),
		LastMessage: message,
	}
	if err := s.storage.CreateConversation(ctx, conv); err != nil {
		return "", err
	}
	return conv.ID, nil
}

// buildPrompt assembles the ordered prompt sequence: the system persona
// first, then the recent history in chronological order, then the live user
// message last. The live message is appended even when it already appears in
// the fetched history, so it is guaranteed to be present regardless of read
// timing.
func (s *Service) buildPrompt(ctx context.Context, conversationID, message string) ([]assistant.Message, error) {
	history, err := s.storage.RecentMessages(ctx, conversationID, historyLimit)
	if err != nil {
		return nil, err
	}

	prompt := make([]assistant.Message, 0, len(history)+2)
	prompt = append(prompt, assistant.Message{Role: assistant.RoleSystem, Content: systemPrompt})

	// History arrives most-recent-first; walk it backwards to restore
	// chronological order.
	for i := len(history) - 1; i >= 0; i-- {
		role := assistant.RoleAssistant
		if history[i].Sender == models.SenderUser {
			role = assistant.RoleUser
		}
		prompt = append(prompt, assistant.Message{Role: role, Content: history[i].Message})
	}

	prompt = append(prompt, assistant.Message{Role: assistant.RoleUser, Content: message})
	return prompt, nil
}

// deriveTitle builds a conversation title from the first few words of the
// opening message.
func deriveTitle(message string) string {
	words := strings.Fields(message)
	if len(words) > titleWords {
		words = words[:titleWords]
	}
	return strings.Join(words, " ") + "..."
}

// Conversations lists the user's conversations, most recently updated first.
func (s *Service) Conversations(ctx context.Context, userID string) ([]*models.Conversation, error) {
	return s.storage.ListConversations(ctx, userID, conversationListLimit)
}

// Messages returns one page of a conversation's history in chronological
// order. Page numbering starts at 1; a non-positive limit uses the default
// page size.
func (s *Service) Messages(ctx context.Context, userID, conversationID string, page, limit int) ([]*models.ChatMessage, error) {
	if limit <= 0 {
		limit = defaultMessagePageSize
	}
	return s.storage.ListMessages(ctx, userID, conversationID, page, limit)
}
