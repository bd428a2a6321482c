package storage

import (
	"context"
	"time"

	"github.com/xaenox/mindmate/internal/models"
)

// Storage is the persistence collaborator for journals, moods and chat.
// Implementations are externally synchronized; the callers do no locking.
type Storage interface {
	// Journal entries
	CreateJournal(ctx context.Context, entry *models.JournalEntry) error
	ListJournals(ctx context.Context, userID string) ([]*models.JournalEntry, error)
	GetJournal(ctx context.Context, userID, id string) (*models.JournalEntry, error)
	UpdateJournal(ctx context.Context, entry *models.JournalEntry) error
	DeleteJournal(ctx context.Context, userID, id string) error

	// Mood entries
	CreateMood(ctx context.Context, entry *models.MoodEntry) error
	ListMoods(ctx context.Context, userID string) ([]*models.MoodEntry, error)
	GetMood(ctx context.Context, userID, id string) (*models.MoodEntry, error)
	UpdateMood(ctx context.Context, entry *models.MoodEntry) error
	DeleteMood(ctx context.Context, userID, id string) error

	// GetOrCreateUser returns the stored profile for a verified user,
	// creating it on first sight.
	GetOrCreateUser(ctx context.Context, id, email string) (*models.User, error)

	// ActivityDates returns the raw timestamps of every record in the given
	// collection for one user, in no particular order.
	ActivityDates(ctx context.Context, userID string, source models.ActivitySource) ([]time.Time, error)

	// Embed ConversationStorage interface
	ConversationStorage

	Close() error
}

type ConversationStorage interface {
	CreateConversation(ctx context.Context, conv *models.Conversation) error
	GetConversation(ctx context.Context, userID, id string) (*models.Conversation, error)
	ListConversations(ctx context.Context, userID string, limit int) ([]*models.Conversation, error)

	// TouchConversation updates a conversation's lastMessage and updatedAt.
	// Concurrent touches are last-write-wins.
	TouchConversation(ctx context.Context, id, lastMessage string, at time.Time) error

	AppendMessage(ctx context.Context, msg *models.ChatMessage) error

	// RecentMessages returns up to limit messages for a conversation,
	// most recent first.
	RecentMessages(ctx context.Context, conversationID string, limit int) ([]*models.ChatMessage, error)

	// ListMessages returns a page of a user's messages in a conversation in
	// chronological order. Page numbering starts at 1.
	ListMessages(ctx context.Context, userID, conversationID string, page, limit int) ([]*models.ChatMessage, error)
}
