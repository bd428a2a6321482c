package models

import "time"

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// JournalEntry is a single dated journal record for a user.
type JournalEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Emotion   string    `json:"emotion,omitempty"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// MoodEntry is a single dated mood check-in for a user.
type MoodEntry struct {
	ID     string    `json:"id"`
	UserID string    `json:"user_id"`
	Score  int       `json:"score"`
	Mood   string    `json:"mood"`
	Note   string    `json:"note,omitempty"`
	Date   time.Time `json:"date"`
}

// User is the stored profile behind a verified identity. It is created
// lazily the first time a verified user is seen.
type User struct {
	ID          string          `json:"id"`
	Email       string          `json:"email,omitempty"`
	Preferences UserPreferences `json:"preferences"`
	CreatedAt   time.Time       `json:"created_at"`
}

type UserPreferences struct {
	Theme    string `json:"theme"`
	Language string `json:"language"`
}

// Conversation is one chat thread between a user and the assistant.
// LastMessage mirrors the text of the most recent message, either sender,
// and UpdatedAt is refreshed every time a message is appended.
type Conversation struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	LastMessage string    `json:"last_message"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChatMessage is a single turn within a conversation. Turns are append-only;
// they are never edited or deleted once written.
type ChatMessage struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	UserID         string    `json:"user_id"`
	Message        string    `json:"message"`
	Sender         Sender    `json:"sender"`
	CreatedAt      time.Time `json:"created_at"`
}

// ActivitySource names a collection that contributes to activity stats.
type ActivitySource string

const (
	ActivityJournal ActivitySource = "journal"
	ActivityMood    ActivitySource = "mood"
)
