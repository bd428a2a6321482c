package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/mindmate/internal/apperrors"
	"github.com/xaenox/mindmate/internal/models"
)

func TestMemoryRecentMessagesOrderAndCap(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	conv := &models.Conversation{UserID: "u1", Title: "chat..."}
	require.NoError(t, s.CreateConversation(ctx, conv))

	for i := 0; i < 15; i++ {
		require.NoError(t, s.AppendMessage(ctx, &models.ChatMessage{
			ConversationID: conv.ID,
			UserID:         "u1",
			Message:        fmt.Sprintf("m%d", i),
			Sender:         models.SenderUser,
		}))
	}

	msgs, err := s.RecentMessages(ctx, conv.ID, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 10)

	// Most recent first
	assert.Equal(t, "m14", msgs[0].Message)
	assert.Equal(t, "m5", msgs[9].Message)
}

func TestMemoryListMessagesPagination(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	conv := &models.Conversation{UserID: "u1", Title: "chat..."}
	require.NoError(t, s.CreateConversation(ctx, conv))

	for i := 0; i < 7; i++ {
		require.NoError(t, s.AppendMessage(ctx, &models.ChatMessage{
			ConversationID: conv.ID,
			UserID:         "u1",
			Message:        fmt.Sprintf("m%d", i),
			Sender:         models.SenderUser,
		}))
	}

	page1, err := s.ListMessages(ctx, "u1", conv.ID, 1, 3)
	require.NoError(t, err)
	require.Len(t, page1, 3)
	assert.Equal(t, "m0", page1[0].Message)

	page3, err := s.ListMessages(ctx, "u1", conv.ID, 3, 3)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, "m6", page3[0].Message)

	empty, err := s.ListMessages(ctx, "u1", conv.ID, 4, 3)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryTouchConversation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	conv := &models.Conversation{UserID: "u1", Title: "chat...", LastMessage: "first"}
	require.NoError(t, s.CreateConversation(ctx, conv))

	at := time.Now().Add(time.Hour)
	require.NoError(t, s.TouchConversation(ctx, conv.ID, "latest", at))

	got, err := s.GetConversation(ctx, "u1", conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "latest", got.LastMessage)
	assert.True(t, got.UpdatedAt.Equal(at))
}

func TestMemoryConversationsSortedByUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	a := &models.Conversation{UserID: "u1", Title: "a..."}
	b := &models.Conversation{UserID: "u1", Title: "b..."}
	require.NoError(t, s.CreateConversation(ctx, a))
	require.NoError(t, s.CreateConversation(ctx, b))

	require.NoError(t, s.TouchConversation(ctx, a.ID, "bump", time.Now().Add(time.Minute)))

	convs, err := s.ListConversations(ctx, "u1", 50)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, a.ID, convs[0].ID)
}

func TestMemoryActivityDates(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	d1 := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.CreateJournal(ctx, &models.JournalEntry{UserID: "u1", Title: "t", Content: "c", Date: d1}))
	require.NoError(t, s.CreateMood(ctx, &models.MoodEntry{UserID: "u1", Score: 3, Mood: "ok", Date: d2}))
	require.NoError(t, s.CreateMood(ctx, &models.MoodEntry{UserID: "u2", Score: 3, Mood: "ok", Date: d2}))

	journal, err := s.ActivityDates(ctx, "u1", models.ActivityJournal)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{d1}, journal)

	mood, err := s.ActivityDates(ctx, "u1", models.ActivityMood)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{d2}, mood)
}

func TestMemoryGetOrCreateUser(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	created, err := s.GetOrCreateUser(ctx, "u1", "u1@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", created.ID)
	assert.Equal(t, "light", created.Preferences.Theme)

	// Second sight returns the stored profile unchanged.
	again, err := s.GetOrCreateUser(ctx, "u1", "other@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1@example.com", again.Email)
	assert.True(t, again.CreatedAt.Equal(created.CreatedAt))
}

func TestMemoryMoodGetAndUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	entry := &models.MoodEntry{UserID: "u1", Score: 4, Mood: "calm", Note: "slept well"}
	require.NoError(t, s.CreateMood(ctx, entry))

	got, err := s.GetMood(ctx, "u1", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "calm", got.Mood)

	got.Score = 2
	require.NoError(t, s.UpdateMood(ctx, got))

	updated, err := s.GetMood(ctx, "u1", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Score)
	assert.Equal(t, "slept well", updated.Note)

	var notFound *apperrors.NotFoundError
	_, err = s.GetMood(ctx, "u2", entry.ID)
	require.ErrorAs(t, err, &notFound)
	require.ErrorAs(t, s.UpdateMood(ctx, &models.MoodEntry{ID: entry.ID, UserID: "u2"}), &notFound)
}

func TestMemoryJournalCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	entry := &models.JournalEntry{UserID: "u1", Title: "day one", Content: "wrote things"}
	require.NoError(t, s.CreateJournal(ctx, entry))
	require.NotEmpty(t, entry.ID)
	assert.False(t, entry.Date.IsZero())

	entry.Content = "rewrote things"
	require.NoError(t, s.UpdateJournal(ctx, entry))

	got, err := s.GetJournal(ctx, "u1", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "rewrote things", got.Content)

	// Foreign user never sees the entry.
	_, err = s.GetJournal(ctx, "u2", entry.ID)
	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)

	require.NoError(t, s.DeleteJournal(ctx, "u1", entry.ID))
	require.ErrorAs(t, s.DeleteJournal(ctx, "u1", entry.ID), &notFound)
}
