package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/mindmate/internal/models"
	"github.com/xaenox/mindmate/internal/storage"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestUserStatsCombinesCollections(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	svc := NewService(store)
	svc.now = func() time.Time { return now }

	// Journal today, mood entry the same day, mood yesterday.
	require.NoError(t, store.CreateJournal(ctx, &models.JournalEntry{
		UserID: "user-1", Title: "t", Content: "c", Date: now,
	}))
	require.NoError(t, store.CreateMood(ctx, &models.MoodEntry{
		UserID: "user-1", Score: 4, Mood: "calm", Date: now.Add(-2 * time.Hour),
	}))
	require.NoError(t, store.CreateMood(ctx, &models.MoodEntry{
		UserID: "user-1", Score: 2, Mood: "tense", Date: now.AddDate(0, 0, -1),
	}))

	result, err := svc.UserStats(ctx, "user-1")
	require.NoError(t, err)

	// Same-day records collapse across collections.
	assert.Equal(t, 2, result.TotalActiveDays)
	assert.Equal(t, 2, result.Streak)
}

func TestUserStatsEmpty(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	svc := NewService(store)
	svc.now = func() time.Time { return now }

	result, err := svc.UserStats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Streak)
	assert.Equal(t, 0, result.TotalActiveDays)
}

func TestUserStatsIgnoresOtherUsers(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	svc := NewService(store)
	svc.now = func() time.Time { return now }

	require.NoError(t, store.CreateJournal(ctx, &models.JournalEntry{
		UserID: "someone-else", Title: "t", Content: "c", Date: now,
	}))

	result, err := svc.UserStats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalActiveDays)
}
