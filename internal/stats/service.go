package stats

import (
	"context"
	"time"

	"github.com/xaenox/mindmate/internal/models"
	"github.com/xaenox/mindmate/internal/storage"
	"github.com/xaenox/mindmate/internal/streak"
)

// Service computes activity stats over a user's journal and mood records.
type Service struct {
	storage storage.Storage

	// now is injectable for deterministic tests.
	now func() time.Time
}

func NewService(store storage.Storage) *Service {
	return &Service{
		storage: store,
		now:     time.Now,
	}
}

// UserStats fetches the user's activity timestamps from both collections and
// runs the streak calculation over the combined set. Records from different
// collections on the same calendar day collapse to one active day.
func (s *Service) UserStats(ctx context.Context, userID string) (streak.Stats, error) {
	journalDates, err := s.storage.ActivityDates(ctx, userID, models.ActivityJournal)
	if err != nil {
		return streak.Stats{}, err
	}
	moodDates, err := s.storage.ActivityDates(ctx, userID, models.ActivityMood)
	if err != nil {
		return streak.Stats{}, err
	}

	dates := make([]time.Time, 0, len(journalDates)+len(moodDates))
	dates = append(dates, journalDates...)
	dates = append(dates, moodDates...)

	return streak.Calculate(dates, s.now()), nil
}
