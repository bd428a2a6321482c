package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xaenox/mindmate/internal/apperrors"
	"github.com/xaenox/mindmate/internal/models"
)

type MemoryStorage struct {
	mu            sync.RWMutex
	users         map[string]*models.User
	journals      map[string]*models.JournalEntry
	moods         map[string]*models.MoodEntry
	conversations map[string]*models.Conversation
	messages      map[string]*models.ChatMessage
	seq           int64
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:         make(map[string]*models.User),
		journals:      make(map[string]*models.JournalEntry),
		moods:         make(map[string]*models.MoodEntry),
		conversations: make(map[string]*models.Conversation),
		messages:      make(map[string]*models.ChatMessage),
	}
}

// now returns a strictly increasing timestamp so that message ordering is
// stable even when several writes land within the clock's resolution.
func (s *MemoryStorage) now() time.Time {
	s.seq++
	return time.Now().Add(time.Duration(s.seq) * time.Microsecond)
}

func (s *MemoryStorage) CreateJournal(ctx context.Context, entry *models.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	entry.CreatedAt = time.Now()

	stored := *entry
	s.journals[entry.ID] = &stored
	return nil
}

func (s *MemoryStorage) ListJournals(ctx context.Context, userID string) ([]*models.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []*models.JournalEntry
	for _, e := range s.journals {
		if e.UserID == userID {
			copied := *e
			entries = append(entries, &copied)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries, nil
}

func (s *MemoryStorage) GetJournal(ctx context.Context, userID, id string) (*models.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, exists := s.journals[id]; exists && e.UserID == userID {
		copied := *e
		return &copied, nil
	}
	return nil, apperrors.NotFound("journal entry")
}

func (s *MemoryStorage) UpdateJournal(ctx context.Context, entry *models.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.journals[entry.ID]
	if !exists || existing.UserID != entry.UserID {
		return apperrors.NotFound("journal entry")
	}

	entry.CreatedAt = existing.CreatedAt
	stored := *entry
	s.journals[entry.ID] = &stored
	return nil
}

func (s *MemoryStorage) DeleteJournal(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, exists := s.journals[id]; exists && e.UserID == userID {
		delete(s.journals, id)
		return nil
	}
	return apperrors.NotFound("journal entry")
}

func (s *MemoryStorage) CreateMood(ctx context.Context, entry *models.MoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}

	stored := *entry
	s.moods[entry.ID] = &stored
	return nil
}

func (s *MemoryStorage) ListMoods(ctx context.Context, userID string) ([]*models.MoodEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []*models.MoodEntry
	for _, e := range s.moods {
		if e.UserID == userID {
			copied := *e
			entries = append(entries, &copied)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries, nil
}

func (s *MemoryStorage) GetMood(ctx context.Context, userID, id string) (*models.MoodEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, exists := s.moods[id]; exists && e.UserID == userID {
		copied := *e
		return &copied, nil
	}
	return nil, apperrors.NotFound("mood entry")
}

func (s *MemoryStorage) UpdateMood(ctx context.Context, entry *models.MoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.moods[entry.ID]
	if !exists || existing.UserID != entry.UserID {
		return apperrors.NotFound("mood entry")
	}

	stored := *entry
	s.moods[entry.ID] = &stored
	return nil
}

func (s *MemoryStorage) DeleteMood(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, exists := s.moods[id]; exists && e.UserID == userID {
		delete(s.moods, id)
		return nil
	}
	return apperrors.NotFound("mood entry")
}

func (s *MemoryStorage) ActivityDates(ctx context.Context, userID string, source models.ActivitySource) ([]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var dates []time.Time
	switch source {
	case models.ActivityJournal:
		for _, e := range s.journals {
			if e.UserID == userID {
				dates = append(dates, e.Date)
			}
		}
	case models.ActivityMood:
		for _, e := range s.moods {
			if e.UserID == userID {
				dates = append(dates, e.Date)
			}
		}
	}
	return dates, nil
}

func (s *MemoryStorage) GetOrCreateUser(ctx context.Context, id, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, exists := s.users[id]; exists {
		copied := *u
		return &copied, nil
	}

	user := &models.User{
		ID:    id,
		Email: email,
		Preferences: models.UserPreferences{
			Theme:    "light",
			Language: "en",
		},
		CreatedAt: time.Now(),
	}
	s.users[id] = user

	copied := *user
	return &copied, nil
}

func (s *MemoryStorage) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conv.ID == "" {
		conv.ID = uuid.New().String()
	}
	now := s.now()
	conv.CreatedAt = now
	conv.UpdatedAt = now

	stored := *conv
	s.conversations[conv.ID] = &stored
	return nil
}

func (s *MemoryStorage) GetConversation(ctx context.Context, userID, id string) (*models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, exists := s.conversations[id]; exists && c.UserID == userID {
		copied := *c
		return &copied, nil
	}
	return nil, apperrors.NotFound("conversation")
}

func (s *MemoryStorage) ListConversations(ctx context.Context, userID string, limit int) ([]*models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var convs []*models.Conversation
	for _, c := range s.conversations {
		if c.UserID == userID {
			copied := *c
			convs = append(convs, &copied)
		}
	}
	sort.Slice(convs, func(i, j int) bool {
		return convs[i].UpdatedAt.After(convs[j].UpdatedAt)
	})
	if limit > 0 && len(convs) > limit {
		convs = convs[:limit]
	}
	return convs, nil
}

func (s *MemoryStorage) TouchConversation(ctx context.Context, id, lastMessage string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, exists := s.conversations[id]; exists {
		c.LastMessage = lastMessage
		c.UpdatedAt = at
	}
	return nil
}

func (s *MemoryStorage) AppendMessage(ctx context.Context, msg *models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	msg.CreatedAt = s.now()

	stored := *msg
	s.messages[msg.ID] = &stored
	return nil
}

func (s *MemoryStorage) RecentMessages(ctx context.Context, conversationID string, limit int) ([]*models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.conversationMessages(conversationID, "")
	// Most recent first
	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func (s *MemoryStorage) ListMessages(ctx context.Context, userID, conversationID string, page, limit int) ([]*models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.conversationMessages(conversationID, userID)
	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	if offset >= len(msgs) {
		return nil, nil
	}
	msgs = msgs[offset:]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func (s *MemoryStorage) conversationMessages(conversationID, userID string) []*models.ChatMessage {
	var msgs []*models.ChatMessage
	for _, m := range s.messages {
		if m.ConversationID != conversationID {
			continue
		}
		if userID != "" && m.UserID != userID {
			continue
		}
		copied := *m
		msgs = append(msgs, &copied)
	}
	return msgs
}

func (s *MemoryStorage) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
