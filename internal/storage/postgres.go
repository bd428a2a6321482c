package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/xaenox/mindmate/internal/apperrors"
	"github.com/xaenox/mindmate/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config DatabaseConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	storage := &PostgresStorage{db: db}

	// Initialize database schema
	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %v", err)
	}

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %v", err)
	}

	_, err = s.db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error executing migrations: %v", err)
	}

	return nil
}

func (s *PostgresStorage) CreateJournal(ctx context.Context, entry *models.JournalEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}

	query := `
		INSERT INTO journal_entries (id, user_id, title, content, emotion, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := s.db.QueryRowContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Title,
		entry.Content,
		entry.Emotion,
		entry.Date,
	).Scan(&entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating journal entry: %v", err)
	}

	return nil
}

func (s *PostgresStorage) ListJournals(ctx context.Context, userID string) ([]*models.JournalEntry, error) {
	query := `
		SELECT id, user_id, title, content, emotion, date, created_at
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying journal entries: %v", err)
	}
	defer rows.Close()

	var entries []*models.JournalEntry
	for rows.Next() {
		entry := &models.JournalEntry{}
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Title,
			&entry.Content,
			&entry.Emotion,
			&entry.Date,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning journal entry: %v", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (s *PostgresStorage) GetJournal(ctx context.Context, userID, id string) (*models.JournalEntry, error) {
	query := `
		SELECT id, user_id, title, content, emotion, date, created_at
		FROM journal_entries
		WHERE id = $1 AND user_id = $2`

	entry := &models.JournalEntry{}
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Title,
		&entry.Content,
		&entry.Emotion,
		&entry.Date,
		&entry.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("journal entry")
	}
	if err != nil {
		return nil, fmt.Errorf("error querying journal entry: %v", err)
	}

	return entry, nil
}

func (s *PostgresStorage) UpdateJournal(ctx context.Context, entry *models.JournalEntry) error {
	query := `
		UPDATE journal_entries
		SET title = $1, content = $2, emotion = $3, date = $4
		WHERE id = $5 AND user_id = $6`

	result, err := s.db.ExecContext(ctx, query,
		entry.Title, entry.Content, entry.Emotion, entry.Date, entry.ID, entry.UserID)
	if err != nil {
		return fmt.Errorf("error updating journal entry: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return apperrors.NotFound("journal entry")
	}

	return nil
}

func (s *PostgresStorage) DeleteJournal(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting journal entry: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return apperrors.NotFound("journal entry")
	}

	return nil
}

func (s *PostgresStorage) CreateMood(ctx context.Context, entry *models.MoodEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mood_entries (id, user_id, score, mood, note, date)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.UserID, entry.Score, entry.Mood, entry.Note, entry.Date)
	if err != nil {
		return fmt.Errorf("error creating mood entry: %v", err)
	}

	return nil
}

func (s *PostgresStorage) ListMoods(ctx context.Context, userID string) ([]*models.MoodEntry, error) {
	query := `
		SELECT id, user_id, score, mood, note, date
		FROM mood_entries
		WHERE user_id = $1
		ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying mood entries: %v", err)
	}
	defer rows.Close()

	var entries []*models.MoodEntry
	for rows.Next() {
		entry := &models.MoodEntry{}
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Score,
			&entry.Mood,
			&entry.Note,
			&entry.Date,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning mood entry: %v", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (s *PostgresStorage) GetMood(ctx context.Context, userID, id string) (*models.MoodEntry, error) {
	query := `
		SELECT id, user_id, score, mood, note, date
		FROM mood_entries
		WHERE id = $1 AND user_id = $2`

	entry := &models.MoodEntry{}
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Score,
		&entry.Mood,
		&entry.Note,
		&entry.Date,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("mood entry")
	}
	if err != nil {
		return nil, fmt.Errorf("error querying mood entry: %v", err)
	}

	return entry, nil
}

func (s *PostgresStorage) UpdateMood(ctx context.Context, entry *models.MoodEntry) error {
	query := `
		UPDATE mood_entries
		SET score = $1, mood = $2, note = $3, date = $4
		WHERE id = $5 AND user_id = $6`

	result, err := s.db.ExecContext(ctx, query,
		entry.Score, entry.Mood, entry.Note, entry.Date, entry.ID, entry.UserID)
	if err != nil {
		return fmt.Errorf("error updating mood entry: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return apperrors.NotFound("mood entry")
	}

	return nil
}

func (s *PostgresStorage) DeleteMood(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM mood_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting mood entry: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return apperrors.NotFound("mood entry")
	}

	return nil
}

func (s *PostgresStorage) ActivityDates(ctx context.Context, userID string, source models.ActivitySource) ([]time.Time, error) {
	var query string
	switch source {
	case models.ActivityJournal:
		query = `SELECT date FROM journal_entries WHERE user_id = $1`
	case models.ActivityMood:
		query = `SELECT date FROM mood_entries WHERE user_id = $1`
	default:
		return nil, fmt.Errorf("unknown activity source: %s", source)
	}

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying activity dates: %v", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("error scanning activity date: %v", err)
		}
		dates = append(dates, d)
	}

	return dates, rows.Err()
}

func (s *PostgresStorage) GetOrCreateUser(ctx context.Context, id, email string) (*models.User, error) {
	insert := `
		INSERT INTO users (id, email)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING`
	if _, err := s.db.ExecContext(ctx, insert, id, email); err != nil {
		return nil, fmt.Errorf("error creating user: %v", err)
	}

	user := &models.User{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, theme, language, created_at
		FROM users
		WHERE id = $1`, id).Scan(
		&user.ID,
		&user.Email,
		&user.Preferences.Theme,
		&user.Preferences.Language,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying user: %v", err)
	}

	return user, nil
}

func (s *PostgresStorage) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	if conv.ID == "" {
		conv.ID = uuid.New().String()
	}

	query := `
		INSERT INTO conversations (id, user_id, title, last_message)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := s.db.QueryRowContext(ctx, query,
		conv.ID, conv.UserID, conv.Title, conv.LastMessage,
	).Scan(&conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating conversation: %v", err)
	}

	return nil
}

func (s *PostgresStorage) GetConversation(ctx context.Context, userID, id string) (*models.Conversation, error) {
	query := `
		SELECT id, user_id, title, last_message, created_at, updated_at
		FROM conversations
		WHERE id = $1 AND user_id = $2`

	conv := &models.Conversation{}
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(
		&conv.ID,
		&conv.UserID,
		&conv.Title,
		&conv.LastMessage,
		&conv.CreatedAt,
		&conv.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("conversation")
	}
	if err != nil {
		return nil, fmt.Errorf("error querying conversation: %v", err)
	}

	return conv, nil
}

func (s *PostgresStorage) ListConversations(ctx context.Context, userID string, limit int) ([]*models.Conversation, error) {
	query := `
		SELECT id, user_id, title, last_message, created_at, updated_at
		FROM conversations
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying conversations: %v", err)
	}
	defer rows.Close()

	var convs []*models.Conversation
	for rows.Next() {
		conv := &models.Conversation{}
		err := rows.Scan(
			&conv.ID,
			&conv.UserID,
			&conv.Title,
			&conv.LastMessage,
			&conv.CreatedAt,
			&conv.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning conversation: %v", err)
		}
		convs = append(convs, conv)
	}

	return convs, rows.Err()
}

func (s *PostgresStorage) TouchConversation(ctx context.Context, id, lastMessage string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE conversations
		SET last_message = $1, updated_at = $2
		WHERE id = $3`,
		lastMessage, at, id)
	if err != nil {
		return fmt.Errorf("error updating conversation: %v", err)
	}

	return nil
}

func (s *PostgresStorage) AppendMessage(ctx context.Context, msg *models.ChatMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}

	query := `
		INSERT INTO chat_messages (id, conversation_id, user_id, message, sender)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := s.db.QueryRowContext(ctx, query,
		msg.ID, msg.ConversationID, msg.UserID, msg.Message, msg.Sender,
	).Scan(&msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating chat message: %v", err)
	}

	return nil
}

func (s *PostgresStorage) RecentMessages(ctx context.Context, conversationID string, limit int) ([]*models.ChatMessage, error) {
	query := `
		SELECT id, conversation_id, user_id, message, sender, created_at
		FROM chat_messages
		WHERE conversation_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying chat messages: %v", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

func (s *PostgresStorage) ListMessages(ctx context.Context, userID, conversationID string, page, limit int) ([]*models.ChatMessage, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := `
		SELECT id, conversation_id, user_id, message, sender, created_at
		FROM chat_messages
		WHERE conversation_id = $1 AND user_id = $2
		ORDER BY created_at ASC
		OFFSET $3 LIMIT $4`

	rows, err := s.db.QueryContext(ctx, query, conversationID, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying chat messages: %v", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

func scanMessages(rows *sql.Rows) ([]*models.ChatMessage, error) {
	var msgs []*models.ChatMessage
	for rows.Next() {
		msg := &models.ChatMessage{}
		err := rows.Scan(
			&msg.ID,
			&msg.ConversationID,
			&msg.UserID,
			&msg.Message,
			&msg.Sender,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning chat message: %v", err)
		}
		msgs = append(msgs, msg)
	}

	return msgs, rows.Err()
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
