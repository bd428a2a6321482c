package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/xaenox/mindmate/internal/apperrors"
	"github.com/xaenox/mindmate/internal/models"
)

func envelope(data any) map[string]any {
	return map[string]any{"status": "success", "data": data}
}

func errorEnvelope(message string) map[string]any {
	return map[string]any{"status": "error", "message": message}
}

func (s *Server) fail(c *echo.Context, err error) error {
	s.logError(err)
	status, message := statusForError(err)
	return c.JSON(status, errorEnvelope(message))
}

func (s *Server) root(c *echo.Context) error {
	return c.String(http.StatusOK, "MindMate API is running")
}

// Auth handlers

func (s *Server) getMe(c *echo.Context) error {
	userID, err := s.requireAuth(c)
	if err != nil {
		return err
	}

	// The profile is created lazily on first sight. Email comes from the
	// identity provider when the verifier carries one; the static verifier
	// does not.
	user, err := s.storage.GetOrCreateUser(c.Request().Context(), userID, "")
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"user": user}))
}

// Journal handlers

type journalRequest struct {
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Emotion string     `json:"emotion"`
	Date    *time.Time `json:"date"`
}

func (s *Server) listJournals(c *echo.Context) error {
	userID, err := s.requireAuth(c)
	if err != nil {
		return err
	}

	entries, err := s.storage.ListJournals(c.Request().Context(), userID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"journals": entries}))
}

func (s *Server) createJournal(c *echo.Context) error {
	userID, err := s.requireAuth(c)
	if err != nil {
		return err
	}

	var req journalRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, apperrors.Validation("invalid request body"))
	}
	if req.Title == "" {
		return s.fail(c, apperrors.Validation("journal entry must have a title"))
	}
	if req.Content == "" {
		return s.fail(c, apperrors.Validation("journal entry must have content"))
	}

	entry := &models.JournalEntry{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		Emotion: req.Emotion,
	}
	if req.Date != nil {
		entry.Date = *req.Date
	}

	if err := s.storage.CreateJournal(c.Request().Context(), entry); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, envelope(map[string]any{"journal": entry}))
}

func (s *Server) updateJournal(c *echo.Context) error {
	userID, err := s.requireAuth(c)
	if err != nil {
		return err
	}

	entry, err := s.storage.GetJournal(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	var req journalRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, apperrors.Validation("invalid request body"))
	}

	// Partial update: absent fields keep their stored values.
	if req.Title != "" {
		entry.Title = req.Title
	}
	if req.Content != "" {
		entry.Content = req.Content
	}
	if req.Emotion != "" {
		entry.Emotion = req.Emotion
	}
	if req.Date != nil {
		entry.Date = *req.Date
	}

	if err := s.storage.UpdateJournal(c.Request().Context(), entry); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"journal": entry}))
}

func (s *Server) deleteJournal(c *echo.Context) error {
	userID, err := s.requireAuth(c)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteJournal(c.Request().Context(), userID, c.Param("id")); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Mood handlers

type moodRequest struct {
	Score int        `json:"score"`
	Mood  string     `json:"mood"`
	Note  string     `json:"note"`
	Date  *time.Time `json:"date"`
}

func (s *Server) listMoods(c *echo.Context) error {
	userID, err := s.requireAuth(c)
	if err != nil {
		return err
	}

	entries, err := s.storage.ListMoods(c.Request().Context(), userID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"moods": entries}))
}

func (s *Server) createMood(c *echo.Context) error {
	userID, err := s.requireAuth(c)
	if err != nil {
		return err
	}

	var req moodRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, apperrors.Validation("invalid request body"))
	}
	if req.Score < 1 || req.Score > 5 {
		return s.fail(c, apperrors.Validation("mood score must be between 1 and 5"))
	}
	if req.Mood == "" {
		return s.fail(c, apperrors.Validation("mood entry must have a mood description"))
	}

	entry := &models.MoodEntry{
		UserID: userID,
		Score:  req.Score,
		Mood:   req.Mood,
		Note:   req.Note,
	}
	if req.Date != nil {
		entry.Date = *req.Date
	}

	if err := s.storage.CreateMood(c.Request().Context(), entry); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, envelope(map[string]any{"mood": entry}))
}

type moodUpdateRequest struct {
	Score *int       `json:"score"`
	Mood  *string    `json:"mood"`
	Note  *string    `json:"note"`
	Date  *time.Time `json:"date"`
}

func (s *Server) getMood(c *echo.Context) error {
	userID, err := s.requireAuth(c)
	if err != nil {
		return err
	}

	entry, err := s.storage.GetMood(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"mood": entry}))
}

func (s *Server) updateMood(c *echo.Context) error {
	userID, err := s.requireAuth(c)
	if err != nil {
		return err
	}

	entry, err := s.storage.GetMood(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	var req moodUpdateRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, apperrors.Validation("invalid request body"))
	}

	// Partial update: absent fields keep their stored values.
	if req.Score != nil {
		if *req.Score < 1 || *req.Score > 5 {
			return s.fail(c, apperrors.Validation("mood score must be between 1 and 5"))
		}
		entry.Score = *req.Score
	}
	if req.Mood != nil {
		if *req.Mood == "" {
			return s.fail(c, apperrors.Validation("mood description cannot be empty"))
		}
		entry.Mood = *req.Mood
	}
	if req.Note != nil {
		entry.Note = *req.Note
	}
	if req.Date != nil {
		entry.Date = *req.Date
	}

	if err := s.storage.UpdateMood(c.Request().Context(), entry); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"mood": entry}))
}

func (s *Server) deleteMood(c *echo.Context) error {
	userID, err := s.requireAuth(c)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteMood(c.Request().Context(), userID, c.Param("id")); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Chat handlers

type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
}

func (s *Server) chatMessage(c *echo.Context) error {
	userID, err := s.requireAuth(c)
	if err != nil {
		return err
	}

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, apperrors.Validation("invalid request body"))
	}

	result, err := s.chat.SendMessage(c.Request().Context(), userID, req.Message, req.ConversationID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, envelope(result))
}

func (s *Server) listConversations(c *echo.Context) error {
	userID, err := s.requireAuth(c)
	if err != nil {
		return err
	}

	convs, err := s.chat.Conversations(c.Request().Context(), userID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"conversations": convs}))
}

func (s *Server) listMessages(c *echo.Context) error {
	userID, err := s.requireAuth(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	msgs, err := s.chat.Messages(c.Request().Context(), userID, c.Param("conversationId"), page, limit)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"messages": msgs}))
}

// Stats handler

func (s *Server) getStats(c *echo.Context) error {
	userID, err := s.requireAuth(c)
	if err != nil {
		return err
	}

	result, err := s.stats.UserStats(c.Request().Context(), userID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{
		"streak":       result.Streak,
		"totalEntries": result.TotalActiveDays,
	}))
}
