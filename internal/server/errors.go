package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/xaenox/mindmate/internal/apperrors"
)

// statusForError maps the domain error taxonomy onto HTTP status codes.
// Uncategorized errors become a 500 without exposing their message.
func statusForError(err error) (int, string) {
	var validation *apperrors.ValidationError
	if errors.As(err, &validation) {
		return http.StatusBadRequest, validation.Message
	}

	var notFound *apperrors.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, notFound.Error()
	}

	var upstream *apperrors.UpstreamError
	if errors.As(err, &upstream) {
		switch upstream.Kind {
		case apperrors.UpstreamQuotaExceeded:
			return http.StatusTooManyRequests, upstream.Error()
		case apperrors.UpstreamUnauthorized:
			return http.StatusUnauthorized, upstream.Error()
		case apperrors.UpstreamForbidden:
			return http.StatusForbidden, upstream.Error()
		case apperrors.UpstreamUnavailable:
			return http.StatusServiceUnavailable, upstream.Error()
		}
	}

	return http.StatusInternalServerError, "an unexpected error occurred"
}

// logError records server-side detail for errors whose message is hidden
// from clients.
func (s *Server) logError(err error) {
	if _, msg := statusForError(err); msg == "an unexpected error occurred" {
		s.logger.Error("Request failed", zap.Error(err))
	}
}
