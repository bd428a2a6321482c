package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xaenox/mindmate/internal/apperrors"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", apperrors.Validation("message cannot be empty"), http.StatusBadRequest},
		{"not found", apperrors.NotFound("conversation"), http.StatusNotFound},
		{"quota exceeded", &apperrors.UpstreamError{Kind: apperrors.UpstreamQuotaExceeded}, http.StatusTooManyRequests},
		{"upstream unauthorized", &apperrors.UpstreamError{Kind: apperrors.UpstreamUnauthorized}, http.StatusUnauthorized},
		{"upstream forbidden", &apperrors.UpstreamError{Kind: apperrors.UpstreamForbidden}, http.StatusForbidden},
		{"upstream unavailable", &apperrors.UpstreamError{Kind: apperrors.UpstreamUnavailable}, http.StatusServiceUnavailable},
		{"unknown wrapper", apperrors.Unknown(errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := statusForError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestStatusForErrorHidesInternalDetail(t *testing.T) {
	_, msg := statusForError(errors.New("pq: connection refused"))
	assert.NotContains(t, msg, "connection refused")

	_, msg = statusForError(apperrors.Unknown(errors.New("pq: connection refused")))
	assert.NotContains(t, msg, "connection refused")
}

func TestStatusForErrorExposesHint(t *testing.T) {
	err := &apperrors.UpstreamError{
		Kind: apperrors.UpstreamQuotaExceeded,
		Hint: "AI service quota exceeded. Please check your plan and billing details.",
	}
	_, msg := statusForError(err)
	assert.Equal(t, err.Hint, msg)
}
