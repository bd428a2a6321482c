package assistant

import (
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/mindmate/internal/apperrors"
)

func TestCategorizeAPIErrors(t *testing.T) {
	tests := []struct {
		status int
		kind   apperrors.UpstreamKind
	}{
		{429, apperrors.UpstreamQuotaExceeded},
		{401, apperrors.UpstreamUnauthorized},
		{403, apperrors.UpstreamForbidden},
		{500, apperrors.UpstreamUnavailable},
		{502, apperrors.UpstreamUnavailable},
		{503, apperrors.UpstreamUnavailable},
	}

	for _, tt := range tests {
		err := categorize(&openai.APIError{HTTPStatusCode: tt.status})

		var upstream *apperrors.UpstreamError
		require.ErrorAs(t, err, &upstream, "status %d", tt.status)
		assert.Equal(t, tt.kind, upstream.Kind, "status %d", tt.status)
		assert.NotEmpty(t, upstream.Hint, "status %d", tt.status)
	}
}

func TestCategorizeRequestError(t *testing.T) {
	err := categorize(&openai.RequestError{HTTPStatusCode: 429, Err: errors.New("rate limited")})

	var upstream *apperrors.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, apperrors.UpstreamQuotaExceeded, upstream.Kind)
}

func TestCategorizePassesThroughUnknown(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	assert.Equal(t, cause, categorize(cause))

	// An unrecognized upstream status is not shoehorned into a category.
	err := categorize(&openai.APIError{HTTPStatusCode: 418})
	var upstream *apperrors.UpstreamError
	assert.False(t, errors.As(err, &upstream))
}
