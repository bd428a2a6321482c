package auth

import (
	"context"
	"fmt"
	"sync"
)

// Verifier checks a bearer token and resolves the user it belongs to. The
// token protocol itself (Firebase, JWT, ...) is an external concern; the
// server only needs a user id back.
type Verifier interface {
	Verify(ctx context.Context, token string) (userID string, err error)
}

// StaticVerifier resolves tokens from a fixed token-to-user map. It backs
// development and test setups where no identity provider is wired in.
type StaticVerifier struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewStaticVerifier(tokens map[string]string) *StaticVerifier {
	if tokens == nil {
		tokens = make(map[string]string)
	}
	return &StaticVerifier{tokens: tokens}
}

func (v *StaticVerifier) Verify(ctx context.Context, token string) (string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if userID, exists := v.tokens[token]; exists {
		return userID, nil
	}
	return "", fmt.Errorf("unknown token")
}

// AddToken registers a token at runtime, mainly for tests.
func (v *StaticVerifier) AddToken(token, userID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tokens[token] = userID
}
