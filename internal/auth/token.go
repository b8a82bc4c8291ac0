package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// algorithm, expiry, malformed token. Callers only need the one answer.
var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
}

// Verifier checks HMAC-signed bearer tokens and extracts the actor name
// recorded on history entries.
type Verifier struct {
	secret []byte
}

// NewVerifier builds a verifier over the shared signing secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates the token, returning the actor name. The
// name claim wins; the subject is the fallback for tokens minted without one.
func (v *Verifier) Verify(token string) (string, error) {
	if len(v.secret) == 0 {
		return "", fmt.Errorf("verifier is not configured: %w", ErrInvalidToken)
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	actor := parsed.Name
	if actor == "" {
		actor = parsed.Subject
	}
	if actor == "" {
		return "", fmt.Errorf("token carries no actor: %w", ErrInvalidToken)
	}
	return actor, nil
}
