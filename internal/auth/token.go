// Package auth issues and verifies access tokens and attaches the requester
// identity to incoming requests.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/DragonEmporer001/fiverr-clone/internal/domain"
)

// ClaimIsSeller is the private claim carrying the requester role.
const ClaimIsSeller = "isSeller"

// ErrNoSubject is returned for tokens without a subject.
var ErrNoSubject = errors.New("token has no subject")

// Tokens signs and verifies HS256 access tokens.
type Tokens struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokens creates a token signer/verifier for the shared secret.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{key: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue mints a signed token for the requester.
func (t *Tokens) Issue(r domain.Requester) (string, error) {
	now := t.now()
	tok, err := jwt.NewBuilder().
		Subject(r.UserID).
		IssuedAt(now).
		Expiration(now.Add(t.ttl)).
		Claim(ClaimIsSeller, r.IsSeller).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256(), t.key))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return string(signed), nil
}

// Verify checks the signature and validity window and returns the requester.
func (t *Tokens) Verify(raw string) (domain.Requester, error) {
	tok, err := jwt.ParseString(raw,
		jwt.WithKey(jwa.HS256(), t.key),
		jwt.WithValidate(true),
		jwt.WithClock(jwt.ClockFunc(t.now)),
	)
	if err != nil {
		return domain.Requester{}, fmt.Errorf("invalid token: %w", err)
	}

	var sub string
	if err := tok.Get(jwt.SubjectKey, &sub); err != nil || sub == "" {
		return domain.Requester{}, ErrNoSubject
	}

	var isSeller bool
	if err := tok.Get(ClaimIsSeller, &isSeller); err != nil {
		isSeller = false
	}
	return domain.Requester{UserID: sub, IsSeller: isSeller}, nil
}
