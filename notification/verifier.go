package notification

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthorized indicates a callback without a valid bearer token.
var ErrUnauthorized = errors.New("unauthorized callback")

// Verifier checks HMAC-signed bearer tokens on callback requests.
type Verifier struct {
	key    []byte
	issuer string
}

// Verify validates the request bearer token.
func (v *Verifier) Verify(r *http.Request) error {
	header := r.Header.Get("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
	}
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		options = append(options, jwt.WithIssuer(v.issuer))
	}
	token, err := jwt.Parse(strings.TrimSpace(header[7:]), func(*jwt.Token) (interface{}, error) {
		return v.key, nil
	}, options...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if !token.Valid {
		return fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	return nil
}

// NewVerifier creates a verifier for tokens signed with key; a non-empty issuer is enforced.
func NewVerifier(key []byte, issuer string) *Verifier {
	return &Verifier{key: key, issuer: issuer}
}
