package transport

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is a bearer token with its decoded claims. The token is not
// verified client-side; the claims only drive expiry checks.
type Session struct {
	Token  string
	claims jwt.MapClaims
}

// NewSession wraps a bearer token. Tokens that are not JWTs still work;
// they just carry no expiry information.
func NewSession(token string) *Session {
	s := &Session{Token: token}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err == nil {
		if claims, ok := parsed.Claims.(jwt.MapClaims); ok {
			s.claims = claims
		}
	}
	return s
}

// ExpiresAt returns the token expiry, if the token declares one.
func (s *Session) ExpiresAt() (time.Time, bool) {
	if s.claims == nil {
		return time.Time{}, false
	}
	exp, err := s.claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the token has a declared expiry in the past.
func (s *Session) Expired() bool {
	exp, ok := s.ExpiresAt()
	return ok && time.Now().After(exp)
}

// Subject returns the account id the token was issued to, if declared.
func (s *Session) Subject() (string, bool) {
	if s.claims == nil {
		return "", false
	}
	sub, err := s.claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}
