package session

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is who the stored token says we are. It is decoded without
// verifying the signature (the client has no key), so it is only good for
// display and for skipping a round trip when nobody is logged in. Role
// checks always go to the backend.
type Session struct {
	UserID    int64
	Username  string
	Role      string
	ExpiresAt time.Time
}

type tokenClaims struct {
	UserID   int64    `json:"userId"`
	Username string   `json:"username"`
	Role     string   `json:"role"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// decodeToken extracts the session from a JWT. ok is false when the token is
// not a JWT at all; callers then fall back to the stored user id.
func decodeToken(token string) (Session, bool) {
	var c tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return Session{}, false
	}
	s := Session{UserID: c.UserID, Username: c.Username, Role: c.Role}
	if s.Role == "" && len(c.Roles) > 0 {
		s.Role = c.Roles[0]
	}
	if s.UserID == 0 {
		if id, err := strconv.ParseInt(c.Subject, 10, 64); err == nil {
			s.UserID = id
		} else if s.Username == "" {
			s.Username = c.Subject
		}
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s, true
}

// Expired reports whether the token carried an expiry that has passed.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
