// Package models defines the payloads exchanged with the auth backend.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Provider names the identity source an account was created with.
type Provider string

const (
	ProviderLocal     Provider = "LOCAL"
	ProviderGoogle    Provider = "GOOGLE"
	ProviderMicrosoft Provider = "MICROSOFT"
)

// Roles granted by the backend.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User is the account as returned by GET /api/auth/me and GET /api/users.
// The client never edits a User; it replaces it wholesale on every fetch.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Provider  Provider  `json:"provider"`
	Enabled   bool      `json:"enabled"`
	CreatedAt Timestamp `json:"createdAt"`
	Roles     []string  `json:"roles"`
}

// Clone returns a deep copy so callers cannot mutate session state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Roles != nil {
		c.Roles = append([]string(nil), u.Roles...)
	}
	return &c
}

// HasRole reports whether the user carries the named role, e.g. "ROLE_ADMIN".
func (u *User) HasRole(role string) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// timestampLayouts are tried in order. The backend serializes a zone-less
// local date-time; RFC 3339 is accepted too.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// Timestamp decodes the backend's createdAt field.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format("2006-01-02T15:04:05.999999999"))
}
