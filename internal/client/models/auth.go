package models

import "unicode/utf8"

// Secret is a password held as bytes so the caller can wipe it once the
// request is sent. It encodes as a JSON string and never prints its value.
//
// The JSON encoder keeps its own copy of the encoded body, which this type
// cannot reach.
type Secret []byte

const hexDigits = "0123456789abcdef"

// MarshalJSON escapes s into a JSON string without going through a Go
// string, which would leave an unwipeable copy.
func (s Secret) MarshalJSON() ([]byte, error) {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRune(s[i:])
			if r == utf8.RuneError && size == 1 {
				out = append(out, "\ufffd"...)
			} else {
				out = append(out, s[i:i+size]...)
			}
			i += size
			continue
		}
		switch {
		case c == '"' || c == '\\':
			out = append(out, '\\', c)
		case c == '\n':
			out = append(out, '\\', 'n')
		case c == '\r':
			out = append(out, '\\', 'r')
		case c == '\t':
			out = append(out, '\\', 't')
		case c < 0x20:
			out = append(out, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		default:
			out = append(out, c)
		}
		i++
	}
	out = append(out, '"')
	return out, nil
}

func (s Secret) String() string {
	return "****"
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password Secret `json:"password"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password Secret `json:"password"`
}

// LoginResponse carries the bearer token issued on login.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}
