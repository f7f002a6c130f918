// Package pagination provides filtering and cursor pagination of collection
// listings, together with the opaque page tokens that carry the cursor.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

var tokenEncoding = base64.RawURLEncoding

// Token is the cursor of a page. It holds the ID of the last item of the
// previous page.
type Token struct {
	After int64 `json:"after"`
}

func (t Token) validate() error {
	if t.After <= 0 {
		return errors.New("after must be a positive id")
	}
	return nil
}

// TokenError is an opaque error related to pagination tokens. The error message
// does not reveal internal details; use [errors.Unwrap] to access the cause.
type TokenError struct {
	cause error
}

// Error satisfies [error].
func (terr TokenError) Error() string {
	return "invalid pagination token"
}

// Unwrap returns the underlying cause of the token error.
func (terr TokenError) Unwrap() error {
	return terr.cause
}

// FromToken decodes an opaque pagination token. Returns a [TokenError] if
// decoding or validation fails.
func FromToken(tkn string) (Token, error) {
	var out Token
	data, err := tokenEncoding.DecodeString(tkn)
	if err != nil {
		return out, TokenError{cause: err}
	}
	if err = json.Unmarshal(data, &out); err != nil {
		return out, TokenError{cause: err}
	}
	if err = out.validate(); err != nil {
		return out, TokenError{cause: err}
	}
	return out, nil
}

// ToToken encodes a cursor into an opaque pagination token. Returns a
// [TokenError] if validation or encoding fails.
func ToToken(tkn Token) (string, error) {
	if err := tkn.validate(); err != nil {
		return "", TokenError{cause: err}
	}
	data, err := json.Marshal(tkn)
	if err != nil {
		return "", TokenError{cause: err}
	}
	return tokenEncoding.EncodeToString(data), nil
}
