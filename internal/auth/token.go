// Package auth contains the session security core: password hashing, the
// signed session token codec, and the session cookie manager. Everything
// here is stateless; the only shared input is the process-wide signing
// secret injected at construction.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of a session token. Not configurable per
// call; a role change requires a fresh token.
const TokenTTL = 7 * 24 * time.Hour

// Claims is the verified payload of a session token.
type Claims struct {
	Subject string // account id the token asserts ownership of
	Role    string // role snapshot taken at issuance time
}

// TokenCodec signs and verifies session tokens with a process-wide HS256
// secret.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

// NewTokenCodec builds a codec around the signing secret. The caller is
// responsible for refusing to start with an empty secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), now: time.Now}
}

// Issue signs a token for the given subject and role, valid for TokenTTL.
func (tc *TokenCodec) Issue(subjectID, role string) (string, error) {
	now := tc.now().UTC()
	claims := jwt.MapClaims{
		"sub":  subjectID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(TokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(tc.secret)
}

// Verify checks signature integrity and expiry. Malformed strings, bad
// signatures, and expired tokens all report ok=false; callers must treat
// them identically and never surface which case occurred.
func (tc *TokenCodec) Verify(raw string) (Claims, bool) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return tc.secret, nil
	}, jwt.WithTimeFunc(tc.now))
	if err != nil || !tkn.Valid {
		return Claims{}, false
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return Claims{}, false
	}
	return Claims{Subject: sub, Role: role}, true
}
