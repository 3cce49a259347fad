package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"  // sentinel error for failed verification
	"strconv" // string-to-int conversion for the sub claim
	"time"    // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// ErrInvalidToken is returned by ParseAccessToken for every failure mode:
// wrong signature, wrong algorithm, malformed payload, or expiry.
// Verification is all-or-nothing, so callers get no partial detail.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.  Access tokens are encoded in the
// Authorization header when calling protected endpoints and are the only
// credential the API issues; once expired they cannot be renewed except
// by logging in again.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the user ID, and a TTL in minutes.  The JWT includes
// standard claims: subject (sub), expiration (exp) and issued at (iat).
// The token is self-contained: nothing about it is persisted server-side.
func NewAccessToken(secret string, userID uint64, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies a serialized access token against the signing
// secret and returns the user ID from its subject claim.  The jwt library
// checks the signature and the exp claim; a token presented at or after
// its expiry fails.  Only HMAC-signed tokens are accepted, so a token
// re-signed with "none" or an RSA key is rejected up front.
func ParseAccessToken(secret, raw string) (uint64, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	// Numeric claims decode as float64; tolerate string subjects too.
	switch sub := claims["sub"].(type) {
	case float64:
		return uint64(sub), nil
	case string:
		if n, err := strconv.ParseUint(sub, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, ErrInvalidToken
}
