package utils // package utils provides helper functions for token creation and hashing

import (
    "crypto/sha256" // SHA‑256 hashing for stored session tokens
    "encoding/hex"  // hex encoding of digests
    "errors"        // sentinel for invalid tokens
    "time"          // expiration arithmetic

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidToken is returned when a session token fails signature
// verification or carries malformed claims.
var ErrInvalidToken = errors.New("invalid token")

// SessionToken represents a signed HS256 JWT placed in the `token`
// cookie at login. The Raw field is the serialized JWT; Exp records
// when the session expires. Only a SHA‑256 hash of Raw is stored in
// the sessions table, so a leaked database cannot be replayed as
// live cookies.
type SessionToken struct {
    Raw string    // the serialized JWT string
    Exp time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT for a user. The
// claims are: subject (sub) holding the user ID, adm holding the
// admin flag, plus exp and iat.
func NewSessionToken(secret string, userID uint64, isAdmin bool, ttlMin int) (SessionToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub": userID,
        "adm": isAdmin,
        "exp": exp.Unix(),
        "iat": time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Raw: signed, Exp: exp}, nil
}

// ParseSessionToken verifies an HS256 session token and returns the
// user ID and admin flag it carries. Tokens signed with any other
// method are rejected.
func ParseSessionToken(secret, raw string) (userID uint64, isAdmin bool, err error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return 0, false, ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return 0, false, ErrInvalidToken
    }
    sub, ok := claims["sub"].(float64)
    if !ok || sub <= 0 {
        return 0, false, ErrInvalidToken
    }
    adm, _ := claims["adm"].(bool)
    return uint64(sub), adm, nil
}

// HashSessionRaw returns the SHA‑256 hash of the raw session token
// as a hex string for storage and lookup in the sessions table.
func HashSessionRaw(raw string) string {
    sum := sha256.Sum256([]byte(raw))
    return hex.EncodeToString(sum[:])
}
