package utils

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
    tok, err := NewSessionToken("test-secret", 42, true, 30)
    require.NoError(t, err)
    require.NotEmpty(t, tok.Raw)

    uid, admin, err := ParseSessionToken("test-secret", tok.Raw)
    require.NoError(t, err)
    assert.Equal(t, uint64(42), uid)
    assert.True(t, admin)
}

func TestParseSessionTokenRejectsWrongSecret(t *testing.T) {
    tok, err := NewSessionToken("test-secret", 42, false, 30)
    require.NoError(t, err)

    _, _, err = ParseSessionToken("other-secret", tok.Raw)
    assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSessionTokenRejectsGarbage(t *testing.T) {
    _, _, err := ParseSessionToken("test-secret", "not-a-jwt")
    assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSessionTokenRejectsExpired(t *testing.T) {
    tok, err := NewSessionToken("test-secret", 42, false, -5)
    require.NoError(t, err)

    _, _, err = ParseSessionToken("test-secret", tok.Raw)
    assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHashSessionRawIsStable(t *testing.T) {
    a := HashSessionRaw("token-a")
    assert.Equal(t, a, HashSessionRaw("token-a"))
    assert.NotEqual(t, a, HashSessionRaw("token-b"))
    assert.Len(t, a, 64)
}

func TestNewTicketCodeFormat(t *testing.T) {
    seen := make(map[string]bool)
    for i := 0; i < 100; i++ {
        code := NewTicketCode()
        assert.Regexp(t, `^TICKET-[0-9A-F]{8}$`, code)
        assert.False(t, seen[code], "duplicate code %s", code)
        seen[code] = true
    }
}
