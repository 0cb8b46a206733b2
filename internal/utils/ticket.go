package utils

import (
    "strings"

    "github.com/google/uuid"
)

// NewTicketCode returns a human-facing booking code such as
// "TICKET-9F3A21BC". The opaque part is the first group of a random
// UUID, uppercased, which gives 32 bits of randomness; collision
// probability is negligible for the expected booking volume and no
// uniqueness check beyond the token space is performed. The code is
// distinct from the booking's internal record identifier.
func NewTicketCode() string {
    id := uuid.NewString()
    return "TICKET-" + strings.ToUpper(id[:strings.IndexByte(id, '-')])
}
