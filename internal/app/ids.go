package app

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// newUUID produces a random RFC 4122 version 4 identifier. Bookings
// and courts get their ids here rather than from the database so a
// retried transaction can rebuild the full record itself.
func newUUID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}

	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80

	var sb strings.Builder
	sb.WriteString(hex.EncodeToString(b[0:4]))
	sb.WriteByte('-')
	sb.WriteString(hex.EncodeToString(b[4:6]))
	sb.WriteByte('-')
	sb.WriteString(hex.EncodeToString(b[6:8]))
	sb.WriteByte('-')
	sb.WriteString(hex.EncodeToString(b[8:10]))
	sb.WriteByte('-')
	sb.WriteString(hex.EncodeToString(b[10:16]))
	return sb.String()
}
