package checkout

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// newOrderNo builds a human-readable order number, e.g.
// Y260829093015-1a2b3c4d-9f3e: a Y prefix, the UTC confirm timestamp, the
// first block of the buyer's uuid and two random bytes. Uniqueness is
// enforced by the database; the random suffix keeps rapid confirms by the
// same buyer from colliding within a second.
func newOrderNo(ts time.Time, userID uuid.UUID) string {
	suffix := make([]byte, 2)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand never fails on supported platforms; fall back to the
		// timestamp's nanoseconds so a confirm is never blocked on it.
		return fmt.Sprintf("Y%s-%s-%04x",
			ts.UTC().Format("060102150405"), userID.String()[:8], ts.Nanosecond()&0xffff)
	}
	return fmt.Sprintf("Y%s-%s-%s",
		ts.UTC().Format("060102150405"), userID.String()[:8], hex.EncodeToString(suffix))
}
