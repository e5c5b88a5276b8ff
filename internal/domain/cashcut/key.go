package cashcut

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const KeyPrefix = "cc_"

// Bucket truncates at to the start of its key window, in UTC.
func Bucket(at time.Time, window time.Duration) time.Time {
	if window <= 0 {
		window = time.Minute
	}
	return at.UTC().Truncate(window)
}

// DeriveKey is pure: retries inside the same bucket with the same notes collide.
func DeriveKey(operatorID uuid.UUID, kind Kind, at time.Time, window time.Duration, notes string) string {
	var b strings.Builder
	b.WriteString(operatorID.String())
	b.WriteByte('|')
	b.WriteString(string(kind))
	b.WriteByte('|')
	b.WriteString(strconv.FormatInt(Bucket(at, window).Unix(), 10))
	b.WriteByte('|')
	b.WriteString(NormalizeNotes(notes))

	sum := sha256.Sum256([]byte(b.String()))
	return KeyPrefix + hex.EncodeToString(sum[:])
}

func ValidKey(key string) bool {
	if !strings.HasPrefix(key, KeyPrefix) {
		return false
	}
	raw := strings.TrimPrefix(key, KeyPrefix)
	if len(raw) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(raw)
	return err == nil
}
