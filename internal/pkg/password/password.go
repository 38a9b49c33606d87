// Package password hashes and verifies admin credentials. New hashes are
// always bcrypt; the legacy iterated-PBKDF2 format produced by the
// pre-rewrite admin tooling is verify-only, and records still carrying it
// are rehashed lazily on their next successful login.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const (
	legacyPrefix     = "pbkdf2_sha256"
	legacyKeyLen     = 32
	legacyIterations = 310000
)

// Hash returns a bcrypt hash of plain.
func Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// Verify reports whether plain matches stored, dispatching on the hash
// format prefix. Unknown formats never verify.
func Verify(plain, stored string) bool {
	switch {
	case strings.HasPrefix(stored, legacyPrefix+"$"):
		return verifyLegacy(plain, stored)
	case strings.HasPrefix(stored, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
	}
	return false
}

// NeedsRehash reports whether stored uses the legacy format and should be
// upgraded to bcrypt on the next successful verification.
func NeedsRehash(stored string) bool {
	return strings.HasPrefix(stored, legacyPrefix+"$")
}

// verifyLegacy recomputes PBKDF2-HMAC-SHA256 with the stored salt and
// iteration count and compares digests in constant time.
func verifyLegacy(plain, stored string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 4 || parts[0] != legacyPrefix {
		return false
	}
	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false
	}
	want, err := hex.DecodeString(parts[3])
	if err != nil || len(want) != legacyKeyLen {
		return false
	}
	got := pbkdf2.Key([]byte(plain), []byte(parts[2]), iterations, legacyKeyLen, sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// LegacyHash produces a hash in the legacy format. Only fixtures and
// migration tests mint these; production code always writes bcrypt.
func LegacyHash(plain string) string {
	salt := make([]byte, 16)
	_, _ = rand.Read(salt)
	saltHex := hex.EncodeToString(salt)
	digest := pbkdf2.Key([]byte(plain), []byte(saltHex), legacyIterations, legacyKeyLen, sha256.New)
	return fmt.Sprintf("%s$%d$%s$%s", legacyPrefix, legacyIterations, saltHex, hex.EncodeToString(digest))
}
