// Package password hashes and verifies account passwords with Argon2id.
// Hashes are stored in the PHC string format so the parameters travel with
// the hash and can be raised later without invalidating old rows.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Cost parameters for new hashes. Verification reads the parameters back out
// of the stored string, so changing these only affects new accounts.
const (
	timeCost   uint32 = 1
	memoryKiB  uint32 = 64 * 1024
	threads    uint8  = 4
	keyLength  uint32 = 32
	saltLength        = 16
)

// Hash derives an Argon2id hash of the password and encodes it in PHC form:
// $argon2id$v=19$m=...,t=...,p=...$<salt>$<hash>.
func Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(password), salt, timeCost, memoryKiB, threads, keyLength)
	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memoryKiB, timeCost, threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether the password matches the encoded hash. Any parse
// failure verifies as false; callers treat that the same as a wrong
// password.
func Verify(password, encoded string) bool {
	rest, ok := strings.CutPrefix(encoded, fmt.Sprintf("$argon2id$v=%d$", argon2.Version))
	if !ok {
		return false
	}
	params, rest, ok := strings.Cut(rest, "$")
	if !ok {
		return false
	}
	saltB64, keyB64, ok := strings.Cut(rest, "$")
	if !ok || strings.Contains(keyB64, "$") {
		return false
	}

	var m, t uint32
	var p uint8
	if n, err := fmt.Sscanf(params, "m=%d,t=%d,p=%d", &m, &t, &p); err != nil || n != 3 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(saltB64)
	if err != nil {
		return false
	}
	key, err := base64.RawStdEncoding.DecodeString(keyB64)
	if err != nil {
		return false
	}

	derived := argon2.IDKey([]byte(password), salt, t, m, p, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, derived) == 1
}
