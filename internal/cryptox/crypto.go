// Package cryptox holds the password digest used by the local user store.
package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword returns the lowercase hex SHA-256 digest of the UTF-8 bytes
// of password.
//
// The digest is unsalted and single-round. It is kept that way so existing
// users.db files keep authenticating; do not use it for anything new.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
