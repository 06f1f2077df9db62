package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a stage-prefixed key from the digest of its parts, so
// layout and artifact entries stay distinguishable in a shared backend.
func hashKey(stage string, parts ...any) string {
	payload, _ := json.Marshal(parts)
	return stage + ":" + Hash(payload)
}

// Hash returns the hex SHA-256 digest of data. Chart content hashes use
// the full digest; truncating would invite collisions between charts.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
