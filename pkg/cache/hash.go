package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns "<kind>:<hash>" where hash covers the JSON encoding of
// parts.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}
