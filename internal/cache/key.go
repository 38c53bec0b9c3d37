package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// EntityKey returns the cache key for a single entity: the partition name
// immediately followed by the identifier, e.g. "genres" + "g1" -> "genresg1".
func EntityKey(partition, id string) string {
	return partition + id
}

// QueryKey derives the cache key for a query-result collection from the
// canonical rendering of the query body plus the partition it targets.
// Callers must pass a deterministic body encoding (sorted-key JSON); the
// digest is then stable across processes and restarts.
func QueryKey(partition string, body []byte) string {
	h := sha256.New()
	h.Write(body)
	h.Write([]byte(partition))
	return hex.EncodeToString(h.Sum(nil))
}
