// Package util derives stable identifiers for logging.
package util

import (
	"encoding/json"

	"github.com/google/uuid"
)

// ContentUUID derives a stable name-based (v3) UUID from raw bytes, so the
// same pixels always log under the same id.
func ContentUUID(data []byte) string {
	return uuid.NewMD5(uuid.NameSpaceOID, data).String()
}

// HashUUID is ContentUUID over the JSON encoding of value. It returns ""
// when value cannot be marshalled.
func HashUUID(value any) string {
	raw, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return ContentUUID(raw)
}
