package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateRecordID creates a readable solve record ID.
// Format: solve-{networkSlug}-{8charHexUUID}
//
// Example:
//   - Input: networkName="Demo Network"
//   - Output: "solve-demo-network-a3f8e2b1"
func GenerateRecordID(networkName string) string {
	slug := slugify(networkName)
	if slug == "" {
		return "solve-" + generateShortUUID()
	}
	return "solve-" + slug + "-" + generateShortUUID()
}

// slugify lowercases name and collapses every run of other characters to one hyphen
func slugify(name string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
