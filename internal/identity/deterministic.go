package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
// Keys are namespaced by kind so a section and a page with the same fixture
// key never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

func SectionUUID(key string) uuid.UUID {
	return UUID("go-sections:section:" + strings.ToLower(strings.TrimSpace(key)))
}

func PageUUID(slug string) uuid.UUID {
	return UUID("go-sections:page:" + strings.ToLower(strings.TrimSpace(slug)))
}
