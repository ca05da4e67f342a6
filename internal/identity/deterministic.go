package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a stable UUID from key with go-hashid. Keys must carry a type
// prefix so posts and tags never share a key space.
func UUID(key string) uuid.UUID {
	key = strings.TrimSpace(key)
	if key == "" {
		return uuid.Nil
	}
	id, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || id == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key))
	}
	return id
}

// PostID is the identifier of a post that does not declare one. It depends
// only on the root-relative file path, so renaming a file changes it.
func PostID(filePath string) string {
	return UUID("blog:post:" + strings.TrimSpace(filePath)).String()
}

// TagID identifies a derived tag by its slug.
func TagID(tagSlug string) string {
	return UUID("blog:tag:" + strings.ToLower(strings.TrimSpace(tagSlug))).String()
}

// CategoryID identifies a category by its slug.
func CategoryID(categorySlug string) string {
	return UUID("blog:category:" + strings.ToLower(strings.TrimSpace(categorySlug))).String()
}
