package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"

	"github.com/giantswarm/serverconf/internal/document"
)

var (
	// ErrNotFound is returned by Load when no document exists for the server.
	ErrNotFound = errors.New("configuration document not found")
	// ErrConflict is returned by Save when the stored revision differs from
	// the revision of the document being saved.
	ErrConflict = errors.New("configuration document was modified concurrently")
)

// Store persists configuration documents.
type Store interface {
	// Load returns an independent copy of the stored document.
	Load(ctx context.Context, serverName string) (*document.ServerConfig, error)
	// Save stores doc if its Revision matches the stored one and sets
	// doc.Revision to the new revision on success.
	Save(ctx context.Context, doc *document.ServerConfig) error
	// List returns the names of all stored servers in ascending order.
	List(ctx context.Context) ([]string, error)
	// Close releases the backend's resources.
	Close() error
}

// IsNotFound reports whether err means the document does not exist.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err is an optimistic concurrency failure.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// formatRevision and parseRevision convert numeric revisions used by the
// memory, file and sqlite backends.
func formatRevision(rev int64) string {
	if rev == 0 {
		return ""
	}
	return strconv.FormatInt(rev, 10)
}

func parseRevision(rev string) (int64, error) {
	if rev == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(rev, 10, 64)
	if err != nil || n < 0 {
		return 0, ErrConflict
	}
	return n, nil
}

// sanitizeName maps a server name onto a string that is safe as a file name.
// Names that change under sanitization get a short hash suffix so distinct
// servers never share a file.
func sanitizeName(name string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", ".", "_", " ", "_",
	)
	sanitized := replacer.Replace(name)
	for strings.Contains(sanitized, "__") {
		sanitized = strings.ReplaceAll(sanitized, "__", "_")
	}
	sanitized = strings.Trim(sanitized, "_")

	if sanitized == name && sanitized != "" {
		return sanitized
	}
	if sanitized == "" {
		sanitized = "unnamed"
	}
	return sanitized + "-" + shortHash(name)
}

func shortHash(name string) string {
	sum := sha256.Sum256([]byte(name))
	return hex.EncodeToString(sum[:4])
}
