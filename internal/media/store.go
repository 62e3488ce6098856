// Package media defines the boundary to the external media store. The core
// only stores and forwards reference URLs; everything about the store's
// internal layout is confined to this package.
package media

import (
	"context"
	"strings"
)

// Store persists raw image payloads and returns durable reference URLs.
type Store interface {
	// Upload stores the payload and returns its reference URL.
	Upload(ctx context.Context, data []byte) (string, error)
	// Delete removes the object behind the reference URL. Deleting an
	// unknown reference is a no-op.
	Delete(ctx context.Context, ref string) error
}

// DeleteKey derives the store's object key from a reference URL by taking
// the last path segment without its extension.
//
// This assumes a specific URL shape; if the store's reference format changes
// the derivation breaks silently. Keeping it here rather than in core logic
// means only this package needs to follow such a change.
func DeleteKey(ref string) string {
	if ref == "" {
		return ""
	}
	last := ref
	if i := strings.LastIndex(last, "/"); i >= 0 {
		last = last[i+1:]
	}
	if i := strings.Index(last, "."); i >= 0 {
		last = last[:i]
	}
	return last
}
