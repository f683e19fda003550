// Package storage abstracts the proctoring blob store so the core never
// depends on a particular storage medium.
package storage

import "context"

// BlobStore is a minimal key-value blob interface: Put writes a blob under a
// name, List enumerates stored names by prefix.
type BlobStore interface {
	Put(ctx context.Context, name string, data []byte) error
	List(ctx context.Context, prefix string) ([]string, error)
}
