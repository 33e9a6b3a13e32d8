// Package objects persists the versioned blobs vaultd serves. One row per
// path; the version column is the opaque token clients use as their write
// precondition.
package objects

import (
	"context"
	"time"
)

// Object is one stored document.
type Object struct {
	Path      string
	Data      []byte
	Version   string
	Message   string
	UpdatedAt time.Time
}

// Repository is the storage contract of the vaultd API.
//
// Create fails with common.ErrAlreadyExists when the path is taken. Update
// commits only when the stored version equals expectedVersion; otherwise it
// fails with common.ErrVersionConflict (or common.ErrNotFound for an absent
// path) and leaves the row untouched. Both writes are atomic at the row
// level, so readers never observe partial documents.
type Repository interface {
	Get(ctx context.Context, path string) (*Object, error)
	Create(ctx context.Context, obj *Object) error
	Update(ctx context.Context, path string, data []byte, expectedVersion, newVersion, message string) error
}
