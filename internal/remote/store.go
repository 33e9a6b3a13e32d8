// Package remote defines the versioned blob store contract the journal and
// registry are persisted through. Implementations live in subpackages:
// github (repository contents API), s3 (conditional object writes), vault
// (the self-hosted vaultd server) and memory (in-process, for tests).
package remote

import "context"

// Object is one remote document: its raw bytes and the opaque version token
// identifying the exact remote state they were read at. Tokens are comparable
// only for equality and change on every successful write.
type Object struct {
	Data    []byte
	Version string
}

// Store is a versioned remote object store.
//
// Contract:
//   - Get returns common.ErrNotFound when the document is absent; absence is
//     a normal state, not a failure.
//   - Create succeeds only if the path does not exist yet
//     (common.ErrAlreadyExists otherwise).
//   - Update succeeds only if the remote's current version equals
//     expectedVersion (common.ErrVersionConflict otherwise); a conflict means
//     the remote changed since the caller last read it, and the caller owns
//     retrying, not the store.
//   - Writes are atomic as observed by Get: no reader ever sees a partially
//     written document. A cancelled or timed-out call leaves remote state
//     unchanged.
//   - Transport failures are reported as (wrapped) common.ErrRemoteUnavailable.
//
// The commit message is advisory metadata only; implementations without a
// notion of commit messages ignore it.
type Store interface {
	Get(ctx context.Context, path string) (*Object, error)
	Create(ctx context.Context, path string, data []byte, message string) (string, error)
	Update(ctx context.Context, path string, data []byte, expectedVersion string, message string) (string, error)
}
