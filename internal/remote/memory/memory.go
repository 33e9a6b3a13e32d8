// Package memory implements the remote.Store contract in process memory.
// It backs tests and local experimentation; semantics (atomicity, version
// tokens, conflict behavior) match the hosted implementations exactly.
package memory

import (
	"context"
	"sync"

	"github.com/LorenzoDOrtona/life-logger/internal/common"
	"github.com/LorenzoDOrtona/life-logger/internal/remote"
	"github.com/google/uuid"
)

type object struct {
	data    []byte
	version string
}

// Store is a concurrency-safe in-memory versioned blob store.
type Store struct {
	mu      sync.Mutex
	objects map[string]object
}

var _ remote.Store = (*Store)(nil)

func New() *Store {
	return &Store{objects: make(map[string]object)}
}

func (s *Store) Get(ctx context.Context, path string) (*remote.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[path]
	if !ok {
		return nil, common.ErrNotFound
	}
	data := make([]byte, len(obj.data))
	copy(data, obj.data)
	return &remote.Object{Data: data, Version: obj.version}, nil
}

func (s *Store) Create(ctx context.Context, path string, data []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[path]; ok {
		return "", common.ErrAlreadyExists
	}
	return s.put(path, data), nil
}

func (s *Store) Update(ctx context.Context, path string, data []byte, expectedVersion string, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[path]
	if !ok {
		return "", common.ErrNotFound
	}
	if obj.version != expectedVersion {
		return "", common.ErrVersionConflict
	}
	return s.put(path, data), nil
}

// put stores a copy of data under a fresh version token. Callers hold s.mu.
func (s *Store) put(path string, data []byte) string {
	stored := make([]byte, len(data))
	copy(stored, data)
	version := uuid.NewString()
	s.objects[path] = object{data: stored, version: version}
	return version
}
