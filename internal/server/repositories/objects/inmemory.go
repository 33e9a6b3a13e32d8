package objects

import (
	"context"
	"sync"
	"time"

	"github.com/LorenzoDOrtona/life-logger/internal/common"
)

// InMemoryRepository keeps objects in a map. It backs handler tests and
// the -inmemory development mode of vaultd.
type InMemoryRepository struct {
	mu      sync.Mutex
	objects map[string]Object
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{objects: make(map[string]Object)}
}

func (r *InMemoryRepository) Get(ctx context.Context, path string) (*Object, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	obj, ok := r.objects[path]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := obj
	out.Data = append([]byte(nil), obj.Data...)
	return &out, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, obj *Object) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.objects[obj.Path]; ok {
		return common.ErrAlreadyExists
	}
	stored := *obj
	stored.Data = append([]byte(nil), obj.Data...)
	stored.UpdatedAt = time.Now()
	r.objects[obj.Path] = stored
	return nil
}

func (r *InMemoryRepository) Update(ctx context.Context, path string, data []byte, expectedVersion, newVersion, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	obj, ok := r.objects[path]
	if !ok {
		return common.ErrNotFound
	}
	if obj.Version != expectedVersion {
		return common.ErrVersionConflict
	}
	obj.Data = append([]byte(nil), data...)
	obj.Version = newVersion
	obj.Message = message
	obj.UpdatedAt = time.Now()
	r.objects[path] = obj
	return nil
}
