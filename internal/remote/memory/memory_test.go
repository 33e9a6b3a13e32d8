package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/LorenzoDOrtona/life-logger/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Absent(t *testing.T) {
	s := New()
	_, err := s.Get(context.Background(), "journals/alice.yaml.enc")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestCreateGetUpdate(t *testing.T) {
	s := New()
	ctx := context.Background()

	v1, err := s.Create(ctx, "p", []byte("one"), "Initial commit")
	require.NoError(t, err)
	require.NotEmpty(t, v1)

	obj, err := s.Get(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), obj.Data)
	assert.Equal(t, v1, obj.Version)

	v2, err := s.Update(ctx, "p", []byte("two"), v1, "Log: Sport")
	require.NoError(t, err)
	assert.NotEqual(t, v1, v2)

	obj, err = s.Get(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), obj.Data)
}

func TestCreate_AlreadyExists(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Create(ctx, "p", []byte("one"), "")
	require.NoError(t, err)

	_, err = s.Create(ctx, "p", []byte("other"), "")
	assert.True(t, errors.Is(err, common.ErrAlreadyExists))

	// loser's write changed nothing
	obj, err := s.Get(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), obj.Data)
}

func TestUpdate_StaleVersionConflicts(t *testing.T) {
	s := New()
	ctx := context.Background()

	v1, err := s.Create(ctx, "p", []byte("one"), "")
	require.NoError(t, err)

	v2, err := s.Update(ctx, "p", []byte("two"), v1, "")
	require.NoError(t, err)

	// writer still holding v1 must lose
	_, err = s.Update(ctx, "p", []byte("three"), v1, "")
	assert.True(t, errors.Is(err, common.ErrVersionConflict))

	obj, err := s.Get(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), obj.Data)
	assert.Equal(t, v2, obj.Version)
}

func TestUpdate_AbsentPath(t *testing.T) {
	s := New()
	_, err := s.Update(context.Background(), "ghost", []byte("x"), "v", "")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Create(ctx, "p", []byte("abc"), "")
	require.NoError(t, err)

	obj, err := s.Get(ctx, "p")
	require.NoError(t, err)
	obj.Data[0] = 'X'

	again, err := s.Get(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again.Data)
}

func TestContextCancelled(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Get(ctx, "p")
	assert.Error(t, err)
	_, err = s.Create(ctx, "p", nil, "")
	assert.Error(t, err)
}
