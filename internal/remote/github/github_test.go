package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/LorenzoDOrtona/life-logger/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeContentsAPI mimics the subset of the GitHub contents API the store
// uses: GET and conditional PUT of a single file per path.
type fakeContentsAPI struct {
	mu       sync.Mutex
	files    map[string]fakeFile // keyed by path inside the repo
	failures int                 // number of 500s to serve before behaving
	requests int
}

type fakeFile struct {
	content []byte
	sha     string
}

func (f *fakeContentsAPI) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests++

		if f.failures > 0 {
			f.failures--
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		const prefix = "/repos/octo/journal/contents/"
		require.True(t, strings.HasPrefix(r.URL.Path, prefix), "unexpected path %s", r.URL.Path)
		path := strings.TrimPrefix(r.URL.Path, prefix)

		switch r.Method {
		case http.MethodGet:
			file, ok := f.files[path]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{
				"content":  base64.StdEncoding.EncodeToString(file.content),
				"encoding": "base64",
				"sha":      file.sha,
			})

		case http.MethodPut:
			var body struct {
				Message string `json:"message"`
				Content string `json:"content"`
				SHA     string `json:"sha"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

			existing, exists := f.files[path]
			if body.SHA == "" && exists {
				w.WriteHeader(http.StatusUnprocessableEntity)
				return
			}
			if body.SHA != "" && !exists {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			if body.SHA != "" && body.SHA != existing.sha {
				w.WriteHeader(http.StatusConflict)
				return
			}

			data, err := base64.StdEncoding.DecodeString(body.Content)
			require.NoError(t, err)
			sha := fmt.Sprintf("sha-%d", f.requests)
			f.files[path] = fakeFile{content: data, sha: sha}

			status := http.StatusCreated
			if exists {
				status = http.StatusOK
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"content": map[string]string{"sha": sha},
			})

		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func newTestStore(t *testing.T) (*Store, *fakeContentsAPI) {
	t.Helper()
	api := &fakeContentsAPI{files: make(map[string]fakeFile)}
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)

	return New(Config{
		Token:   "test-token",
		Owner:   "octo",
		Repo:    "journal",
		BaseURL: srv.URL,
	}), api
}

func TestGet_Absent(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Get(context.Background(), "journals/alice.yaml.enc")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestCreateGetUpdate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	v1, err := s.Create(ctx, "journals/alice.yaml.enc", []byte("ciphertext-1"), "Initial commit")
	require.NoError(t, err)
	require.NotEmpty(t, v1)

	obj, err := s.Get(ctx, "journals/alice.yaml.enc")
	require.NoError(t, err)
	assert.Equal(t, []byte("ciphertext-1"), obj.Data)
	assert.Equal(t, v1, obj.Version)

	v2, err := s.Update(ctx, "journals/alice.yaml.enc", []byte("ciphertext-2"), v1, "Log: Sport")
	require.NoError(t, err)
	assert.NotEqual(t, v1, v2)
}

func TestCreate_AlreadyExists(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "p", []byte("one"), "")
	require.NoError(t, err)

	_, err = s.Create(ctx, "p", []byte("two"), "")
	assert.True(t, errors.Is(err, common.ErrAlreadyExists))
}

func TestUpdate_StaleSHAConflicts(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	v1, err := s.Create(ctx, "p", []byte("one"), "")
	require.NoError(t, err)

	_, err = s.Update(ctx, "p", []byte("two"), v1, "")
	require.NoError(t, err)

	_, err = s.Update(ctx, "p", []byte("three"), v1, "")
	assert.True(t, errors.Is(err, common.ErrVersionConflict))
}

func TestUpdate_AbsentPath(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Update(context.Background(), "ghost", []byte("x"), "some-sha", "")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestGet_RetriesTransientFailures(t *testing.T) {
	s, api := newTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "p", []byte("one"), "")
	require.NoError(t, err)

	api.mu.Lock()
	api.failures = 2
	api.mu.Unlock()

	obj, err := s.Get(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), obj.Data)
}

func TestGet_DecodesWrappedBase64(t *testing.T) {
	// GitHub inserts newlines into the base64 payload every 60 chars
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		encoded := base64.StdEncoding.EncodeToString([]byte("hello world"))
		wrapped := encoded[:8] + "\n" + encoded[8:] + "\n"
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"content": wrapped, "encoding": "base64", "sha": "abc",
		})
	}))
	defer srv.Close()

	s := New(Config{Token: "t", Owner: "octo", Repo: "journal", BaseURL: srv.URL})
	obj, err := s.Get(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), obj.Data)
	assert.Equal(t, "abc", obj.Version)
}

func TestConfiguredTimeoutBoundsRequests(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	s := New(Config{Token: "t", Owner: "octo", Repo: "journal", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := s.Create(context.Background(), "p", []byte("x"), "")
	assert.ErrorIs(t, err, common.ErrRemoteUnavailable)
	assert.Less(t, time.Since(start), 2*time.Second, "request must abort at the configured timeout")
}

func TestWrite_RemoteDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := New(Config{Token: "t", Owner: "octo", Repo: "journal", BaseURL: srv.URL})
	_, err := s.Create(context.Background(), "p", []byte("x"), "")
	assert.True(t, errors.Is(err, common.ErrRemoteUnavailable))
}
