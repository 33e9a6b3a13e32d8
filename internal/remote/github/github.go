// Package github implements remote.Store on top of the GitHub repository
// contents API. Every document is one file in a private repository; the blob
// SHA returned by the API serves as the opaque version token, and the
// conditional semantics of PUT-with-SHA give the optimistic write
// precondition the contract requires.
package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/LorenzoDOrtona/life-logger/internal/common"
	"github.com/LorenzoDOrtona/life-logger/internal/remote"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 30 * time.Second
)

// Config carries the settings needed to reach one repository.
// Token and repository come from configuration, never from code.
type Config struct {
	Token   string
	Owner   string
	Repo    string
	Branch  string        // empty means the repository default branch
	BaseURL string        // overridable for tests and GitHub Enterprise
	Timeout time.Duration // per-request bound; zero means the default
}

// Store talks to the contents API of a single repository.
type Store struct {
	client *resty.Client
	owner  string
	repo   string
	branch string
}

var _ remote.Store = (*Store)(nil)

func New(cfg Config) *Store {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := resty.New().
		SetBaseURL(base).
		SetAuthToken(cfg.Token).
		SetHeader("Accept", "application/vnd.github+json").
		SetTimeout(timeout)

	return &Store{client: c, owner: cfg.Owner, repo: cfg.Repo, branch: cfg.Branch}
}

type contentResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	SHA      string `json:"sha"`
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

type putResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

func (s *Store) contentsPath(path string) string {
	return fmt.Sprintf("/repos/%s/%s/contents/%s", s.owner, s.repo, path)
}

// Get fetches a document and its blob SHA. Transient transport failures and
// 5xx responses are retried with exponential backoff (reads are idempotent);
// retries are bounded so a dead remote surfaces as ErrRemoteUnavailable
// instead of hanging the caller.
func (s *Store) Get(ctx context.Context, path string) (*remote.Object, error) {
	var out contentResponse

	op := func() error {
		req := s.client.R().SetContext(ctx).SetResult(&out)
		if s.branch != "" {
			req.SetQueryParam("ref", s.branch)
		}
		resp, err := req.Get(s.contentsPath(path))
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
		}
		switch {
		case resp.StatusCode() == http.StatusNotFound:
			return backoff.Permanent(common.ErrNotFound)
		case resp.StatusCode() >= 500:
			return fmt.Errorf("%w: status %d", common.ErrRemoteUnavailable, resp.StatusCode())
		case resp.IsError():
			return backoff.Permanent(fmt.Errorf("get %s: status %d", path, resp.StatusCode()))
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}

	data, err := decodeContent(out)
	if err != nil {
		return nil, err
	}
	return &remote.Object{Data: data, Version: out.SHA}, nil
}

// Create writes a new document. The contents API treats a PUT without a SHA
// as create-only: if the file already exists GitHub answers 422.
func (s *Store) Create(ctx context.Context, path string, data []byte, message string) (string, error) {
	return s.put(ctx, path, putRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(data),
		Branch:  s.branch,
	})
}

// Update rewrites an existing document conditionally on its current blob SHA.
// A stale SHA yields ErrVersionConflict and leaves the remote unchanged.
func (s *Store) Update(ctx context.Context, path string, data []byte, expectedVersion string, message string) (string, error) {
	return s.put(ctx, path, putRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(data),
		SHA:     expectedVersion,
		Branch:  s.branch,
	})
}

// put executes the conditional write. Writes are single-shot: a transient
// failure surfaces as ErrRemoteUnavailable and the caller decides whether to
// re-read and retry, because replaying a possibly-committed write would
// otherwise duplicate an append.
func (s *Store) put(ctx context.Context, path string, body putRequest) (string, error) {
	var out putResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(&body).
		SetResult(&out).
		Put(s.contentsPath(path))
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}

	switch {
	case resp.StatusCode() == http.StatusOK || resp.StatusCode() == http.StatusCreated:
		return out.Content.SHA, nil
	case resp.StatusCode() == http.StatusConflict:
		return "", common.ErrVersionConflict
	case resp.StatusCode() == http.StatusUnprocessableEntity:
		// 422 covers both "file already exists" (create without SHA) and
		// "sha does not match" depending on the request shape.
		if body.SHA == "" {
			return "", common.ErrAlreadyExists
		}
		return "", common.ErrVersionConflict
	case resp.StatusCode() == http.StatusNotFound:
		return "", common.ErrNotFound
	case resp.StatusCode() >= 500:
		return "", fmt.Errorf("%w: status %d", common.ErrRemoteUnavailable, resp.StatusCode())
	default:
		return "", fmt.Errorf("put %s: status %d", path, resp.StatusCode())
	}
}

// decodeContent unpacks the API's base64 payload, which GitHub wraps with
// newlines every 60 characters.
func decodeContent(c contentResponse) ([]byte, error) {
	if c.Encoding != "" && c.Encoding != "base64" {
		return nil, fmt.Errorf("unexpected content encoding %q", c.Encoding)
	}
	raw := strings.ReplaceAll(c.Content, "\n", "")
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return data, nil
}
