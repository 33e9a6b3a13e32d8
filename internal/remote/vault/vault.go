// Package vault implements remote.Store against a self-hosted vaultd server.
// Authentication is a per-request HS256 token minted from the shared access
// secret; the version token is whatever vaultd issued on the last write.
package vault

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/LorenzoDOrtona/life-logger/internal/auth"
	"github.com/LorenzoDOrtona/life-logger/internal/common"
	"github.com/LorenzoDOrtona/life-logger/internal/remote"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
)

const (
	tokenValidity  = time.Minute
	defaultTimeout = 30 * time.Second
)

// Config points the client at one vaultd instance.
type Config struct {
	Endpoint string        // e.g. http://127.0.0.1:8080
	Secret   string        // shared HS256 secret
	ClientID string        // identifies this device in server logs
	Timeout  time.Duration // per-request bound; zero means the default
}

type Store struct {
	client   *resty.Client
	secret   []byte
	clientID string
}

var _ remote.Store = (*Store)(nil)

func New(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "life-logger-client"
	}
	return &Store{client: c, secret: []byte(cfg.Secret), clientID: clientID}
}

type objectResponse struct {
	Path    string `json:"path"`
	Data    string `json:"data"` // base64
	Version string `json:"version"`
}

type writeRequest struct {
	Data    string `json:"data"` // base64
	Version string `json:"version,omitempty"`
	Message string `json:"message,omitempty"`
}

type writeResponse struct {
	Version string `json:"version"`
}

func (s *Store) request(ctx context.Context) (*resty.Request, error) {
	token, err := auth.GenerateToken(s.clientID, s.secret, tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("mint token: %w", err)
	}
	return s.client.R().SetContext(ctx).SetAuthToken(token), nil
}

// Get fetches a document; transient failures are retried with bounded
// exponential backoff, reads being idempotent.
func (s *Store) Get(ctx context.Context, path string) (*remote.Object, error) {
	var out objectResponse

	op := func() error {
		req, err := s.request(ctx)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := req.SetResult(&out).Get("/api/objects/" + path)
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

	data, err := base64.StdEncoding.DecodeString(out.Data)
	if err != nil {
		return nil, fmt.Errorf("decode object data: %w", err)
	}
	return &remote.Object{Data: data, Version: out.Version}, nil
}

func (s *Store) Create(ctx context.Context, path string, data []byte, message string) (string, error) {
	req, err := s.request(ctx)
	if err != nil {
		return "", err
	}

	var out writeResponse
	resp, err := req.
		SetBody(&writeRequest{Data: base64.StdEncoding.EncodeToString(data), Message: message}).
		SetResult(&out).
		Post("/api/objects/" + path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}

	switch {
	case resp.StatusCode() == http.StatusCreated:
		return out.Version, nil
	case resp.StatusCode() == http.StatusConflict:
		return "", common.ErrAlreadyExists
	case resp.StatusCode() >= 500:
		return "", fmt.Errorf("%w: status %d", common.ErrRemoteUnavailable, resp.StatusCode())
	default:
		return "", fmt.Errorf("create %s: status %d", path, resp.StatusCode())
	}
}

func (s *Store) Update(ctx context.Context, path string, data []byte, expectedVersion string, message string) (string, error) {
	req, err := s.request(ctx)
	if err != nil {
		return "", err
	}

	var out writeResponse
	resp, err := req.
		SetBody(&writeRequest{
			Data:    base64.StdEncoding.EncodeToString(data),
			Version: expectedVersion,
			Message: message,
		}).
		SetResult(&out).
		Put("/api/objects/" + path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}

	switch {
	case resp.StatusCode() == http.StatusOK:
		return out.Version, nil
	case resp.StatusCode() == http.StatusConflict:
		return "", common.ErrVersionConflict
	case resp.StatusCode() == http.StatusNotFound:
		return "", common.ErrNotFound
	case resp.StatusCode() >= 500:
		return "", fmt.Errorf("%w: status %d", common.ErrRemoteUnavailable, resp.StatusCode())
	default:
		return "", fmt.Errorf("update %s: status %d", path, resp.StatusCode())
	}
}
