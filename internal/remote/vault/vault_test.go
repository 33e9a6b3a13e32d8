package vault

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LorenzoDOrtona/life-logger/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestConfiguredTimeoutBoundsRequests(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	s := New(Config{Endpoint: srv.URL, Secret: "shared", ClientID: "test", Timeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := s.Create(context.Background(), "doc", []byte("x"), "")
	assert.ErrorIs(t, err, common.ErrRemoteUnavailable)
	assert.Less(t, time.Since(start), 2*time.Second, "request must abort at the configured timeout")
}
