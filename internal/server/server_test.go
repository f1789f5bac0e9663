package server

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NoHandler(t *testing.T) {
	s, err := New(context.Background(), nil, "127.0.0.1:0", nil)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrNoHandler)
}

func TestNew_InvalidAddress(t *testing.T) {
	_, err := New(context.Background(), http.NotFoundHandler(), "256.0.0.1:bad", nil)
	assert.Error(t, err)
}

func TestServer_RunUntilCancelled(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	s, err := New(context.Background(), h, "127.0.0.1:0", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	var body []byte
	require.Eventually(t, func() bool {
		resp, err := http.Get(s.URL())
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ = io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	_, err = http.Get(s.URL())
	assert.Error(t, err, "listener is closed")
}
