package server_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jwtaudit/core/server"
)

func pong() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})
}

func waitReady(t *testing.T, srv *server.Server) {
	t.Helper()
	select {
	case <-srv.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start")
	}
}

func TestServerRunServesAndShutsDown(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0", server.WithShutdownTimeout(time.Second))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, pong())() }()

	waitReady(t, srv)

	resp, err := http.Get("http://" + srv.Addr() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}

	_, err = http.Get("http://" + srv.Addr() + "/")
	assert.Error(t, err)
}

func TestServerStartTwice(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = srv.Start(ctx, pong()) }()
	waitReady(t, srv)

	err := srv.Start(ctx, pong())
	assert.ErrorIs(t, err, server.ErrServerAlreadyRunning)
	assert.NoError(t, srv.Stop())
}

func TestServerStartAddressInUse(t *testing.T) {
	t.Parallel()

	first := server.New("127.0.0.1:0")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = first.Start(ctx, pong()) }()
	waitReady(t, first)
	defer func() { _ = first.Stop() }()

	second := server.New(first.Addr())
	err := second.Start(ctx, pong())
	assert.ErrorIs(t, err, server.ErrHTTPServer)
}

func TestServerStartCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := server.New("127.0.0.1:0").Start(ctx, pong())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestServerStopNotRunning(t *testing.T) {
	t.Parallel()

	assert.NoError(t, server.New("127.0.0.1:0").Stop())
}
