package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/handler"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func newTestHandlers(t *testing.T, addr string) *handler.Handlers {
	t.Helper()
	h, err := handler.NewHandlers(nil, config.StructuredConfig{Server: config.Server{HTTPAddress: addr}}, logger.Nop())
	require.NoError(t, err)
	return h
}

func TestNewServer_NoAddress(t *testing.T) {
	s, err := NewServer(&handler.Handlers{}, config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoHTTPAddress)
	assert.Nil(t, s)
}

func TestNewServer_DefaultShutdownTimeout(t *testing.T) {
	addr := freeAddress(t)

	s, err := NewServer(newTestHandlers(t, addr), config.Server{HTTPAddress: addr}, logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, defaultShutdownTimeout, s.(*server).shutdownTimeout)
}

func TestRunServer_NothingToRun(t *testing.T) {
	s := &server{logger: logger.Nop()}

	assert.ErrorIs(t, s.RunServer(context.Background()), errNotInitialized)
	assert.NoError(t, s.Shutdown(context.Background()))
}

func TestRunServer_StopsOnContextCancel(t *testing.T) {
	addr := freeAddress(t)
	s, err := NewServer(newTestHandlers(t, addr), config.Server{HTTPAddress: addr, ShutdownTimeout: time.Second}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.RunServer(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/tasks")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusUnauthorized
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunServer_ListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	addr := l.Addr().String()

	s, err := NewServer(newTestHandlers(t, addr), config.Server{HTTPAddress: addr}, logger.Nop())
	require.NoError(t, err)

	assert.Error(t, s.RunServer(context.Background()))
}
