package display

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lox/moleattack/internal/link"
	"github.com/lox/moleattack/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerHealth(t *testing.T) {
	t.Parallel()

	srv := NewServer(":0", newDisplay(t), nil, quietLogger())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestServerHandshakeOverWebSocket(t *testing.T) {
	t.Parallel()

	d := newDisplay(t)
	srv := NewServer(":0", d, nil, quietLogger())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ws, err := link.DialWebSocket(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws")
	require.NoError(t, err)
	ch := link.NewChannel(ws, quietLogger())

	require.True(t, ch.Send(protocol.ConReady))

	var got string
	require.Eventually(t, func() bool {
		got += ws.Drain()
		return got == protocol.DisplayReady
	}, 2*time.Second, 10*time.Millisecond)

	require.True(t, ch.Send(protocol.ShowPressStart))
	require.Eventually(t, func() bool {
		return d.Screen().P1 == "Press Start"
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, srv.Clients())

	require.NoError(t, ch.Close())
	require.Eventually(t, func() bool {
		return srv.Clients() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServerRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	srv := NewServer("127.0.0.1:0", newDisplay(t), nil, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
