package link

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Time allowed to write a frame to the display.
const writeWait = 2 * time.Second

// WebSocket is a Transport to a display emulator reachable over a websocket.
// Every Write is one text frame; inbound frames are concatenated.
type WebSocket struct {
	conn *websocket.Conn
	in   inbox
	done chan struct{}

	writeMu sync.Mutex

	mu      sync.Mutex
	readErr error

	closeOnce sync.Once
}

// DialWebSocket connects to url (for example ws://localhost:8080/ws).
func DialWebSocket(ctx context.Context, url string) (*WebSocket, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return NewWebSocket(conn), nil
}

// NewWebSocket wraps an established connection and starts reading from it.
func NewWebSocket(conn *websocket.Conn) *WebSocket {
	ws := &WebSocket{
		conn: conn,
		done: make(chan struct{}),
	}
	go ws.readLoop()
	return ws
}

func (ws *WebSocket) readLoop() {
	defer close(ws.done)

	for {
		_, data, err := ws.conn.ReadMessage()
		if err != nil {
			ws.mu.Lock()
			ws.readErr = err
			ws.mu.Unlock()
			return
		}
		_ = ws.in.append(string(data))
	}
}

// Write implements Transport.
func (ws *WebSocket) Write(msg string) error {
	ws.writeMu.Lock()
	defer ws.writeMu.Unlock()

	if err := ws.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("websocket write deadline: %w", err)
	}
	if err := ws.conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		return fmt.Errorf("websocket write: %w", err)
	}
	return nil
}

// Drain implements Transport.
func (ws *WebSocket) Drain() string {
	return ws.in.drain()
}

// Err returns the error that stopped the reader, if it has stopped.
func (ws *WebSocket) Err() error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.readErr
}

// Done is closed once the reader has stopped.
func (ws *WebSocket) Done() <-chan struct{} {
	return ws.done
}

// Close sends a close frame and closes the connection.
func (ws *WebSocket) Close() error {
	var err error
	ws.closeOnce.Do(func() {
		ws.writeMu.Lock()
		_ = ws.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		ws.writeMu.Unlock()
		err = ws.conn.Close()
	})
	return err
}
