package link

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync"
)

// Stream is a Transport over a byte stream such as a serial device or a TCP
// connection. A background goroutine reads into a buffer so Drain never blocks.
type Stream struct {
	rwc  io.ReadWriteCloser
	in   inbox
	done chan struct{}

	mu      sync.Mutex
	readErr error

	closeOnce sync.Once
}

// NewStream starts reading from rwc.
func NewStream(rwc io.ReadWriteCloser) *Stream {
	s := &Stream{
		rwc:  rwc,
		done: make(chan struct{}),
	}
	go s.readLoop()
	return s
}

func (s *Stream) readLoop() {
	defer close(s.done)

	buf := make([]byte, 256)
	for {
		n, err := s.rwc.Read(buf)
		if n > 0 {
			_ = s.in.append(string(buf[:n]))
		}
		if err != nil {
			s.mu.Lock()
			s.readErr = err
			s.mu.Unlock()
			return
		}
	}
}

// Write implements Transport.
func (s *Stream) Write(msg string) error {
	if _, err := io.WriteString(s.rwc, msg); err != nil {
		return fmt.Errorf("stream write: %w", err)
	}
	return nil
}

// Drain implements Transport.
func (s *Stream) Drain() string {
	return s.in.drain()
}

// Err returns the error that stopped the reader, if it has stopped.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readErr
}

// Done is closed once the reader has stopped.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Close implements Transport.
func (s *Stream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.rwc.Close()
	})
	return err
}

// DialTCP connects to a display bridged over TCP.
func DialTCP(ctx context.Context, address string) (*Stream, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}
	return NewStream(conn), nil
}
