// Package link carries text commands between the controller and the display
// unit.
//
// A Transport moves raw text in both directions without interpreting it. A
// Channel sits on top and adds the controller's conventions: commands are
// newline terminated, identical consecutive commands are suppressed, and
// inbound text is read as one concatenated buffer.
package link

import (
	"errors"
	"strings"
	"sync"
)

// ErrClosed is returned when writing to a transport that has been closed.
var ErrClosed = errors.New("link closed")

// Transport is a half-duplex text link.
type Transport interface {
	// Write sends s verbatim. No framing is added.
	Write(s string) error
	// Drain returns everything received since the previous Drain and never blocks.
	Drain() string
	Close() error
}

// inbox is a mutex-guarded receive buffer shared by the transport implementations.
type inbox struct {
	mu     sync.Mutex
	buf    strings.Builder
	closed bool
}

func (b *inbox) append(s string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	b.buf.WriteString(s)
	return nil
}

func (b *inbox) drain() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.buf.String()
	b.buf.Reset()
	return s
}

func (b *inbox) peek() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *inbox) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

// PipeEnd is one side of an in-process link created by NewPipe.
type PipeEnd struct {
	in   *inbox
	peer *inbox
}

// NewPipe returns two connected ends. Text written on one end is drained
// from the other.
func NewPipe() (*PipeEnd, *PipeEnd) {
	a, b := &inbox{}, &inbox{}
	return &PipeEnd{in: a, peer: b}, &PipeEnd{in: b, peer: a}
}

// Write implements Transport.
func (p *PipeEnd) Write(s string) error {
	return p.peer.append(s)
}

// Drain implements Transport.
func (p *PipeEnd) Drain() string {
	return p.in.drain()
}

// Close closes both directions. Pending inbound text can still be drained.
func (p *PipeEnd) Close() error {
	p.in.close()
	p.peer.close()
	return nil
}
