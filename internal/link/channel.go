package link

import (
	"github.com/charmbracelet/log"
)

// Deduper remembers the last command that went out on a link so an identical
// follow-up can be suppressed.
type Deduper struct {
	last string
	set  bool
}

// Allow reports whether key differs from the last recorded command.
func (d *Deduper) Allow(key string) bool {
	return !d.set || d.last != key
}

// Record marks key as the last command sent.
func (d *Deduper) Record(key string) {
	d.last = key
	d.set = true
}

// Forget clears the slot so the next command is always sent.
func (d *Deduper) Forget() {
	d.last = ""
	d.set = false
}

// Last returns the last recorded command, or "" if none.
func (d *Deduper) Last() string {
	return d.last
}

// Channel is the controller's view of the display link.
type Channel struct {
	transport Transport
	dedup     Deduper
	logger    *log.Logger
	sent      int
}

// NewChannel wraps a transport.
func NewChannel(transport Transport, logger *log.Logger) *Channel {
	return &Channel{
		transport: transport,
		logger:    logger.WithPrefix("link"),
	}
}

// Send emits msg followed by a newline unless msg was the last command sent.
// It reports whether anything was written.
func (c *Channel) Send(msg string) bool {
	return c.SendKeyed(msg, msg)
}

// SendKeyed deduplicates on key but writes wire. Used for commands that carry
// a volatile suffix (such as the tick counter) that must not defeat dedup.
func (c *Channel) SendKeyed(key, wire string) bool {
	if !c.dedup.Allow(key) {
		return false
	}

	if err := c.transport.Write(wire + "\n"); err != nil {
		// Slot stays untouched so the same command is retried next time.
		c.logger.Warn("Failed to send message", "message", wire, "error", err)
		return false
	}

	c.dedup.Record(key)
	c.sent++
	c.logger.Debug("Sent message", "message", wire)
	return true
}

// Forget clears the dedup slot.
func (c *Channel) Forget() {
	c.dedup.Forget()
}

// LastSent returns the dedup key of the last command written.
func (c *Channel) LastSent() string {
	return c.dedup.Last()
}

// Sent returns how many commands have been written.
func (c *Channel) Sent() int {
	return c.sent
}

// TryReceive returns all text buffered since the previous call, or false if
// nothing arrived.
func (c *Channel) TryReceive() (string, bool) {
	msg := c.transport.Drain()
	if msg == "" {
		return "", false
	}
	c.logger.Debug("Received message", "message", msg)
	return msg, true
}

// Close closes the underlying transport.
func (c *Channel) Close() error {
	return c.transport.Close()
}
