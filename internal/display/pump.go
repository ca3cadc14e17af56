package display

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/moleattack/internal/link"
)

// Pump feeds text arriving on a transport into a Display and writes its
// replies back. Commands split across two reads are joined before handling.
type Pump struct {
	display   *Display
	transport link.Transport
	partial   string
	logger    *log.Logger
}

// NewPump connects d to t.
func NewPump(d *Display, t link.Transport, logger *log.Logger) *Pump {
	return &Pump{
		display:   d,
		transport: t,
		logger:    logger.WithPrefix("display"),
	}
}

// Poll handles every complete line received since the last call. A reply that
// cannot be written is returned as an error.
func (p *Pump) Poll() error {
	data := p.partial + p.transport.Drain()
	if data == "" {
		return nil
	}

	lines := strings.Split(data, "\n")
	p.partial = lines[len(lines)-1]
	for _, line := range lines[:len(lines)-1] {
		p.logger.Debug("Received", "line", line)
		reply := p.display.Handle(line)
		if reply == "" {
			continue
		}
		if err := p.transport.Write(reply); err != nil {
			return err
		}
	}
	return nil
}
