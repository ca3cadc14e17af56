package link

import (
	"fmt"

	"go.bug.st/serial"
)

// SerialBaudRate matches the display firmware's UART.
const SerialBaudRate = 115200

// serialMode is 8N1 at SerialBaudRate. The port is opened raw, so a reply
// with no trailing newline is still delivered.
func serialMode() *serial.Mode {
	return &serial.Mode{
		BaudRate: SerialBaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// OpenSerial opens the display's serial device in raw mode.
func OpenSerial(device string) (*Stream, error) {
	port, err := serial.Open(device, serialMode())
	if err != nil {
		return nil, fmt.Errorf("open serial device %s: %w", device, err)
	}
	return NewStream(port), nil
}
