package link

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.bug.st/serial"
)

func TestSerialModeMatchesFirmware(t *testing.T) {
	mode := serialMode()

	assert.Equal(t, 115200, mode.BaudRate)
	assert.Equal(t, 8, mode.DataBits)
	assert.Equal(t, serial.NoParity, mode.Parity)
	assert.Equal(t, serial.OneStopBit, mode.StopBits)
}

func TestOpenSerialMissingDevice(t *testing.T) {
	const device = "/nonexistent/tty-moleattack"

	_, err := OpenSerial(device)
	assert.ErrorContains(t, err, "open serial device "+device)

	tr, err := Open(context.Background(), KindSerial, device)
	assert.Error(t, err)
	assert.Nil(t, tr)
}
