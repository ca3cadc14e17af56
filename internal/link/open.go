package link

import (
	"context"
	"fmt"
)

// Transport kinds accepted by Open.
const (
	KindWebSocket = "websocket"
	KindSerial    = "serial"
	KindTCP       = "tcp"
)

// Open connects a transport of the given kind. target is a URL for
// websocket, a device path for serial, and host:port for tcp.
func Open(ctx context.Context, kind, target string) (Transport, error) {
	if target == "" {
		return nil, fmt.Errorf("%s transport: no target configured", kind)
	}

	var (
		t   Transport
		err error
	)
	switch kind {
	case KindWebSocket:
		t, err = DialWebSocket(ctx, target)
	case KindSerial:
		t, err = OpenSerial(target)
	case KindTCP:
		t, err = DialTCP(ctx, target)
	default:
		return nil, fmt.Errorf("unknown transport %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}
