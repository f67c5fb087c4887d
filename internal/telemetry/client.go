package telemetry

import (
	"bufio"
	"context"
	"net"
	"time"

	"github.com/markusressel/steer2go/internal/ui"
)

// Client subscribes to a telemetry publisher and reconnects if the connection is lost
type Client struct {
	address       string
	retryInterval time.Duration
}

func NewClient(address string, retryInterval time.Duration) *Client {
	return &Client{
		address:       address,
		retryInterval: retryInterval,
	}
}

// Listen passes every received frame to handler until ctx is done
func (c *Client) Listen(ctx context.Context, handler func(frame Frame)) error {
	for {
		err := c.receive(ctx, handler)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			ui.Warning("Telemetry connection to %s failed: %v, retrying in %s", c.address, err, c.retryInterval)
		} else {
			ui.Warning("Telemetry connection to %s closed, retrying in %s", c.address, c.retryInterval)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.retryInterval):
		}
	}
}

func (c *Client) receive(ctx context.Context, handler func(frame Frame)) error {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", c.address)
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close()
	}()

	// unblock the scanner on shutdown
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	ui.Info("Connected to telemetry publisher %s", c.address)
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		frame, err := ParseFrame(scanner.Bytes())
		if err != nil {
			ui.Warning("%v", err)
			continue
		}
		handler(frame)
	}
	return scanner.Err()
}
