package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/ui"
)

// number of encoded frames buffered per subscriber, a subscriber that falls further behind is dropped
const subscriberBufferSize = 16

type writeDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

type subscriber struct {
	id     string
	conn   io.WriteCloser
	frames chan []byte
	done   chan struct{}
	failed atomic.Bool
}

func newSubscriber(conn io.WriteCloser) *subscriber {
	return &subscriber{
		id:     uuid.NewString(),
		conn:   conn,
		frames: make(chan []byte, subscriberBufferSize),
		done:   make(chan struct{}),
	}
}

// run writes buffered frames to the connection until frames is closed or a write fails
func (s *subscriber) run(writeTimeout time.Duration) {
	defer close(s.done)
	for payload := range s.frames {
		if conn, ok := s.conn.(writeDeadliner); ok && writeTimeout > 0 {
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		}
		if _, err := s.conn.Write(payload); err != nil {
			ui.Debug("Telemetry subscriber %s failed: %v", s.id, err)
			s.failed.Store(true)
			return
		}
	}
}

// Publisher broadcasts telemetry frames to all connected subscribers.
//
// Connections are accepted on a separate goroutine and handed over through a channel,
// the subscriber list itself is only touched by the goroutine calling Publish and Close.
// Every subscriber is served by its own writer goroutine, Publish never waits for a connection.
type Publisher struct {
	config configuration.TelemetryConfig

	pending     chan *subscriber
	subscribers []*subscriber

	subscriberCount atomic.Int64
	framesPublished atomic.Uint64
	dropped         atomic.Uint64
}

func NewPublisher(config configuration.TelemetryConfig) *Publisher {
	pendingSize := config.MaxPendingSubscribers
	if pendingSize <= 0 {
		pendingSize = 1
	}
	return &Publisher{
		config:  config,
		pending: make(chan *subscriber, pendingSize),
	}
}

// Address returns the configured listen address
func (p *Publisher) Address() string {
	return net.JoinHostPort(p.config.Host, strconv.Itoa(p.config.Port))
}

// Listen binds the configured address and accepts subscribers until ctx is done
func (p *Publisher) Listen(ctx context.Context) error {
	listener, err := net.Listen("tcp", p.Address())
	if err != nil {
		return fmt.Errorf("telemetry listener on %s: %w", p.Address(), err)
	}
	ui.Info("Telemetry broadcasting on %s", listener.Addr())
	return p.Serve(ctx, listener)
}

// Serve accepts subscribers on the given listener until ctx is done.
// Every accept call is bounded by the accept timeout so ctx is checked regularly.
func (p *Publisher) Serve(ctx context.Context, listener net.Listener) error {
	defer func() {
		_ = listener.Close()
	}()

	type deadliner interface {
		SetDeadline(t time.Time) error
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		if l, ok := listener.(deadliner); ok {
			_ = l.SetDeadline(time.Now().Add(p.config.AcceptTimeout))
		}

		conn, err := listener.Accept()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("telemetry accept: %w", err)
		}

		ui.Info("Telemetry subscriber connected: %s", conn.RemoteAddr())
		p.Add(conn)
	}
}

// Add hands a new subscriber over to the publisher, it receives all frames published afterwards.
// Returns false if too many subscribers are waiting to be picked up, the connection is closed in that case.
func (p *Publisher) Add(conn io.WriteCloser) bool {
	s := newSubscriber(conn)
	select {
	case p.pending <- s:
		p.subscriberCount.Add(1)
		go s.run(p.config.WriteTimeout)
		return true
	default:
		ui.Warning("Too many pending telemetry subscribers, rejecting connection")
		_ = conn.Close()
		return false
	}
}

// SubscriberCount returns the number of connected subscribers, safe for concurrent use
func (p *Publisher) SubscriberCount() int {
	return int(p.subscriberCount.Load())
}

// FramesPublished returns the number of frames broadcast so far
func (p *Publisher) FramesPublished() uint64 {
	return p.framesPublished.Load()
}

// SubscribersDropped returns the number of subscribers removed after a failed write or a full buffer
func (p *Publisher) SubscribersDropped() uint64 {
	return p.dropped.Load()
}

// Publish hands the given frame to the writer of every subscriber without waiting for any connection.
// Subscribers whose write failed or whose buffer is full are removed after the broadcast.
func (p *Publisher) Publish(frame Frame) error {
	p.drainPending()

	payload, err := frame.Encode()
	if err != nil {
		return err
	}

	for _, s := range p.subscribers {
		select {
		case s.frames <- payload:
		default:
			ui.Debug("Telemetry subscriber %s cannot keep up", s.id)
			s.failed.Store(true)
		}
	}
	p.removeFailed()
	p.framesPublished.Add(1)

	return nil
}

// Close disconnects all subscribers.
// Buffered frames are flushed for at most the write timeout.
func (p *Publisher) Close() {
	p.drainPending()
	for _, s := range p.subscribers {
		close(s.frames)
	}

	timer := time.NewTimer(p.config.WriteTimeout)
	defer timer.Stop()
	expired := false
	for _, s := range p.subscribers {
		if !expired {
			select {
			case <-s.done:
			case <-timer.C:
				expired = true
			}
		}
		_ = s.conn.Close()
	}
	p.subscriberCount.Add(-int64(len(p.subscribers)))
	p.subscribers = nil
}

func (p *Publisher) drainPending() {
	for {
		select {
		case s := <-p.pending:
			p.subscribers = append(p.subscribers, s)
		default:
			return
		}
	}
}

// removeFailed drops the subscribers whose writer gave up or fell behind
func (p *Publisher) removeFailed() {
	kept := p.subscribers[:0]
	removed := 0
	for _, s := range p.subscribers {
		if s.failed.Load() {
			removed++
			close(s.frames)
			_ = s.conn.Close()
			continue
		}
		kept = append(kept, s)
	}
	for i := len(kept); i < len(p.subscribers); i++ {
		p.subscribers[i] = nil
	}
	p.subscribers = kept
	if removed > 0 {
		p.subscriberCount.Add(-int64(removed))
		p.dropped.Add(uint64(removed))
	}
}
