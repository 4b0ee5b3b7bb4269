package events

import (
	"context"
	"errors"
	"fmt"
	"supplychain-service/internal/ports"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	reconnectDelay = 5 * time.Second
	reInitDelay    = 2 * time.Second
	confirmTimeout = 5 * time.Second
)

var (
	errNotConnected = errors.New("amqp: not connected")
	errClosed       = errors.New("amqp: publisher closed")
	errNacked       = errors.New("amqp: broker did not confirm the message")
	errNoConfirm    = errors.New("amqp: channel is not in confirm mode")
)

// confirmation is the broker's pending answer for one published message.
type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

// confirmPublisher publishes to the route exchange and hands back the
// confirmation tied to that message's delivery tag.
type confirmPublisher interface {
	publish(ctx context.Context, key string, msg amqp.Publishing) (confirmation, error)
}

type channelPublisher struct {
	ch *amqp.Channel
}

func (c channelPublisher) publish(ctx context.Context, key string, msg amqp.Publishing) (confirmation, error) {
	dc, err := c.ch.PublishWithDeferredConfirmWithContext(ctx, Exchange, key, false, false, msg)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, errNoConfirm
	}
	return dc, nil
}

// AMQPPublisher publishes route events to a durable topic exchange with
// publisher confirms. A background loop keeps the connection and channel
// alive; while it is down PublishRouteEvent fails fast with errNotConnected.
type AMQPPublisher struct {
	log *zap.Logger

	mu              sync.Mutex
	conn            *amqp.Connection
	ch              *amqp.Channel
	ready           bool
	notifyConnClose chan *amqp.Error
	notifyChanClose chan *amqp.Error
	src             confirmPublisher

	done      chan struct{}
	closeOnce sync.Once
}

// NewAMQPPublisher starts connecting to addr in the background and returns immediately.
func NewAMQPPublisher(addr string, log *zap.Logger) *AMQPPublisher {
	if log == nil {
		log = zap.L()
	}
	p := &AMQPPublisher{
		log:  log.Named("amqp"),
		done: make(chan struct{}),
	}
	go p.handleReconnect(addr)
	return p
}

func (p *AMQPPublisher) handleReconnect(addr string) {
	for {
		p.setReady(false)

		conn, err := amqp.Dial(addr)
		if err != nil {
			p.log.Warn("connect failed, retrying", zap.Duration("delay", reconnectDelay), zap.Error(err))
			select {
			case <-p.done:
				return
			case <-time.After(reconnectDelay):
			}
			continue
		}

		p.mu.Lock()
		p.conn = conn
		p.notifyConnClose = make(chan *amqp.Error, 1)
		conn.NotifyClose(p.notifyConnClose)
		p.mu.Unlock()
		p.log.Info("connected")

		if done := p.handleReInit(conn); done {
			return
		}
	}
}

// handleReInit reopens the channel whenever it closes. It returns true on
// shutdown and false when the connection itself is lost.
func (p *AMQPPublisher) handleReInit(conn *amqp.Connection) bool {
	for {
		p.setReady(false)

		if err := p.init(conn); err != nil {
			p.log.Warn("channel setup failed, retrying", zap.Error(err))
			select {
			case <-p.done:
				return true
			case <-p.notifyConnClose:
				p.log.Warn("connection closed, reconnecting")
				return false
			case <-time.After(reInitDelay):
			}
			continue
		}

		select {
		case <-p.done:
			return true
		case <-p.notifyConnClose:
			p.log.Warn("connection closed, reconnecting")
			return false
		case <-p.notifyChanClose:
			p.log.Warn("channel closed, reinitializing")
		}
	}
}

func (p *AMQPPublisher) init(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	if err := ch.Confirm(false); err != nil {
		return fmt.Errorf("enable confirms: %w", err)
	}
	if err := ch.ExchangeDeclare(
		Exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("declare exchange %s: %w", Exchange, err)
	}

	p.mu.Lock()
	p.ch = ch
	p.notifyChanClose = make(chan *amqp.Error, 1)
	p.src = channelPublisher{ch: ch}
	ch.NotifyClose(p.notifyChanClose)
	p.ready = true
	p.mu.Unlock()

	p.log.Info("channel ready", zap.String("exchange", Exchange))
	return nil
}

func (p *AMQPPublisher) setReady(v bool) {
	p.mu.Lock()
	p.ready = v
	p.mu.Unlock()
}

// PublishRouteEvent sends ev as persistent JSON and waits for the broker's
// confirm of that message, bounded by ctx and confirmTimeout. A confirm that
// arrives after the wait gave up is discarded.
func (p *AMQPPublisher) PublishRouteEvent(ctx context.Context, ev ports.RouteEvent) error {
	body, err := encode(ev)
	if err != nil {
		return err
	}

	p.mu.Lock()
	ready, src := p.ready, p.src
	p.mu.Unlock()

	select {
	case <-p.done:
		return errClosed
	default:
	}
	if !ready || src == nil {
		return errNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, confirmTimeout)
	defer cancel()

	key := RoutingKey(ev)
	dc, err := src.publish(ctx, key, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.RouteID + ":" + ev.OccurredAt.UTC().Format(time.RFC3339Nano),
		Timestamp:    ev.OccurredAt,
		Type:         ev.Type,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}

	acked, err := dc.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("publish %s: await confirm: %w", key, err)
	}
	if !acked {
		return fmt.Errorf("publish %s: %w", key, errNacked)
	}
	p.log.Debug("event confirmed", zap.String("routing_key", key))
	return nil
}

// Close stops the reconnect loop and closes the channel and connection.
func (p *AMQPPublisher) Close() error {
	var err error
	p.closeOnce.Do(func() {
		close(p.done)

		p.mu.Lock()
		defer p.mu.Unlock()
		p.ready = false
		if p.ch != nil {
			err = errors.Join(err, p.ch.Close())
		}
		if p.conn != nil {
			err = errors.Join(err, p.conn.Close())
		}
	})
	return err
}

var _ ports.RouteEventPublisher = (*AMQPPublisher)(nil)
