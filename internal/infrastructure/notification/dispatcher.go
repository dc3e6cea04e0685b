package notification

import (
	"context"
	"sync"

	"trendora-backend/pkg/logger"
)

// Sender delivers one notification to one user. Implementations talk to the
// actual push provider.
type Sender interface {
	Send(ctx context.Context, userID, templateType string, data map[string]interface{}) error
}

type message struct {
	userID       string
	templateType string
	data         map[string]interface{}
}

// Dispatcher is a fire-and-forget notification queue. Notify enqueues onto a
// bounded channel and returns immediately; a background worker drains the
// channel and calls the Sender. Send failures and queue overflow are logged
// and dropped; an order operation must never block on, or fail because of,
// a notification.
type Dispatcher struct {
	sender Sender
	queue  chan message

	stopOnce sync.Once
	done     chan struct{}
}

// NewDispatcher starts the background worker. queueSize bounds how many
// pending notifications may be buffered before new ones are dropped.
func NewDispatcher(sender Sender, queueSize int) *Dispatcher {
	if queueSize < 1 {
		queueSize = 64
	}
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan message, queueSize),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

// Notify implements domain.Notifier. It never blocks: if the queue is full
// the notification is dropped with a warning (at-most-once delivery).
func (d *Dispatcher) Notify(userID, templateType string, data map[string]interface{}) {
	select {
	case d.queue <- message{userID: userID, templateType: templateType, data: data}:
	default:
		logger.Warn().
			Str("user_id", userID).
			Str("template", templateType).
			Msg("Notification queue full, dropping")
	}
}

func (d *Dispatcher) run() {
	for {
		select {
		case msg := <-d.queue:
			if err := d.sender.Send(context.Background(), msg.userID, msg.templateType, msg.data); err != nil {
				logger.Error().
					Err(err).
					Str("user_id", msg.userID).
					Str("template", msg.templateType).
					Msg("Notification send failed")
			}
		case <-d.done:
			return
		}
	}
}

// Shutdown stops the worker. Queued notifications that have not been sent yet
// are discarded.
func (d *Dispatcher) Shutdown() {
	d.stopOnce.Do(func() { close(d.done) })
}
