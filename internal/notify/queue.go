package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nishantpawar/institute-backend/pkg/db/models"
	pkgerrors "github.com/nishantpawar/institute-backend/pkg/errors"
	"github.com/nishantpawar/institute-backend/pkg/logger"
	"github.com/nishantpawar/institute-backend/pkg/metrics"
)

// QueueState reports what the broadcast worker is doing.
type QueueState string

const (
	QueueIdle     QueueState = "idle"
	QueueDraining QueueState = "draining"
)

const defaultPerSendTimeout = 30 * time.Second

// deliveryStore is the repository surface the queue needs.
type deliveryStore interface {
	MarkDelivered(ctx context.Context, id uuid.UUID) error
}

// queueDispatcher renders and sends broadcast mail.
type queueDispatcher interface {
	Render(n *models.Notification) string
	Send(ctx context.Context, address, subject, html string) error
}

// BroadcastQueue is an unbounded in-process FIFO with exactly one worker
// goroutine. Notifications drain strictly in enqueue order and one
// notification is fully dispatched before the next starts. A failing
// recipient never stops the rest of the fan-out; email_sent flips only
// after every recipient has been attempted.
type BroadcastQueue struct {
	store          deliveryStore
	dispatcher     queueDispatcher
	logg           *logger.Logger
	metrics        *metrics.BroadcastMetrics
	perSendTimeout time.Duration

	mu      sync.Mutex
	backlog []*models.Notification
	state   QueueState
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

// QueueParams bundles the queue dependencies.
type QueueParams struct {
	Store          deliveryStore
	Dispatcher     queueDispatcher
	Logger         *logger.Logger
	Metrics        *metrics.BroadcastMetrics
	PerSendTimeout time.Duration
}

// NewBroadcastQueue constructs the queue and starts its worker.
func NewBroadcastQueue(params QueueParams) (*BroadcastQueue, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "delivery store required")
	}
	if params.Dispatcher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "dispatcher required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	timeout := params.PerSendTimeout
	if timeout <= 0 {
		timeout = defaultPerSendTimeout
	}
	q := &BroadcastQueue{
		store:          params.Store,
		dispatcher:     params.Dispatcher,
		logg:           params.Logger,
		metrics:        params.Metrics,
		perSendTimeout: timeout,
		state:          QueueIdle,
		wake:           make(chan struct{}, 1),
		stop:           make(chan struct{}),
		done:           make(chan struct{}),
	}
	go q.run()
	return q, nil
}

// Enqueue appends the notification to the backlog and returns
// immediately. Enqueue after Close is dropped with a warning.
func (q *BroadcastQueue) Enqueue(notification *models.Notification) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.logg.Warn(
			q.logg.WithField(context.Background(), "notification_id", notification.ID.String()),
			"broadcast queue closed, dropping notification",
		)
		return
	}
	q.backlog = append(q.backlog, notification)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// State reports whether the worker is idle or draining.
func (q *BroadcastQueue) State() QueueState {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Close stops accepting work, drains the remaining backlog and waits for
// the worker to exit.
func (q *BroadcastQueue) Close() {
	q.mu.Lock()
	alreadyClosed := q.closed
	q.closed = true
	q.mu.Unlock()

	if !alreadyClosed {
		close(q.stop)
	}
	<-q.done
}

func (q *BroadcastQueue) run() {
	defer close(q.done)
	for {
		notification := q.next()
		if notification != nil {
			q.dispatch(notification)
			continue
		}

		select {
		case <-q.wake:
		case <-q.stop:
			for n := q.next(); n != nil; n = q.next() {
				q.dispatch(n)
			}
			return
		}
	}
}

// next pops the head of the backlog, updating the worker state under the
// same lock so State never observes a half-transition.
func (q *BroadcastQueue) next() *models.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.backlog) == 0 {
		q.state = QueueIdle
		return nil
	}
	notification := q.backlog[0]
	q.backlog = q.backlog[1:]
	q.state = QueueDraining
	return notification
}

// dispatch fans one notification out to its recipient snapshot. The body
// renders once; each recipient gets one bounded attempt.
func (q *BroadcastQueue) dispatch(notification *models.Notification) {
	started := time.Now()
	ctx := context.Background()
	html := q.dispatcher.Render(notification)

	result := "delivered"
	for _, address := range notification.Recipients {
		sendCtx, cancel := context.WithTimeout(ctx, q.perSendTimeout)
		err := q.dispatcher.Send(sendCtx, address, notification.Title, html)
		cancel()
		if err != nil {
			result = "partial"
			q.metrics.IncEmail("failed")
			q.logg.Warn(
				q.logg.WithFields(ctx, map[string]interface{}{
					"notification_id": notification.ID.String(),
					"recipient":       address,
				}),
				"broadcast send failed",
			)
			continue
		}
		q.metrics.IncEmail("sent")
	}

	if err := q.store.MarkDelivered(ctx, notification.ID); err != nil {
		// email_sent stays false, accepted inconsistency
		result = "mark_failed"
		q.logg.Error(
			q.logg.WithField(ctx, "notification_id", notification.ID.String()),
			"failed to mark notification delivered",
			err,
		)
	}

	q.metrics.IncProcessed(result)
	q.metrics.ObserveDispatch(result, time.Since(started))
}
