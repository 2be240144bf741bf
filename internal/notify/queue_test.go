package notify

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishantpawar/institute-backend/pkg/db/models"
	"github.com/nishantpawar/institute-backend/pkg/logger"
)

type recordedSend struct {
	notificationTitle string
	address           string
}

type stubQueueDispatcher struct {
	mu          sync.Mutex
	sends       []recordedSend
	renders     int32
	failAddress string
	sendDelay   time.Duration
	inFlight    int32
	overlapped  int32
}

func (s *stubQueueDispatcher) Render(n *models.Notification) string {
	atomic.AddInt32(&s.renders, 1)
	return "<html>" + n.Title + "</html>"
}

func (s *stubQueueDispatcher) Send(ctx context.Context, address, subject, html string) error {
	if atomic.AddInt32(&s.inFlight, 1) > 1 {
		atomic.StoreInt32(&s.overlapped, 1)
	}
	defer atomic.AddInt32(&s.inFlight, -1)

	if s.sendDelay > 0 {
		time.Sleep(s.sendDelay)
	}

	s.mu.Lock()
	s.sends = append(s.sends, recordedSend{notificationTitle: subject, address: address})
	s.mu.Unlock()

	if address == s.failAddress && s.failAddress != "" {
		return errors.New("mailbox on fire")
	}
	return nil
}

func (s *stubQueueDispatcher) recordedSends() []recordedSend {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedSend{}, s.sends...)
}

type stubDeliveryStore struct {
	mu        sync.Mutex
	delivered []uuid.UUID
	failFor   map[uuid.UUID]bool
}

func (s *stubDeliveryStore) MarkDelivered(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFor[id] {
		return errors.New("db gone")
	}
	s.delivered = append(s.delivered, id)
	return nil
}

func (s *stubDeliveryStore) deliveredIDs() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uuid.UUID{}, s.delivered...)
}

func newTestQueue(t *testing.T, store *stubDeliveryStore, dispatcher *stubQueueDispatcher) *BroadcastQueue {
	t.Helper()
	queue, err := NewBroadcastQueue(QueueParams{
		Store:          store,
		Dispatcher:     dispatcher,
		Logger:         logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		PerSendTimeout: time.Second,
	})
	require.NoError(t, err)
	return queue
}

func makeNotification(title string, recipients ...string) *models.Notification {
	return &models.Notification{
		ID:         uuid.New(),
		Title:      title,
		Message:    "body",
		SentBy:     uuid.New(),
		Recipients: pq.StringArray(recipients),
	}
}

func TestQueueDispatchesFIFO(t *testing.T) {
	store := &stubDeliveryStore{}
	dispatcher := &stubQueueDispatcher{sendDelay: time.Millisecond}
	queue := newTestQueue(t, store, dispatcher)

	first := makeNotification("first", "a@example.com", "b@example.com")
	second := makeNotification("second", "c@example.com")
	third := makeNotification("third", "d@example.com")

	queue.Enqueue(first)
	queue.Enqueue(second)
	queue.Enqueue(third)
	queue.Close()

	sends := dispatcher.recordedSends()
	require.Len(t, sends, 4)
	assert.Equal(t, []recordedSend{
		{"first", "a@example.com"},
		{"first", "b@example.com"},
		{"second", "c@example.com"},
		{"third", "d@example.com"},
	}, sends)

	// two notifications never dispatch at once
	assert.Zero(t, atomic.LoadInt32(&dispatcher.overlapped))

	assert.Equal(t, []uuid.UUID{first.ID, second.ID, third.ID}, store.deliveredIDs())
}

func TestQueueRendersOncePerNotification(t *testing.T) {
	store := &stubDeliveryStore{}
	dispatcher := &stubQueueDispatcher{}
	queue := newTestQueue(t, store, dispatcher)

	queue.Enqueue(makeNotification("once", "a@example.com", "b@example.com", "c@example.com"))
	queue.Close()

	assert.Equal(t, int32(1), atomic.LoadInt32(&dispatcher.renders))
	assert.Len(t, dispatcher.recordedSends(), 3)
}

func TestQueueIsolatesFailingRecipient(t *testing.T) {
	store := &stubDeliveryStore{}
	dispatcher := &stubQueueDispatcher{failAddress: "b@example.com"}
	queue := newTestQueue(t, store, dispatcher)

	notification := makeNotification("news", "a@example.com", "b@example.com", "c@example.com")
	queue.Enqueue(notification)
	queue.Close()

	// every recipient got exactly one attempt, the failure included
	sends := dispatcher.recordedSends()
	require.Len(t, sends, 3)
	assert.Equal(t, "a@example.com", sends[0].address)
	assert.Equal(t, "b@example.com", sends[1].address)
	assert.Equal(t, "c@example.com", sends[2].address)

	// marked delivered despite the failure
	assert.Equal(t, []uuid.UUID{notification.ID}, store.deliveredIDs())
}

func TestQueueEmptyRecipientsMarksImmediately(t *testing.T) {
	store := &stubDeliveryStore{}
	dispatcher := &stubQueueDispatcher{}
	queue := newTestQueue(t, store, dispatcher)

	notification := makeNotification("to nobody")
	queue.Enqueue(notification)
	queue.Close()

	assert.Empty(t, dispatcher.recordedSends())
	assert.Equal(t, []uuid.UUID{notification.ID}, store.deliveredIDs())
}

func TestQueueToleratesMarkDeliveredFailure(t *testing.T) {
	failing := makeNotification("cursed", "a@example.com")
	store := &stubDeliveryStore{failFor: map[uuid.UUID]bool{failing.ID: true}}
	dispatcher := &stubQueueDispatcher{}
	queue := newTestQueue(t, store, dispatcher)

	follower := makeNotification("fine", "b@example.com")
	queue.Enqueue(failing)
	queue.Enqueue(follower)
	queue.Close()

	// the worker keeps draining past the failure
	require.Len(t, dispatcher.recordedSends(), 2)
	assert.Equal(t, []uuid.UUID{follower.ID}, store.deliveredIDs())
}

func TestQueueIdleAfterDrain(t *testing.T) {
	store := &stubDeliveryStore{}
	dispatcher := &stubQueueDispatcher{}
	queue := newTestQueue(t, store, dispatcher)
	defer queue.Close()

	queue.Enqueue(makeNotification("one", "a@example.com"))

	require.Eventually(t, func() bool {
		return queue.State() == QueueIdle && len(store.deliveredIDs()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestQueueDropsAfterClose(t *testing.T) {
	store := &stubDeliveryStore{}
	dispatcher := &stubQueueDispatcher{}
	queue := newTestQueue(t, store, dispatcher)
	queue.Close()

	queue.Enqueue(makeNotification("late", "a@example.com"))
	assert.Empty(t, dispatcher.recordedSends())
}
