package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/myne7x/store-api/internal/api/metrics"
	"github.com/myne7x/store-api/internal/core/domain"
	"github.com/myne7x/store-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	retryDelay     = 200 * time.Millisecond
)

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on the recipient's user id, guaranteeing per-user ordering. Workers
// append notifications to persistent storage; a failed write is retried once
// before being dropped with an error log, so delivery to storage is
// at-least-once while the producing workflow transition never blocks on it.
type Dispatcher struct {
	workers       []chan ports.NotificationInput
	notifications ports.NotificationRepository
	log           zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, notifications ports.NotificationRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:       make([]chan ports.NotificationInput, numWorkers),
		notifications: notifications,
		log:           log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.NotificationInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Notify sends a notification to the worker responsible for its recipient.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Notify(input ports.NotificationInput) {
	idx := d.shardIndex(input.UserID)
	d.workers[idx] <- input
	metrics.NotificationsEnqueuedTotal.WithLabelValues(string(input.Type)).Inc()
	metrics.NotifyQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.NotificationInput) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case input, ok := <-ch:
			if !ok {
				return
			}
			d.persist(ctx, input)
			metrics.NotifyQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
		}
	}
}

func (d *Dispatcher) persist(ctx context.Context, input ports.NotificationInput) {
	notification := &domain.Notification{
		ID:               uuid.NewString(),
		UserID:           input.UserID,
		NotificationType: input.Type,
		Title:            input.Title,
		Message:          input.Message,
		RelatedID:        input.RelatedID,
		Read:             false,
		CreatedAt:        time.Now().UTC(),
	}

	err := d.notifications.Create(ctx, notification)
	if err != nil {
		time.Sleep(retryDelay)
		err = d.notifications.Create(ctx, notification)
	}
	if err != nil {
		metrics.NotificationsFailedTotal.Inc()
		d.log.Error().Err(err).
			Str("user_id", input.UserID).
			Str("type", string(input.Type)).
			Msg("notification persistence failed after retry")
		return
	}

	d.log.Debug().
		Str("user_id", input.UserID).
		Str("type", string(input.Type)).
		Msg("notification persisted")
}
