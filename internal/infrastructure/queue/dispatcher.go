package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/greencode/platform/internal/api/metrics"
	"github.com/greencode/platform/internal/core/domain"
	"github.com/greencode/platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	drainTimeout   = 2 * time.Second
)

// Dispatcher fans audit events out to a fixed set of workers using consistent
// hashing on the actor, guaranteeing per-actor event ordering in the store.
// It implements ports.AuditRecorder in front of the real recorder, making
// audit writes asynchronous: Record never blocks the auth path beyond a
// channel send.
type Dispatcher struct {
	workers []chan domain.AuditEvent
	sink    ports.AuditRecorder
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.AuditRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEvent, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an event for its actor's worker. When the worker's buffer
// is full the event is dropped with a log line: auditing is a side channel
// and must never stall a login.
func (d *Dispatcher) Record(_ context.Context, event domain.AuditEvent) error {
	idx := d.shardIndex(event.Actor)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		d.log.Warn().Str("action", event.Action).Int("worker_id", idx).Msg("audit queue full, event dropped")
	}
	return nil
}

// shardIndex maps an actor deterministically to a worker index.
func (d *Dispatcher) shardIndex(actor string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actor))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			d.persist(ctx, id, event)
		}
	}
}

// drain flushes whatever Record already accepted into the worker's buffer.
// Shutdown must not lose enqueued events or leave the depth gauge stale.
func (d *Dispatcher) drain(id int, ch <-chan domain.AuditEvent) {
	for {
		select {
		case event := <-ch:
			flushCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
			d.persist(flushCtx, id, event)
			cancel()
		default:
			return
		}
	}
}

func (d *Dispatcher) persist(ctx context.Context, id int, event domain.AuditEvent) {
	metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Dec()
	if err := d.sink.Record(ctx, event); err != nil {
		d.log.Error().Err(err).
			Str("actor", event.Actor).
			Str("action", event.Action).
			Int("worker_id", id).
			Msg("audit event persistence failed")
	}
}
