package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/petrohaul/transport-system/internal/api/metrics"
	"github.com/petrohaul/transport-system/internal/core/domain"
	"github.com/petrohaul/transport-system/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes trip status events to a fixed set of workers using
// consistent hashing on the trip number, guaranteeing per-trip event ordering.
type Dispatcher struct {
	workers []chan ports.TripEventInput
	service ports.TripEventService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.TripEventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.TripEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.TripEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its trip number.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.TripEventInput) {
	idx := d.shardIndex(event.TripNumber)
	d.workers[idx] <- event
	metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// EnqueueBatch enqueues multiple events preserving per-trip ordering.
func (d *Dispatcher) EnqueueBatch(events []ports.TripEventInput) {
	for _, e := range events {
		d.Enqueue(e)
	}
}

// shardIndex maps a trip number deterministically to a worker index.
func (d *Dispatcher) shardIndex(tripNumber string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tripNumber))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.TripEventInput) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			start := time.Now()
			err := d.service.Process(ctx, event)
			metrics.EventsQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err != nil {
				metrics.EventsErrorsTotal.WithLabelValues(errorReason(err)).Inc()
				metrics.EventProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
				d.log.Error().Err(err).
					Str("trip_number", event.TripNumber).
					Int("worker_id", id).
					Msg("event processing failed")
				continue
			}
			metrics.EventsProcessedTotal.WithLabelValues(event.Status, event.Source).Inc()
			metrics.EventProcessingDuration.WithLabelValues(event.Status).Observe(time.Since(start).Seconds())
		}
	}
}

// errorReason maps a processing error to a low-cardinality metric label.
func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTripNotFound):
		return "trip_not_found"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	default:
		return "update_failed"
	}
}
