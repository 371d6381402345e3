package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/securevault/vault-system/internal/api/metrics"
	"github.com/securevault/vault-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Summary counts what the workers did with the enqueued records.
type Summary struct {
	Imported int64
	Failed   int64
	// Skipped counts records left in a worker buffer when the workers
	// stopped on cancellation.
	Skipped int64
}

// Dispatcher routes plaintext records to a fixed set of import workers using
// consistent hashing on the account id, so duplicates of one account are
// stored in the order they were enqueued.
type Dispatcher struct {
	workers []chan ports.ImportInput
	service ports.VaultService
	log     zerolog.Logger
	stopped <-chan struct{}

	wg       sync.WaitGroup
	closed   sync.Once
	imported atomic.Int64
	failed   atomic.Int64
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.VaultService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ImportInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ImportInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or after Close once their channel is drained.
func (d *Dispatcher) Start(ctx context.Context) {
	d.stopped = ctx.Done()
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a record to the worker responsible for its account id.
// The call blocks while that worker's buffer is full, and returns the context
// error once ctx or the context passed to Start is done.
func (d *Dispatcher) Enqueue(ctx context.Context, in ports.ImportInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	idx := d.shardIndex(in.AccountID)
	depth := metrics.ImportQueueDepth.WithLabelValues(strconv.Itoa(idx))
	depth.Inc()

	select {
	case d.workers[idx] <- in:
		return nil
	case <-ctx.Done():
		depth.Dec()
		return ctx.Err()
	case <-d.stopped:
		depth.Dec()
		return context.Canceled
	}
}

// EnqueueBatch enqueues multiple records preserving per-account ordering.
// It stops at the first record that could not be enqueued.
func (d *Dispatcher) EnqueueBatch(ctx context.Context, records []ports.ImportInput) error {
	for _, r := range records {
		if err := d.Enqueue(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// Close stops accepting records. Enqueue must not be called afterwards.
func (d *Dispatcher) Close() {
	d.closed.Do(func() {
		for _, ch := range d.workers {
			close(ch)
		}
	})
}

// Wait closes the dispatcher, blocks until every worker has exited, and
// returns the totals. Records the workers never picked up are drained and
// counted as skipped.
func (d *Dispatcher) Wait() Summary {
	d.Close()
	d.wg.Wait()

	var skipped int64
	for i, ch := range d.workers {
		depth := metrics.ImportQueueDepth.WithLabelValues(strconv.Itoa(i))
		for range ch {
			depth.Dec()
			skipped++
		}
	}
	return Summary{Imported: d.imported.Load(), Failed: d.failed.Load(), Skipped: skipped}
}

// shardIndex maps an account id deterministically to a worker index.
func (d *Dispatcher) shardIndex(accountID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(accountID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ImportInput) {
	defer d.wg.Done()
	depth := metrics.ImportQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			if err := d.service.Import(ctx, in); err != nil {
				d.failed.Add(1)
				d.log.Error().Err(err).
					Str("account_id", in.AccountID).
					Int("worker_id", id).
					Msg("record import failed")
				continue
			}
			d.imported.Add(1)
		}
	}
}
