package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/bft-labs/logship/internal/metrics"
	"github.com/bft-labs/logship/pkg/log"
	"github.com/bft-labs/logship/pkg/record"
)

// Default collector settings applied when the corresponding
// CollectorConfig field is unset.
const (
	DefaultMaxBatchRecords = 100
	DefaultFlushInterval   = 5 * time.Second
	DefaultDrainTimeout    = 5 * time.Second
)

// BatchHandler receives the batches a Collector flushes.
// *logship.Shipper satisfies it.
type BatchHandler interface {
	HandleBatch(ctx context.Context, recs []record.Record) error
}

// CollectorConfig controls when a Collector flushes.
type CollectorConfig struct {
	// MaxBatchRecords flushes the pending batch once it holds this many
	// records.
	MaxBatchRecords int

	// FlushInterval flushes a non-empty batch this long after its first
	// record arrived, so sparse inputs still ship promptly.
	FlushInterval time.Duration

	// RateLimit caps record intake per second. Zero disables the limit.
	RateLimit int

	// DrainTimeout bounds the final flush during shutdown.
	DrainTimeout time.Duration

	// InputPath is recorded in saved cursors. Leave empty for inputs
	// that cannot be resumed (stdin).
	InputPath string
}

// Collector accumulates tailer entries and flushes them through a
// BatchHandler on count and interval triggers, with a final drain when
// the input ends or the context is canceled.
//
// Each batch gets exactly one delivery attempt. A failed flush is logged,
// counted and dropped, and the cursor advances past it all the same, so a
// restart does not replay records that already had their attempt.
type Collector struct {
	cfg     CollectorConfig
	handler BatchHandler
	cursor  *CursorStore
	limiter *rate.Limiter
	logger  log.Logger
}

// NewCollector creates a Collector. cursor may be nil, in which case no
// offsets are persisted.
func NewCollector(cfg CollectorConfig, handler BatchHandler, cursor *CursorStore, logger log.Logger) *Collector {
	if cfg.MaxBatchRecords <= 0 {
		cfg.MaxBatchRecords = DefaultMaxBatchRecords
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = DefaultFlushInterval
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = DefaultDrainTimeout
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit)
	}

	return &Collector{
		cfg:     cfg,
		handler: handler,
		cursor:  cursor,
		limiter: limiter,
		logger:  logger,
	}
}

// Run consumes entries from in until the channel closes or ctx is
// canceled, flushing batches as the triggers fire. The remaining batch is
// flushed before Run returns.
func (c *Collector) Run(ctx context.Context, in <-chan Entry) error {
	var (
		pending   []record.Record
		endOffset int64
	)

	timer := time.NewTimer(c.cfg.FlushInterval)
	defer timer.Stop()
	stopTimer := func() {
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
	}
	stopTimer()

	flush := func(ctx context.Context, trigger string) {
		if len(pending) == 0 {
			return
		}
		c.send(ctx, pending, endOffset, trigger)
		pending = nil
		stopTimer()
	}

	// The final flush runs on its own bounded context: the run context is
	// usually already canceled by then, and that must not discard the
	// last batch.
	drain := func(trigger string) {
		drainCtx, cancel := context.WithTimeout(context.Background(), c.cfg.DrainTimeout)
		defer cancel()
		flush(drainCtx, trigger)
	}

	for {
		select {
		case <-ctx.Done():
			drain("shutdown")
			return ctx.Err()

		case <-timer.C:
			flush(ctx, "interval")

		case e, ok := <-in:
			if !ok {
				drain("eof")
				return nil
			}

			if c.limiter != nil {
				if err := c.limiter.Wait(ctx); err != nil {
					drain("shutdown")
					return err
				}
			}

			if len(pending) == 0 {
				stopTimer()
				timer.Reset(c.cfg.FlushInterval)
			}
			pending = append(pending, e.Record)
			endOffset = e.EndOffset

			if len(pending) >= c.cfg.MaxBatchRecords {
				flush(ctx, "size")
			}
		}
	}
}

// send delivers one batch and commits the cursor.
func (c *Collector) send(ctx context.Context, recs []record.Record, endOffset int64, trigger string) {
	batchID := uuid.NewString()

	start := time.Now()
	err := c.handler.HandleBatch(ctx, recs)
	took := time.Since(start)
	metrics.SendDuration.Observe(took.Seconds())

	if err != nil {
		metrics.BatchesFailed.Inc()
		metrics.RecordsDropped.WithLabelValues("delivery").Add(float64(len(recs)))
		c.logger.Error("batch dropped",
			log.String("batch_id", batchID),
			log.String("trigger", trigger),
			log.Int("records", len(recs)),
			log.Err(err))
	} else {
		metrics.BatchesSent.Inc()
		metrics.RecordsShipped.Add(float64(len(recs)))
		c.logger.Debug("batch delivered",
			log.String("batch_id", batchID),
			log.String("trigger", trigger),
			log.Int("records", len(recs)),
			log.Duration("took", took))
	}

	c.commit(ctx, endOffset)
}

// commit persists the input offset covered by the last flush.
func (c *Collector) commit(ctx context.Context, endOffset int64) {
	if c.cursor == nil || c.cfg.InputPath == "" {
		return
	}

	cur := Cursor{
		Path:      c.cfg.InputPath,
		Offset:    endOffset,
		UpdatedAt: time.Now().UTC(),
	}
	if err := c.cursor.Save(ctx, cur); err != nil {
		c.logger.Warn("cursor save failed", log.Err(err))
	}
}
