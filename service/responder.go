package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/arloliu/greenlight"
	"github.com/arloliu/greenlight/internal/hash"
)

// Request results reported to ServiceMetrics.RecordRequest.
const (
	ResultSuccess = "success"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Option configures a Responder.
type Option func(*responderOptions)

type responderOptions struct {
	metrics greenlight.MetricsCollector
	logger  greenlight.Logger
}

// WithMetrics overrides the metrics collector inherited from the Allocator.
func WithMetrics(metrics greenlight.MetricsCollector) Option {
	return func(o *responderOptions) {
		o.metrics = metrics
	}
}

// WithLogger overrides the logger inherited from the Allocator.
func WithLogger(logger greenlight.Logger) Option {
	return func(o *responderOptions) {
		o.logger = logger
	}
}

// cachedPlan is an encoded success reply plus the degenerate-input reasons
// recorded when the plan was computed.
type cachedPlan struct {
	encoded    []byte
	degenerate []string
}

// Responder answers allocation requests on a NATS subject.
//
// Allocator metrics (allocations, reconciliations) count computed plans, so
// cache hits do not add to them. Degenerate-input metrics and warnings are
// emitted for every request that carries degenerate input, cached or not.
//
// Responder is safe for concurrent use. Start and Stop may be called from
// different goroutines.
type Responder struct {
	nc      *nats.Conn
	alloc   *greenlight.Allocator
	cfg     greenlight.ServiceConfig
	metrics greenlight.MetricsCollector
	logger  greenlight.Logger

	// cache maps plan fingerprints to encoded success replies
	cache *xsync.Map[uint64, cachedPlan]

	mu  sync.Mutex
	sub *nats.Subscription
}

// NewResponder creates a new Responder.
//
// Metrics and logger default to the ones the Allocator was built with.
//
// Parameters:
//   - nc: NATS connection
//   - alloc: Allocator computing the plans
//   - cfg: Service configuration (Subject must be set; zero CacheSize selects the default)
//   - opts: Optional overrides (WithMetrics, WithLogger)
//
// Returns:
//   - *Responder: Responder ready to Start
//   - error: ErrNATSConnectionRequired, ErrAllocatorRequired or ErrInvalidConfig
func NewResponder(nc *nats.Conn, alloc *greenlight.Allocator, cfg greenlight.ServiceConfig, opts ...Option) (*Responder, error) {
	if nc == nil {
		return nil, greenlight.ErrNATSConnectionRequired
	}
	if alloc == nil {
		return nil, greenlight.ErrAllocatorRequired
	}
	if cfg.Subject == "" {
		return nil, fmt.Errorf("%w: service subject must not be empty", greenlight.ErrInvalidConfig)
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = greenlight.DefaultConfig().Service.CacheSize
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = greenlight.DefaultConfig().Service.RequestTimeout
	}

	options := &responderOptions{
		metrics: alloc.Metrics(),
		logger:  alloc.Logger(),
	}
	for _, opt := range opts {
		opt(options)
	}

	return &Responder{
		nc:      nc,
		alloc:   alloc,
		cfg:     cfg,
		metrics: options.metrics,
		logger:  options.logger,
		cache:   xsync.NewMap[uint64, cachedPlan](),
	}, nil
}

// Subject returns the subject the responder listens on.
func (r *Responder) Subject() string {
	return r.cfg.Subject
}

// CachedPlans returns the number of plans currently cached.
func (r *Responder) CachedPlans() int {
	return r.cache.Size()
}

// Start subscribes to the configured subject.
//
// The subscription is flushed to the server before Start returns, so requests
// sent after Start are guaranteed to reach this responder.
//
// Parameters:
//   - ctx: Context bounding the subscription round-trip (RequestTimeout
//     applies when ctx has no deadline)
//
// Returns:
//   - error: ErrAlreadyStarted, or subscription error
func (r *Responder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sub != nil {
		return greenlight.ErrAlreadyStarted
	}

	var (
		sub *nats.Subscription
		err error
	)
	if r.cfg.QueueGroup != "" {
		sub, err = r.nc.QueueSubscribe(r.cfg.Subject, r.cfg.QueueGroup, r.handle)
	} else {
		sub, err = r.nc.Subscribe(r.cfg.Subject, r.handle)
	}
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", r.cfg.Subject, err)
	}

	// FlushWithContext rejects contexts without a deadline
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.RequestTimeout)
		defer cancel()
	}

	if err := r.nc.FlushWithContext(ctx); err != nil {
		_ = sub.Unsubscribe()
		return fmt.Errorf("failed to flush subscription: %w", err)
	}

	r.sub = sub
	r.logger.Info("allocation responder started",
		"subject", r.cfg.Subject,
		"queueGroup", r.cfg.QueueGroup,
		"strategy", r.alloc.StrategyName(),
	)

	return nil
}

// Stop unsubscribes and clears the plan cache.
//
// Returns:
//   - error: ErrNotStarted, or unsubscribe error
func (r *Responder) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sub == nil {
		return greenlight.ErrNotStarted
	}

	err := r.sub.Unsubscribe()
	r.sub = nil
	r.cache.Clear()

	if err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
		return fmt.Errorf("failed to unsubscribe from %s: %w", r.cfg.Subject, err)
	}

	r.logger.Info("allocation responder stopped", "subject", r.cfg.Subject)

	return nil
}

// handle answers a single request message.
func (r *Responder) handle(msg *nats.Msg) {
	data, result := r.answer(msg.Data)
	r.metrics.RecordRequest(result)

	if err := msg.Respond(data); err != nil {
		r.logger.Warn("failed to send allocation reply", "subject", msg.Subject, "error", err)
	}
}

// answer computes the encoded reply for an encoded request.
func (r *Responder) answer(data []byte) ([]byte, string) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		r.logger.Debug("rejected malformed allocation request", "error", err)
		return encodeError(fmt.Errorf("%w: %w", greenlight.ErrInvalidRequest, err)), ResultInvalid
	}

	params := req.params(r.alloc.Params())
	useCache := r.cfg.CacheSize >= 0

	var fp uint64
	if useCache {
		fp = hash.Fingerprint(r.alloc.StrategyName(), params, req.Densities)
		if cached, ok := r.cache.Load(fp); ok {
			r.metrics.RecordCacheLookup(true)
			for _, reason := range cached.degenerate {
				r.metrics.RecordDegenerateInput(reason)
				r.logger.Warn("cached plan has degenerate input",
					"reason", reason,
					"lanes", len(req.Densities),
					"totalCycleTime", params.TotalCycleTime,
					"minGreenTime", params.MinGreenTime,
				)
			}

			return cached.encoded, ResultSuccess
		}
		r.metrics.RecordCacheLookup(false)
	}

	plan, err := r.alloc.PlanWith(req.Densities, params)
	if err != nil {
		if isInvalidInput(err) {
			return encodeError(err), ResultInvalid
		}
		r.logger.Error("allocation failed", "lanes", len(req.Densities), "error", err)

		return encodeError(err), ResultError
	}

	encoded, err := json.Marshal(replyFromPlan(plan))
	if err != nil {
		r.logger.Error("failed to encode allocation reply", "error", err)
		return encodeError(err), ResultError
	}

	if useCache {
		r.remember(fp, cachedPlan{encoded: encoded, degenerate: degenerateReasons(plan)})
	}

	return encoded, ResultSuccess
}

// remember stores an encoded reply, clearing the cache first when it is full.
func (r *Responder) remember(fp uint64, entry cachedPlan) {
	if r.cache.Size() >= r.cfg.CacheSize {
		r.logger.Debug("plan cache full, clearing", "size", r.cache.Size())
		r.cache.Clear()
	}
	r.cache.Store(fp, entry)
}

// degenerateReasons lists the degenerate-input reasons the Allocator reported for plan.
func degenerateReasons(plan greenlight.Plan) []string {
	var reasons []string
	if plan.Params.FloorExceedsCycle(len(plan.GreenTimes)) {
		reasons = append(reasons, greenlight.DegenerateFloorExceedsCycle)
	}
	if plan.HasNegativeLane() {
		reasons = append(reasons, greenlight.DegenerateNegativeLane)
	}

	return reasons
}

func isInvalidInput(err error) bool {
	return errors.Is(err, greenlight.ErrNoLanes) ||
		errors.Is(err, greenlight.ErrInvalidDensity) ||
		errors.Is(err, greenlight.ErrInvalidCycleParams)
}

func encodeError(err error) []byte {
	// Reply with a single string field cannot fail to encode.
	data, _ := json.Marshal(Reply{Error: err.Error()})

	return data
}
