package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"petmate/internal/platform/logger"

	"github.com/cenkalti/backoff/v5"
)

type Outcome string

const (
	OutcomeLike    Outcome = "like"
	OutcomeDislike Outcome = "dislike"
)

func (o Outcome) Valid() bool {
	return o == OutcomeLike || o == OutcomeDislike
}

// Decision es efímera del lado del feed: se arma, se manda al Sink y se olvida.
type Decision struct {
	PetID   string  `json:"pet_id"`
	Outcome Outcome `json:"outcome"`
}

var (
	ErrSinkFull   = errors.New("decision sink full")
	ErrSinkClosed = errors.New("decision sink closed")

	// ErrRejected lo devuelve un Recorder cuando reintentar no sirve (4xx, pet inexistente, etc.).
	ErrRejected = errors.New("decision rejected")
)

// Sink recibe decisiones. Record no debe bloquear por la entrega.
type Sink interface {
	Record(ctx context.Context, d Decision) error
}

// Recorder persiste una decisión de forma síncrona (HTTP, DB). Puede bloquear y fallar.
type Recorder interface {
	Record(ctx context.Context, d Decision) error
}

// LogSink solo deja la decisión en el log (modo fixture).
type LogSink struct {
	Log logger.Logger
}

func (s LogSink) Record(ctx context.Context, d Decision) error {
	if s.Log != nil {
		s.Log.Info("decision", map[string]any{"pet_id": d.PetID, "outcome": string(d.Outcome)})
	}
	return nil
}

type AsyncOptions struct {
	QueueSize       int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsed      time.Duration // 0 = default de backoff (15m)
	Log             logger.Logger
}

func (o AsyncOptions) withDefaults() AsyncOptions {
	if o.QueueSize <= 0 {
		o.QueueSize = 64
	}
	if o.InitialInterval <= 0 {
		o.InitialInterval = 200 * time.Millisecond
	}
	if o.MaxInterval <= 0 {
		o.MaxInterval = 10 * time.Second
	}
	if o.Log == nil {
		o.Log = logger.NewNop()
	}
	return o
}

// AsyncSink encola decisiones y las entrega con un único worker.
// Entrega at-least-once: el Recorder tiene que ser idempotente por (usuario, pet).
type AsyncSink struct {
	rec  Recorder
	opts AsyncOptions
	log  logger.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan Decision

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	delivered atomic.Int64
	dropped   atomic.Int64
}

func NewAsyncSink(rec Recorder, opts AsyncOptions) *AsyncSink {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	s := &AsyncSink{
		rec:    rec,
		opts:   opts,
		log:    opts.Log.With(map[string]any{"component": "decision_sink"}),
		queue:  make(chan Decision, opts.QueueSize),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

// Record encola sin bloquear.
func (s *AsyncSink) Record(ctx context.Context, d Decision) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrSinkClosed
	}
	select {
	case s.queue <- d:
		return nil
	default:
		return ErrSinkFull
	}
}

// Close deja de aceptar decisiones, drena la cola y espera al worker.
// Si ctx vence antes, corta los reintentos pendientes.
func (s *AsyncSink) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.mu.Unlock()

	select {
	case <-s.done:
		s.cancel()
		return nil
	case <-ctx.Done():
		s.cancel()
		<-s.done
		return ctx.Err()
	}
}

// Stats: entregadas y descartadas desde el arranque.
func (s *AsyncSink) Stats() (delivered, dropped int64) {
	return s.delivered.Load(), s.dropped.Load()
}

func (s *AsyncSink) run() {
	defer close(s.done)
	for d := range s.queue {
		if err := s.deliver(d); err != nil {
			s.dropped.Add(1)
			s.log.Error("decision dropped", map[string]any{
				"pet_id":  d.PetID,
				"outcome": string(d.Outcome),
				"err":     err,
			})
			continue
		}
		s.delivered.Add(1)
	}
}

func (s *AsyncSink) deliver(d Decision) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.opts.InitialInterval
	b.MaxInterval = s.opts.MaxInterval

	opts := []backoff.RetryOption{
		backoff.WithBackOff(b),
		backoff.WithNotify(func(err error, wait time.Duration) {
			s.log.Warn("decision delivery failed, retrying", map[string]any{
				"pet_id": d.PetID,
				"wait":   wait.String(),
				"err":    err,
			})
		}),
	}
	if s.opts.MaxElapsed > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(s.opts.MaxElapsed))
	}

	_, err := backoff.Retry(s.ctx, func() (struct{}, error) {
		err := s.rec.Record(s.ctx, d)
		if err == nil {
			return struct{}{}, nil
		}
		if errors.Is(err, ErrRejected) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}, opts...)
	if err != nil {
		return fmt.Errorf("deliver %s: %w", d.PetID, err)
	}
	return nil
}
