package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/georgemunganga/ntumai-core/internal/api/metrics"
	"github.com/georgemunganga/ntumai-core/internal/core/domain"
	"github.com/georgemunganga/ntumai-core/internal/core/ports"
)

const (
	channelBuffer = 64
	writeTimeout  = 5 * time.Second
)

type opKind int

const (
	opSave opKind = iota
	opClear
)

type op struct {
	kind opKind
	snap domain.PersistedSession
}

// Persister decorates a SessionStorage with a single background worker, so
// snapshot writes are serialized in submission order and never block the
// mutating action. Write failures are logged and counted only.
type Persister struct {
	inner ports.SessionStorage
	ops   chan op
	done  chan struct{}
	log   zerolog.Logger
}

// NewPersister wraps inner. Call Start before use and Close on shutdown.
func NewPersister(inner ports.SessionStorage, log zerolog.Logger) *Persister {
	return &Persister{
		inner: inner,
		ops:   make(chan op, channelBuffer),
		done:  make(chan struct{}),
		log:   log,
	}
}

// Start launches the worker goroutine. The worker drains remaining writes
// after Close; ctx cancellation stops it immediately.
func (p *Persister) Start(ctx context.Context) {
	go p.run(ctx)
}

// Close stops accepting writes and waits for queued ones to finish.
func (p *Persister) Close() {
	close(p.ops)
	<-p.done
}

// Load delegates to the wrapped storage; reads are not queued.
func (p *Persister) Load(ctx context.Context) (*domain.PersistedSession, error) {
	return p.inner.Load(ctx)
}

// Save enqueues the snapshot and returns immediately.
func (p *Persister) Save(_ context.Context, session domain.PersistedSession) error {
	p.ops <- op{kind: opSave, snap: session}
	return nil
}

// Clear enqueues a deletion, keeping its order relative to pending saves.
func (p *Persister) Clear(_ context.Context) error {
	p.ops <- op{kind: opClear}
	return nil
}

func (p *Persister) run(ctx context.Context) {
	defer close(p.done)
	for {
		select {
		case <-ctx.Done():
			return
		case o, ok := <-p.ops:
			if !ok {
				return
			}
			p.apply(o)
		}
	}
}

func (p *Persister) apply(o op) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	var err error
	switch o.kind {
	case opSave:
		err = p.inner.Save(ctx, o.snap)
	case opClear:
		err = p.inner.Clear(ctx)
	}
	if err != nil {
		p.log.Warn().Err(err).Msg("session write failed")
		metrics.SessionPersistErrorsTotal.Inc()
	}
}
