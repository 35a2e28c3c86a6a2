// Package hybrid resolves a ticker through the primary provider, then the
// secondary provider, then synthetic data, tagging every quote with the
// source that produced it.
package hybrid

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockquote/internal/provider"
)

// Generator makes up a quote for any symbol and never fails.
//
//go:generate mockgen -package=hybrid_test -destination=mock_generator_test.go -source=resolver.go Generator
type Generator interface {
	Generate(symbol provider.Symbol) provider.Quote
}

// Attempt records one step of a resolution.
type Attempt struct {
	Source   provider.Source
	Provider string
	Err      error
	Elapsed  time.Duration
}

// Resolver is safe for concurrent use; it holds no per-resolution state.
type Resolver struct {
	primary   provider.Provider
	secondary provider.Provider
	synthetic Generator
	logger    *zap.Logger
	now       func() time.Time
}

type Option func(*Resolver)

// WithSynthetic enables the last resort step. Without it an exhausted chain
// is an error.
func WithSynthetic(g Generator) Option {
	return func(r *Resolver) {
		r.synthetic = g
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithClock sets the time source for LastUpdated.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

// New builds a resolver. Either provider may be nil, in which case its step
// is skipped.
func New(primary, secondary provider.Provider, opts ...Option) *Resolver {
	r := &Resolver{
		primary:   primary,
		secondary: secondary,
		logger:    zap.L(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type step struct {
	source provider.Source
	name   string
	fetch  func(ctx context.Context, symbol provider.Symbol) (provider.Quote, error)
}

// chain lists the configured steps in fallback order.
func (r *Resolver) chain() []step {
	steps := make([]step, 0, 3)
	if r.primary != nil {
		steps = append(steps, step{provider.SourcePrimary, r.primary.Name(), r.primary.FetchQuote})
	}
	if r.secondary != nil {
		steps = append(steps, step{provider.SourceSecondary, r.secondary.Name(), r.secondary.FetchQuote})
	}
	if r.synthetic != nil {
		steps = append(steps, step{
			source: provider.SourceSynthetic,
			name:   "synthetic",
			fetch: func(_ context.Context, symbol provider.Symbol) (provider.Quote, error) {
				return r.synthetic.Generate(symbol), nil
			},
		})
	}
	return steps
}

// Resolve returns a quote for raw, which is validated first. Provider
// failures are absorbed by the chain; the caller only ever sees a
// *provider.SymbolError or a *ResolutionError.
func (r *Resolver) Resolve(ctx context.Context, raw string) (provider.Quote, error) {
	symbol, err := provider.ParseSymbol(raw)
	if err != nil {
		return provider.Quote{}, err
	}

	log := r.logger.With(
		zap.String("resolution_id", uuid.NewString()),
		zap.String("symbol", symbol.String()),
	)

	var attempts []Attempt
	for _, s := range r.chain() {
		if err := ctx.Err(); err != nil {
			log.Warn("resolution stopped", zap.Error(err), zap.Int("attempts", len(attempts)))
			return provider.Quote{}, &ResolutionError{Symbol: symbol, Attempts: attempts, cause: err}
		}

		start := time.Now()
		q, err := s.fetch(ctx, symbol)
		a := Attempt{Source: s.source, Provider: s.name, Err: err, Elapsed: time.Since(start)}
		attempts = append(attempts, a)
		if err != nil {
			log.Warn("quote source failed",
				zap.String("source", string(s.source)),
				zap.String("provider", s.name),
				zap.Duration("elapsed", a.Elapsed),
				zap.Error(err))
			continue
		}

		source := s.source
		if q.IsMockData {
			source = provider.SourceSynthetic
		}
		log.Debug("quote resolved",
			zap.String("source", string(source)),
			zap.String("provider", s.name),
			zap.Duration("elapsed", a.Elapsed))
		return r.finalize(q, symbol, source), nil
	}

	rerr := &ResolutionError{Symbol: symbol, Attempts: attempts, cause: ctx.Err()}
	log.Error("quote sources exhausted", zap.Error(rerr))
	return provider.Quote{}, rerr
}

// finalize stamps provenance. Providers never set these fields themselves.
func (r *Resolver) finalize(q provider.Quote, symbol provider.Symbol, source provider.Source) provider.Quote {
	q.Symbol = symbol.String()
	q.Source = source
	q.IsMockData = source == provider.SourceSynthetic
	q.LastUpdated = r.now()
	return q
}
