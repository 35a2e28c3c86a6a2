// Package synthetic makes up plausible quotes for demos and for the last
// step of the fallback chain. Nothing here touches the network.
package synthetic

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/shopspring/decimal"

	"stockquote/internal/provider"
)

const (
	providerName = "synthetic"

	priceJitter  = 2.0 // total width, so ±1
	changeJitter = 0.5 // ±0.25

	unknownPriceMin   = 100.0
	unknownPriceRange = 200.0
	unknownChangeSpan = 10.0 // ±5

	volumeMin   = 10_000_000
	volumeRange = 100_000_000
)

type seed struct {
	name   string
	price  float64
	change float64
}

// seeds anchors well known tickers near realistic levels.
var seeds = map[provider.Symbol]seed{
	"AAPL":  {"Apple Inc.", 210.16, 1.05},
	"GOOGL": {"Alphabet Inc.", 2800.50, -15.30},
	"TSLA":  {"Tesla Inc.", 321.67, 10.89},
	"MSFT":  {"Microsoft Corp.", 420.85, 2.40},
	"AMZN":  {"Amazon.com Inc.", 3401.80, -8.20},
	"NVDA":  {"NVIDIA Corp.", 890.30, 25.60},
	"META":  {"Meta Platforms Inc.", 485.20, 7.15},
	"NFLX":  {"Netflix Inc.", 670.45, -3.80},
}

// Generator is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

type Option func(*Generator)

// WithSource replaces the random source, mostly for tests.
func WithSource(src rand.Source) Option {
	return func(g *Generator) {
		g.rng = rand.New(src)
	}
}

func New(opts ...Option) *Generator {
	g := &Generator{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Name() string { return providerName }

// FetchQuote never fails.
func (g *Generator) FetchQuote(_ context.Context, symbol provider.Symbol) (provider.Quote, error) {
	return g.Generate(symbol), nil
}

// Generate returns a fresh synthetic quote for symbol.
func (g *Generator) Generate(symbol provider.Symbol) provider.Quote {
	g.mu.Lock()
	s, ok := seeds[symbol]
	if !ok {
		s = seed{
			name:   symbol.String() + " Corp.",
			price:  unknownPriceMin + g.rng.Float64()*unknownPriceRange,
			change: (g.rng.Float64() - 0.5) * unknownChangeSpan,
		}
	}
	price := s.price + (g.rng.Float64()-0.5)*priceJitter
	change := s.change + (g.rng.Float64()-0.5)*changeJitter
	volume := volumeMin + g.rng.Int64N(volumeRange)
	g.mu.Unlock()

	p := provider.RoundPrice(decimal.NewFromFloat(price))
	c := provider.RoundPrice(decimal.NewFromFloat(change))
	return provider.Quote{
		Symbol:        symbol.String(),
		CompanyName:   s.name,
		Price:         p,
		Change:        c,
		ChangePercent: provider.ChangePercent(p, c),
		Volume:        volume,
		Currency:      "USD",
		IsMockData:    true,
	}
}
