package hybrid

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"stockquote/internal/provider"
)

// Result is the outcome of one symbol in a batch.
type Result struct {
	Input string
	Quote provider.Quote
	Err   error
}

// ResolveMany resolves each distinct input concurrently, at most limit at a
// time (limit <= 0 means no bound). Inputs that differ only by case or
// surrounding space count once. Results keep the order of first appearance;
// one failure does not affect the others.
func (r *Resolver) ResolveMany(ctx context.Context, raws []string, limit int) []Result {
	seen := make(map[string]struct{}, len(raws))
	inputs := make([]string, 0, len(raws))
	for _, raw := range raws {
		key := strings.ToUpper(strings.TrimSpace(raw))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		inputs = append(inputs, raw)
	}

	results := make([]Result, len(inputs))
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, in := range inputs {
		g.Go(func() error {
			q, err := r.Resolve(ctx, in)
			results[i] = Result{Input: in, Quote: q, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
