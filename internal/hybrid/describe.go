package hybrid

import "stockquote/internal/provider"

// DescribeSource returns the display label for the source of q.
func DescribeSource(q provider.Quote) string {
	return q.Source.Label()
}
