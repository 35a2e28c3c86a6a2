package hybrid

import (
	"context"

	"go.uber.org/zap"

	"stockquote/internal/provider"
)

// probeSymbol is fetched from the secondary provider to see whether it is
// serving real data.
const probeSymbol provider.Symbol = "AAPL"

type ProviderStatus struct {
	Name      string `json:"name,omitempty"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// Status reports which sources can currently serve real quotes.
type Status struct {
	Primary     ProviderStatus  `json:"primary"`
	Secondary   ProviderStatus  `json:"secondary"`
	Synthetic   bool            `json:"synthetic"`
	Recommended provider.Source `json:"recommended"`
}

// Status checks the primary provider's credentials (no request is made) and
// probes the secondary provider with a live quote. A secondary answer made of
// mock data counts as unavailable. Every call spends one request of the
// secondary provider's quota.
func (r *Resolver) Status(ctx context.Context) Status {
	st := Status{
		Primary:   r.primaryStatus(),
		Secondary: r.secondaryStatus(ctx),
		Synthetic: r.synthetic != nil,
	}
	switch {
	case st.Primary.Available:
		st.Recommended = provider.SourcePrimary
	case st.Secondary.Available:
		st.Recommended = provider.SourceSecondary
	default:
		st.Recommended = provider.SourceSynthetic
	}
	return st
}

func (r *Resolver) primaryStatus() ProviderStatus {
	if r.primary == nil {
		return ProviderStatus{Reason: "not configured"}
	}
	st := ProviderStatus{Name: r.primary.Name(), Available: true}
	if cc, ok := r.primary.(provider.CredentialChecker); ok {
		if err := cc.CheckCredentials(); err != nil {
			st.Available, st.Reason = false, err.Error()
		}
	}
	return st
}

func (r *Resolver) secondaryStatus(ctx context.Context) ProviderStatus {
	if r.secondary == nil {
		return ProviderStatus{Reason: "not configured"}
	}
	st := ProviderStatus{Name: r.secondary.Name()}
	if cc, ok := r.secondary.(provider.CredentialChecker); ok {
		if err := cc.CheckCredentials(); err != nil {
			st.Reason = err.Error()
			return st
		}
	}
	q, err := r.secondary.FetchQuote(ctx, probeSymbol)
	switch {
	case err != nil:
		r.logger.Warn("status probe failed", zap.String("provider", st.Name), zap.Error(err))
		st.Reason = err.Error()
	case q.IsMockData:
		st.Reason = "serving mock data"
	default:
		st.Available = true
	}
	return st
}
