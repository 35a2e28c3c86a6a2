package hybrid_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"stockquote/internal/hybrid"
	"stockquote/internal/provider"
)

// keyedProvider is a provider that also validates its credentials.
type keyedProvider struct {
	*MockProvider
	*MockCredentialChecker
}

func newKeyedProvider(ctrl *gomock.Controller, name string, credErr error) keyedProvider {
	p := keyedProvider{NewMockProvider(ctrl), NewMockCredentialChecker(ctrl)}
	p.MockProvider.EXPECT().Name().Return(name).AnyTimes()
	p.MockCredentialChecker.EXPECT().CheckCredentials().Return(credErr).AnyTimes()
	return p
}

func missingKey(name string) error {
	return provider.Errors{Provider: name}.New(provider.ErrCredentialMissing, "api key not set")
}

func TestStatus(t *testing.T) {
	t.Parallel()

	mock := quote("AAPL", "210.16")
	mock.IsMockData = true

	tests := []struct {
		name            string
		primaryErr      error
		secondaryErr    error
		probe           provider.Quote
		probeErr        error
		probes          int
		wantPrimary     bool
		wantSecondary   bool
		wantRecommended provider.Source
	}{
		{
			name:            "everything up",
			probe:           quote("AAPL", "210.16"),
			probes:          1,
			wantPrimary:     true,
			wantSecondary:   true,
			wantRecommended: provider.SourcePrimary,
		},
		{
			name:            "primary key missing",
			primaryErr:      missingKey("finnhub"),
			probe:           quote("AAPL", "210.16"),
			probes:          1,
			wantSecondary:   true,
			wantRecommended: provider.SourceSecondary,
		},
		{
			name:            "secondary throttled",
			primaryErr:      missingKey("finnhub"),
			probe:           mock,
			probes:          1,
			wantRecommended: provider.SourceSynthetic,
		},
		{
			name:            "secondary failing",
			primaryErr:      missingKey("finnhub"),
			probeErr:        provider.Errors{Provider: "alphavantage"}.Status(503, "unavailable"),
			probes:          1,
			wantRecommended: provider.SourceSynthetic,
		},
		{
			name:            "secondary key missing is not probed",
			secondaryErr:    missingKey("alphavantage"),
			probes:          0,
			wantPrimary:     true,
			wantRecommended: provider.SourcePrimary,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Arrange: the primary is never fetched from.
			ctrl := gomock.NewController(t)
			primary := newKeyedProvider(ctrl, "finnhub", tt.primaryErr)
			primary.MockProvider.EXPECT().FetchQuote(gomock.Any(), gomock.Any()).Times(0)
			secondary := newKeyedProvider(ctrl, "alphavantage", tt.secondaryErr)
			secondary.MockProvider.EXPECT().FetchQuote(gomock.Any(), provider.Symbol("AAPL")).Return(tt.probe, tt.probeErr).Times(tt.probes)
			r := hybrid.New(primary, secondary, hybrid.WithLogger(zap.NewNop()))

			// Act
			st := r.Status(t.Context())

			// Assert
			require.Equal(t, "finnhub", st.Primary.Name)
			require.Equal(t, tt.wantPrimary, st.Primary.Available)
			require.Equal(t, tt.wantSecondary, st.Secondary.Available)
			require.Equal(t, tt.wantRecommended, st.Recommended)
			require.False(t, st.Synthetic)
			if !tt.wantPrimary {
				require.NotEmpty(t, st.Primary.Reason)
			}
			if !tt.wantSecondary {
				require.NotEmpty(t, st.Secondary.Reason)
			}
		})
	}
}

func TestStatus_NotConfigured(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	r := hybrid.New(nil, nil, hybrid.WithSynthetic(NewMockGenerator(ctrl)))

	st := r.Status(t.Context())

	require.False(t, st.Primary.Available)
	require.Equal(t, "not configured", st.Primary.Reason)
	require.False(t, st.Secondary.Available)
	require.True(t, st.Synthetic)
	require.Equal(t, provider.SourceSynthetic, st.Recommended)
}

func TestDescribeSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source provider.Source
		want   string
	}{
		{provider.SourcePrimary, "Primary Provider"},
		{provider.SourceSecondary, "Secondary Provider"},
		{provider.SourceSynthetic, "Mock Data (Demo)"},
		{"", "Unknown Source"},
		{"carrier-pigeon", "Unknown Source"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, hybrid.DescribeSource(provider.Quote{Source: tt.source}))
	}
}
