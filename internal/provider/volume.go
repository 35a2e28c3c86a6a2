package provider

const (
	volumeBase  = 10_000_000
	volumeRange = 90_000_000
	volumeSwing = 0.3
)

// SyntheticVolume makes up a plausible daily volume for tiers that do not
// report one. The base depends only on the symbol; r in [0,1) moves it by
// up to ±15%.
func SyntheticVolume(symbol Symbol, r float64) int64 {
	var hash int64
	for i := 0; i < len(symbol); i++ {
		hash += int64(symbol[i])
	}
	base := float64(volumeBase + hash%volumeRange)
	return int64(base * (1 + (r-0.5)*volumeSwing))
}
