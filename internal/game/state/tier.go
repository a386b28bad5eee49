package state

// Tier is a subscription tier.
type Tier string

const (
	TierFree Tier = "free"
	Tier1    Tier = "tier1"
	Tier2    Tier = "tier2"
	Tier3    Tier = "tier3"
)

// TierInfo describes the entitlements of a subscription tier.
type TierInfo struct {
	Name             string
	PriceUSD         int
	AITokensPerMonth int
	CanGenerateAI    bool
	Can3DGenerate    bool
	MaxVideoAttempts int
	MaxImageRegens   int
}

// Tiers lists every subscription tier's entitlements.
var Tiers = map[Tier]TierInfo{
	TierFree: {Name: "Free"},
	Tier1:    {Name: "Basic", PriceUSD: 2, AITokensPerMonth: 10, CanGenerateAI: true, MaxVideoAttempts: 1, MaxImageRegens: 4},
	Tier2:    {Name: "Premium", PriceUSD: 5, AITokensPerMonth: 50, CanGenerateAI: true, MaxVideoAttempts: 3, MaxImageRegens: 20},
	Tier3:    {Name: "Ultimate", PriceUSD: 10, AITokensPerMonth: 200, CanGenerateAI: true, Can3DGenerate: true, MaxVideoAttempts: 10, MaxImageRegens: 100},
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	_, ok := Tiers[t]
	return ok
}

// Paid reports whether t is a paid tier. Paid tiers keep a bred egg's
// secondary element and get evolved artwork.
func (t Tier) Paid() bool {
	return t.Valid() && t != TierFree
}
