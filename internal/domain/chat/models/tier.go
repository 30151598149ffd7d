package models

// Tier selects the model identity, token limit and temperature
type Tier int

const (
	TierStandard Tier = iota
	TierElevated
)

// TierFromPro maps the client's "isPro" flag onto a tier
func TierFromPro(isPro bool) Tier {
	if isPro {
		return TierElevated
	}
	return TierStandard
}

func (t Tier) String() string {
	if t == TierElevated {
		return "elevated"
	}
	return "standard"
}

// ModelSelection is the provider configuration for a tier
type ModelSelection struct {
	ModelID     string
	MaxTokens   int
	Temperature float32
	Label       string
}

// SelectModel returns the model selection for a tier. It is a pure function
// of the tier; unknown values fall back to the standard tier.
func SelectModel(t Tier) ModelSelection {
	if t == TierElevated {
		return ModelSelection{
			ModelID:     "llama-3.3-70b-versatile",
			MaxTokens:   1024,
			Temperature: 0.7,
			Label:       "Echo Pro",
		}
	}
	return ModelSelection{
		ModelID:     "llama-3.1-8b-instant",
		MaxTokens:   256,
		Temperature: 0.4,
		Label:       "Echo",
	}
}

// LiveDataLabel is reported as the model for answers served straight from a
// live data source without calling the provider.
const LiveDataLabel = "Echo Live"
