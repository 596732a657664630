package model

// Phase is the Wyckoff-style trend phase, including climactic sub-events.
type Phase string

const (
	PhaseUnknown        Phase = "UNKNOWN"
	PhaseMarkup         Phase = "MARKUP"
	PhaseMarkdown       Phase = "MARKDOWN"
	PhaseAccumulation   Phase = "ACCUMULATION"
	PhaseReAccumulation Phase = "RE-ACCUMULATION"
	PhaseDistribution   Phase = "DISTRIBUTION"
	PhaseSellingClimax  Phase = "SELLING CLIMAX"
	PhaseBuyingClimax   Phase = "BUYING CLIMAX"
	PhaseSpring         Phase = "SPRING"
	PhaseUpthrust       Phase = "UPTHRUST"
	PhaseStoppingVolume Phase = "STOPPING VOLUME"
)

// VSASignal is the volume-spread classification of the latest bar.
type VSASignal string

const (
	VSAUnknown        VSASignal = "UNKNOWN"
	VSASellingClimax  VSASignal = "SELLING CLIMAX"
	VSASpring         VSASignal = "SPRING"
	VSAStoppingVolume VSASignal = "STOPPING VOL"
	VSASignOfStrength VSASignal = "SIGN OF STRENGTH"
	VSANoSupply       VSASignal = "NO SUPPLY"
	VSADryUp          VSASignal = "DRY UP"
	VSAIceberg        VSASignal = "ICEBERG"
	VSAHammer         VSASignal = "HAMMER"
	VSAUpthrust       VSASignal = "UPTHRUST"
	VSABuyingClimax   VSASignal = "BUYING CLIMAX"
	VSASignOfWeakness VSASignal = "SIGN OF WEAKNESS"
	VSANoDemand       VSASignal = "NO DEMAND"
	VSANeutral        VSASignal = "NEUTRAL"
)

// VCPStatus is the volatility-contraction pattern state.
type VCPStatus string

const (
	VCPUnknown     VCPStatus = "UNKNOWN"
	VCPPivot       VCPStatus = "VCP PIVOT"
	VCPBase        VCPStatus = "VCP BASE"
	VCPContracting VCPStatus = "CONTRACTING"
	VCPNone        VCPStatus = "NO VCP"
)

// Bias is the directional reading of the candle power prediction.
type Bias string

const (
	BiasUnknown Bias = "UNKNOWN"
	BiasBullish Bias = "BULLISH"
	BiasBearish Bias = "BEARISH"
	BiasNeutral Bias = "NEUTRAL"
)

// Suggestion is the final trading call.
type Suggestion string

const (
	SuggestionBuy   Suggestion = "BUY"
	SuggestionWait  Suggestion = "WAIT"
	SuggestionSell  Suggestion = "SELL"
	SuggestionWatch Suggestion = "WATCH"
)
