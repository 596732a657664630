package model

// IndicatorSnapshot holds the indicator state at the latest bar.
type IndicatorSnapshot struct {
	Close       float64
	Open        float64
	High        float64
	Low         float64
	Volume      float64
	MA20        float64
	MA50        float64
	MA200       float64
	ATR14       float64
	RMV         float64
	CPP         float64
	VolRatio    float64
	SpreadRatio float64
	AccRatio    float64
	Momentum    float64 // 10-bar % change
	DistMA20    float64 // % distance of close from MA20
	DistMA50    float64 // % distance of close from MA50
}

// AnalysisResult is the output of one engine invocation.
type AnalysisResult struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`

	WyckoffPhase  Phase     `json:"wyckoff_phase"`
	WyckoffDetail string    `json:"wyckoff_detail"`
	VSASignal     VSASignal `json:"vsa_signal"`
	VSADetail     string    `json:"vsa_detail"`
	VCPStatus     VCPStatus `json:"vcp_status"`
	VCPDetail     string    `json:"vcp_detail"`
	CPPScore      float64   `json:"cpp_score"`
	CPPBias       Bias      `json:"cpp_bias"`
	CandlePower   int       `json:"candle_power"`
	EVRScore      float64   `json:"evr_score"`
	IsHaka        bool      `json:"is_haka"`

	Suggestion      Suggestion `json:"suggestion"`
	Confidence      int        `json:"confidence"`
	BullScore       int        `json:"bull_score"`
	BearScore       int        `json:"bear_score"`
	ConfluenceBonus int        `json:"confluence_bonus"`
	Reasons         []string   `json:"reasons"`
	StopLoss        *float64   `json:"stop_loss,omitempty"`
	Target          *float64   `json:"target,omitempty"`

	MA20     float64 `json:"ma20"`
	MA50     float64 `json:"ma50"`
	MA200    float64 `json:"ma200"`
	ATR14    float64 `json:"atr14"`
	VolRatio float64 `json:"vol_ratio"`
	AccRatio float64 `json:"acc_ratio"`
	RMV      float64 `json:"rmv"`
	Momentum float64 `json:"momentum"`
	DistMA20 float64 `json:"dist_ma20"`
	DistMA50 float64 `json:"dist_ma50"`
}

// HasRiskLevels reports whether stop-loss and target are set.
func (r *AnalysisResult) HasRiskLevels() bool {
	return r.StopLoss != nil && r.Target != nil
}
