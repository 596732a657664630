package calculator

import "StockSentinel/internal/model"

// Snapshot computes the indicator state at the latest bar.
// The caller guarantees a non-empty series.
func Snapshot(s Series) model.IndicatorSnapshot {
	i := s.Last()
	snap := model.IndicatorSnapshot{
		Close:       s.Close[i],
		Open:        s.Open[i],
		High:        s.High[i],
		Low:         s.Low[i],
		Volume:      s.Volume[i],
		MA20:        s.MA(20, i),
		MA50:        s.MA(50, i),
		MA200:       s.MA(200, i),
		ATR14:       ATR(s, 14, i),
		RMV:         RMV(s, i),
		CPP:         CPP(s, i),
		VolRatio:    VolRatio(s, 20, i),
		SpreadRatio: SpreadRatio(s, 20, i),
		AccRatio:    AccRatio(s, 10, i),
		Momentum:    Momentum(s, 10, i),
	}
	snap.DistMA20 = DistancePct(snap.Close, snap.MA20)
	snap.DistMA50 = DistancePct(snap.Close, snap.MA50)
	return snap
}
