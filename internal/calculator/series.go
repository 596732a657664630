package calculator

import (
	"math"
	"time"

	"StockSentinel/internal/model"
)

// MinBars is the minimum number of valid bars the engine needs.
const MinBars = 50

// Series holds valid bars as parallel arrays in chronological order.
type Series struct {
	Time   []time.Time
	Open   []float64
	High   []float64
	Low    []float64
	Close  []float64
	Volume []float64
}

// Preprocess drops bars with a non-finite price or non-positive volume and
// splits the rest into parallel arrays. Input order is preserved.
func Preprocess(bars []model.Candle) Series {
	s := Series{
		Time:   make([]time.Time, 0, len(bars)),
		Open:   make([]float64, 0, len(bars)),
		High:   make([]float64, 0, len(bars)),
		Low:    make([]float64, 0, len(bars)),
		Close:  make([]float64, 0, len(bars)),
		Volume: make([]float64, 0, len(bars)),
	}
	for _, b := range bars {
		if !finite(b.Open, b.High, b.Low, b.Close) || !(b.Volume > 0) {
			continue
		}
		s.Time = append(s.Time, b.Time)
		s.Open = append(s.Open, b.Open)
		s.High = append(s.High, b.High)
		s.Low = append(s.Low, b.Low)
		s.Close = append(s.Close, b.Close)
		s.Volume = append(s.Volume, b.Volume)
	}
	return s
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Len returns the number of valid bars.
func (s Series) Len() int { return len(s.Close) }

// Last returns the index of the latest bar, or -1 when empty.
func (s Series) Last() int { return len(s.Close) - 1 }

// Spread is the high-low range of bar i.
func (s Series) Spread(i int) float64 { return s.High[i] - s.Low[i] }

// Body is the absolute open-close distance of bar i.
func (s Series) Body(i int) float64 { return math.Abs(s.Close[i] - s.Open[i]) }

// IsGreen reports whether bar i closed above its open.
func (s Series) IsGreen(i int) bool { return s.Close[i] > s.Open[i] }

// IsRed reports whether bar i closed below its open.
func (s Series) IsRed(i int) bool { return s.Close[i] < s.Open[i] }

// ClosePosition is where the close sits inside the bar's range (0 = low, 1 = high).
func (s Series) ClosePosition(i int) float64 {
	return (s.Close[i] - s.Low[i]) / priceRange(s.Spread(i))
}

// LowerWick is the distance from the lower body edge to the low.
func (s Series) LowerWick(i int) float64 {
	return math.Min(s.Open[i], s.Close[i]) - s.Low[i]
}

// UpperWick is the distance from the high to the upper body edge.
func (s Series) UpperWick(i int) float64 {
	return s.High[i] - math.Max(s.Open[i], s.Close[i])
}
