package strategy

// Climactic bar events shared by the phase and VSA classifiers.
// Close position is measured from the low: "upper 60%" means closePos > 0.4.

func isSellingClimax(f *barFacts) bool {
	return f.spread > 2*f.snap.ATR14 &&
		f.snap.VolRatio > 2.5 &&
		f.red &&
		f.closePos > 0.4
}

func isBuyingClimax(f *barFacts) bool {
	return f.spread > 2*f.snap.ATR14 &&
		f.snap.VolRatio > 2.5 &&
		f.green &&
		f.closePos < 0.4
}

func isSpring(f *barFacts) bool {
	return f.snap.Low < f.snap.MA50 &&
		f.green &&
		f.lowerWick > 1.5*f.body &&
		f.snap.VolRatio < 0.8
}

func isUpthrust(f *barFacts) bool {
	return f.spread > 1.5*f.snap.ATR14 &&
		f.snap.VolRatio > 1.5 &&
		f.closePos < 0.3 &&
		f.red
}

// isStoppingVolume excludes bars that already qualify as a selling climax,
// whose thresholds are a strict superset of these.
func isStoppingVolume(f *barFacts) bool {
	return f.spread > 1.5*f.snap.ATR14 &&
		f.snap.VolRatio > 2.0 &&
		f.closePos > 0.4 &&
		f.red &&
		!isSellingClimax(f)
}
