package strategy

// side identifies which accumulator a piece of evidence feeds.
type side int

const (
	sideNone side = iota
	sideBull
	sideBear
)

// kind decides whether evidence is listed as a reason or a warning.
type kind int

const (
	kindReason kind = iota
	kindWarning
)

// Evidence is one immutable outcome of a scoring rule.
type Evidence struct {
	Rule   string
	Side   side
	Points int
	Kind   kind
	Text   string
}

func bull(rule string, points int, text string) Evidence {
	return Evidence{Rule: rule, Side: sideBull, Points: points, Kind: kindReason, Text: text}
}

func bear(rule string, points int, text string) Evidence {
	return Evidence{Rule: rule, Side: sideBear, Points: points, Kind: kindWarning, Text: text}
}

func warning(rule, text string) Evidence {
	return Evidence{Rule: rule, Side: sideNone, Kind: kindWarning, Text: text}
}

func note(rule, text string) Evidence {
	return Evidence{Rule: rule, Side: sideNone, Kind: kindReason, Text: text}
}

// scorecard is the fold of all evidence produced by the rule list.
type scorecard struct {
	Bull     int
	Bear     int
	Reasons  []string
	Warnings []string
	Evidence []Evidence
}

// fold builds a scorecard from evidence in rule order.
func fold(evidence []Evidence) scorecard {
	card := scorecard{Evidence: evidence}
	for _, e := range evidence {
		switch e.Side {
		case sideBull:
			card.Bull += e.Points
		case sideBear:
			card.Bear += e.Points
		}
		switch e.Kind {
		case kindReason:
			card.Reasons = append(card.Reasons, e.Text)
		case kindWarning:
			card.Warnings = append(card.Warnings, e.Text)
		}
	}
	return card
}

// pointsFor sums the points a named rule contributed to one side.
func (c scorecard) pointsFor(rule string, sd side) int {
	total := 0
	for _, e := range c.Evidence {
		if e.Rule == rule && e.Side == sd {
			total += e.Points
		}
	}
	return total
}
