package panelview

// Default band fractions of the viewport height.
const (
	DefaultUpper      = 0.6
	DefaultLower      = 0.4
	DefaultHysteresis = 0.05
)

// Band is the strip of the viewport in which a panel counts as focused. A
// panel is in the band when its top is above Upper*height and its bottom is
// below Lower*height.
//
// Hysteresis widens the band for the panel that is already active: it stays
// active until it leaves [Lower-Hysteresis, Upper+Hysteresis], which stops two
// panels straddling the thresholds from trading places on every frame. Zero
// disables it and gives the plain lowest-index rule.
type Band struct {
	Upper      float64
	Lower      float64
	Hysteresis float64
}

// DefaultBand returns the 0.6/0.4 band with the default hysteresis.
func DefaultBand() Band {
	return Band{Upper: DefaultUpper, Lower: DefaultLower, Hysteresis: DefaultHysteresis}
}

// Normalize clamps every field into [0, 1]. A band whose lower fraction is
// not strictly below its upper one matches nothing useful, so its fractions
// are replaced by the defaults. That includes the zero Band.
func (b Band) Normalize() Band {
	b.Upper = clampFraction(b.Upper)
	b.Lower = clampFraction(b.Lower)
	b.Hysteresis = clampFraction(b.Hysteresis)
	if b.Lower >= b.Upper {
		b.Upper, b.Lower = DefaultUpper, DefaultLower
	}
	return b
}

// Matches reports whether g lies in the band for a viewport of height rows.
func (b Band) Matches(g PanelGeometry, height int) bool {
	return b.within(g, height, 0)
}

func (b Band) within(g PanelGeometry, height int, slack float64) bool {
	h := float64(height)
	return float64(g.Top) < h*(b.Upper+slack) && float64(g.Bottom) > h*(b.Lower-slack)
}

// Classify picks the active index from sampled geometry. The lowest matching
// index wins. When nothing matches, prev is kept. With hysteresis, prev is
// also kept for as long as it stays inside the widened band.
func (b Band) Classify(geoms []PanelGeometry, height, prev int) int {
	if b.Hysteresis > 0 && prev >= 0 {
		for _, g := range geoms {
			if g.Index == prev && b.within(g, height, b.Hysteresis) {
				return prev
			}
		}
	}
	best := -1
	for _, g := range geoms {
		if !b.Matches(g, height) {
			continue
		}
		if best < 0 || g.Index < best {
			best = g.Index
		}
	}
	if best < 0 {
		return prev
	}
	return best
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
