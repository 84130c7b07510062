package countdown

// Band is the color of the radial indicator, derived from progress.
type Band string

const (
	BandGreen  Band = "green"
	BandOrange Band = "orange"
	BandRed    Band = "red"
	BandBlue   Band = "blue"
)

// BandFor maps progress (remaining/total) to a color band.
//
//	(0.5, 1.0]  green
//	(0.25, 0.5] orange
//	(0, 0.25]   red
//	0           blue
func BandFor(progress float64) Band {
	switch {
	case progress > 0.5:
		return BandGreen
	case progress > 0.25:
		return BandOrange
	case progress > 0:
		return BandRed
	default:
		return BandBlue
	}
}

// Opacity is the alpha the band is drawn with. Red is drawn at half opacity.
func (b Band) Opacity() float64 {
	if b == BandRed {
		return 0.5
	}
	return 1
}
