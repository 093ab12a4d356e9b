package view

// ZoomLevel is one of the three presets the view cycles through
type ZoomLevel int

const (
	// FitImage fits the whole scene into the viewport
	FitImage ZoomLevel = iota
	// Zoom1 is a fixed magnification around the selection or cursor
	Zoom1
	// FitSelection fits the padded selection into the viewport
	FitSelection
)

func (z ZoomLevel) String() string {
	switch z {
	case FitImage:
		return "FitImage"
	case Zoom1:
		return "Zoom1"
	case FitSelection:
		return "FitSelection"
	default:
		return "ZoomLevel(?)"
	}
}
