package panelview

// Media is an optional image attached to a panel.
type Media struct {
	URL string
	Alt string
}

// Panel is one content section. Body holds sanitized plain-text paragraphs;
// panels never carry markup.
type Panel struct {
	ID    string
	Title string
	Body  []string
	Media *Media
	Order int
}

// HasMedia reports whether the panel has an image to show.
func (p Panel) HasMedia() bool {
	return p.Media != nil && p.Media.URL != ""
}

// PanelGeometry is the vertical extent of a mounted panel relative to the
// top of the viewport, sampled for a single frame.
type PanelGeometry struct {
	Index  int
	Top    int
	Bottom int
}
