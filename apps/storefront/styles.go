package storefront

import (
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Styles is the palette used by every storefront widget.
type Styles struct {
	Base     tcell.Style
	Header   tcell.Style
	Title    tcell.Style
	Body     tcell.Style
	Dim      tcell.Style
	Accent   tcell.Style
	Card     tcell.Style
	Selected tcell.Style
	Status   tcell.Style
	Toast    tcell.Style
}

// DefaultStyles uses the 16-colour palette so it works on any terminal.
func DefaultStyles() Styles {
	base := tcell.StyleDefault
	return Styles{
		Base:     base,
		Header:   base.Background(tcell.PaletteColor(4)).Foreground(tcell.PaletteColor(15)).Bold(true),
		Title:    base.Bold(true),
		Body:     base,
		Dim:      base.Dim(true),
		Accent:   base.Foreground(tcell.PaletteColor(6)).Bold(true),
		Card:     base.Foreground(tcell.PaletteColor(3)),
		Selected: base.Reverse(true),
		Status:   base.Background(tcell.PaletteColor(8)).Foreground(tcell.PaletteColor(15)),
		Toast:    base.Background(tcell.PaletteColor(2)).Foreground(tcell.PaletteColor(0)).Bold(true),
	}
}

// WithOverrides returns s with colours replaced from a theme map. Keys are
// "<style>.fg" or "<style>.bg" (for example "header.bg") and values are tcell
// colour names or #rrggbb. Unknown keys and colours are logged and skipped.
func (s Styles) WithOverrides(theme map[string]string) Styles {
	slots := map[string]*tcell.Style{
		"base":     &s.Base,
		"header":   &s.Header,
		"title":    &s.Title,
		"body":     &s.Body,
		"dim":      &s.Dim,
		"accent":   &s.Accent,
		"card":     &s.Card,
		"selected": &s.Selected,
		"status":   &s.Status,
		"toast":    &s.Toast,
	}
	for key, name := range theme {
		slot, attr, ok := strings.Cut(key, ".")
		st, known := slots[slot]
		if !ok || !known || (attr != "fg" && attr != "bg") {
			log.Printf("Storefront: ignoring theme key %q", key)
			continue
		}
		c := tcell.GetColor(name)
		if c == tcell.ColorDefault && name != "default" {
			log.Printf("Storefront: unknown colour %q for %s", name, key)
			continue
		}
		if attr == "fg" {
			*st = st.Foreground(c)
		} else {
			*st = st.Background(c)
		}
	}
	return s
}
