package config

import (
	"time"

	"github.com/framegrace/texelstore/internal/effects"
	"github.com/framegrace/texelstore/texelui/panelview"
)

// Viewer holds the typed viewer section of the system config.
type Viewer struct {
	Band           panelview.Band
	LockTimeout    time.Duration
	FrameInterval  time.Duration
	ScrollDuration time.Duration
	Easing         effects.EasingFunc
}

// Controller returns the controller configuration these settings describe.
func (v Viewer) Controller() panelview.Config {
	return panelview.Config{Band: v.Band, LockTimeout: v.LockTimeout}
}

// ViewerSettings reads the viewer section of cfg. Missing or invalid values
// fall back to the package defaults of panelview.
func ViewerSettings(cfg Config) Viewer {
	def := panelview.DefaultBand()
	band := panelview.Band{
		Upper:      cfg.GetFloat("viewer", "upper_fraction", def.Upper),
		Lower:      cfg.GetFloat("viewer", "lower_fraction", def.Lower),
		Hysteresis: cfg.GetFloat("viewer", "hysteresis", def.Hysteresis),
	}
	v := Viewer{
		Band:           band.Normalize(),
		LockTimeout:    cfg.GetMillis("viewer", "lock_timeout_ms", panelview.DefaultLockTimeout),
		FrameInterval:  cfg.GetMillis("viewer", "frame_interval_ms", panelview.DefaultFrameInterval),
		ScrollDuration: time.Duration(max(cfg.GetInt("viewer", "scroll_duration_ms", 300), 0)) * time.Millisecond,
		Easing:         effects.EasingByName(cfg.GetString("viewer", "scroll_easing", "")),
	}
	return v
}

// Storefront holds the typed storefront app config.
type Storefront struct {
	ItemsPerView  int
	ToastDuration time.Duration
	// Theme maps "<style>.<attr>" keys such as "header.bg" to colour names.
	Theme map[string]string
}

// StorefrontSettings reads the storefront app config.
func StorefrontSettings(cfg Config) Storefront {
	return Storefront{
		ItemsPerView:  max(cfg.GetInt("carousel", "items_per_view", 2), 1),
		ToastDuration: cfg.GetMillis("toast", "duration_ms", 2500*time.Millisecond),
		Theme:         cfg.GetStrings("theme"),
	}
}
