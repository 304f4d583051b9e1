// Package icon draws the SideClip toolbar icon: a clipboard with a clip,
// content lines and a drop shadow, next to a narrow side panel.
package icon

import (
	"image/color"

	"github.com/Mavwarf/sideclip-icons/internal/raster"
)

// Palette holds the colors used by Draw.
type Palette struct {
	Background    color.NRGBA
	Clipboard     color.NRGBA
	ClipboardDark color.NRGBA
	Line          color.NRGBA
	PanelBG       color.NRGBA
	PanelContent  color.NRGBA
	Shadow        color.NRGBA
}

// DefaultPalette is the SideClip blue scheme on a light grey background.
var DefaultPalette = Palette{
	Background:    color.NRGBA{248, 249, 250, 255},
	Clipboard:     color.NRGBA{66, 133, 244, 255}, // #4285F4
	ClipboardDark: color.NRGBA{26, 115, 232, 255}, // #1A73E8
	Line:          color.NRGBA{255, 255, 255, 255},
	PanelBG:       color.NRGBA{232, 240, 254, 255}, // #E8F0FE
	PanelContent:  color.NRGBA{66, 133, 244, 255},
	Shadow:        color.NRGBA{200, 200, 200, 255},
}

// Transparent is the background used when Options.Transparent is set.
var Transparent = color.NRGBA{255, 255, 255, 0}

// Options configures Draw. The zero value draws an RGB icon with
// DefaultPalette.
type Options struct {
	// Transparent draws on an RGBA canvas with a fully transparent background.
	Transparent bool
	// Palette overrides DefaultPalette when non-nil.
	Palette *Palette
}

// Channels returns the canvas channel count implied by the options.
func (o Options) Channels() int {
	if o.Transparent {
		return 4
	}
	return 3
}

func (o Options) palette() Palette {
	p := DefaultPalette
	if o.Palette != nil {
		p = *o.Palette
	}
	if o.Transparent {
		p.Background = Transparent
	}
	return p
}

// Draw rasterizes the icon at size×size. Sizes <= 0 produce an empty canvas.
func Draw(size int, opts Options) *raster.Canvas {
	pal := opts.palette()
	c := raster.New(size, opts.Channels(), pal.Background)
	if size <= 0 {
		return c
	}

	g := Layout(size)
	tier := TierFor(size)
	radius := g.Radius
	if tier == TierSmall {
		radius = 0
	}

	if tier == TierFull {
		c.FillRoundedRect(g.Clipboard.X+g.ShadowOffset, g.Clipboard.Y+g.ShadowOffset,
			g.Clipboard.W, g.Clipboard.H, radius, pal.Shadow)
	}
	c.FillRoundedRect(g.Clipboard.X, g.Clipboard.Y, g.Clipboard.W, g.Clipboard.H, radius, pal.Clipboard)
	c.FillRoundedRect(g.Clip.X, g.Clip.Y, g.Clip.W, g.Clip.H, radius, pal.ClipboardDark)

	lines := g.Lines
	if tier == TierSmall && len(lines) > 2 {
		lines = lines[:2]
	}
	for _, l := range lines {
		c.FillRect(l.X, l.Y, l.W, l.H, pal.Line)
	}

	if g.HasPanel {
		c.FillRoundedRect(g.Panel.X, g.Panel.Y, g.Panel.W, g.Panel.H, radius, pal.PanelBG)
		for _, l := range g.PanelLines {
			c.FillRect(l.X, l.Y, l.W, l.H, pal.PanelContent)
		}
	}
	return c
}
