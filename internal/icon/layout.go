package icon

// Tier is the level of detail drawn at a given size. Sub-pixel features are
// illegible on small icons, so they are dropped rather than smeared.
type Tier int

const (
	TierSmall  Tier = iota // < 24 px: no shadow, square corners, two lines
	TierMedium             // 24-47 px: no shadow
	TierFull               // >= 48 px: everything
)

func (t Tier) String() string {
	switch t {
	case TierFull:
		return "full"
	case TierMedium:
		return "medium"
	default:
		return "small"
	}
}

// TierFor returns the detail tier for an icon size.
func TierFor(size int) Tier {
	switch {
	case size >= 48:
		return TierFull
	case size >= 24:
		return TierMedium
	default:
		return TierSmall
	}
}

// Rect is an integer rectangle in canvas pixels.
type Rect struct {
	X, Y, W, H int
}

// Geometry is the scaled layout of every element of the icon. It is
// designed on a 128 px grid and scaled by size/128, with per-element
// minimums so small sizes keep a recognizable shape.
type Geometry struct {
	Size         int
	Radius       int
	ShadowOffset int
	Clipboard    Rect
	Clip         Rect
	Lines        []Rect
	HasPanel     bool
	Panel        Rect
	PanelLines   []Rect
}

// scaled returns max(floor, int(units*scale)).
func scaled(units, scale float64, floor int) int {
	return max(floor, int(units*scale))
}

// Layout computes the geometry for a size×size icon.
func Layout(size int) Geometry {
	s := float64(size) / 128.0
	g := Geometry{
		Size:         size,
		Radius:       scaled(2, s, 1),
		ShadowOffset: scaled(2, s, 1),
	}

	g.Clipboard = Rect{
		X: scaled(16, s, 2),
		Y: scaled(12, s, 2),
		W: scaled(48, s, 8),
		H: scaled(64, s, 10),
	}
	cb := g.Clipboard

	clipW := scaled(20, s, 4)
	g.Clip = Rect{
		X: cb.X + (cb.W-clipW)/2,
		Y: scaled(6, s, 1),
		W: clipW,
		H: scaled(8, s, 2),
	}

	contentMargin := scaled(6, s, 2)
	contentW := cb.W - 2*contentMargin
	lineH := scaled(2, s, 1)
	spacing := scaled(6, s, 2)
	startY := cb.Y + scaled(12, s, 3)
	for i := 0; i < 4; i++ {
		y := startY + i*spacing
		if y+lineH >= cb.Y+cb.H-contentMargin {
			continue
		}
		w := contentW
		if i >= 2 {
			w = int(float64(contentW) * 0.8)
		}
		g.Lines = append(g.Lines, Rect{X: cb.X + contentMargin, Y: y, W: w, H: lineH})
	}

	g.Panel = Rect{
		X: cb.X + cb.W + scaled(6, s, 2),
		Y: cb.Y + scaled(8, s, 2),
		W: scaled(16, s, 4),
		H: scaled(48, s, 8),
	}
	p := g.Panel
	g.HasPanel = p.X+p.W < size-2
	if !g.HasPanel {
		return g
	}

	panelMargin := scaled(2, s, 1)
	panelContentW := p.W - 2*panelMargin
	panelLineH := scaled(1, s, 1)
	panelSpacing := scaled(4, s, 1)
	panelStart := p.Y + scaled(4, s, 2)
	for i := 0; i < 3; i++ {
		y := panelStart + i*panelSpacing
		if y+panelLineH >= p.Y+p.H-panelMargin {
			continue
		}
		w := panelContentW
		if i == 1 {
			w = int(float64(panelContentW) * 0.8)
		}
		g.PanelLines = append(g.PanelLines, Rect{X: p.X + panelMargin, Y: y, W: w, H: panelLineH})
	}
	return g
}
