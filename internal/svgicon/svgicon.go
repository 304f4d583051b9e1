// Package svgicon holds the static 128×128 SVG version of the SideClip icon
// and rasterizes it for previews.
package svgicon

import (
	"fmt"
	"image"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// FileNames are the names the SVG document is written under.
var FileNames = []string{"icon.svg", "icon16.svg"}

// Document is the SVG source. It is written verbatim and is not scaled per
// size; consumers scale it themselves.
const Document = `<?xml version="1.0" encoding="UTF-8"?>
<svg width="128" height="128" viewBox="0 0 128 128" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <linearGradient id="clipboardGradient" x1="0%" y1="0%" x2="100%" y2="100%">
      <stop offset="0%" style="stop-color:#4285F4;stop-opacity:1" />
      <stop offset="100%" style="stop-color:#1A73E8;stop-opacity:1" />
    </linearGradient>
    <filter id="shadow" x="-20%" y="-20%" width="140%" height="140%">
      <feDropShadow dx="2" dy="2" stdDeviation="3" flood-color="#000000" flood-opacity="0.3"/>
    </filter>
  </defs>

  <!-- Clipboard background -->
  <rect x="20" y="16" width="60" height="80" rx="6" ry="6"
        fill="url(#clipboardGradient)"
        stroke="#1A73E8"
        stroke-width="2"
        filter="url(#shadow)"/>

  <!-- Clipboard clip -->
  <rect x="35" y="8" width="30" height="12" rx="4" ry="4"
        fill="#1A73E8"/>

  <!-- Content lines on clipboard -->
  <rect x="28" y="30" width="44" height="3" rx="1" fill="#FFFFFF" opacity="0.9"/>
  <rect x="28" y="38" width="40" height="3" rx="1" fill="#FFFFFF" opacity="0.9"/>
  <rect x="28" y="46" width="36" height="3" rx="1" fill="#FFFFFF" opacity="0.9"/>
  <rect x="28" y="54" width="42" height="3" rx="1" fill="#FFFFFF" opacity="0.9"/>

  <!-- Side panel -->
  <rect x="88" y="24" width="20" height="56" rx="3" ry="3"
        fill="#E8F0FE"
        stroke="#4285F4"
        stroke-width="1"/>

  <!-- Side panel content lines -->
  <rect x="92" y="30" width="12" height="2" rx="1" fill="#4285F4" opacity="0.7"/>
  <rect x="92" y="36" width="10" height="2" rx="1" fill="#4285F4" opacity="0.7"/>
  <rect x="92" y="42" width="14" height="2" rx="1" fill="#4285F4" opacity="0.7"/>
  <rect x="92" y="48" width="8" height="2" rx="1" fill="#4285F4" opacity="0.7"/>
  <rect x="92" y="54" width="11" height="2" rx="1" fill="#4285F4" opacity="0.7"/>

  <!-- Link between clipboard and panel -->
  <line x1="80" y1="52" x2="88" y2="52" stroke="#4285F4" stroke-width="2" opacity="0.5"/>

  <circle cx="95" cy="70" r="3" fill="#4285F4" opacity="0.8"/>
</svg>
`

// Render rasterizes Document at size×size. Elements the rasterizer does not
// understand (the drop-shadow filter) are skipped.
func Render(size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("svgicon: invalid size %d", size)
	}
	icon, err := oksvg.ReadIconStream(strings.NewReader(Document), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("svgicon: parse: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)
	return img, nil
}
