// Package preview composes generated icons into a single contact sheet so the
// whole set can be eyeballed at once.
package preview

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// FileName is the sheet's name inside the output directory.
const FileName = "preview.png"

const (
	// Cell is the edge length each icon is scaled to.
	Cell = 128
	// Pad is the gap around and between cells.
	Pad = 8
)

// Background fills the sheet behind the cells.
var Background = color.NRGBA{255, 255, 255, 255}

// Sheet lays images out left to right, each scaled to Cell×Cell with
// nearest-neighbor sampling so individual pixels stay visible. Transparent
// pixels show the sheet background.
func Sheet(images []image.Image) (*image.NRGBA, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("preview: no images")
	}
	w := Pad + len(images)*(Cell+Pad)
	h := Cell + 2*Pad
	sheet := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(sheet, sheet.Bounds(), image.NewUniform(Background), image.Point{}, xdraw.Src)

	for i, img := range images {
		if img == nil {
			return nil, fmt.Errorf("preview: image %d is nil", i)
		}
		x := Pad + i*(Cell+Pad)
		dst := image.Rect(x, Pad, x+Cell, Pad+Cell)
		xdraw.NearestNeighbor.Scale(sheet, dst, img, img.Bounds(), xdraw.Over, nil)
	}
	return sheet, nil
}
