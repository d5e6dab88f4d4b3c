package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw paints a rendered image onto a terminal screen using half-block
// cells, so each cell shows two image rows. The image is scaled with
// nearest-neighbor sampling to fill area, and flipped so the bottom row of
// the image lands at the bottom of the area.
func (m *Image[T]) Draw(scr uv.Screen, area uv.Rectangle) {
	cols := area.Max.X - area.Min.X
	rows := (area.Max.Y - area.Min.Y) * 2
	if cols <= 0 || rows <= 0 || m.Width == 0 || m.Height == 0 {
		return
	}

	// pick returns the image pixel shown at sub-row sy of column sx.
	pick := func(sx, sy int) color.Color {
		x := sx * m.Width / cols
		y := m.Height - 1 - sy*m.Height/rows
		return m.Pix[y*m.Width+x].RGBA()
	}

	// Each terminal row represents 2 image rows.
	// We use ▀ (upper half block) with fg=top color and bg=bottom color.
	for row := range rows / 2 {
		for col := range cols {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: pick(col, row*2),
					Bg: pick(col, row*2+1),
				},
			}
			scr.SetCell(area.Min.X+col, area.Min.Y+row, cell)
		}
	}
}
