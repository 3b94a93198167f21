package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/sandfall/sand"
)

var (
	background = color.RGBA{18, 18, 26, 255}
	panelColor = color.RGBA{30, 30, 42, 255}
	flashColor = sand.RGB{R: 255, G: 255, B: 255}
)

func (g *game) Draw(screen *ebiten.Image) {
	snap := g.engine.Snapshot()
	fieldW, fieldH := float32(snap.Width*g.scale), float32(snap.Height*g.scale)
	ox := float32(g.origin)

	g.drawGrains(snap)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	op.GeoM.Translate(float64(g.origin), 0)
	screen.DrawImage(g.field, op)

	block := float32(snap.Scale * g.scale)
	if !snap.GameOver {
		ghost := color.RGBA{snap.Active.Color.R / 3, snap.Active.Color.G / 3, snap.Active.Color.B / 3, 120}
		for _, b := range snap.Ghost {
			vector.StrokeRect(screen, ox+float32(b.X)*block, float32(b.Y)*block, block, block, 1, ghost, false)
		}
		for _, b := range snap.Active.Blocks {
			if b.Y < 0 {
				continue
			}
			vector.DrawFilledRect(screen, ox+float32(b.X)*block, float32(b.Y)*block, block-1, block-1, snap.Active.Color, false)
		}
	}

	for _, p := range snap.Particles {
		c := color.NRGBA{p.Color.R, p.Color.G, p.Color.B, uint8(255 * p.Alpha)}
		size := float32(p.Size) * float32(g.scale)
		vector.DrawFilledRect(screen, ox+float32(p.X)*float32(g.scale)-size/2, float32(p.Y)*float32(g.scale)-size/2, size, size, c, false)
	}

	g.drawPanel(screen, snap, ox+fieldW, fieldH)

	if snap.GameOver {
		ebitenutil.DebugPrintAt(screen, "GAME OVER\nR to restart", int(ox+fieldW/2)-40, int(fieldH/2))
	}

	if g.imgui != nil {
		g.imgui.Overlay(screen)
	}
}

// drawGrains renders the grid at one pixel per grain into g.field.
func (g *game) drawGrains(snap sand.Snapshot) {
	for i := 0; i < len(g.pixels); i += 4 {
		g.pixels[i], g.pixels[i+1], g.pixels[i+2], g.pixels[i+3] = background.R, background.G, background.B, background.A
	}
	set := func(x, y int, c sand.RGB) {
		i := (y*snap.Width + x) * 4
		g.pixels[i], g.pixels[i+1], g.pixels[i+2], g.pixels[i+3] = c.R, c.G, c.B, 255
	}

	for _, grain := range snap.Grains {
		set(grain.X, grain.Y, grain.Color)
	}
	// queued cells blink while the clear is telegraphed
	if snap.Flashing && (g.frame/4)%2 == 0 {
		for _, p := range snap.ClearQueue {
			set(p.X, p.Y, flashColor)
		}
	}

	g.field.WritePixels(g.pixels)
}

func (g *game) drawPanel(screen *ebiten.Image, snap sand.Snapshot, x, height float32) {
	vector.DrawFilledRect(screen, x, 0, panelWidth, height, panelColor, false)
	left := int(x) + 10

	ebitenutil.DebugPrintAt(screen, "NEXT", left, 10)
	const mini = 12
	for _, b := range matrixCells(snap.Next.Cells) {
		vector.DrawFilledRect(screen, x+10+float32(b.X*mini), 30+float32(b.Y*mini), mini-1, mini-1, snap.Next.Color, false)
	}

	lines := []string{
		fmt.Sprintf("Clears: %d", snap.Clears),
		fmt.Sprintf("Grains: %d", len(snap.Grains)),
		fmt.Sprintf("Drop:   %d", snap.DropInterval),
		fmt.Sprintf("Pieces: %d", snap.Locks),
		snap.Phase.String(),
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, left, 90+i*16)
	}
}

// matrixCells returns the occupied cells of a shape matrix relative to its top-left.
func matrixCells(cells [][]bool) []sand.Point {
	var out []sand.Point
	for y, line := range cells {
		for x, filled := range line {
			if filled {
				out = append(out, sand.Point{X: x, Y: y})
			}
		}
	}
	return out
}
