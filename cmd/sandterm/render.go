package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/sandfall/sand"
)

var (
	background = sand.RGB{R: 18, G: 18, B: 26}
	flashColor = sand.RGB{R: 255, G: 255, B: 255}
)

// compose renders a snapshot into a grain-resolution color buffer indexed [y][x].
func compose(snap sand.Snapshot) [][]sand.RGB {
	buf := make([][]sand.RGB, snap.Height)
	for y := range buf {
		buf[y] = make([]sand.RGB, snap.Width)
		for x := range buf[y] {
			buf[y][x] = background
		}
	}
	set := func(x, y int, c sand.RGB) {
		if x >= 0 && x < snap.Width && y >= 0 && y < snap.Height {
			buf[y][x] = c
		}
	}
	fillBlock := func(b sand.Point, c sand.RGB) {
		for dy := range snap.Scale {
			for dx := range snap.Scale {
				set(b.X*snap.Scale+dx, b.Y*snap.Scale+dy, c)
			}
		}
	}

	for _, g := range snap.Grains {
		set(g.X, g.Y, g.Color)
	}
	if snap.Flashing && int(snap.FlashProgress*8)%2 == 0 {
		for _, p := range snap.ClearQueue {
			set(p.X, p.Y, flashColor)
		}
	}
	if !snap.GameOver {
		c := snap.Active.Color
		ghost := sand.RGB{R: c.R / 4, G: c.G / 4, B: c.B / 4}
		for _, b := range snap.Ghost {
			fillBlock(b, ghost)
		}
		for _, b := range snap.Active.Blocks {
			fillBlock(b, c)
		}
	}
	for _, p := range snap.Particles {
		set(int(p.X), int(p.Y), p.Color)
	}
	return buf
}

func tcellColor(c sand.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func draw(screen tcell.Screen, snap sand.Snapshot) {
	screen.Clear()
	buf := compose(snap)

	for y := 0; y < snap.Height; y += 2 {
		for x := 0; x < snap.Width; x++ {
			bottom := background
			if y+1 < snap.Height {
				bottom = buf[y+1][x]
			}
			style := tcell.StyleDefault.Foreground(tcellColor(buf[y][x])).Background(tcellColor(bottom))
			screen.SetContent(x+1, y/2+1, '▀', nil, style)
		}
	}

	border := tcell.StyleDefault.Foreground(tcell.ColorGray)
	rows := (snap.Height + 1) / 2
	for y := 0; y <= rows+1; y++ {
		screen.SetContent(0, y, '│', nil, border)
		screen.SetContent(snap.Width+1, y, '│', nil, border)
	}
	for x := 0; x <= snap.Width+1; x++ {
		screen.SetContent(x, rows+1, '─', nil, border)
	}

	panel := snap.Width + 4
	text(screen, panel, 1, tcell.StyleDefault.Bold(true), "NEXT")
	next := tcell.StyleDefault.Foreground(tcellColor(snap.Next.Color))
	for y, line := range snap.Next.Cells {
		for x, filled := range line {
			if filled {
				text(screen, panel+x*2, 3+y, next, "██")
			}
		}
	}

	plain := tcell.StyleDefault
	text(screen, panel, 7, plain, fmt.Sprintf("Clears  %d", snap.Clears))
	text(screen, panel, 8, plain, fmt.Sprintf("Grains  %d", len(snap.Grains)))
	text(screen, panel, 9, plain, fmt.Sprintf("Drop    %d", snap.DropInterval))
	text(screen, panel, 10, plain, fmt.Sprintf("Pieces  %d", snap.Locks))
	if snap.GameOver {
		text(screen, panel, 12, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true), "GAME OVER")
		text(screen, panel, 13, plain, "r to restart")
	}
	text(screen, panel, rows-1, tcell.StyleDefault.Foreground(tcell.ColorGray), "←→ move  ↑ rotate  space drop  q quit")

	screen.Show()
}

func text(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
