package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/sandfall/ecs"
	"github.com/plus3/sandfall/ecs/debugui"
	debugui_ebiten "github.com/plus3/sandfall/ecs/debugui/ebiten"
	"github.com/plus3/sandfall/input"
	"github.com/plus3/sandfall/sand"
)

const (
	panelWidth      = 140
	debugPanelWidth = 380
)

type game struct {
	engine *sand.Engine
	repeat *input.Repeater

	scale  int
	origin int
	field  *ebiten.Image
	pixels []byte
	frame  int

	imgui        *debugui_ebiten.ImguiBackend
	imguiInput   *ecs.Singleton[debugui.ImguiInputState]
	pendingReset bool
}

func newGame(engine *sand.Engine, scale int) *game {
	cfg := engine.Config()
	w, h := cfg.GrainWidth(), cfg.GrainHeight()
	return &game{
		engine: engine,
		repeat: input.NewRepeater(),
		scale:  max(scale, 1),
		field:  ebiten.NewImage(w, h),
		pixels: make([]byte, w*h*4),
	}
}

func (g *game) screenSize() (int, int) {
	cfg := g.engine.Config()
	return cfg.GrainWidth()*g.scale + panelWidth, cfg.GrainHeight() * g.scale
}

func (g *game) Update() error {
	if g.imgui != nil {
		return g.imgui.Frame(g.tick)
	}
	return g.tick()
}

func (g *game) tick() error {
	g.frame++
	in := g.repeat.Update(g.keys())
	if g.pendingReset {
		in |= sand.Reset
		g.pendingReset = false
	}
	if !g.engine.Step(in) {
		return ebiten.Termination
	}
	return nil
}

func (g *game) keys() input.State {
	if g.imguiInput != nil {
		if state := g.imguiInput.Get(); state != nil && state.WantCaptureKeyboard {
			return input.State{}
		}
	}

	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if inpututil.IsKeyJustPressed(k) {
				return true
			}
		}
		return false
	}
	held := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}

	return input.State{
		Left:     held(ebiten.KeyArrowLeft, ebiten.KeyA),
		Right:    held(ebiten.KeyArrowRight, ebiten.KeyD),
		Down:     held(ebiten.KeyArrowDown, ebiten.KeyS),
		Rotate:   pressed(ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeyZ),
		HardDrop: pressed(ebiten.KeySpace),
		Reset:    pressed(ebiten.KeyR),
		Quit:     pressed(ebiten.KeyEscape, ebiten.KeyQ),
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.screenSize()
}
