package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sandfall/ecs"
	"github.com/plus3/sandfall/ecs/debugui"
)

// spawnSessionInspector adds a window showing the live session next to the ECS stats.
func spawnSessionInspector(storage *ecs.Storage, g *game) {
	storage.Spawn(debugui.ImguiItem{
		Render: func() {
			snap := g.engine.Snapshot()
			session := g.engine.Session()

			imgui.SetNextWindowPosV(imgui.NewVec2(10, 340), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(360, 300), imgui.CondOnce)

			if imgui.BeginV("Session", nil, 0) {
				imgui.Text(fmt.Sprintf("ID: %s", snap.SessionID))
				imgui.Text(fmt.Sprintf("Tick: %d", snap.Tick))
				if snap.GameOver {
					imgui.TextColored(imgui.NewVec4(1.0, 0.3, 0.3, 1.0), "GAME OVER")
				} else {
					imgui.Text(fmt.Sprintf("Phase: %s", snap.Phase))
				}
				imgui.Separator()

				imgui.Text(fmt.Sprintf("Active: %s at (%d, %d)", snap.Active.Shape, session.Active.X, session.Active.Y))
				imgui.Text(fmt.Sprintf("Next: %s", snap.Next.Shape))
				imgui.Text(fmt.Sprintf("Ghost row: %d", snap.GhostRow))
				imgui.Text(fmt.Sprintf("Drop timer: %d / %d", session.DropTimer, snap.DropInterval))
				imgui.Text(fmt.Sprintf("Bag remaining: %d", session.Bag.Remaining()))
				imgui.Separator()

				imgui.Text(fmt.Sprintf("Grains: %d", len(snap.Grains)))
				imgui.Text(fmt.Sprintf("Pieces locked: %d", snap.Locks))
				imgui.Text(fmt.Sprintf("Clears: %d (%d grains)", snap.Clears, snap.GrainsCleared))
				imgui.Text(fmt.Sprintf("Particles: %d", len(snap.Particles)))

				if snap.Clearing {
					imgui.ProgressBarV(float32(snap.FlashProgress), imgui.NewVec2(-1, 0), fmt.Sprintf("clearing %d cells", len(snap.ClearQueue)))
				}

				imgui.Separator()
				if imgui.Button("Reset") {
					g.pendingReset = true
				}

				imgui.End()
			}
		},
	})
}
