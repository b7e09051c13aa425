package overhead

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ooftn/ecs"
	"github.com/plus3/ooftn/ecs/debugui"
	debugui_ebiten "github.com/plus3/ooftn/ecs/debugui/ebiten"

	"github.com/plus3/fpsproto/game"
)

const frameHistorySize = 120

// registerDebugComponents adds the imgui component types to the world registry.
func registerDebugComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[debugui_ebiten.ImguiBackend](registry)
	ecs.RegisterComponent[debugui.ImguiItem](registry)
	ecs.RegisterComponent[debugui.ImguiInputState](registry)
}

type frameChart struct {
	samples []float32
	offset  int
}

func (c *frameChart) add(ms float32) {
	c.samples[c.offset] = ms
	c.offset = (c.offset + 1) % len(c.samples)
}

// ordered returns the samples oldest first.
func (c *frameChart) ordered() []float32 {
	out := make([]float32, len(c.samples))
	copy(out, c.samples[c.offset:])
	copy(out[len(c.samples)-c.offset:], c.samples[:c.offset])
	return out
}

// spawnDebugPanels adds the frame and system panels. They only draw while collider debugging is on.
func spawnDebugPanels(w *game.World) {
	chart := &frameChart{samples: make([]float32, frameHistorySize)}

	w.Storage.Spawn(debugui.ImguiItem{
		Render: func() {
			if !w.Debug().DebugColliders {
				return
			}
			snap := w.Snapshot()
			chart.add(float32(snap.FrameTime.Microseconds()) / 1000.0)

			imgui.SetNextWindowPosV(imgui.NewVec2(10, 40), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(300, 240), imgui.CondOnce)
			if imgui.BeginV("Frame", nil, imgui.WindowFlagsNone) {
				imgui.Text(fmt.Sprintf("Frame: %d", snap.Frame))
				imgui.Text(fmt.Sprintf("FPS: %.2f (avg %.1f)", snap.FPS, snap.AverageFPS))
				imgui.Text(fmt.Sprintf("Frame Time: %.2f ms", float64(snap.FrameTime.Microseconds())/1000.0))
				imgui.Separator()
				imgui.Text(fmt.Sprintf("Projectiles: %d live, %d peak", snap.Projectiles.Live, snap.Projectiles.Peak))
				imgui.Text(fmt.Sprintf("Spawned: %d", snap.Projectiles.Spawned))
				imgui.Text(fmt.Sprintf("Expired: %d | Out of bounds: %d | Hit: %d",
					snap.Projectiles.Expired, snap.Projectiles.OutOfArea, snap.Projectiles.Hit))
				imgui.Separator()
				imgui.Text("Frame Time Graph (ms)")
				samples := chart.ordered()
				imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))
			}
			imgui.End()
		},
	})

	w.Storage.Spawn(debugui.ImguiItem{
		Render: func() {
			if !w.Debug().DebugColliders {
				return
			}
			snap := w.Snapshot()

			imgui.SetNextWindowPosV(imgui.NewVec2(320, 40), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(400, 360), imgui.CondOnce)
			if imgui.BeginV("System Performance", nil, imgui.WindowFlagsNone) {
				imgui.Text(fmt.Sprintf("System Count: %d", len(snap.Systems)))
				imgui.Separator()

				const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
				if imgui.BeginTableV("Systems", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
					imgui.TableSetupColumn("Name")
					imgui.TableSetupColumn("Runs")
					imgui.TableSetupColumn("Avg (ms)")
					imgui.TableSetupColumn("Max (ms)")
					imgui.TableHeadersRow()

					for _, sys := range snap.Systems {
						imgui.TableNextRow()
						imgui.TableNextColumn()
						imgui.Text(sys.Name)
						imgui.TableNextColumn()
						imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
						imgui.TableNextColumn()
						imgui.Text(fmt.Sprintf("%.3f", float64(sys.AvgDuration.Microseconds())/1000.0))
						imgui.TableNextColumn()
						imgui.Text(fmt.Sprintf("%.3f", float64(sys.MaxDuration.Microseconds())/1000.0))
					}
					imgui.EndTable()
				}
			}
			imgui.End()
		},
	})
}
