// Package overhead is a top-down ebiten view of the same world, useful for watching
// projectiles and colliders from above while playing in first person.
package overhead

import (
	"image/color"
	"math"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/ooftn/ecs"
	"github.com/plus3/ooftn/ecs/debugui"
	debugui_ebiten "github.com/plus3/ooftn/ecs/debugui/ebiten"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"github.com/plus3/fpsproto/config"
	"github.com/plus3/fpsproto/game"
	"github.com/plus3/fpsproto/physics"
)

const (
	// PixelsPerUnit is the map scale.
	PixelsPerUnit = 24
	glyphHeight   = 13
	lineSpacing   = 16
)

var (
	background  = color.RGBA{24, 26, 30, 255}
	shapeColor  = color.RGBA{236, 102, 255, 255}
	playerColor = color.RGBA{102, 198, 255, 255}
	shotColor   = color.RGBA{255, 80, 40, 255}
	wireColor   = color.RGBA{0, 255, 128, 255}
)

type Game struct {
	World        *game.World
	Input        *Input
	Log          *zap.Logger
	ImguiBackend *ecs.Singleton[debugui_ebiten.ImguiBackend]

	face text.Face
}

// NewGame builds the world with the imgui debug panels attached to backend.
func NewGame(cfg *config.Config, log *zap.Logger, sounds game.SoundPlayer, backend *ebitenbackend.EbitenBackend) *Game {
	in := &Input{
		Keys:     cfg.KeyMap(),
		Viewport: mgl32.Vec2{float32(cfg.Window.Width), float32(cfg.Window.Height)},
	}
	world := game.NewWorld(cfg, game.Options{
		Logger:     log,
		Audio:      sounds,
		Input:      in,
		Components: registerDebugComponents,
	})

	in.UI = ecs.NewSingleton[debugui.ImguiInputState](world.Storage)
	world.Scheduler.Register(&debugui.ImguiSystem{})
	spawnDebugPanels(world)

	return &Game{
		World: world,
		Input: in,
		Log:   log,
		ImguiBackend: ecs.NewSingleton[debugui_ebiten.ImguiBackend](world.Storage, debugui_ebiten.ImguiBackend{
			EbitenBackend: backend,
		}),
		face: text.NewGoXFace(basicfont.Face7x13),
	}
}

func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.World.RequestShutdown("window closed")
	}
	if shutdown := g.World.Shutdown(); shutdown.Requested {
		g.Log.Info("leaving main loop", zap.String("reason", shutdown.Reason))
		return ebiten.Termination
	}

	// Panel render functions run when the world flushes its commands at the end of the step.
	g.ImguiBackend.Get().BeginFrame()
	g.World.Step(1.0 / float64(ebiten.TPS()))
	g.ImguiBackend.Get().EndFrame()
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.ImguiBackend.Get().Layout(outsideWidth, outsideHeight)
	g.Input.Viewport = mgl32.Vec2{float32(outsideWidth), float32(outsideHeight)}
	return outsideWidth, outsideHeight
}

// toScreen maps the world XZ plane onto the screen with the origin at its centre.
func toScreen(screen *ebiten.Image, p mgl32.Vec3) (float32, float32) {
	bounds := screen.Bounds()
	return float32(bounds.Dx())/2 + p.X()*PixelsPerUnit, float32(bounds.Dy())/2 + p.Z()*PixelsPerUnit
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	storage := g.World.Storage

	for ground := range ecs.NewView[struct {
		*game.Ground
		*game.Transform
	}](storage).Iter() {
		half := ground.Ground.Size / 2
		x, y := toScreen(screen, ground.Transform.Position.Sub(mgl32.Vec3{half, 0, half}))
		size := ground.Ground.Size * PixelsPerUnit
		vector.DrawFilledRect(screen, x, y, size, size, ground.Ground.Color, false)
	}

	for shape := range ecs.NewView[struct {
		*game.Shape
		*game.Transform
	}](storage).Iter() {
		x, y := toScreen(screen, shape.Transform.Position)
		vector.DrawFilledCircle(screen, x, y, PixelsPerUnit/2, shapeColor, true)
	}

	for player := range ecs.NewView[struct {
		*game.Player
		*game.Transform
		*game.Look
	}](storage).Iter() {
		x, y := toScreen(screen, player.Transform.Position)
		vector.DrawFilledCircle(screen, x, y, PixelsPerUnit/2, playerColor, true)
		forward, _ := game.PlanarAxes(player.Look.Yaw)
		vector.StrokeLine(screen, x, y, x+forward.X()*PixelsPerUnit, y+forward.Z()*PixelsPerUnit, 2, playerColor, true)
	}

	for shot := range ecs.NewView[struct {
		*game.Projectile
		*game.Transform
		*physics.Collider
	}](storage).Iter() {
		x, y := toScreen(screen, shot.Transform.Position)
		vector.DrawFilledCircle(screen, x, y, shot.Collider.Radius*PixelsPerUnit, shotColor, true)
	}

	if g.World.Debug().DebugColliders {
		g.drawColliders(screen, storage)
	}
	g.drawOverlay(screen, storage)
	g.ImguiBackend.Get().Draw(screen)
}

func (g *Game) drawColliders(screen *ebiten.Image, storage *ecs.Storage) {
	for body := range ecs.NewView[struct {
		*game.Transform
		*physics.Collider
	}](storage).Iter() {
		c := body.Collider
		x, y := toScreen(screen, body.Transform.Position)
		switch c.Shape {
		case physics.SphereShape, physics.CapsuleShape:
			vector.StrokeCircle(screen, x, y, c.Radius*PixelsPerUnit, 1, wireColor, true)
		case physics.BoxShape, physics.PlaneShape:
			w, h := c.HalfExtents.X()*PixelsPerUnit, c.HalfExtents.Z()*PixelsPerUnit
			vector.StrokeRect(screen, x-w, y-h, 2*w, 2*h, 1, wireColor, false)
		}
	}
}

func (g *Game) drawOverlay(screen *ebiten.Image, storage *ecs.Storage) {
	bounds := screen.Bounds()

	for label := range ecs.NewView[struct {
		*game.FPSText
		*game.Label
	}](storage).Iter() {
		g.drawLabel(screen, label.Label, label.FPSText.Prefix+label.FPSText.Value, label.FPSText.ValueColor, bounds.Dx(), bounds.Dy())
	}
	for label := range ecs.NewView[struct {
		*game.ColorText
		*game.Label
	}](storage).Iter() {
		g.drawLabel(screen, label.Label, label.ColorText.Text, label.ColorText.Color, bounds.Dx(), bounds.Dy())
	}
}

func (g *Game) drawLabel(screen *ebiten.Image, label *game.Label, s string, c colorful.Color, width, height int) {
	scale := math.Max(1, float64(label.Size)/glyphHeight/2)
	w, h := text.Measure(s, g.face, lineSpacing)
	w, h = w*scale, h*scale

	x, y := float64(label.Margin), float64(label.Margin)
	if label.Anchor == game.BottomRight {
		x = float64(width) - w - float64(label.Margin)
		y = float64(height) - h - float64(label.Margin)
	}

	op := &text.DrawOptions{}
	op.LineSpacing = lineSpacing
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c.Clamped())
	text.Draw(screen, s, g.face, op)
}

// Run opens the window and blocks until the game stops.
func Run(cfg *config.Config, log *zap.Logger, sounds game.SoundPlayer) error {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(cfg.Window.Title+" (overhead)", cfg.Window.Width, cfg.Window.Height)
	imgui.CurrentIO().SetIniFilename("")

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	if cfg.Window.TargetFPS > 0 {
		ebiten.SetTPS(cfg.Window.TargetFPS)
	}

	g := NewGame(cfg, log, sounds, backend)
	if err := ebiten.RunGame(g); err != nil {
		return err
	}

	stats := g.World.Stats()
	log.Info("session finished",
		zap.Uint64("frames", g.World.Clock().Frame),
		zap.Int("projectiles", stats.Spawned),
		zap.Int("peak live projectiles", stats.Peak),
	)
	return nil
}
