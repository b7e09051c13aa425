package rlview

import (
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/ooftn/ecs"
	"go.uber.org/zap"

	"github.com/plus3/fpsproto/config"
	"github.com/plus3/fpsproto/game"
	"github.com/plus3/fpsproto/physics"
)

const (
	fontSpacing    = 1
	fontAtlasSize  = 100
	projectileRims = 8
	wireColorAlpha = 255
)

var (
	wireColor       = rl.NewColor(0, 255, 128, wireColorAlpha)
	projectileColor = rl.NewColor(255, 80, 40, 255)
	skyColor        = rl.NewColor(40, 44, 52, 255)
)

// Renderer draws the world with raylib. It must be created after the window is open.
type Renderer struct {
	texture rl.Texture2D
	models  map[game.ShapeKind]rl.Model
	fonts   map[game.Font]rl.Font
	loaded  []rl.Font
	log     *zap.Logger
}

func NewRenderer(cfg config.UIConfig, log *zap.Logger) *Renderer {
	r := &Renderer{
		models: make(map[game.ShapeKind]rl.Model),
		fonts:  make(map[game.Font]rl.Font),
		log:    log,
	}

	pixels := game.UVDebugTexture()
	image := rl.NewImage(pixels, game.UVDebugTextureSize, game.UVDebugTextureSize, 1, rl.UncompressedR8g8b8a8)
	r.texture = rl.LoadTextureFromImage(image)
	rl.SetTextureFilter(r.texture, rl.FilterPoint)

	meshes := map[game.ShapeKind]rl.Mesh{
		game.Cuboid:      rl.GenMeshCube(1, 1, 1),
		game.Tetrahedron: rl.GenMeshCone(0.5, 1, 3),
		game.Torus:       rl.GenMeshTorus(0.5, 1, 24, 12),
		game.Cylinder:    rl.GenMeshCylinder(0.5, 1, 24),
		game.Cone:        rl.GenMeshCone(0.5, 1, 24),
		game.IcoSphere:   rl.GenMeshSphere(0.5, 6, 8),
		game.UVSphere:    rl.GenMeshSphere(0.5, 16, 32),
	}
	for kind, mesh := range meshes {
		model := rl.LoadModelFromMesh(mesh)
		rl.SetMaterialTexture(model.Materials, rl.MapDiffuse, r.texture)
		r.models[kind] = model
	}

	r.fonts[game.FontBold] = r.loadFont(cfg.BoldFont)
	r.fonts[game.FontMedium] = r.loadFont(cfg.MediumFont)
	return r
}

func (r *Renderer) loadFont(path string) rl.Font {
	if _, err := os.Stat(path); err != nil {
		r.log.Warn("using default font", zap.String("path", path), zap.Error(err))
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(path, fontAtlasSize, nil)
	r.loaded = append(r.loaded, font)
	return font
}

func (r *Renderer) Unload() {
	for _, model := range r.models {
		rl.UnloadModel(model)
	}
	for _, font := range r.loaded {
		rl.UnloadFont(font)
	}
	rl.UnloadTexture(r.texture)
}

func vec(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

func toColor(c colorful.Color) rl.Color {
	red, green, blue := c.Clamped().RGB255()
	return rl.NewColor(red, green, blue, 255)
}

// axisAngle converts a rotation to raylib's axis and angle in degrees.
func axisAngle(q mgl32.Quat) (rl.Vector3, float32) {
	if q.Len() == 0 {
		return rl.NewVector3(0, 1, 0), 0
	}
	q = q.Normalize()
	w := float64(mgl32.Clamp(q.W, -1, 1))
	s := math.Sqrt(1 - w*w)
	if s < 1e-6 {
		return rl.NewVector3(0, 1, 0), 0
	}
	axis := q.V.Mul(float32(1 / s))
	return vec(axis), mgl32.RadToDeg(float32(2 * math.Acos(w)))
}

func (r *Renderer) Draw(world *game.World) {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(skyColor)

	cam, err := world.Camera()
	if err == nil {
		rl.BeginMode3D(rl.Camera3D{
			Position:   vec(cam.Position),
			Target:     vec(cam.Target()),
			Up:         vec(cam.Up()),
			Fovy:       mgl32.RadToDeg(cam.FovY),
			Projection: rl.CameraPerspective,
		})
		r.drawScene(world)
		if world.Debug().DebugColliders {
			r.drawColliders(world.Storage)
		}
		rl.EndMode3D()
	}

	r.drawOverlay(world.Storage)
}

func (r *Renderer) drawScene(world *game.World) {
	storage := world.Storage
	shade := lightShade(storage)

	for ground := range ecs.NewView[struct {
		*game.Ground
		*game.Transform
	}](storage).Iter() {
		size := ground.Ground.Size
		color := ground.Ground.Color
		lit := colorful.Color{R: color.R * shade, G: color.G * shade, B: color.B * shade}
		rl.DrawPlane(vec(ground.Transform.Position), rl.NewVector2(size, size), toColor(lit))
	}

	tint := toColor(colorful.Color{R: shade, G: shade, B: shade})
	for shape := range ecs.NewView[struct {
		*game.Shape
		*game.Transform
	}](storage).Iter() {
		r.drawShape(shape.Shape.Kind, *shape.Transform, tint)
	}

	for p := range ecs.NewView[struct {
		*game.Projectile
		*game.Transform
		*physics.Collider
	}](storage).Iter() {
		rl.DrawSphere(vec(p.Transform.Position), p.Collider.Radius, projectileColor)
	}
}

// lightShade is the brightness of upward facing surfaces under the scene's directional light.
func lightShade(storage *ecs.Storage) float64 {
	shade := 0.35
	for light := range ecs.NewView[struct{ *game.DirectionalLight }](storage).Iter() {
		down := -light.DirectionalLight.Direction.Normalize().Y()
		if down > 0 {
			shade += 0.65 * float64(down)
		}
	}
	return math.Min(shade, 1)
}

func (r *Renderer) drawShape(kind game.ShapeKind, t game.Transform, tint rl.Color) {
	position := vec(t.Position)
	axis, angle := axisAngle(t.Rotation)

	switch kind {
	case game.CapsuleShape:
		r.withTransform(t, func() {
			rl.DrawCapsule(rl.NewVector3(0, -0.5, 0), rl.NewVector3(0, 0.5, 0), 0.5, 16, 8, tint)
		})
		return
	case game.ConicalFrustum:
		r.withTransform(t, func() {
			rl.DrawCylinderEx(rl.NewVector3(0, -0.5, 0), rl.NewVector3(0, 0.5, 0), 0.5, 0.25, 24, tint)
		})
		return
	}

	model, ok := r.models[kind]
	if !ok {
		return
	}
	rl.DrawModelEx(model, position, axis, angle, rl.NewVector3(1, 1, 1), tint)
}

func (r *Renderer) withTransform(t game.Transform, draw func()) {
	axis, angle := axisAngle(t.Rotation)
	rl.PushMatrix()
	defer rl.PopMatrix()
	rl.Translatef(t.Position.X(), t.Position.Y(), t.Position.Z())
	rl.Rotatef(angle, axis.X, axis.Y, axis.Z)
	draw()
}

func (r *Renderer) drawColliders(storage *ecs.Storage) {
	for body := range ecs.NewView[struct {
		*game.Transform
		*physics.Collider
	}](storage).Iter() {
		c := body.Collider
		r.withTransform(*body.Transform, func() {
			origin := rl.NewVector3(0, 0, 0)
			switch c.Shape {
			case physics.SphereShape:
				rl.DrawSphereWires(origin, c.Radius, projectileRims, projectileRims, wireColor)
			case physics.BoxShape:
				size := c.HalfExtents.Mul(2)
				rl.DrawCubeWires(origin, size.X(), size.Y(), size.Z(), wireColor)
			case physics.CapsuleShape:
				rl.DrawCapsuleWires(rl.NewVector3(0, -c.HalfHeight, 0), rl.NewVector3(0, c.HalfHeight, 0), c.Radius, 8, 4, wireColor)
			case physics.PlaneShape:
				rl.DrawCubeWires(origin, c.HalfExtents.X()*2, 0, c.HalfExtents.Z()*2, wireColor)
			}
		})
	}
}

func (r *Renderer) drawOverlay(storage *ecs.Storage) {
	width, height := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())

	for text := range ecs.NewView[struct {
		*game.FPSText
		*game.Label
	}](storage).Iter() {
		label := text.Label
		prefixFont := r.fonts[label.Font]
		valueFont := r.fonts[text.FPSText.ValueFont]

		prefixSize := rl.MeasureTextEx(prefixFont, text.FPSText.Prefix, label.Size, fontSpacing)
		origin := anchored(label, prefixSize, width, height)
		rl.DrawTextEx(prefixFont, text.FPSText.Prefix, origin, label.Size, fontSpacing, rl.White)
		origin.X += prefixSize.X
		rl.DrawTextEx(valueFont, text.FPSText.Value, origin, label.Size, fontSpacing, toColor(text.FPSText.ValueColor))
	}

	for text := range ecs.NewView[struct {
		*game.ColorText
		*game.Label
	}](storage).Iter() {
		font := r.fonts[text.Label.Font]
		size := rl.MeasureTextEx(font, text.ColorText.Text, text.Label.Size, fontSpacing)
		origin := anchored(text.Label, size, width, height)
		rl.DrawTextEx(font, text.ColorText.Text, origin, text.Label.Size, fontSpacing, toColor(text.ColorText.Color))
	}

	cx, cy := int32(width/2), int32(height/2)
	rl.DrawLine(cx-6, cy, cx+6, cy, rl.White)
	rl.DrawLine(cx, cy-6, cx, cy+6, rl.White)
}

func anchored(label *game.Label, size rl.Vector2, width, height float32) rl.Vector2 {
	if label.Anchor == game.BottomRight {
		return rl.NewVector2(width-size.X-label.Margin, height-size.Y-label.Margin)
	}
	return rl.NewVector2(label.Margin, label.Margin)
}
