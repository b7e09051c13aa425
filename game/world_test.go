package game

import (
	"reflect"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/ooftn/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/plus3/fpsproto/config"
	"github.com/plus3/fpsproto/input"
	"github.com/plus3/fpsproto/physics"
)

const testDt = 1.0 / 60.0

// script is an InputSource driven by the test.
type script struct {
	held        map[input.Action]bool
	delta       mgl32.Vec2
	cursor      mgl32.Vec2
	cursorValid bool
}

func (s *script) Poll(state *input.State) {
	for _, action := range input.Actions {
		state.Set(action, s.held[action])
	}
	state.MouseDelta = s.delta
	state.Cursor = s.cursor
	state.CursorValid = s.cursorValid
}

func (s *script) press(action input.Action) {
	s.held[action] = true
}

func (s *script) release(action input.Action) {
	s.held[action] = false
}

type recordingPlayer struct {
	played []string
}

func (p *recordingPlayer) Play(name string) {
	p.played = append(p.played, name)
}

type testWorld struct {
	*World
	input *script
	audio *recordingPlayer
	logs  *observer.ObservedLogs
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	cfg := config.Default()
	core, logs := observer.New(zap.DebugLevel)
	in := &script{
		held:        map[input.Action]bool{},
		cursor:      mgl32.Vec2{float32(cfg.Window.Width) / 2, float32(cfg.Window.Height) / 2},
		cursorValid: true,
	}
	audio := &recordingPlayer{}
	w := NewWorld(cfg, Options{Logger: zap.New(core), Audio: audio, Input: in})
	return &testWorld{World: w, input: in, audio: audio, logs: logs}
}

func component[T any](t *testing.T, storage *ecs.Storage, id ecs.EntityId) *T {
	t.Helper()
	var zero T
	value := storage.GetComponent(id, reflect.TypeOf(zero))
	require.NotNil(t, value)
	return value.(*T)
}

type projectileView struct {
	*Transform
	*Projectile
}

func projectiles(storage *ecs.Storage) []projectileView {
	var out []projectileView
	for p := range ecs.NewView[projectileView](storage).Iter() {
		out = append(out, p)
	}
	return out
}

func TestSetupSpawnsScene(t *testing.T) {
	w := newTestWorld(t)

	var kinds []ShapeKind
	var xs []float32
	for shape := range ecs.NewView[struct {
		*Shape
		*Transform
	}](w.Storage).Iter() {
		kinds = append(kinds, shape.Shape.Kind)
		xs = append(xs, shape.Transform.Position.X())
		assert.Equal(t, float32(2), shape.Transform.Position.Y())
		assert.Equal(t, float32(2.5), shape.Transform.Position.Z())
	}
	assert.ElementsMatch(t, ShapeKinds, kinds)
	assert.Contains(t, xs, float32(-7))
	assert.Contains(t, xs, float32(7))

	cam, err := w.Camera()
	require.NoError(t, err)
	assert.InDelta(t, 1.6, cam.Position.Y(), 1e-5)
	assert.InDelta(t, 10, cam.Position.Z(), 1e-5)

	assert.False(t, w.Debug().DebugColliders)
	assert.False(t, w.Shutdown().Requested)
}

func TestShapePositionSpansRow(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{-7, 2, 2.5}, ShapePosition(0, 9))
	assert.Equal(t, mgl32.Vec3{0, 2, 2.5}, ShapePosition(4, 9))
	assert.Equal(t, mgl32.Vec3{7, 2, 2.5}, ShapePosition(8, 9))
	assert.Equal(t, mgl32.Vec3{-7, 2, 2.5}, ShapePosition(0, 1))
}

func TestFireSpawnsProjectileTowardCursor(t *testing.T) {
	w := newTestWorld(t)

	w.input.press(input.Fire)
	w.Step(testDt)

	shots := projectiles(w.Storage)
	require.Len(t, shots, 1)
	velocity := shots[0].Projectile.Velocity
	assert.InDelta(t, 0, velocity.X(), 1e-3)
	assert.InDelta(t, 0, velocity.Y(), 1e-3)
	assert.InDelta(t, -40, velocity.Z(), 1e-3)
	assert.Equal(t, 1, w.Stats().Spawned)
	assert.Equal(t, []string{"queef"}, w.audio.played)

	// Holding the button does not fire again.
	w.Step(testDt)
	w.Step(testDt)
	assert.Equal(t, 1, w.Stats().Spawned)

	w.input.release(input.Fire)
	w.Step(testDt)
	w.input.press(input.Fire)
	w.Step(testDt)
	assert.Equal(t, 2, w.Stats().Spawned)
}

func TestFireLogsShot(t *testing.T) {
	w := newTestWorld(t)
	w.input.press(input.Fire)
	w.Step(testDt)

	fired := w.logs.FilterMessage("projectile fired").All()
	require.Len(t, fired, 1)
	fields := fired[0].ContextMap()
	assert.Len(t, fields["origin"], 3)
	assert.Len(t, fields["velocity"], 3)
}

func TestProjectileVelocityIsFixed(t *testing.T) {
	w := newTestWorld(t)

	w.input.press(input.Fire)
	w.Step(testDt)
	start := projectiles(w.Storage)[0]
	origin := start.Transform.Position
	velocity := start.Projectile.Velocity

	w.input.release(input.Fire)
	w.input.delta = mgl32.Vec2{50, 20}
	w.Step(0.1)

	moved := projectiles(w.Storage)
	require.Len(t, moved, 1)
	assert.Equal(t, velocity, moved[0].Projectile.Velocity)
	want := origin.Add(velocity.Mul(0.1))
	for i := range want {
		assert.InDelta(t, want[i], moved[0].Transform.Position[i], 1e-4)
	}
}

func TestFireWithoutCursorDoesNothing(t *testing.T) {
	w := newTestWorld(t)
	w.input.cursorValid = false

	w.input.press(input.Fire)
	w.Step(testDt)

	assert.Empty(t, projectiles(w.Storage))
	assert.Equal(t, 0, w.Stats().Spawned)
	assert.Empty(t, w.audio.played)
}

func TestFireWithDegenerateCameraDoesNothing(t *testing.T) {
	w := newTestWorld(t)
	component[CameraRig](t, w.Storage, w.Player).Projection.FovY = 0

	w.input.press(input.Fire)
	require.NotPanics(t, func() { w.Step(testDt) })

	assert.Empty(t, projectiles(w.Storage))
	assert.Equal(t, 0, w.Stats().Spawned)
}

func TestMissingPlayerIsLoggedOnce(t *testing.T) {
	w := newTestWorld(t)
	w.Storage.Delete(w.Player)

	w.input.delta = mgl32.Vec2{10, 10}
	w.input.press(input.Forward)
	require.NotPanics(t, func() {
		for range 5 {
			w.Step(testDt)
		}
	})

	warnings := w.logs.FilterMessage("skipping system work")
	// one warning each from the look and move systems
	assert.Equal(t, 2, warnings.Len())
	for _, entry := range warnings.All() {
		assert.Contains(t, entry.ContextMap()["error"], ErrNoEntity.Error())
	}
}

func TestAmbiguousPlayerIsSkipped(t *testing.T) {
	w := newTestWorld(t)
	other := w.Storage.Spawn(Player{}, NewTransform(mgl32.Vec3{5, 0, 0}), Look{})

	w.input.delta = mgl32.Vec2{100, 0}
	w.Step(testDt)

	assert.Equal(t, float32(0), component[Look](t, w.Storage, w.Player).Yaw)
	assert.Equal(t, float32(0), component[Look](t, w.Storage, other).Yaw)
	assert.Positive(t, w.logs.FilterMessage("skipping system work").Len())

	w.Storage.Delete(other)
	w.Step(testDt)
	assert.NotEqual(t, float32(0), component[Look](t, w.Storage, w.Player).Yaw)
	assert.Equal(t, 2, w.logs.FilterMessage("precondition restored").Len())
}

func TestProjectileExpires(t *testing.T) {
	w := newTestWorld(t)
	w.Storage.Spawn(
		NewTransform(mgl32.Vec3{0, 50, 0}),
		Projectile{},
		Lifetime{Remaining: 0.05},
		physics.Sphere(0.5),
	)

	w.Step(testDt)
	assert.Len(t, projectiles(w.Storage), 1)
	assert.Equal(t, 1, w.Stats().Live)

	w.Step(testDt)
	w.Step(testDt)
	w.Step(testDt)
	assert.Empty(t, projectiles(w.Storage))

	stats := w.Stats()
	assert.Equal(t, 1, stats.Expired)
	assert.Equal(t, 0, stats.Live)
	assert.Equal(t, 1, stats.Peak)
}

func TestProjectileLeavesArena(t *testing.T) {
	w := newTestWorld(t)
	w.Storage.Spawn(
		NewTransform(mgl32.Vec3{0, 50, -199}),
		Projectile{Velocity: mgl32.Vec3{0, 0, -100}},
		Lifetime{Remaining: 10},
		physics.Sphere(0.5),
	)

	w.Step(0.1)
	assert.Empty(t, projectiles(w.Storage))
	assert.Equal(t, 1, w.Stats().OutOfArea)
}

func TestProjectileHitsShape(t *testing.T) {
	w := newTestWorld(t)
	w.Storage.Spawn(
		NewTransform(ShapePosition(4, len(ShapeKinds)).Add(mgl32.Vec3{0, 0, 3})),
		Projectile{Velocity: mgl32.Vec3{0, 0, -40}},
		Lifetime{Remaining: 10},
		physics.Sphere(0.5),
	)

	for range 10 {
		w.Step(testDt)
	}
	assert.Empty(t, projectiles(w.Storage))
	assert.Equal(t, 1, w.Stats().Hit)
}

func TestProjectileIgnoresShapesWhenHitsDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Weapon.DespawnOnHit = false
	w := NewWorld(cfg, Options{})
	w.Storage.Spawn(
		NewTransform(ShapePosition(0, len(ShapeKinds))),
		Projectile{},
		Lifetime{Remaining: 10},
		physics.Sphere(0.5),
	)

	w.Step(testDt)
	assert.Len(t, projectiles(w.Storage), 1)
	assert.Equal(t, 0, w.Stats().Hit)
}

func TestDebugToggle(t *testing.T) {
	w := newTestWorld(t)

	w.input.press(input.Debug)
	w.Step(testDt)
	assert.True(t, w.Debug().DebugColliders)

	// Holding the key keeps the flag.
	w.Step(testDt)
	w.Step(testDt)
	assert.True(t, w.Debug().DebugColliders)

	w.input.release(input.Debug)
	w.Step(testDt)
	w.input.press(input.Debug)
	w.Step(testDt)
	assert.False(t, w.Debug().DebugColliders)
}

func TestExitRequestsShutdown(t *testing.T) {
	w := newTestWorld(t)
	w.Step(testDt)
	assert.False(t, w.Shutdown().Requested)

	w.input.press(input.Exit)
	w.Step(testDt)
	shutdown := w.Shutdown()
	assert.True(t, shutdown.Requested)
	assert.Equal(t, "exit key", shutdown.Reason)
	assert.Equal(t, 1, w.logs.FilterMessage("shutdown requested").Len())
}

func TestJump(t *testing.T) {
	w := newTestWorld(t)
	w.Step(testDt)
	body := component[physics.Body](t, w.Storage, w.Player)
	require.True(t, body.Grounded)
	start := component[Transform](t, w.Storage, w.Player).Position

	// Physics runs right after the jump in the same frame, so the impulse is spent
	// and one gravity step has already been applied.
	w.input.press(input.Jump)
	w.Step(testDt)
	mass := w.Config.Player.Mass
	assert.InDelta(t, w.Config.Player.JumpImpulse/mass-w.Config.Physics.Gravity*testDt, body.Velocity.Y(), 1e-3)
	assert.Equal(t, mgl32.Vec3{}, body.Impulse)
	assert.False(t, body.Grounded)
	assert.Greater(t, component[Transform](t, w.Storage, w.Player).Position.Y(), start.Y())
}

func TestJumpSystemAppliesImpulse(t *testing.T) {
	w := newTestWorld(t)
	s := &JumpSystem{Settings: w.Config.Player, Log: zap.NewNop()}
	s.Input.Init(w.Storage)
	s.Players.Init(w.Storage)

	w.Input().Set(input.Jump, true)
	s.Execute(&ecs.UpdateFrame{DeltaTime: testDt, Storage: w.Storage})

	body := component[physics.Body](t, w.Storage, w.Player)
	assert.Equal(t, mgl32.Vec3{0, 80, 0}, body.Impulse)
	assert.Equal(t, mgl32.Vec3{}, body.Velocity, "the impulse waits for the physics step")

	body.ResolveImpulse()
	assert.InDelta(t, 80, body.Velocity.Y(), 1e-5, "default mass of one")
}

func TestDeadPlayerDoesNotJump(t *testing.T) {
	w := newTestWorld(t)
	component[Health](t, w.Storage, w.Player).Alive = false

	w.input.press(input.Jump)
	w.Step(testDt)
	assert.Equal(t, mgl32.Vec3{}, component[physics.Body](t, w.Storage, w.Player).Impulse)
}

func TestPlayerLook(t *testing.T) {
	w := newTestWorld(t)

	w.input.delta = mgl32.Vec2{100, -50}
	w.Step(testDt)
	look := component[Look](t, w.Storage, w.Player)
	assert.InDelta(t, -0.2, look.Yaw, 1e-6)
	assert.InDelta(t, 0.1, look.Pitch, 1e-6)

	w.input.delta = mgl32.Vec2{0, -100000}
	w.Step(testDt)
	assert.InDelta(t, maxPitch, look.Pitch, 1e-6)

	transform := component[Transform](t, w.Storage, w.Player)
	assert.InDelta(t, 0, transform.Rotation.Rotate(mgl32.Vec3{1, 0, 0}).Y(), 1e-5, "no roll")
}

func TestPlayerMove(t *testing.T) {
	w := newTestWorld(t)
	w.Step(testDt)
	start := component[Transform](t, w.Storage, w.Player).Position

	w.input.press(input.Forward)
	w.Step(testDt)
	pos := component[Transform](t, w.Storage, w.Player).Position
	assert.InDelta(t, start.Z()-0.1, pos.Z(), 1e-5)
	assert.InDelta(t, start.X(), pos.X(), 1e-5)

	w.input.press(input.Back)
	w.Step(testDt)
	again := component[Transform](t, w.Storage, w.Player).Position
	assert.InDelta(t, pos.Z(), again.Z(), 1e-5)
}

func TestSnapshot(t *testing.T) {
	w := newTestWorld(t)
	w.input.press(input.Fire)
	w.Step(0.02)
	w.Step(0.02)

	snap := w.Snapshot()
	assert.Equal(t, uint64(2), snap.Frame)
	assert.InDelta(t, 50, snap.FPS, 1e-9)
	assert.InDelta(t, 50, snap.AverageFPS, 1e-9)
	assert.InDelta(t, float64(20*time.Millisecond), float64(snap.FrameTime), float64(time.Microsecond))
	assert.Equal(t, 1, snap.Projectiles.Spawned)

	require.Len(t, snap.Systems, 14)
	names := make([]string, 0, len(snap.Systems))
	for i, system := range snap.Systems {
		assert.Equal(t, int64(2), system.ExecutionCount, system.Name)
		if i > 0 {
			assert.LessOrEqual(t, system.AvgDuration, snap.Systems[i-1].AvgDuration)
		}
		names = append(names, system.Name)
	}
	assert.Contains(t, names, "FireSystem")
	assert.Contains(t, names, "ProjectileSystem")
}

type panel struct {
	Title string
}

func TestWorldRegistersFrontendComponents(t *testing.T) {
	w := NewWorld(config.Default(), Options{
		Components: func(registry *ecs.ComponentRegistry) {
			ecs.RegisterComponent[panel](registry)
		},
	})

	id := w.Storage.Spawn(panel{Title: "systems"})
	assert.Equal(t, "systems", component[panel](t, w.Storage, id).Title)
}
