package game

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/ooftn/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/fpsproto/camera"
)

func TestShotVelocityFromCentre(t *testing.T) {
	cam := camera.Camera{Rotation: mgl32.QuatIdent(), Projection: camera.DefaultProjection()}
	viewport := mgl32.Vec2{1280, 720}

	ray, err := cam.ViewportToWorld(viewport, viewport.Mul(0.5))
	require.NoError(t, err)

	velocity, ok := ShotVelocity(cam.Position, ray, 100, 40)
	require.True(t, ok)
	assert.InDelta(t, 0, velocity.X(), 1e-3)
	assert.InDelta(t, 0, velocity.Y(), 1e-3)
	assert.InDelta(t, -40, velocity.Z(), 1e-3)
}

func TestShotVelocityOffCentre(t *testing.T) {
	cam := camera.Camera{
		Position:   mgl32.Vec3{3, 1, 2},
		Rotation:   mgl32.QuatRotate(0.4, mgl32.Vec3{0, 1, 0}),
		Projection: camera.DefaultProjection(),
	}
	ray, err := cam.ViewportToWorld(mgl32.Vec2{800, 600}, mgl32.Vec2{100, 550})
	require.NoError(t, err)

	velocity, ok := ShotVelocity(cam.Position, ray, 100, 40)
	require.True(t, ok)
	assert.InDelta(t, 40, velocity.Len(), 1e-3)

	toward := ray.Point(100).Sub(cam.Position).Normalize()
	assert.InDelta(t, 1, velocity.Normalize().Dot(toward), 1e-5)
}

func TestShotVelocityRejectsZeroLength(t *testing.T) {
	ray := camera.Ray{Origin: mgl32.Vec3{1, 2, 3}, Direction: mgl32.Vec3{0, 0, -1}}
	_, ok := ShotVelocity(mgl32.Vec3{1, 2, 3}, ray, 0, 40)
	assert.False(t, ok)
}

func TestAdvance(t *testing.T) {
	position := mgl32.Vec3{1, 2, 3}
	velocity := mgl32.Vec3{0, 0, -40}

	assert.Equal(t, position, Advance(position, velocity, 0))
	assert.Equal(t, mgl32.Vec3{1, 2, -1}, Advance(position, velocity, 0.1))
}

func TestOutOfBounds(t *testing.T) {
	assert.False(t, OutOfBounds(mgl32.Vec3{199, -199, 0}, 200))
	assert.True(t, OutOfBounds(mgl32.Vec3{0, 0, 201}, 200))
	assert.True(t, OutOfBounds(mgl32.Vec3{-201, 0, 0}, 200))
	assert.False(t, OutOfBounds(mgl32.Vec3{1e6, 0, 0}, 0))
}

func TestSingle(t *testing.T) {
	_, err := single("thing", slices.Values([]int{}))
	assert.True(t, errors.Is(err, ErrNoEntity))
	assert.EqualError(t, err, "thing: no matching entity")

	v, err := single("thing", slices.Values([]int{7}))
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = single("thing", slices.Values([]int{1, 2}))
	assert.True(t, errors.Is(err, ErrAmbiguousEntity))
}

func TestLookRotation(t *testing.T) {
	forward := LookRotation(Look{}).Rotate(mgl32.Vec3{0, 0, -1})
	assert.InDelta(t, 0, forward.X(), 1e-6)
	assert.InDelta(t, 0, forward.Y(), 1e-6)
	assert.InDelta(t, -1, forward.Z(), 1e-6)

	left := LookRotation(Look{Yaw: math.Pi / 2}).Rotate(mgl32.Vec3{0, 0, -1})
	assert.InDelta(t, -1, left.X(), 1e-6)
	assert.InDelta(t, 0, left.Y(), 1e-6)
	assert.InDelta(t, 0, left.Z(), 1e-6)

	up := LookRotation(Look{Pitch: 0.5}).Rotate(mgl32.Vec3{0, 0, -1})
	assert.Positive(t, up.Y())
}

func TestPlanarAxes(t *testing.T) {
	forward, right := PlanarAxes(0)
	assert.InDelta(t, -1, forward.Z(), 1e-6)
	assert.InDelta(t, 0, forward.X(), 1e-6)
	assert.InDelta(t, 1, right.X(), 1e-6)
	assert.InDelta(t, 0, right.Z(), 1e-6)

	forward, right = PlanarAxes(1.1)
	assert.InDelta(t, 0, forward.Y(), 1e-6)
	assert.InDelta(t, 0, forward.Dot(right), 1e-6)
	assert.InDelta(t, 1, forward.Len(), 1e-6)
}

func TestCycleColor(t *testing.T) {
	for i := range 200 {
		c := CycleColor(float64(i) * 0.37)
		for _, channel := range []float64{c.R, c.G, c.B} {
			assert.GreaterOrEqual(t, channel, 0.0)
			assert.LessOrEqual(t, channel, 1.0)
		}
	}

	start := CycleColor(0)
	assert.InDelta(t, 0.5, start.R, 1e-12)
	assert.InDelta(t, 0.5, start.G, 1e-12)
	assert.InDelta(t, 0.5, start.B, 1e-12)

	t0 := 1.3
	assert.InDelta(t, CycleColor(t0).R, CycleColor(t0+2*math.Pi/redFrequency).R, 1e-9)
	assert.InDelta(t, CycleColor(t0).G, CycleColor(t0+2*math.Pi/greenFrequency).G, 1e-9)
	assert.InDelta(t, CycleColor(t0).B, CycleColor(t0+2*math.Pi/blueFrequency).B, 1e-9)
}

func TestFrameDiagnostics(t *testing.T) {
	d := NewFrameDiagnostics(4)
	_, ok := d.Smoothed()
	assert.False(t, ok)
	_, ok = d.Average()
	assert.False(t, ok)

	d.Add(0)
	d.Add(-1)
	_, ok = d.Average()
	assert.False(t, ok, "non-positive frame times are ignored")

	d.Add(0.5)
	smoothed, ok := d.Smoothed()
	require.True(t, ok)
	assert.InDelta(t, 2, smoothed, 1e-9)

	d.Add(0.25)
	smoothed, _ = d.Smoothed()
	assert.InDelta(t, 2+(4-2)*0.4, smoothed, 1e-9)
	average, _ := d.Average()
	assert.InDelta(t, 3, average, 1e-9)
	assert.Equal(t, 0.25, d.FrameTime())

	for range 4 {
		d.Add(0.1)
	}
	average, _ = d.Average()
	assert.InDelta(t, 10, average, 1e-9, "only the last four samples count")
}

func TestFPSTextRefresh(t *testing.T) {
	w := newTestWorld(t)

	assert.Equal(t, []string{""}, fpsTexts(w.Storage))
	w.Step(0.02)
	assert.Equal(t, []string{"50.0"}, fpsTexts(w.Storage), "first write is the startup average")
	w.Step(0.025)
	assert.Equal(t, []string{"49.05"}, fpsTexts(w.Storage), "later writes are smoothed")
}

func TestFPSTextWaitsForInterval(t *testing.T) {
	s := &FPSTextSystem{Refresh: 1}
	s.written = true
	s.sinceWrite = 0.5
	w := newTestWorld(t)
	s.Diagnostics.Init(w.Storage)
	s.Texts.Init(w.Storage)

	w.Diagnostics().Add(0.1)
	s.Execute(&ecs.UpdateFrame{DeltaTime: 0.25, Storage: w.Storage})
	assert.Equal(t, []string{""}, fpsTexts(w.Storage))

	s.Execute(&ecs.UpdateFrame{DeltaTime: 0.25, Storage: w.Storage})
	assert.Equal(t, []string{"10.00"}, fpsTexts(w.Storage))
}

func fpsTexts(storage *ecs.Storage) []string {
	var values []string
	for text := range ecs.NewView[struct{ *FPSText }](storage).Iter() {
		values = append(values, text.FPSText.Value)
	}
	return values
}

func TestColorTextFollowsClock(t *testing.T) {
	w := newTestWorld(t)
	w.Step(0.5)
	w.Step(0.25)

	assert.InDelta(t, 0.75, w.Clock().Elapsed, 1e-12)
	assert.Equal(t, uint64(2), w.Clock().Frame)
	for text := range ecs.NewView[struct{ *ColorText }](w.Storage).Iter() {
		assert.Equal(t, CycleColor(0.75), text.ColorText.Color)
	}
}

func TestUVDebugTexture(t *testing.T) {
	data := UVDebugTexture()
	require.Len(t, data, UVDebugTextureSize*UVDebugTextureSize*4)

	assert.Equal(t, uvPalette[:], data[:32])
	// second row starts with the palette's last pixel
	assert.Equal(t, uvPalette[28:32], data[32:36])
	assert.Equal(t, uvPalette[0:28], data[36:64])

	for i := 3; i < len(data); i += 4 {
		assert.Equal(t, byte(255), data[i])
	}
}
