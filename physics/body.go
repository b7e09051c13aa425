// Package physics is the thin rigid-body layer the game relies on: impulses, gravity,
// ground contact and primitive overlap tests. It has no solver and resolves no contacts
// between bodies.
package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

type BodyKind uint8

const (
	// Dynamic bodies respond to impulses and gravity and rest on the ground.
	Dynamic BodyKind = iota
	// Kinematic bodies move with their velocity and ignore forces.
	Kinematic
	// Static bodies never move.
	Static
)

func (k BodyKind) String() string {
	switch k {
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	case Static:
		return "static"
	}
	return "unknown"
}

// Body is the physics state of an entity. Impulse accumulates until the next step.
type Body struct {
	Kind     BodyKind
	Mass     float32
	Velocity mgl32.Vec3
	Impulse  mgl32.Vec3
	Grounded bool
}

// ApplyImpulse adds to the accumulated impulse.
func (b *Body) ApplyImpulse(impulse mgl32.Vec3) {
	b.Impulse = b.Impulse.Add(impulse)
}

// ResolveImpulse turns the accumulated impulse into a velocity change (Δv = J / m)
// and clears the accumulator. Only dynamic bodies with positive mass react.
func (b *Body) ResolveImpulse() {
	if b.Kind == Dynamic && b.Mass > 0 {
		b.Velocity = b.Velocity.Add(b.Impulse.Mul(1 / b.Mass))
	}
	b.Impulse = mgl32.Vec3{}
}

// World holds the global simulation parameters.
type World struct {
	Gravity mgl32.Vec3
	GroundY float32
}

// Step advances one body by dt and returns its new position.
// Dynamic bodies get gravity and are kept on or above the ground plane.
func (w World) Step(body *Body, position mgl32.Vec3, collider Collider, dt float32) mgl32.Vec3 {
	body.ResolveImpulse()

	switch body.Kind {
	case Static:
		return position
	case Dynamic:
		body.Velocity = body.Velocity.Add(w.Gravity.Mul(dt))
	}

	position = position.Add(body.Velocity.Mul(dt))

	if body.Kind != Dynamic {
		return position
	}

	bottom := collider.Bottom(position)
	if bottom <= w.GroundY {
		position[1] += w.GroundY - bottom
		if body.Velocity.Y() < 0 {
			body.Velocity[1] = 0
		}
		body.Grounded = true
	} else {
		body.Grounded = false
	}
	return position
}
