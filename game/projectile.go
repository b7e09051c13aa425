package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/ooftn/ecs"
	"go.uber.org/zap"

	"github.com/plus3/fpsproto/config"
	"github.com/plus3/fpsproto/physics"
)

// Advance moves a position along a constant velocity for dt seconds.
func Advance(position, velocity mgl32.Vec3, dt float32) mgl32.Vec3 {
	return position.Add(velocity.Mul(dt))
}

// OutOfBounds reports whether position lies outside the cube of half size bound around the origin.
// A non-positive bound disables the check.
func OutOfBounds(position mgl32.Vec3, bound float32) bool {
	if bound <= 0 {
		return false
	}
	for _, v := range position {
		if v > bound || v < -bound {
			return true
		}
	}
	return false
}

type despawnReason uint8

const (
	stillLive despawnReason = iota
	expired
	outOfArea
	hit
)

func (r despawnReason) String() string {
	switch r {
	case expired:
		return "expired"
	case outOfArea:
		return "out of bounds"
	case hit:
		return "hit"
	}
	return "live"
}

type obstacle struct {
	*Transform
	*physics.Collider
}

// ProjectileSystem moves projectiles and removes them once they expire, leave the arena or hit something.
type ProjectileSystem struct {
	Stats       ecs.Singleton[ProjectileStats]
	Projectiles ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Projectile
		*Lifetime
		*physics.Collider
	}]
	Shapes ecs.Query[struct {
		*Shape
		*Transform
		*physics.Collider
	}]
	Grounds ecs.Query[struct {
		*Ground
		*Transform
		*physics.Collider
	}]

	Weapon config.WeaponConfig
	Log    *zap.Logger

	obstacles []obstacle
}

func (s *ProjectileSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	stats := s.Stats.Get()

	s.obstacles = s.obstacles[:0]
	if s.Weapon.DespawnOnHit {
		for shape := range s.Shapes.Iter() {
			s.obstacles = append(s.obstacles, obstacle{shape.Transform, shape.Collider})
		}
		for ground := range s.Grounds.Iter() {
			s.obstacles = append(s.obstacles, obstacle{ground.Transform, ground.Collider})
		}
	}

	live := 0
	for p := range s.Projectiles.Iter() {
		p.Transform.Position = Advance(p.Transform.Position, p.Projectile.Velocity, dt)
		p.Lifetime.Remaining -= dt

		reason := s.classify(p.Transform.Position, p.Lifetime.Remaining, p.Collider.Radius)
		switch reason {
		case stillLive:
			live++
			continue
		case expired:
			stats.Expired++
		case outOfArea:
			stats.OutOfArea++
		case hit:
			stats.Hit++
		}
		frame.Commands.Delete(p.EntityId)
		s.Log.Debug("projectile despawned",
			zap.Stringer("reason", reason),
			zap.Float32s("position", p.Transform.Position[:]),
		)
	}

	stats.Live = live
	if live > stats.Peak {
		stats.Peak = live
	}
}

func (s *ProjectileSystem) classify(position mgl32.Vec3, remaining, radius float32) despawnReason {
	if remaining <= 0 {
		return expired
	}
	if OutOfBounds(position, s.Weapon.ArenaBound) {
		return outOfArea
	}
	for _, o := range s.obstacles {
		pose := physics.Pose{Position: o.Transform.Position, Rotation: o.Transform.Rotation}
		if o.Collider.OverlapsSphere(pose, position, radius) {
			return hit
		}
	}
	return stillLive
}
