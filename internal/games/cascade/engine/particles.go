package engine

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/color-cascade/internal/core"
)

// EffectSink receives the visual triggers the simulation fires.
// Calls are fire-and-forget; nothing flows back into gameplay.
type EffectSink interface {
	SpawnExplosion(x, y float64, color core.Color, count int)
	SpawnTrail(x, y float64, color core.Color)
}

// Particle is one short-lived spark.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Color   core.Color
	Life    float64 // seconds left
	MaxLife float64
	Size    float64
}

// Fade is the remaining life as a fraction of the initial life.
func (p Particle) Fade() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return core.ClampF(p.Life/p.MaxLife, 0, 1)
}

// ParticleSystem simulates sparks under constant downward acceleration.
// It owns its random source so spawning sparks never shifts gameplay draws.
type ParticleSystem struct {
	rng       *rand.Rand
	gravity   float64
	limit     int
	particles []Particle
	dropped   int
}

// NewParticleSystem creates a system holding at most limit particles.
func NewParticleSystem(seed int64, gravity float64, limit int) *ParticleSystem {
	return &ParticleSystem{
		rng:       rand.New(rand.NewSource(seed)), //#nosec G404 -- cosmetic randomness
		gravity:   gravity,
		limit:     limit,
		particles: make([]Particle, 0, min(limit, 256)),
	}
}

// SpawnExplosion emits count particles in random directions from (x, y).
func (ps *ParticleSystem) SpawnExplosion(x, y float64, color core.Color, count int) {
	for range count {
		angle := ps.rng.Float64() * 2 * math.Pi
		speed := ps.rng.Float64()*300 + 100
		life := ps.rng.Float64()*1.5 + 0.5
		ps.add(Particle{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Color:   color,
			Life:    life,
			MaxLife: life,
			Size:    ps.rng.Float64()*8 + 4,
		})
	}
}

// SpawnTrail emits one slow particle jittered around (x, y).
func (ps *ParticleSystem) SpawnTrail(x, y float64, color core.Color) {
	angle := ps.rng.Float64() * 2 * math.Pi
	speed := ps.rng.Float64()*50 + 25
	life := ps.rng.Float64()*0.5 + 0.2
	ps.add(Particle{
		X:       x + (ps.rng.Float64()-0.5)*20,
		Y:       y + (ps.rng.Float64()-0.5)*20,
		VX:      math.Cos(angle) * speed,
		VY:      math.Sin(angle) * speed,
		Color:   color,
		Life:    life,
		MaxLife: life,
		Size:    ps.rng.Float64()*4 + 2,
	})
}

// add appends p unless the hard cap is reached, in which case it is dropped.
func (ps *ParticleSystem) add(p Particle) {
	if len(ps.particles) >= ps.limit {
		ps.dropped++
		return
	}
	ps.particles = append(ps.particles, p)
}

// Update integrates every particle and removes the expired ones in place.
func (ps *ParticleSystem) Update(dt float64) {
	n := 0
	for _, p := range ps.particles {
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.VY += ps.gravity * dt
		p.Life -= dt
		if p.Life > 0 {
			ps.particles[n] = p
			n++
		}
	}
	ps.particles = ps.particles[:n]
}

// Clear removes every particle.
func (ps *ParticleSystem) Clear() {
	ps.particles = ps.particles[:0]
}

// Len returns the number of live particles.
func (ps *ParticleSystem) Len() int {
	return len(ps.particles)
}

// Dropped returns how many spawns the cap has rejected so far.
func (ps *ParticleSystem) Dropped() int {
	return ps.dropped
}

// Snapshot returns a copy of the live particles.
func (ps *ParticleSystem) Snapshot() []Particle {
	return append([]Particle(nil), ps.particles...)
}

// effectFanout forwards triggers to every non-nil sink.
type effectFanout []EffectSink

func (f effectFanout) SpawnExplosion(x, y float64, color core.Color, count int) {
	for _, s := range f {
		s.SpawnExplosion(x, y, color, count)
	}
}

func (f effectFanout) SpawnTrail(x, y float64, color core.Color) {
	for _, s := range f {
		s.SpawnTrail(x, y, color)
	}
}
