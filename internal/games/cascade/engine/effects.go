package engine

import "github.com/vovakirdan/color-cascade/internal/core"

// applyLandingEffect runs the type-specific effect of a block that just landed.
// b must already be on the board.
func (e *Engine) applyLandingEffect(b Block) {
	switch b.Type {
	case Bomb:
		e.detonate(b)
	case Gravity:
		e.gravity = e.cfg.Physics.GravityBoost
		e.boostLeft = e.cfg.Physics.GravityBoostDuration
		e.logger.Debug("gravity boost", "gravity", e.gravity, "seconds", e.boostLeft)
	case Transformer:
		e.transform(b)
	}
}

// detonate removes the bomb and every block within the blast radius.
// Only non-bomb neighbours score and count as cleared.
func (e *Engine) detonate(bomb Block) {
	radius := e.cfg.Scoring.BombRadius * e.cfg.Field.BlockSize
	count := e.cfg.Effects.Explosions.Bomb

	cleared := 0
	kept := e.blocks[:0]
	for _, b := range e.blocks {
		if b.ID == bomb.ID {
			continue
		}
		if core.Distance(bomb.X, bomb.Y, b.X, b.Y) <= radius {
			e.effects.SpawnExplosion(b.X, b.Y, b.DisplayColor(), count)
			if b.Type != Bomb {
				cleared++
			}
			continue
		}
		kept = append(kept, b)
	}
	e.blocks = kept
	e.effects.SpawnExplosion(bomb.X, bomb.Y, bomb.DisplayColor(), count)

	if cleared > 0 {
		e.score += e.combo.RegisterHit(cleared * e.cfg.Scoring.BombPoints)
		e.blocksCleared += cleared
	}
	e.addShake(e.cfg.Effects.ShakeStrong)
	e.logger.Debug("bomb", "cleared", cleared, "score", e.score)
}

// transform recolors up to TransformCount random other blocks to the transformer's color.
func (e *Engine) transform(t Block) {
	others := make([]int, 0, len(e.blocks))
	for i, b := range e.blocks {
		if b.ID != t.ID {
			others = append(others, i)
		}
	}

	k := min(e.cfg.Scoring.TransformCount, len(others))
	for i := range k {
		j := i + e.rng.Intn(len(others)-i)
		others[i], others[j] = others[j], others[i]

		target := &e.blocks[others[i]]
		target.Color = t.Color
		e.effects.SpawnExplosion(target.X, target.Y, t.Color, e.cfg.Effects.Explosions.Transform)
	}
}
