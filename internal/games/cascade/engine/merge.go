package engine

// resolveMerges clears every cluster of at least MinCluster connected blocks
// in one pass, replacing each with a single block at its centroid.
func (e *Engine) resolveMerges() {
	minSize := e.cfg.Scoring.MinCluster
	if len(e.blocks) < minSize {
		return
	}

	radius := e.cfg.Field.BlockSize
	e.index.rebuild(e.blocks)

	visited := make([]bool, len(e.blocks))
	removed := make([]bool, len(e.blocks))
	var replacements []Block

	for seed := range e.blocks {
		if visited[seed] {
			continue
		}
		cluster := e.collectCluster(seed, radius, visited)
		if len(cluster) < minSize {
			continue
		}
		replacements = append(replacements, e.mergeCluster(cluster))
		for _, i := range cluster {
			removed[i] = true
		}
	}

	if len(replacements) == 0 {
		return
	}

	kept := e.blocks[:0]
	for i, b := range e.blocks {
		if !removed[i] {
			kept = append(kept, b)
		}
	}
	e.blocks = kept

	for _, r := range replacements {
		e.placeClear(&r)
		e.blocks = append(e.blocks, r)
	}
}

// collectCluster returns the indices connected to seed, in discovery order.
// The result slice doubles as the breadth-first worklist.
func (e *Engine) collectCluster(seed int, radius float64, visited []bool) []int {
	visited[seed] = true
	cluster := []int{seed}
	for head := 0; head < len(cluster); head++ {
		b := e.blocks[cluster[head]]
		e.index.near(b.X, b.Y, radius, func(j int) {
			if visited[j] || !b.AdjacentForClustering(e.blocks[j], radius) {
				return
			}
			visited[j] = true
			cluster = append(cluster, j)
		})
	}
	return cluster
}

// mergeCluster scores a cluster, fires its effects and returns its replacement.
// It does not touch e.blocks.
func (e *Engine) mergeCluster(cluster []int) Block {
	sc := e.cfg.Scoring
	fx := e.cfg.Effects
	n := len(cluster)

	var sumX, sumY float64
	var hasMultiplier, hasRainbow, haveColor bool
	color := e.blocks[cluster[0]].Color

	for _, i := range cluster {
		b := e.blocks[i]
		sumX += b.X
		sumY += b.Y
		switch b.Type {
		case Multiplier:
			hasMultiplier = true
		case Rainbow:
			hasRainbow = true
		}
		if !haveColor && b.Type != Rainbow {
			color = b.Color
			haveColor = true
		}
		e.effects.SpawnExplosion(b.X, b.Y, b.DisplayColor(), fx.Explosions.Merge)
	}
	cx, cy := sumX/float64(n), sumY/float64(n)

	base := n*sc.PointsPerBlock + max(0, n-sc.MinCluster)*sc.ExtraBlockBonus
	switch {
	case hasMultiplier:
		base *= sc.MultiplierFactor
	case hasRainbow:
		base += sc.RainbowBonus
	}
	e.score += e.combo.RegisterHit(base)
	e.blocksCleared += n
	e.addCharge(n * e.cfg.PowerUp.ChargePerBlock)
	e.addShake(fx.ShakeMild)

	bs := e.cfg.Field.BlockSize
	repl := Block{
		ID:     e.allocID(),
		X:      cx,
		Y:      cy,
		Size:   min(bs+float64(n)*growthPerMember, bs*maxGrowth),
		Color:  color,
		Type:   Normal,
		Active: true,
	}
	if n >= sc.BigCluster {
		repl.Type = Bomb
		repl.Color = BombColor
		e.effects.SpawnExplosion(cx, cy, color, fx.Explosions.BigMerge)
		e.addShake(fx.ShakeStrong)
	}

	e.logger.Debug("merge", "size", n, "base", base, "combo", e.combo.Count(), "score", e.score)
	return repl
}
