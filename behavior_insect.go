package main

import "math"

// behaviorInsect advances one insect actor for one tick (spec §4.3.2). Grounded
// on insect_pollination.go's pollen pickup/deposit shape, reworked onto the
// spec's quadtree-based vision and next_actor_state mutation contract.
func behaviorInsect(tc *TickContext, a *Actor) {
	actor, ok := tc.NextActorState[a.ID]
	if !ok {
		return
	}

	actor.Lifespan--
	if actor.Lifespan <= 0 {
		delete(tc.NextActorState, actor.ID)
		tc.Counters.InsectsOldAge++
		return
	}
	if actor.ReproductionCooldown > 0 {
		actor.ReproductionCooldown--
	}

	candidates := tc.FlowerQtree.QueryRadius(actor.X, actor.Y, tc.Params.InsectVisionRadius)

	var moveTo *Coord
	if actor.Pollen != nil {
		moveTo = pickDispersalTarget(tc, actor, candidates)
	} else {
		moveTo = pickClosestFlower(tc, actor, candidates)
	}
	if moveTo != nil {
		actor.X += stepSign(actor.X, moveTo.X)
		actor.Y += stepSign(actor.Y, moveTo.Y)
	}

	onFlower := flowerAt(tc.NextActorState, actor.X, actor.Y)
	if onFlower == nil {
		return
	}

	if actor.Pollen == nil {
		actor.Pollen = &Pollen{Genome: onFlower.Genome, SourceFlowerID: onFlower.ID}
		return
	}

	if actor.Pollen.SourceFlowerID != onFlower.ID && onFlower.IsMature && actor.ReproductionCooldown == 0 {
		if target, ok := freeNeighbor(tc, onFlower.X, onFlower.Y); ok {
			tc.requestFlower(target.X, target.Y, actor.Pollen.Genome, onFlower.Genome)
			actor.Pollen = nil
			actor.ReproductionCooldown = tc.Params.ReproductionCooldownTicks
			tc.Counters.Reproductions++
			tc.emit("insects cross-pollinated a flower", EventInfo, ImportanceLow)
		}
	}
}

// pickDispersalTarget picks the closest candidate flower other than the pollen's
// source flower, to spread pollen rather than redeposit it on the source.
// Flowers that share the source's genome are not excluded.
func pickDispersalTarget(tc *TickContext, actor *Actor, candidates []*Actor) *Coord {
	var best *Actor
	bestDist := math.MaxFloat64
	for _, c := range candidates {
		if c.ID == actor.Pollen.SourceFlowerID {
			continue
		}
		d := euclidean(actor.X, actor.Y, c.X, c.Y)
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	if best == nil {
		return nil
	}
	return &Coord{X: best.X, Y: best.Y}
}

// pickClosestFlower scores candidates by (max_health - health), the spec's
// "closest mature flower" tiebreaker, breaking true ties with a random draw.
func pickClosestFlower(tc *TickContext, actor *Actor, candidates []*Actor) *Coord {
	var best *Actor
	bestScore := -math.MaxFloat64
	for _, c := range candidates {
		if !c.IsMature {
			continue
		}
		score := c.MaxHealth - c.Health
		if score > bestScore || (score == bestScore && tc.Rng.Intn(2) == 0) {
			bestScore = score
			best = c
		}
	}
	if best == nil {
		return nil
	}
	return &Coord{X: best.X, Y: best.Y}
}

func flowerAt(actors map[string]*Actor, x, y int) *Actor {
	for _, a := range actors {
		if a.Type == ActorFlower && a.X == x && a.Y == y {
			return a
		}
	}
	return nil
}

func euclidean(x1, y1, x2, y2 int) float64 {
	dx := float64(x1 - x2)
	dy := float64(y1 - y2)
	return math.Sqrt(dx*dx + dy*dy)
}
