package main

import "math"

// behaviorBird advances one bird actor for one tick (spec §4.3.3). State
// machine: acquire target, pursue, else patrol, plus an independent chance to
// drop a nutrient. Grounded on the teacher's predator pursuit loops, narrowed
// to the spec's target/patrol_target coordinate pair.
func behaviorBird(tc *TickContext, a *Actor) {
	actor, ok := tc.NextActorState[a.ID]
	if !ok {
		return
	}

	moved := false

	if actor.Target == nil {
		if prey := acquirePreyTarget(tc, actor, tc.Params.BirdVisionRadius); prey != nil {
			actor.Target = &Coord{X: prey.X, Y: prey.Y}
		}
	}

	if actor.Target != nil {
		prey := actorAt(tc.NextActorState, actor.Target.X, actor.Target.Y, isUnprotectedPrey(tc.NextActorState))
		if prey == nil {
			actor.Target = nil
		} else {
			if birdOccupies(tc.NextActorState, actor.Target.X, actor.Target.Y, actor.ID) {
				actor.Target = nil
			} else {
				actor.X += stepSign(actor.X, actor.Target.X)
				actor.Y += stepSign(actor.Y, actor.Target.Y)
				moved = true
				if actor.X == actor.Target.X && actor.Y == actor.Target.Y {
					delete(tc.NextActorState, prey.ID)
					if prey.Type == ActorInsect {
						nid := newActorID()
						tc.NextActorState[nid] = &Actor{ID: nid, Type: ActorNutrient, X: actor.X, Y: actor.Y, Lifespan: tc.Params.NutrientFromPreyLifespan}
						tc.Counters.InsectsEaten++
					} else if prey.Type == ActorEgg {
						tc.Counters.EggsEaten++
					}
					actor.Target = nil
				}
			}
		}
	}

	if !moved {
		if actor.PatrolTarget == nil {
			if flower := randomMatureFlower(tc); flower != nil {
				actor.PatrolTarget = &Coord{X: flower.X, Y: flower.Y}
			}
		}
		if actor.PatrolTarget != nil {
			if birdOccupies(tc.NextActorState, actor.PatrolTarget.X, actor.PatrolTarget.Y, actor.ID) {
				actor.PatrolTarget = nil
			} else {
				actor.X += stepSign(actor.X, actor.PatrolTarget.X)
				actor.Y += stepSign(actor.Y, actor.PatrolTarget.Y)
				if actor.X == actor.PatrolTarget.X && actor.Y == actor.PatrolTarget.Y {
					actor.PatrolTarget = nil
				}
			}
		} else {
			randomWalk(tc, actor)
		}
	}

	if tc.Rng.Float64() < tc.Params.BirdDropNutrientChance {
		if coord, ok := findEmptyOfNutrient(tc.NextActorState, tc.Width, tc.Height, tc.Rng); ok {
			nid := newActorID()
			tc.NextActorState[nid] = &Actor{ID: nid, Type: ActorNutrient, X: coord.X, Y: coord.Y, Lifespan: tc.Params.NutrientFromPreyLifespan}
		}
	}
}

func isUnprotectedPrey(actors map[string]*Actor) func(*Actor) bool {
	return func(a *Actor) bool {
		if a.Type != ActorInsect && a.Type != ActorEgg {
			return false
		}
		for _, other := range actors {
			if other.IsFlowerOrSeed() && other.X == a.X && other.Y == a.Y {
				return false
			}
		}
		return true
	}
}

func acquirePreyTarget(tc *TickContext, actor *Actor, radius int) *Actor {
	candidates := tc.Qtree.QueryRadius(actor.X, actor.Y, radius)
	filter := isUnprotectedPrey(tc.NextActorState)
	var best *Actor
	bestDist := math.MaxFloat64
	for _, c := range candidates {
		if !filter(c) {
			continue
		}
		d := euclidean(actor.X, actor.Y, c.X, c.Y)
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

func actorAt(actors map[string]*Actor, x, y int, filter func(*Actor) bool) *Actor {
	for _, a := range actors {
		if a.X == x && a.Y == y && (filter == nil || filter(a)) {
			return a
		}
	}
	return nil
}

func birdOccupies(actors map[string]*Actor, x, y int, excludeID string) bool {
	for _, a := range actors {
		if a.Type == ActorBird && a.ID != excludeID && a.X == x && a.Y == y {
			return true
		}
	}
	return false
}

func randomMatureFlower(tc *TickContext) *Actor {
	var mature []*Actor
	for _, a := range tc.NextActorState {
		if a.Type == ActorFlower && a.IsMature {
			mature = append(mature, a)
		}
	}
	if len(mature) == 0 {
		return nil
	}
	return mature[tc.Rng.Intn(len(mature))]
}

func randomWalk(tc *TickContext, actor *Actor) {
	dirs := neighbors4(actor.X, actor.Y)
	d := dirs[tc.Rng.Intn(len(dirs))]
	if inBounds(d[0], d[1], tc.Width, tc.Height) {
		actor.X, actor.Y = d[0], d[1]
	}
}

func findEmptyOfNutrient(actors map[string]*Actor, width, height int, rng interface{ Intn(int) int }) (Coord, bool) {
	occupied := make(map[Coord]bool)
	for _, a := range actors {
		if a.Type == ActorNutrient {
			occupied[Coord{X: a.X, Y: a.Y}] = true
		}
	}
	for tries := 0; tries < 50; tries++ {
		c := Coord{X: rng.Intn(width), Y: rng.Intn(height)}
		if !occupied[c] {
			return c, true
		}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := Coord{X: x, Y: y}
			if !occupied[c] {
				return c, true
			}
		}
	}
	return Coord{}, false
}
