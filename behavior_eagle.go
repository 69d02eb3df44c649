package main

import "math"

// behaviorEagle advances one eagle actor for one tick (spec §4.3.4): identical
// acquire/pursue pattern to a bird, but hunting birds instead of insects/eggs,
// with no nutrient drop on a kill.
func behaviorEagle(tc *TickContext, a *Actor) {
	actor, ok := tc.NextActorState[a.ID]
	if !ok {
		return
	}

	if actor.Target == nil {
		if prey := acquireBirdTarget(tc, actor); prey != nil {
			actor.Target = &Coord{X: prey.X, Y: prey.Y}
		}
	}

	if actor.Target == nil {
		return
	}

	prey := actorAt(tc.NextActorState, actor.Target.X, actor.Target.Y, func(x *Actor) bool { return x.Type == ActorBird })
	if prey == nil {
		actor.Target = nil
		return
	}

	actor.X += stepSign(actor.X, actor.Target.X)
	actor.Y += stepSign(actor.Y, actor.Target.Y)
	if actor.X == actor.Target.X && actor.Y == actor.Target.Y {
		delete(tc.NextActorState, prey.ID)
		tc.Counters.BirdsHunted++
		actor.Target = nil
	}
}

// acquireBirdTarget finds the closest bird within vision radius, for eagle
// target acquisition.
func acquireBirdTarget(tc *TickContext, actor *Actor) *Actor {
	candidates := tc.Qtree.QueryRadius(actor.X, actor.Y, tc.Params.EagleVisionRadius)
	var best *Actor
	bestDist := math.MaxFloat64
	for _, c := range candidates {
		if c.Type != ActorBird {
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
