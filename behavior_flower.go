package main

// behaviorFlower advances one flower actor for one tick (spec §4.3.1). Grounded
// on the teacher's plant.go growth/stamina/stress update shape, narrowed to the
// spec's closed flower field set.
func behaviorFlower(tc *TickContext, a *Actor) {
	actor, ok := tc.NextActorState[a.ID]
	if !ok {
		return
	}

	actor.Age++
	if actor.Age >= actor.MaturationPeriod {
		actor.IsMature = true
	}

	if actor.Stamina < actor.MaxStamina {
		actor.Stamina += actor.MaxStamina * 0.02
		if actor.Stamina > actor.MaxStamina {
			actor.Stamina = actor.MaxStamina
		}
	}

	if tc.CurrentTemperature < actor.MinTemp {
		overshoot := actor.MinTemp - tc.CurrentTemperature
		actor.Health -= overshoot * 0.5
	} else if tc.CurrentTemperature > actor.MaxTemp {
		overshoot := tc.CurrentTemperature - actor.MaxTemp
		actor.Health -= overshoot * 0.5
	}

	if actor.Health <= 0 {
		delete(tc.NextActorState, actor.ID)
		return
	}

	if actor.IsMature && actor.Stamina > actor.MaxStamina*0.5 {
		if target, ok := freeNeighbor(tc, actor.X, actor.Y); ok {
			actor.Stamina -= actor.MaxStamina * 0.3
			tc.requestFlower(target.X, target.Y, actor.Genome, "")
		}
	}
}

// freeNeighbor finds a 4-connected neighbor cell with no flower or seed present
// in next_actor_state, used by flower self-propagation and insect reproduction.
func freeNeighbor(tc *TickContext, x, y int) (Coord, bool) {
	occupied := make(map[Coord]bool)
	for _, a := range tc.NextActorState {
		if a.IsFlowerOrSeed() {
			occupied[Coord{X: a.X, Y: a.Y}] = true
		}
	}
	for _, d := range neighbors4(x, y) {
		c := Coord{X: d[0], Y: d[1]}
		if inBounds(c.X, c.Y, tc.Width, tc.Height) && !occupied[c] {
			return c, true
		}
	}
	return Coord{}, false
}
