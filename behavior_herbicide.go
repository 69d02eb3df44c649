package main

// behaviorHerbicidePlane advances one plane actor for one tick (spec §4.3.7): it
// drops smoke at its current cell, then sweeps in a serpentine pattern,
// reversing and turning at grid edges, and self-removes once a turn still
// leaves it out of bounds.
func behaviorHerbicidePlane(tc *TickContext, a *Actor) {
	actor, ok := tc.NextActorState[a.ID]
	if !ok {
		return
	}

	if !smokeAt(tc.NextActorState, actor.X, actor.Y) {
		id := newActorID()
		tc.NextActorState[id] = &Actor{ID: id, Type: ActorHerbicideSmoke, X: actor.X, Y: actor.Y, Lifespan: tc.Params.HerbicideSmokeLifespan, CanBeExpanded: true}
	}

	nx, ny := actor.X+actor.DX, actor.Y+actor.DY
	if inBounds(nx, ny, tc.Width, tc.Height) {
		actor.X, actor.Y = nx, ny
		return
	}

	tx, ty := actor.X+actor.TurnDX, actor.Y+actor.TurnDY
	actor.DX, actor.DY = -actor.DX, -actor.DY
	if inBounds(tx, ty, tc.Width, tc.Height) {
		actor.X, actor.Y = tx, ty
		return
	}

	delete(tc.NextActorState, actor.ID)
}

// behaviorHerbicideSmoke advances one smoke actor for one tick (spec §4.3.8):
// damages co-located flowers, optionally expands once to its 8 neighbors, and
// decrements lifespan to removal.
func behaviorHerbicideSmoke(tc *TickContext, a *Actor) {
	actor, ok := tc.NextActorState[a.ID]
	if !ok {
		return
	}

	for _, target := range tc.NextActorState {
		if target.IsFlowerOrSeed() && target.X == actor.X && target.Y == actor.Y {
			target.Health -= tc.Params.HerbicideDamage
			if target.Health <= 0 {
				delete(tc.NextActorState, target.ID)
			}
		}
	}

	if actor.CanBeExpanded {
		for _, d := range neighbors8(actor.X, actor.Y) {
			nx, ny := d[0], d[1]
			if !inBounds(nx, ny, tc.Width, tc.Height) {
				continue
			}
			if smokeAt(tc.NextActorState, nx, ny) {
				continue
			}
			id := newActorID()
			tc.NextActorState[id] = &Actor{ID: id, Type: ActorHerbicideSmoke, X: nx, Y: ny, Lifespan: actor.Lifespan, CanBeExpanded: false}
		}
		actor.CanBeExpanded = false
	}

	actor.Lifespan--
	if actor.Lifespan <= 0 {
		delete(tc.NextActorState, actor.ID)
	}
}

func smokeAt(actors map[string]*Actor, x, y int) bool {
	for _, a := range actors {
		if a.Type == ActorHerbicideSmoke && a.X == x && a.Y == y {
			return true
		}
	}
	return false
}
