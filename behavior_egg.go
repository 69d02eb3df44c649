package main

// behaviorEgg advances one egg actor for one tick (spec §4.3.5): counts down a
// hatch timer and hatches into an insect unless a bird now occupies the cell.
func behaviorEgg(tc *TickContext, a *Actor) {
	actor, ok := tc.NextActorState[a.ID]
	if !ok {
		return
	}

	actor.HatchTimer--
	if actor.HatchTimer > 0 {
		return
	}

	delete(tc.NextActorState, actor.ID)

	if birdOccupies(tc.NextActorState, actor.X, actor.Y, "") {
		return
	}

	id := newActorID()
	tc.NextActorState[id] = &Actor{
		ID:       id,
		Type:     ActorInsect,
		X:        actor.X,
		Y:        actor.Y,
		Emoji:    actor.InsectEmoji,
		Lifespan: tc.Params.InsectDefaultLifespan,
	}
	tc.Counters.InsectsBorn++
	tc.emit("an egg hatched", EventSuccess, ImportanceLow)
}
