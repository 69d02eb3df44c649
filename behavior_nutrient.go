package main

// healNutrients runs the nutrient healing phase before per-actor behaviors
// (spec §4.3.6): each nutrient heals every flower in its 3x3 box once, then is
// consumed. It is an engine phase, not a per-actor behavior, because it must
// run before the behavior pass changes flower health and stamina.
func healNutrients(tc *TickContext) {
	var nutrients []*Actor
	for _, a := range tc.NextActorState {
		if a.Type == ActorNutrient {
			nutrients = append(nutrients, a)
		}
	}

	for _, n := range nutrients {
		if _, ok := tc.NextActorState[n.ID]; !ok {
			continue
		}
		nearby := tc.Qtree.QueryRadius(n.X, n.Y, 1)
		for _, candidate := range nearby {
			flower, ok := tc.NextActorState[candidate.ID]
			if !ok || flower.Type != ActorFlower {
				continue
			}
			heal := tc.Params.FlowerNutrientHeal * flower.NutrientEfficiency
			flower.Health += heal
			if flower.Health > flower.MaxHealth {
				flower.Health = flower.MaxHealth
			}
			flower.Stamina += heal
			if flower.Stamina > flower.MaxStamina {
				flower.Stamina = flower.MaxStamina
			}
		}
		delete(tc.NextActorState, n.ID)
	}
}
