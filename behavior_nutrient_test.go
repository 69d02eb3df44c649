package main

import "testing"

func TestHealNutrientsHealsNearbyFlowerAndIsConsumed(t *testing.T) {
	tc := newTestTickContext(t)
	flower := &Actor{ID: "flower1", Type: ActorFlower, X: 5, Y: 5, Health: 10, MaxHealth: 100, Stamina: 10, MaxStamina: 100, NutrientEfficiency: 1}
	nutrient := &Actor{ID: "n1", Type: ActorNutrient, X: 5, Y: 5, Lifespan: 10}
	tc.NextActorState[flower.ID] = flower
	tc.NextActorState[nutrient.ID] = nutrient
	tc.Qtree = BuildQuadtree(tc.Width, tc.Height, tc.NextActorState, nil)

	healNutrients(tc)

	if _, ok := tc.NextActorState[nutrient.ID]; ok {
		t.Fatal("expected nutrient to be consumed after healing")
	}
	if flower.Health <= 10 {
		t.Errorf("expected flower health to increase above 10, got %v", flower.Health)
	}
}

func TestHealNutrientsCapsAtMax(t *testing.T) {
	tc := newTestTickContext(t)
	flower := &Actor{ID: "flower1", Type: ActorFlower, X: 5, Y: 5, Health: 99, MaxHealth: 100, Stamina: 99, MaxStamina: 100, NutrientEfficiency: 1}
	nutrient := &Actor{ID: "n1", Type: ActorNutrient, X: 5, Y: 5}
	tc.Params.FlowerNutrientHeal = 50
	tc.NextActorState[flower.ID] = flower
	tc.NextActorState[nutrient.ID] = nutrient
	tc.Qtree = BuildQuadtree(tc.Width, tc.Height, tc.NextActorState, nil)

	healNutrients(tc)

	if flower.Health != flower.MaxHealth {
		t.Errorf("expected health capped at max %v, got %v", flower.MaxHealth, flower.Health)
	}
	if flower.Stamina != flower.MaxStamina {
		t.Errorf("expected stamina capped at max %v, got %v", flower.MaxStamina, flower.Stamina)
	}
}

func TestHealNutrientsIgnoresDistantFlowers(t *testing.T) {
	tc := newTestTickContext(t)
	flower := &Actor{ID: "flower1", Type: ActorFlower, X: 0, Y: 0, Health: 10, MaxHealth: 100}
	nutrient := &Actor{ID: "n1", Type: ActorNutrient, X: 9, Y: 9}
	tc.NextActorState[flower.ID] = flower
	tc.NextActorState[nutrient.ID] = nutrient
	tc.Qtree = BuildQuadtree(tc.Width, tc.Height, tc.NextActorState, nil)

	healNutrients(tc)

	if flower.Health != 10 {
		t.Errorf("expected distant flower unaffected, got health %v", flower.Health)
	}
}
