package main

import "testing"

func TestBehaviorBirdAcquiresAndEatsAdjacentInsect(t *testing.T) {
	tc := newTestTickContext(t)
	bird := &Actor{ID: "bird1", Type: ActorBird, X: 5, Y: 5}
	insect := &Actor{ID: "insect1", Type: ActorInsect, X: 6, Y: 5}
	tc.NextActorState[bird.ID] = bird
	tc.NextActorState[insect.ID] = insect
	tc.Qtree = BuildQuadtree(tc.Width, tc.Height, tc.NextActorState, nil)

	behaviorBird(tc, bird)

	if _, ok := tc.NextActorState[insect.ID]; ok {
		t.Fatal("expected adjacent insect to be eaten")
	}
	if tc.Counters.InsectsEaten != 1 {
		t.Errorf("expected insects-eaten counter incremented, got %d", tc.Counters.InsectsEaten)
	}

	var nutrientDropped bool
	for _, a := range tc.NextActorState {
		if a.Type == ActorNutrient {
			nutrientDropped = true
		}
	}
	if !nutrientDropped {
		t.Error("expected a nutrient to be dropped where the insect was eaten")
	}
}

func TestBehaviorBirdIgnoresProtectedPrey(t *testing.T) {
	tc := newTestTickContext(t)
	bird := &Actor{ID: "bird1", Type: ActorBird, X: 5, Y: 5}
	flower := &Actor{ID: "flower1", Type: ActorFlower, X: 6, Y: 5}
	insect := &Actor{ID: "insect1", Type: ActorInsect, X: 6, Y: 5}
	tc.NextActorState[bird.ID] = bird
	tc.NextActorState[flower.ID] = flower
	tc.NextActorState[insect.ID] = insect
	tc.Qtree = BuildQuadtree(tc.Width, tc.Height, tc.NextActorState, nil)

	if prey := acquirePreyTarget(tc, bird, tc.Params.BirdVisionRadius); prey != nil {
		t.Fatalf("expected insect co-located with a flower to be protected, got %+v", prey)
	}
}

func TestBirdOccupies(t *testing.T) {
	actors := map[string]*Actor{
		"b1": {ID: "b1", Type: ActorBird, X: 2, Y: 2},
	}
	if !birdOccupies(actors, 2, 2, "other") {
		t.Error("expected cell to be reported occupied by a different bird")
	}
	if birdOccupies(actors, 2, 2, "b1") {
		t.Error("expected a bird to not occupy its own cell for exclusion purposes")
	}
}

func TestRandomMatureFlowerOnlyReturnsMature(t *testing.T) {
	tc := newTestTickContext(t)
	tc.NextActorState["immature"] = &Actor{Type: ActorFlower, IsMature: false}
	tc.NextActorState["mature"] = &Actor{ID: "mature", Type: ActorFlower, IsMature: true}

	flower := randomMatureFlower(tc)
	if flower == nil || !flower.IsMature {
		t.Fatalf("expected only the mature flower to be returned, got %+v", flower)
	}
}
