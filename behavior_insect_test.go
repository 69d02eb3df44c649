package main

import "testing"

func TestBehaviorInsectDiesAtEndOfLifespan(t *testing.T) {
	tc := newTestTickContext(t)
	insect := &Actor{ID: "i1", Type: ActorInsect, Lifespan: 1}
	tc.NextActorState[insect.ID] = insect
	tc.FlowerQtree = BuildQuadtree(tc.Width, tc.Height, tc.NextActorState, nil)

	behaviorInsect(tc, insect)

	if _, ok := tc.NextActorState[insect.ID]; ok {
		t.Fatal("expected insect to be removed once lifespan reaches zero")
	}
	if tc.Counters.InsectsOldAge != 1 {
		t.Errorf("expected old-age counter incremented, got %d", tc.Counters.InsectsOldAge)
	}
}

func TestBehaviorInsectPicksUpPollenOnMatureFlower(t *testing.T) {
	tc := newTestTickContext(t)
	flower := &Actor{ID: "flower1", Type: ActorFlower, Genome: "AABB", X: 3, Y: 3, IsMature: true}
	insect := &Actor{ID: "i1", Type: ActorInsect, Lifespan: 10, X: 3, Y: 3}
	tc.NextActorState[flower.ID] = flower
	tc.NextActorState[insect.ID] = insect
	tc.FlowerQtree = BuildQuadtree(tc.Width, tc.Height, tc.NextActorState, func(a *Actor) bool { return a.Type == ActorFlower })

	behaviorInsect(tc, insect)

	if insect.Pollen == nil {
		t.Fatal("expected insect standing on a flower to pick up pollen")
	}
	if insect.Pollen.SourceFlowerID != flower.ID {
		t.Errorf("expected pollen source to be %q, got %q", flower.ID, insect.Pollen.SourceFlowerID)
	}
}

func TestBehaviorInsectCrossPollinatesDifferentFlower(t *testing.T) {
	tc := newTestTickContext(t)
	source := &Actor{ID: "source", Type: ActorFlower, Genome: "AABB", X: 0, Y: 0, IsMature: true}
	target := &Actor{ID: "target", Type: ActorFlower, Genome: "CCDD", X: 3, Y: 3, IsMature: true}
	insect := &Actor{ID: "i1", Type: ActorInsect, Lifespan: 10, X: 3, Y: 3, Pollen: &Pollen{Genome: "AABB", SourceFlowerID: source.ID}}
	tc.NextActorState[source.ID] = source
	tc.NextActorState[target.ID] = target
	tc.NextActorState[insect.ID] = insect
	tc.FlowerQtree = BuildQuadtree(tc.Width, tc.Height, tc.NextActorState, func(a *Actor) bool { return a.Type == ActorFlower })

	behaviorInsect(tc, insect)

	if insect.Pollen != nil {
		t.Error("expected pollen to be consumed by cross-pollination")
	}
	if len(tc.NewActorQueue) != 1 {
		t.Fatalf("expected a seed request from cross-pollination, got %d", len(tc.NewActorQueue))
	}
	if tc.Counters.Reproductions != 1 {
		t.Errorf("expected reproduction counter incremented, got %d", tc.Counters.Reproductions)
	}
}

func TestPickClosestFlowerPrefersGreaterHealthDeficitOverDistance(t *testing.T) {
	tc := newTestTickContext(t)
	actor := &Actor{ID: "i1", X: 0, Y: 0}
	near := &Actor{ID: "near", X: 1, Y: 0, IsMature: true, MaxHealth: 100, Health: 90}
	far := &Actor{ID: "far", X: 5, Y: 0, IsMature: true, MaxHealth: 100, Health: 10}

	got := pickClosestFlower(tc, actor, []*Actor{near, far})

	if got == nil || got.X != far.X || got.Y != far.Y {
		t.Fatalf("expected the more health-depleted flower to win despite being farther, got %+v", got)
	}
}

func TestPickClosestFlowerIgnoresImmatureFlowers(t *testing.T) {
	tc := newTestTickContext(t)
	actor := &Actor{ID: "i1", X: 0, Y: 0}
	immature := &Actor{ID: "immature", X: 1, Y: 0, IsMature: false, MaxHealth: 100, Health: 1}

	if got := pickClosestFlower(tc, actor, []*Actor{immature}); got != nil {
		t.Fatalf("expected no target among only-immature candidates, got %+v", got)
	}
}

func TestFlowerAtFindsOnlyFlowers(t *testing.T) {
	actors := map[string]*Actor{
		"flower": {Type: ActorFlower, X: 1, Y: 1},
		"seed":   {Type: ActorFlowerSeed, X: 2, Y: 2},
	}
	if flowerAt(actors, 1, 1) == nil {
		t.Error("expected to find the flower at (1,1)")
	}
	if flowerAt(actors, 2, 2) != nil {
		t.Error("expected a flower seed to not match flowerAt")
	}
}
