package main

import (
	"math/rand"
	"testing"

	"go.uber.org/zap"
)

func newTestTickContext(t *testing.T) *TickContext {
	t.Helper()
	ff := NewFlowerFactory(8, zap.NewNop())
	return &TickContext{
		GridSnapshot:   map[string]*Actor{},
		Params:         DefaultSimulationParams(),
		NextActorState: map[string]*Actor{},
		Events:         NewEventCollector(100),
		Counters:       &Counters{},
		FlowerFactory:  ff,
		NewActorQueue:  map[string]*Actor{},
		PendingSeeds:   map[string]string{},
		Rng:            rand.New(rand.NewSource(1)),
		Width:          10,
		Height:         10,
	}
}

func TestEmitStampsCurrentTick(t *testing.T) {
	tc := newTestTickContext(t)
	tc.Tick = 7
	tc.emit("something happened", EventInfo, ImportanceLow)

	all := tc.Events.All()
	if len(all) != 1 || all[0].Tick != 7 {
		t.Fatalf("expected one event stamped with tick 7, got %+v", all)
	}
}

func TestRequestFlowerQueuesSeedAndPendingMapping(t *testing.T) {
	tc := newTestTickContext(t)
	tc.requestFlower(2, 3, "AABB", "")

	if len(tc.NewActorQueue) != 1 {
		t.Fatalf("expected one seed queued, got %d", len(tc.NewActorQueue))
	}
	var seed *Actor
	for _, a := range tc.NewActorQueue {
		seed = a
	}
	if seed.Type != ActorFlowerSeed || seed.X != 2 || seed.Y != 3 {
		t.Fatalf("unexpected seed placeholder: %+v", seed)
	}
	if len(tc.PendingSeeds) != 1 {
		t.Fatalf("expected one pending seed correlation entry, got %d", len(tc.PendingSeeds))
	}
	if tc.FlowerFactory.PendingCount() != 1 {
		t.Fatalf("expected one pending flower factory request, got %d", tc.FlowerFactory.PendingCount())
	}
}

func TestStepSign(t *testing.T) {
	if stepSign(1, 5) != 1 {
		t.Error("expected +1 stepping toward a larger value")
	}
	if stepSign(5, 1) != -1 {
		t.Error("expected -1 stepping toward a smaller value")
	}
	if stepSign(3, 3) != 0 {
		t.Error("expected 0 stepping toward the same value")
	}
}

func TestInBounds(t *testing.T) {
	if !inBounds(0, 0, 5, 5) {
		t.Error("expected (0,0) to be in bounds")
	}
	if inBounds(5, 0, 5, 5) {
		t.Error("expected (5,0) to be out of bounds on a 5-wide grid")
	}
	if inBounds(-1, 0, 5, 5) {
		t.Error("expected negative coordinates to be out of bounds")
	}
}

func TestNeighbors4And8Counts(t *testing.T) {
	if len(neighbors4(2, 2)) != 4 {
		t.Error("expected neighbors4 to return 4 coordinates")
	}
	if len(neighbors8(2, 2)) != 8 {
		t.Error("expected neighbors8 to return 8 coordinates")
	}
}
