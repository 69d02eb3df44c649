package main

import (
	"testing"

	"go.uber.org/zap"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	params := DefaultSimulationParams()
	params.GridWidth, params.GridHeight = 10, 10
	params.InitialFlowers, params.InitialInsects = 3, 3
	ff := NewFlowerFactory(8, zap.NewNop())
	return NewEngine(params, zap.NewNop(), ff, 1)
}

func TestNewEngineSeedsInitialPopulation(t *testing.T) {
	e := newTestEngine(t)
	var flowers, insects int
	for _, a := range e.actors {
		switch a.Type {
		case ActorFlower:
			flowers++
		case ActorInsect:
			insects++
		}
	}
	if flowers != 3 {
		t.Errorf("expected 3 initial flowers, got %d", flowers)
	}
	if insects != 3 {
		t.Errorf("expected 3 initial insects, got %d", insects)
	}
}

func TestDispatchBehaviorExhaustiveSwitchDoesNotPanic(t *testing.T) {
	tc := newTestTickContext(t)
	for _, typ := range []ActorType{
		ActorFlower, ActorFlowerSeed, ActorInsect, ActorBird, ActorEagle,
		ActorEgg, ActorNutrient, ActorHerbicidePlane, ActorHerbicideSmoke,
	} {
		a := &Actor{ID: "a1", Type: typ, X: 1, Y: 1, Lifespan: 10, HatchTimer: 1}
		tc.NextActorState[a.ID] = a
		tc.Qtree = BuildQuadtree(tc.Width, tc.Height, tc.NextActorState, nil)
		tc.FlowerQtree = BuildQuadtree(tc.Width, tc.Height, tc.NextActorState, func(x *Actor) bool {
			return x.Type == ActorFlower
		})
		dispatchBehavior(tc, a)
		delete(tc.NextActorState, a.ID)
	}
}

func TestStepAdvancesTickAndReturnsDeltas(t *testing.T) {
	e := newTestEngine(t)
	startTick := e.tick

	result := e.Step()

	if e.tick != startTick+1 {
		t.Fatalf("expected tick to advance by 1, got %d -> %d", startTick, e.tick)
	}
	if result.Summary.Tick != startTick {
		t.Errorf("expected summary stamped with pre-increment tick %d, got %d", startTick, result.Summary.Tick)
	}
	if len(result.Deltas) == 0 {
		t.Error("expected a tick over a populated grid to return deltas")
	}
}

func TestResolveFlowerExclusivityKeepsOnlyOnePerCell(t *testing.T) {
	actors := map[string]*Actor{
		"a": {ID: "a", Type: ActorFlower, X: 1, Y: 1},
		"b": {ID: "b", Type: ActorFlowerSeed, X: 1, Y: 1},
		"c": {ID: "c", Type: ActorFlower, X: 2, Y: 2},
	}
	resolveFlowerExclusivity(actors)

	count := 0
	for _, a := range actors {
		if a.X == 1 && a.Y == 1 {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one flower/seed to survive at (1,1), got %d", count)
	}
	if _, ok := actors["c"]; !ok {
		t.Error("expected unrelated flower at a different cell to survive untouched")
	}
}

func TestSpringRepopulateRefillsEmptyFlowersAndInsects(t *testing.T) {
	e := newTestEngine(t)
	next := map[string]*Actor{}

	e.springRepopulate(next)

	var flowers, insects int
	for _, a := range next {
		switch {
		case a.IsFlowerOrSeed():
			flowers++
		case a.Type == ActorInsect:
			insects++
		}
	}
	if flowers != e.params.InitialFlowers {
		t.Errorf("expected %d flowers repopulated, got %d", e.params.InitialFlowers, flowers)
	}
	if insects != e.params.InitialInsects {
		t.Errorf("expected %d insects repopulated, got %d", e.params.InitialInsects, insects)
	}
}

func TestSpringRepopulateLeavesNonEmptyPopulationsAlone(t *testing.T) {
	e := newTestEngine(t)
	next := map[string]*Actor{
		"f1": {ID: "f1", Type: ActorFlower, X: 0, Y: 0},
		"i1": {ID: "i1", Type: ActorInsect, X: 1, Y: 1},
	}

	e.springRepopulate(next)

	if len(next) != 2 {
		t.Fatalf("expected no new actors when populations are non-empty, got %d total", len(next))
	}
}

func TestDrainCompletedFlowersAgesSeedsAndIgnoresUnknownRequests(t *testing.T) {
	e := newTestEngine(t)
	next := map[string]*Actor{
		"seed1": {ID: "seed1", Type: ActorFlowerSeed, Age: 2},
	}

	events := e.drainCompletedFlowers(next)

	if next["seed1"].Age != 3 {
		t.Errorf("expected seed to age by one tick regardless of factory activity, got age %d", next["seed1"].Age)
	}
	if len(events) != 0 {
		t.Errorf("expected no bloom events with no completions, got %d", len(events))
	}
}

func TestDrainCompletedFlowersResolvesPendingSeedIntoFlower(t *testing.T) {
	e := newTestEngine(t)
	next := map[string]*Actor{
		"seed1": {ID: "seed1", Type: ActorFlowerSeed, Age: 25, X: 4, Y: 4},
	}
	e.pendingSeeds["req1"] = "seed1"
	e.flowerFactory.completions <- FlowerCompletion{
		RequestID: "req1",
		Flower:    &Actor{Type: ActorFlower, MaturationPeriod: 20},
	}

	events := e.drainCompletedFlowers(next)

	var bloomed *Actor
	for _, a := range next {
		if a.Type == ActorFlower {
			bloomed = a
		}
	}
	if bloomed == nil {
		t.Fatal("expected a flower to replace the completed seed")
	}
	if bloomed.ID != "seed1" || bloomed.X != 4 || bloomed.Y != 4 {
		t.Errorf("expected bloomed flower to inherit seed id and position, got %+v", bloomed)
	}
	if !bloomed.IsMature {
		t.Error("expected flower aged past its maturation period to start mature")
	}
	if len(events) != 1 {
		t.Fatalf("expected one bloom event, got %d", len(events))
	}
	if _, stillPending := e.pendingSeeds["req1"]; stillPending {
		t.Error("expected pending seed correlation to be cleared once resolved")
	}
}

func TestDrainCompletedFlowersDropsSeedOnSynthesisFailure(t *testing.T) {
	e := newTestEngine(t)
	next := map[string]*Actor{
		"seed1": {ID: "seed1", Type: ActorFlowerSeed},
	}
	e.pendingSeeds["req1"] = "seed1"
	e.flowerFactory.completions <- FlowerCompletion{RequestID: "req1", Flower: nil}

	e.drainCompletedFlowers(next)

	if _, ok := next["seed1"]; ok {
		t.Error("expected failed synthesis to remove the seed placeholder")
	}
}

func TestRunInsectReproductionPairsAdjacentInsects(t *testing.T) {
	tc := newTestTickContext(t)
	tc.Params.InsectReproductionChance = 1
	tc.Width, tc.Height = 10, 10
	a := &Actor{ID: "i1", Type: ActorInsect, X: 5, Y: 5}
	b := &Actor{ID: "i2", Type: ActorInsect, X: 5, Y: 5}
	tc.NextActorState[a.ID] = a
	tc.NextActorState[b.ID] = b

	e := newTestEngine(t)
	e.runInsectReproduction(tc)

	if a.ReproductionCooldown == 0 || b.ReproductionCooldown == 0 {
		t.Error("expected both paired insects to enter cooldown")
	}
	var eggCount int
	for _, act := range tc.NextActorState {
		if act.Type == ActorEgg {
			eggCount++
		}
	}
	if eggCount != 1 {
		t.Fatalf("expected exactly one egg laid, got %d", eggCount)
	}
}

func TestRunInsectReproductionSkipsInsectsOnCooldown(t *testing.T) {
	tc := newTestTickContext(t)
	tc.Params.InsectReproductionChance = 1
	a := &Actor{ID: "i1", Type: ActorInsect, X: 5, Y: 5, ReproductionCooldown: 5}
	b := &Actor{ID: "i2", Type: ActorInsect, X: 5, Y: 5}
	tc.NextActorState[a.ID] = a
	tc.NextActorState[b.ID] = b

	e := newTestEngine(t)
	e.runInsectReproduction(tc)

	for _, act := range tc.NextActorState {
		if act.Type == ActorEgg {
			t.Fatal("expected no egg when one partner is on cooldown")
		}
	}
}

func TestRunInsectReproductionSkipsDifferentSpecies(t *testing.T) {
	tc := newTestTickContext(t)
	tc.Params.InsectReproductionChance = 1
	a := &Actor{ID: "i1", Type: ActorInsect, X: 5, Y: 5, Emoji: "🐝"}
	b := &Actor{ID: "i2", Type: ActorInsect, X: 5, Y: 5, Emoji: "🦋"}
	tc.NextActorState[a.ID] = a
	tc.NextActorState[b.ID] = b

	e := newTestEngine(t)
	e.runInsectReproduction(tc)

	if a.ReproductionCooldown != 0 || b.ReproductionCooldown != 0 {
		t.Error("expected no pairing between insects of different species")
	}
	for _, act := range tc.NextActorState {
		if act.Type == ActorEgg {
			t.Fatal("expected no egg laid across species")
		}
	}
}

func TestRehydrateReplacesEngineState(t *testing.T) {
	e := newTestEngine(t)
	params := DefaultSimulationParams()
	envelope := SaveEnvelope{
		Params:                      params,
		Actors:                      map[string]*Actor{"a1": {ID: "a1", Type: ActorFlower}},
		Tick:                        42,
		TotalInsectsEaten:           7,
		TotalBirdsHunted:            2,
		TotalHerbicidePlanesSpawned: 1,
	}

	e.rehydrate(envelope)

	if e.tick != 42 {
		t.Errorf("expected tick rehydrated to 42, got %d", e.tick)
	}
	if len(e.actors) != 1 {
		t.Fatalf("expected exactly the rehydrated actor set, got %d", len(e.actors))
	}
	if e.totals.InsectsEaten != 7 || e.totals.BirdsHunted != 2 || e.totals.HerbicidePlanesSpawned != 1 {
		t.Errorf("expected lifetime totals restored from envelope, got %+v", e.totals)
	}
}

func TestRehydrateBackfillsInsectLifespanForOldSaves(t *testing.T) {
	e := newTestEngine(t)
	params := DefaultSimulationParams()
	params.InsectDefaultLifespan = 99
	envelope := SaveEnvelope{
		Params: params,
		Actors: map[string]*Actor{"i1": {ID: "i1", Type: ActorInsect, Lifespan: 0, Emoji: ""}},
		Tick:   0,
	}

	e.rehydrate(envelope)

	if e.actors["i1"].Lifespan != 99 {
		t.Errorf("expected backfilled lifespan 99 for a pre-existing insect with no lifespan, got %d", e.actors["i1"].Lifespan)
	}
}

func TestResetRebuildsFromNewParamsAtTickZero(t *testing.T) {
	e := newTestEngine(t)
	e.Step()
	e.Step()
	if e.tick == 0 {
		t.Fatal("expected tick to have advanced before reset")
	}

	newParams := DefaultSimulationParams()
	newParams.GridWidth, newParams.GridHeight = 20, 20
	newParams.InitialFlowers, newParams.InitialInsects = 5, 5
	e.Reset(newParams)

	if e.tick != 0 {
		t.Errorf("expected tick reset to 0, got %d", e.tick)
	}
	var flowers, insects int
	for _, a := range e.actors {
		switch a.Type {
		case ActorFlower:
			flowers++
		case ActorInsect:
			insects++
		}
	}
	if flowers != 5 || insects != 5 {
		t.Errorf("expected reseeded population matching new params, got %d flowers, %d insects", flowers, insects)
	}
}

func TestStartPauseRunningToggle(t *testing.T) {
	e := newTestEngine(t)
	if e.Running() {
		t.Fatal("expected a new engine to start paused")
	}
	e.Start()
	if !e.Running() {
		t.Error("expected Running() true after Start()")
	}
	e.Pause()
	if e.Running() {
		t.Error("expected Running() false after Pause()")
	}
}

func TestRandomGenomeProducesFixedLengthFromAlphabet(t *testing.T) {
	e := newTestEngine(t)
	g := randomGenome(e.rng)
	if len(g) != 16 {
		t.Fatalf("expected a 16-character genome, got %d: %q", len(g), g)
	}
	for _, c := range g {
		if c != 'A' && c != 'C' && c != 'G' && c != 'T' {
			t.Fatalf("unexpected genome character %q", c)
		}
	}
}
