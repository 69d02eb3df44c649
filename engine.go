package main

import (
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"
)

// totals accumulates lifetime (not per-tick) counters carried in the save
// envelope (spec §6).
type totals struct {
	InsectsEaten            int
	BirdsHunted              int
	HerbicidePlanesSpawned  int
}

// TickResult is what one call to Step returns: the deltas since the previous
// committed grid, the events raised this tick, and the tick summary (spec
// §4.7: "Return {events, summary, deltas}").
type TickResult struct {
	Deltas  []Delta
	Events  []EventRecord
	Summary TickSummary
}

// Engine is the simulation engine described in spec §4.7: it owns the
// committed actor map, drives the per-tick orchestration contract, and wires
// together the environment manager, population manager, and flower factory.
// Grounded on the teacher's World struct (world.go) as the single top-level
// owner of all subsystem state, with World.Update()'s numbered-phase-comment
// style carried into Step.
type Engine struct {
	params *SimulationParams
	logger *zap.Logger
	rng    *rand.Rand

	actors map[string]*Actor
	tick   int

	environment       *EnvironmentManager
	populationManager *PopulationManager
	flowerFactory     *FlowerFactory
	events            *EventCollector

	totals totals

	pendingSeeds map[string]string // request id -> seed actor id

	previousSeason Season
	running        bool
}

// NewEngine builds an engine from params and an initial random population, the
// way the teacher's NewWorld seeds AllEntities/AllPlants from config.
func NewEngine(params *SimulationParams, logger *zap.Logger, flowerFactory *FlowerFactory, seed int64) *Engine {
	rng := rand.New(rand.NewSource(seed))
	e := &Engine{
		params:            params,
		logger:            logger,
		rng:               rng,
		actors:            make(map[string]*Actor),
		environment:       NewEnvironmentManager(params, rng),
		populationManager: NewPopulationManager(params, rng),
		flowerFactory:     flowerFactory,
		events:            NewEventCollector(1000),
		pendingSeeds:       make(map[string]string),
	}
	e.previousSeason = e.environment.State().Season
	e.seedInitialPopulation()
	return e
}

// seedInitialPopulation places InitialFlowers flowers and InitialInsects
// insects at random free cells, used at construction and by Reset.
func (e *Engine) seedInitialPopulation() {
	e.placeRandom(ActorFlower, e.params.InitialFlowers, func() *Actor {
		return &Actor{
			Type:               ActorFlower,
			Health:             100,
			MaxHealth:          100,
			Stamina:            100,
			MaxStamina:         100,
			NutrientEfficiency: 1,
			MinTemp:            e.params.BaseTemperature - e.params.TemperatureAmplitude,
			MaxTemp:            e.params.BaseTemperature + e.params.TemperatureAmplitude,
			MaturationPeriod:   20,
			Genome:             randomGenome(e.rng),
		}
	})
	e.placeRandom(ActorInsect, e.params.InitialInsects, func() *Actor {
		return &Actor{Type: ActorInsect, Lifespan: e.params.InsectDefaultLifespan}
	})
}

func (e *Engine) placeRandom(actorType ActorType, count int, factory func() *Actor) {
	for i := 0; i < count; i++ {
		coord, ok := findEmptyOfType(e.actors, e.params.GridWidth, e.params.GridHeight, actorType, e.rng)
		if !ok {
			coord = Coord{X: e.rng.Intn(e.params.GridWidth), Y: e.rng.Intn(e.params.GridHeight)}
		}
		a := factory()
		a.ID = newActorID()
		a.X, a.Y = coord.X, coord.Y
		e.actors[a.ID] = a
	}
}

func randomGenome(rng *rand.Rand) string {
	const alphabet = "ACGT"
	b := make([]byte, 16)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}

// Step executes exactly one tick of the contract in spec §4.7.
func (e *Engine) Step() TickResult {
	start := time.Now()
	var tickEvents []EventRecord

	// 2. Update environment.
	tickEvents = append(tickEvents, e.environment.Update(e.tick)...)

	// 3. Snapshot.
	initialActors := cloneActorMap(e.actors)
	nextActorState := cloneActorMap(e.actors)

	// 4. Spring repopulation.
	currentSeason := e.environment.State().Season
	if e.previousSeason == Winter && currentSeason == Spring {
		e.springRepopulate(nextActorState)
	}
	e.previousSeason = currentSeason

	// 5. Drain completed flowers.
	tickEvents = append(tickEvents, e.drainCompletedFlowers(nextActorState)...)

	// 6. Decrement manager cooldowns and evaluate population-control spawns.
	tickEvents = append(tickEvents, e.populationManager.Update(e.tick, nextActorState, e.params.GridWidth, e.params.GridHeight)...)

	// 7. Build quadtrees.
	qtree := BuildQuadtree(e.params.GridWidth, e.params.GridHeight, nextActorState, nil)
	flowerQtree := BuildQuadtree(e.params.GridWidth, e.params.GridHeight, nextActorState, func(a *Actor) bool {
		return a.Type == ActorFlower
	})

	counters := &Counters{}
	newActorQueue := make(map[string]*Actor)

	tc := &TickContext{
		GridSnapshot:       initialActors,
		Params:             e.params,
		NextActorState:     nextActorState,
		Qtree:              qtree,
		FlowerQtree:        flowerQtree,
		Events:             e.events,
		Counters:           counters,
		FlowerFactory:      e.flowerFactory,
		NewActorQueue:      newActorQueue,
		PendingSeeds:       e.pendingSeeds,
		CurrentTemperature: e.environment.State().CurrentTemperature,
		Tick:               e.tick,
		Rng:                e.rng,
		Width:              e.params.GridWidth,
		Height:             e.params.GridHeight,
	}

	// 8. Nutrient healing phase.
	healNutrients(tc)

	// 9. Behavior phase: iterate initial_actors in snapshot order (row-major
	// by cell, ties within a cell broken by id).
	order := make([]*Actor, 0, len(initialActors))
	for _, a := range initialActors {
		order = append(order, a)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].Y != order[j].Y {
			return order[i].Y < order[j].Y
		}
		if order[i].X != order[j].X {
			return order[i].X < order[j].X
		}
		return order[i].ID < order[j].ID
	})
	for _, a := range order {
		if _, ok := nextActorState[a.ID]; !ok {
			continue
		}
		dispatchBehavior(tc, a)
	}

	// 10. Insect reproduction phase.
	e.runInsectReproduction(tc)

	// 11. Merge new_actor_queue.
	for id, a := range newActorQueue {
		nextActorState[id] = a
	}

	// 12. Flower/seed exclusivity resolution.
	resolveFlowerExclusivity(nextActorState)

	// Roll up lifetime totals from this tick's counters.
	e.totals.InsectsEaten += counters.InsectsEaten
	e.totals.BirdsHunted += counters.BirdsHunted
	for _, ev := range tickEvents {
		if ev.Message == "a herbicide plane has been dispatched" {
			e.totals.HerbicidePlanesSpawned++
		}
	}

	insectCount, birdCount := 0, 0
	for _, a := range nextActorState {
		switch a.Type {
		case ActorInsect:
			insectCount++
		case ActorBird:
			birdCount++
		}
	}
	e.populationManager.RecordCounts(insectCount, birdCount)

	allEvents := append(tickEvents, tc.Events.Since(e.tick)...)

	// 13. Compute tick summary.
	elapsed := time.Since(start)
	summary := computeTickSummary(e.tick, nextActorState, e.environment.State(), e.params.GridWidth, e.params.GridHeight, float64(elapsed.Microseconds())/1000.0, e.flowerFactory.PendingCount())

	// 14. Compute deltas.
	deltas := ComputeDeltas(initialActors, nextActorState)

	// 15. Commit.
	e.actors = nextActorState

	// 16. tick += 1.
	e.tick++

	return TickResult{Deltas: deltas, Events: allEvents, Summary: summary}
}

func cloneActorMap(actors map[string]*Actor) map[string]*Actor {
	out := make(map[string]*Actor, len(actors))
	for id, a := range actors {
		out[id] = a.Clone()
	}
	return out
}

// dispatchBehavior is the exhaustive switch over ActorType described in spec
// §9's design note: never an interface table, always a closed switch so a new
// actor type fails to compile until handled here.
func dispatchBehavior(tc *TickContext, a *Actor) {
	switch a.Type {
	case ActorFlower:
		behaviorFlower(tc, a)
	case ActorFlowerSeed:
		// seeds age but otherwise wait for the factory; aging happens in
		// drainCompletedFlowers.
	case ActorInsect:
		behaviorInsect(tc, a)
	case ActorBird:
		behaviorBird(tc, a)
	case ActorEagle:
		behaviorEagle(tc, a)
	case ActorEgg:
		behaviorEgg(tc, a)
	case ActorNutrient:
		// handled in the nutrient healing phase before the behavior pass.
	case ActorHerbicidePlane:
		behaviorHerbicidePlane(tc, a)
	case ActorHerbicideSmoke:
		behaviorHerbicideSmoke(tc, a)
	}
}

// drainCompletedFlowers resolves flower-factory completions against pending
// seeds (spec §4.6). Seeds age by one regardless of completion, so maturation
// is never lost to synthesis latency.
func (e *Engine) drainCompletedFlowers(nextActorState map[string]*Actor) []EventRecord {
	var events []EventRecord

	for _, a := range nextActorState {
		if a.Type == ActorFlowerSeed {
			a.Age++
		}
	}

	for _, completion := range e.flowerFactory.Drain() {
		seedID, known := e.pendingSeeds[completion.RequestID]
		if !known {
			continue
		}
		delete(e.pendingSeeds, completion.RequestID)

		seed, ok := nextActorState[seedID]
		if !ok {
			continue
		}
		delete(nextActorState, seedID)

		if completion.Flower == nil {
			continue
		}

		flower := completion.Flower
		flower.ID = seedID
		flower.X, flower.Y = seed.X, seed.Y
		flower.Age = seed.Age
		if flower.Age >= flower.MaturationPeriod {
			flower.IsMature = true
		}
		nextActorState[flower.ID] = flower
		events = append(events, EventRecord{Message: "a new flower has bloomed", Type: EventInfo, Importance: ImportanceLow, Tick: e.tick})
	}

	return events
}

// springRepopulate refills the garden when it enters Spring empty (spec §4.7
// step 4, open question: "empty" means exactly zero, see DESIGN.md). With no
// flowers or seeds it inserts InitialFlowers new flowers directly into
// nextActorState; with no insects it inserts InitialInsects insects. It makes
// no flower-factory requests and places no seed placeholders.
func (e *Engine) springRepopulate(nextActorState map[string]*Actor) {
	flowerOrSeedCount, insectCount := 0, 0
	for _, a := range nextActorState {
		switch {
		case a.IsFlowerOrSeed():
			flowerOrSeedCount++
		case a.Type == ActorInsect:
			insectCount++
		}
	}

	if flowerOrSeedCount == 0 {
		for i := 0; i < e.params.InitialFlowers; i++ {
			coord, ok := findEmptyOfType(nextActorState, e.params.GridWidth, e.params.GridHeight, ActorFlower, e.rng)
			if !ok {
				continue
			}
			id := newActorID()
			nextActorState[id] = &Actor{
				ID: id, Type: ActorFlower, X: coord.X, Y: coord.Y,
				Health: 100, MaxHealth: 100, Stamina: 100, MaxStamina: 100,
				NutrientEfficiency: 1,
				MinTemp:            e.params.BaseTemperature - e.params.TemperatureAmplitude,
				MaxTemp:            e.params.BaseTemperature + e.params.TemperatureAmplitude,
				MaturationPeriod:   20,
				Genome:             randomGenome(e.rng),
			}
		}
	}

	if insectCount == 0 {
		for i := 0; i < e.params.InitialInsects; i++ {
			coord, ok := findEmptyOfType(nextActorState, e.params.GridWidth, e.params.GridHeight, ActorInsect, e.rng)
			if !ok {
				continue
			}
			id := newActorID()
			nextActorState[id] = &Actor{ID: id, Type: ActorInsect, X: coord.X, Y: coord.Y, Lifespan: e.params.InsectDefaultLifespan}
		}
	}
}

// runInsectReproduction is the spec §4.7 step 10 phase: pairs unpaired
// off-cooldown insects of the same species within one cell of each other and
// may spawn an egg.
func (e *Engine) runInsectReproduction(tc *TickContext) {
	insectQtree := BuildQuadtree(tc.Width, tc.Height, tc.NextActorState, func(a *Actor) bool {
		return a.Type == ActorInsect
	})

	paired := make(map[string]bool)

	for _, a := range tc.NextActorState {
		if a.Type != ActorInsect || paired[a.ID] || a.ReproductionCooldown > 0 {
			continue
		}
		nearby := insectQtree.QueryRadius(a.X, a.Y, 1)
		var partner *Actor
		for _, candidate := range nearby {
			if candidate.ID == a.ID || paired[candidate.ID] {
				continue
			}
			if candidate.ReproductionCooldown > 0 {
				continue
			}
			if candidate.Emoji != a.Emoji {
				continue
			}
			partner = candidate
			break
		}
		if partner == nil {
			continue
		}

		if tc.Rng.Float64() >= tc.Params.InsectReproductionChance {
			continue
		}

		target, ok := freeNeighbor(tc, a.X, a.Y)
		if !ok {
			continue
		}

		paired[a.ID] = true
		paired[partner.ID] = true
		first, second := tc.NextActorState[a.ID], tc.NextActorState[partner.ID]
		first.ReproductionCooldown = tc.Params.ReproductionCooldownTicks
		second.ReproductionCooldown = tc.Params.ReproductionCooldownTicks

		id := newActorID()
		tc.NextActorState[id] = &Actor{
			ID: id, Type: ActorEgg, X: target.X, Y: target.Y,
			HatchTimer:  10,
			InsectEmoji: first.Emoji,
		}
		tc.emit("insects laid an egg", EventInfo, ImportanceLow)
	}
}

// resolveFlowerExclusivity is spec §4.7 step 12: per cell, keep the first
// flower/seed encountered in id-iteration order, delete any others.
func resolveFlowerExclusivity(actors map[string]*Actor) {
	seen := make(map[Coord]bool)
	var toDelete []string
	for id, a := range actors {
		if !a.IsFlowerOrSeed() {
			continue
		}
		c := Coord{X: a.X, Y: a.Y}
		if seen[c] {
			toDelete = append(toDelete, id)
			continue
		}
		seen[c] = true
	}
	for _, id := range toDelete {
		delete(actors, id)
	}
}

// rehydrate replaces engine state from a loaded save envelope.
func (e *Engine) rehydrate(envelope SaveEnvelope) {
	e.params = envelope.Params
	e.actors = envelope.Actors
	e.tick = envelope.Tick
	e.totals = totals{
		InsectsEaten:           envelope.TotalInsectsEaten,
		BirdsHunted:            envelope.TotalBirdsHunted,
		HerbicidePlanesSpawned: envelope.TotalHerbicidePlanesSpawned,
	}
	e.environment = NewEnvironmentManager(e.params, e.rng)
	e.environment.state = envelope.EnvironmentState
	e.previousSeason = envelope.EnvironmentState.Season
	for _, a := range e.actors {
		if a.Type == ActorInsect && a.Lifespan == 0 && a.Emoji == "" {
			a.Lifespan = e.params.InsectDefaultLifespan
		}
	}
}

// Reset drops all state and rebuilds from new params (spec §6
// "update-params").
func (e *Engine) Reset(params *SimulationParams) {
	e.params = params
	e.actors = make(map[string]*Actor)
	e.tick = 0
	e.totals = totals{}
	e.pendingSeeds = make(map[string]string)
	e.environment = NewEnvironmentManager(params, e.rng)
	e.populationManager = NewPopulationManager(params, e.rng)
	e.previousSeason = e.environment.State().Season
	e.seedInitialPopulation()
}

// Start/Pause toggle the tick loop flag; the actual scheduling loop lives in
// server.go, which checks Running before calling Step.
func (e *Engine) Start() { e.running = true }
func (e *Engine) Pause() { e.running = false }
func (e *Engine) Running() bool { return e.running }
