package main

import "math/rand"

// Counters accumulates the per-tick statistics referenced by behaviors and the
// tick summary (spec §4.3, §4.8): old-age deaths, predation counts, births.
type Counters struct {
	InsectsOldAge          int
	InsectsEaten           int
	EggsEaten              int
	BirdsHunted            int
	InsectsBorn            int
	Reproductions          int
}

// TickContext is the read/write bundle every behavior function receives (spec
// §4.3): a read-only pre-tick snapshot and quadtrees, and a mutable
// next_actor_state plus output queues. Grounded on the teacher's World struct
// passing itself into per-entity update methods, generalized into a narrow
// explicit context so behaviors cannot reach fields they have no business
// touching.
type TickContext struct {
	GridSnapshot    map[string]*Actor // read-only pre-tick view (initial_actors)
	Params          *SimulationParams
	NextActorState  map[string]*Actor // mutable
	Qtree           *Quadtree         // all actors
	FlowerQtree     *Quadtree         // flowers only
	Events          *EventCollector
	Counters        *Counters
	FlowerFactory   *FlowerFactory
	NewActorQueue   map[string]*Actor // actors pending merge, e.g. pollination seeds
	PendingSeeds    map[string]string // request id -> seed actor id, owned by the engine
	CurrentTemperature float64
	Tick            int
	Rng             *rand.Rand
	Width, Height   int
}

// emit appends an event record stamped with the current tick.
func (tc *TickContext) emit(message string, typ EventType, importance Importance) {
	tc.Events.Add(EventRecord{Message: message, Type: typ, Importance: importance, Tick: tc.Tick})
}

// requestFlower computes the estimated seed health, enqueues an async request,
// and inserts a seed placeholder into the new actor queue at (x, y) (spec §4.6).
func (tc *TickContext) requestFlower(x, y int, parentGenome1, parentGenome2 string) {
	reqID := newRequestID()
	health := EstimateSeedHealth(tc.NextActorState)
	seedID := newActorID()
	seed := &Actor{
		ID:        seedID,
		Type:      ActorFlowerSeed,
		X:         x,
		Y:         y,
		ImageBlob: "stem",
		Health:    health,
		MaxHealth: health,
	}
	tc.NewActorQueue[seedID] = seed
	tc.PendingSeeds[reqID] = seedID
	tc.FlowerFactory.Enqueue(FlowerRequest{
		RequestID:     reqID,
		X:             x,
		Y:             y,
		ParentGenome1: parentGenome1,
		ParentGenome2: parentGenome2,
	})
}

func neighbors4(x, y int) [4][2]int {
	return [4][2]int{{x + 1, y}, {x - 1, y}, {x, y + 1}, {x, y - 1}}
}

func neighbors8(x, y int) [8][2]int {
	return [8][2]int{
		{x - 1, y - 1}, {x, y - 1}, {x + 1, y - 1},
		{x - 1, y}, {x + 1, y},
		{x - 1, y + 1}, {x, y + 1}, {x + 1, y + 1},
	}
}

func stepSign(from, to int) int {
	switch {
	case to > from:
		return 1
	case to < from:
		return -1
	default:
		return 0
	}
}

func inBounds(x, y, width, height int) bool {
	return x >= 0 && x < width && y >= 0 && y < height
}
