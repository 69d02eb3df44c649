package main

import (
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// PopulationTrend classifies the recent trajectory of a tracked population.
type PopulationTrend int

const (
	TrendStable PopulationTrend = iota
	TrendGrowing
	TrendDeclining
)

func (t PopulationTrend) String() string {
	switch t {
	case TrendGrowing:
		return "growing"
	case TrendDeclining:
		return "declining"
	default:
		return "stable"
	}
}

// sweepPattern is one of the four predetermined herbicide-plane sweep patterns
// (spec §4.5): a start coordinate, a primary heading, and a turn heading.
type sweepPattern struct {
	startX, startY         int
	dx, dy                 int
	turnDX, turnDY         int
}

func sweepPatterns(width, height int) []sweepPattern {
	return []sweepPattern{
		{startX: 0, startY: 0, dx: 1, dy: 0, turnDX: 0, turnDY: 1},
		{startX: width - 1, startY: 0, dx: -1, dy: 0, turnDX: 0, turnDY: 1},
		{startX: 0, startY: height - 1, dx: 1, dy: 0, turnDX: 0, turnDY: -1},
		{startX: width - 1, startY: height - 1, dx: -1, dy: 0, turnDX: 0, turnDY: -1},
	}
}

// PopulationManager tracks insect/bird history and drives dynamic predator and
// herbicide spawning (spec §4.5). Grounded on the teacher's Population struct
// shape (a tracked collection plus derived statistics computed on demand) from
// population.go, but replaces fitness-based genetic-algorithm statistics with
// the spec's weighted trend-over-history calculation via gonum/stat.
type PopulationManager struct {
	params *SimulationParams
	rng    *rand.Rand

	insectHistory []int
	birdHistory   []int

	insectTrend PopulationTrend
	birdTrend   PopulationTrend

	birdCooldown      int
	eagleCooldown     int
	herbicideCooldown int
}

// NewPopulationManager creates a manager with empty history and zeroed cooldowns.
func NewPopulationManager(params *SimulationParams, rng *rand.Rand) *PopulationManager {
	return &PopulationManager{params: params, rng: rng}
}

// RecordCounts appends this tick's insect/bird counts to the bounded history
// (spec §4.8: "trimmed to window size").
func (pm *PopulationManager) RecordCounts(insectCount, birdCount int) {
	pm.insectHistory = appendTrimmed(pm.insectHistory, insectCount, pm.params.PopulationTrendWindow)
	pm.birdHistory = appendTrimmed(pm.birdHistory, birdCount, pm.params.PopulationTrendWindow)
}

func appendTrimmed(history []int, value, window int) []int {
	history = append(history, value)
	if len(history) > window {
		history = history[len(history)-window:]
	}
	return history
}

// weightedTrend computes the linearly-weighted average of relative rates of
// change across history (spec §4.5), classifying against the configured
// thresholds. new>0,old=0 is treated as +100% relative change.
func weightedTrend(history []int, growthThreshold, declineThreshold float64) PopulationTrend {
	if len(history) < 2 {
		return TrendStable
	}

	changes := make([]float64, 0, len(history)-1)
	weights := make([]float64, 0, len(history)-1)
	for i := 1; i < len(history); i++ {
		old, new := history[i-1], history[i]
		var change float64
		switch {
		case old == 0 && new > 0:
			change = 1.0
		case old == 0:
			change = 0
		default:
			change = float64(new-old) / float64(old)
		}
		changes = append(changes, change)
		weights = append(weights, float64(i)) // later entries weighted more heavily
	}

	avg := stat.Mean(changes, weights)

	switch {
	case avg > growthThreshold:
		return TrendGrowing
	case avg < -declineThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// Update decrements cooldowns, recomputes trends, and applies population-control
// spawning against next_actor_state (spec §4.5). Returns events produced.
func (pm *PopulationManager) Update(tick int, nextActorState map[string]*Actor, width, height int) []EventRecord {
	var events []EventRecord

	if pm.birdCooldown > 0 {
		pm.birdCooldown--
	}
	if pm.eagleCooldown > 0 {
		pm.eagleCooldown--
	}
	if pm.herbicideCooldown > 0 {
		pm.herbicideCooldown--
	}

	newInsectTrend := weightedTrend(pm.insectHistory, pm.params.PopulationGrowthThreshold, pm.params.PopulationDeclineThreshold)
	newBirdTrend := weightedTrend(pm.birdHistory, pm.params.PopulationGrowthThreshold, pm.params.PopulationDeclineThreshold)

	if newInsectTrend != pm.insectTrend {
		events = append(events, EventRecord{Message: "insect population trend changed to " + newInsectTrend.String(), Type: EventInfo, Importance: ImportanceLow, Tick: tick})
	}
	if newBirdTrend != pm.birdTrend {
		events = append(events, EventRecord{Message: "bird population trend changed to " + newBirdTrend.String(), Type: EventInfo, Importance: ImportanceLow, Tick: tick})
	}
	pm.insectTrend = newInsectTrend
	pm.birdTrend = newBirdTrend

	birdCount := 0
	flowerOrSeedCount := 0
	for _, a := range nextActorState {
		switch a.Type {
		case ActorBird:
			birdCount++
		case ActorFlower, ActorFlowerSeed:
			flowerOrSeedCount++
		}
	}

	if pm.insectTrend == TrendGrowing && pm.birdCooldown == 0 {
		if coord, ok := findEmptyOfType(nextActorState, width, height, ActorBird, pm.rng); ok {
			id := newActorID()
			nextActorState[id] = &Actor{ID: id, Type: ActorBird, X: coord.X, Y: coord.Y}
			pm.birdCooldown = pm.params.BirdSpawnCooldown
			events = append(events, EventRecord{Message: "a bird has joined the garden", Type: EventInfo, Importance: ImportanceHigh, Tick: tick})
		}
	}

	if pm.insectTrend == TrendDeclining && birdCount > 2 && pm.eagleCooldown == 0 {
		if coord, ok := findEmptyOfType(nextActorState, width, height, ActorEagle, pm.rng); ok {
			id := newActorID()
			nextActorState[id] = &Actor{ID: id, Type: ActorEagle, X: coord.X, Y: coord.Y}
			pm.eagleCooldown = pm.params.EagleSpawnCooldown
			events = append(events, EventRecord{Message: "an eagle has joined the garden", Type: EventInfo, Importance: ImportanceHigh, Tick: tick})
		}
	}

	totalCells := float64(width * height)
	hasPlane := false
	for _, a := range nextActorState {
		if a.Type == ActorHerbicidePlane {
			hasPlane = true
			break
		}
	}
	if !hasPlane && pm.herbicideCooldown == 0 && float64(flowerOrSeedCount) >= pm.params.HerbicideFlowerDensityThreshold*totalCells {
		patterns := sweepPatterns(width, height)
		pattern := patterns[pm.rng.Intn(len(patterns))]
		id := newActorID()
		nextActorState[id] = &Actor{
			ID: id, Type: ActorHerbicidePlane,
			X: pattern.startX, Y: pattern.startY,
			DX: pattern.dx, DY: pattern.dy,
			TurnDX: pattern.turnDX, TurnDY: pattern.turnDY,
			Stride: 3,
		}
		pm.herbicideCooldown = pm.params.HerbicideCooldown
		events = append(events, EventRecord{Message: "a herbicide plane has been dispatched", Type: EventInfo, Importance: ImportanceHigh, Tick: tick})
	}

	return events
}

// findEmptyOfType finds a random cell that does not already contain an actor of
// the given type, scanning the full grid if 50 random probes all miss.
func findEmptyOfType(actors map[string]*Actor, width, height int, avoid ActorType, rng *rand.Rand) (Coord, bool) {
	occupied := make(map[Coord]bool)
	for _, a := range actors {
		if a.Type == avoid {
			occupied[Coord{X: a.X, Y: a.Y}] = true
		}
	}
	if len(occupied) >= width*height {
		return Coord{}, false
	}
	for tries := 0; tries < 50; tries++ {
		c := Coord{X: rng.Intn(width), Y: rng.Intn(height)}
		if !occupied[c] {
			return c, true
		}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := Coord{X: x, Y: y}
			if !occupied[c] {
				return c, true
			}
		}
	}
	return Coord{}, false
}
