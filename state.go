package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// SaveEnvelope is the top-level serializable snapshot (spec §6): enough to
// fully rehydrate an engine, with image blobs stripped since they are
// regenerable from genome on load.
type SaveEnvelope struct {
	Version    string           `json:"version"`
	SavedAt    time.Time        `json:"saved_at"`
	Params     *SimulationParams `json:"params"`
	Actors     map[string]*Actor `json:"actors"`
	Tick       int              `json:"tick"`

	TotalInsectsEaten           int `json:"total_insects_eaten"`
	TotalBirdsHunted            int `json:"total_birds_hunted"`
	TotalHerbicidePlanesSpawned int `json:"total_herbicide_planes_spawned"`

	EnvironmentState EnvironmentState `json:"environment_state"`
}

const saveEnvelopeVersion = "1"

// StateManager handles saving and loading engine snapshots. Grounded on the
// teacher's StateManager (state_manager.go): a thin wrapper around the engine
// doing JSON marshal/unmarshal plus a version stamp, generalized to the spec's
// save envelope shape.
type StateManager struct {
	engine *Engine
	logger *zap.Logger
}

// NewStateManager creates a state manager bound to engine.
func NewStateManager(engine *Engine, logger *zap.Logger) *StateManager {
	return &StateManager{engine: engine, logger: logger}
}

// buildEnvelope snapshots the engine's current state, stripping flower image
// blobs per spec §6.
func (sm *StateManager) buildEnvelope() *SaveEnvelope {
	actors := make(map[string]*Actor, len(sm.engine.actors))
	for id, a := range sm.engine.actors {
		clone := a.Clone()
		clone.ImageBlob = ""
		actors[id] = clone
	}

	return &SaveEnvelope{
		Version:                     saveEnvelopeVersion,
		SavedAt:                     time.Now(),
		Params:                      sm.engine.params,
		Actors:                      actors,
		Tick:                        sm.engine.tick,
		TotalInsectsEaten:           sm.engine.totals.InsectsEaten,
		TotalBirdsHunted:            sm.engine.totals.BirdsHunted,
		TotalHerbicidePlanesSpawned: sm.engine.totals.HerbicidePlanesSpawned,
		EnvironmentState:            sm.engine.environment.State(),
	}
}

// SaveToFile writes the current engine state to filename as indented JSON.
func (sm *StateManager) SaveToFile(filename string) error {
	envelope := sm.buildEnvelope()

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal save envelope: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("write save file: %w", err)
	}
	sm.logger.Info("simulation state saved", zap.String("file", filename), zap.Int("tick", envelope.Tick))
	return nil
}

// LoadFromFile reads filename and rehydrates the engine from it, invoking
// drawFlower to regenerate any stripped image blob (spec §6). An invalid
// payload (missing grid or params) aborts the load and keeps current state
// (spec §7).
func (sm *StateManager) LoadFromFile(filename string, drawFlower func(genome string) string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read save file: %w", err)
	}
	if err := sm.LoadFromBytes(data, drawFlower); err != nil {
		return err
	}
	sm.logger.Info("simulation state loaded", zap.String("file", filename))
	return nil
}

// LoadFromBytes rehydrates the engine from an already-in-memory save
// envelope, the shared path behind both LoadFromFile (CLI --load) and the
// server's load-state command (spec §6: "restore from snapshot; re-request
// image blobs for flowers"). An invalid payload (missing grid or params)
// aborts the load and keeps current state (spec §7).
func (sm *StateManager) LoadFromBytes(data []byte, drawFlower func(genome string) string) error {
	var envelope SaveEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("unmarshal save envelope: %w", err)
	}
	if envelope.Params == nil || envelope.Actors == nil {
		return fmt.Errorf("invalid save payload: missing params or actors")
	}

	for _, a := range envelope.Actors {
		if a.Type == ActorFlower {
			a.ImageBlob = drawFlower(a.Genome)
		}
	}

	sm.engine.rehydrate(envelope)
	sm.logger.Info("simulation state rehydrated", zap.Int("tick", envelope.Tick))
	return nil
}
