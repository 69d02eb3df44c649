package main

import (
	"path/filepath"
	"testing"
)

func TestDefaultSimulationParamsValidates(t *testing.T) {
	if err := DefaultSimulationParams().Validate(); err != nil {
		t.Fatalf("expected default params to validate, got %v", err)
	}
}

func TestValidateRejectsBadGridDimensions(t *testing.T) {
	params := DefaultSimulationParams()
	params.GridWidth = 0
	if err := params.Validate(); err == nil {
		t.Fatal("expected an error for a zero grid width")
	}
}

func TestValidateRejectsBadHumidity(t *testing.T) {
	params := DefaultSimulationParams()
	params.BaseHumidity = 1.5
	if err := params.Validate(); err == nil {
		t.Fatal("expected an error for humidity outside [0,1]")
	}
}

func TestSaveAndLoadParamsFileRoundTrip(t *testing.T) {
	params := DefaultSimulationParams()
	params.InitialFlowers = 99

	path := filepath.Join(t.TempDir(), "params.yaml")
	if err := SaveParamsFile(path, params); err != nil {
		t.Fatalf("SaveParamsFile failed: %v", err)
	}

	loaded, err := LoadParamsFile(path)
	if err != nil {
		t.Fatalf("LoadParamsFile failed: %v", err)
	}
	if loaded.InitialFlowers != 99 {
		t.Errorf("expected round-tripped InitialFlowers 99, got %d", loaded.InitialFlowers)
	}
}

func TestLoadParamsFileMissingFile(t *testing.T) {
	if _, err := LoadParamsFile(filepath.Join(t.TempDir(), "does-not-exist.yaml")); err == nil {
		t.Fatal("expected an error loading a nonexistent params file")
	}
}
