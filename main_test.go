package main

import "testing"

func TestCrossGenomeAlternatesParents(t *testing.T) {
	got := crossGenome("AAAA", "CCCC")
	want := "ACAC"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCrossGenomeTruncatesToShorterParent(t *testing.T) {
	got := crossGenome("AAAAA", "CC")
	if len(got) != 2 {
		t.Fatalf("expected result truncated to the shorter parent's length, got %q", got)
	}
}

func TestDrawFlowerPlaceholderIsDeterministic(t *testing.T) {
	a := drawFlowerPlaceholder("AAGGCCTT")
	b := drawFlowerPlaceholder("AAGGCCTT")
	if a != b {
		t.Error("expected drawFlowerPlaceholder to be deterministic for the same genome")
	}
	if a == "" {
		t.Error("expected a non-empty placeholder blob")
	}
}

func TestSynthesizeFlowerSingleParentKeepsGenome(t *testing.T) {
	req := FlowerRequest{ParentGenome1: "AAGGCCTT"}
	flower, err := synthesizeFlower(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flower.Genome != "AAGGCCTT" {
		t.Errorf("expected single-parent genome unchanged, got %q", flower.Genome)
	}
	if flower.Type != ActorFlower {
		t.Errorf("expected synthesized actor to be a flower, got %v", flower.Type)
	}
}

func TestSynthesizeFlowerTwoParentsCrosses(t *testing.T) {
	req := FlowerRequest{ParentGenome1: "AAAA", ParentGenome2: "CCCC"}
	flower, err := synthesizeFlower(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flower.Genome != "ACAC" {
		t.Errorf("expected crossed genome %q, got %q", "ACAC", flower.Genome)
	}
	if flower.ImageBlob == "" {
		t.Error("expected a non-empty image blob")
	}
}
