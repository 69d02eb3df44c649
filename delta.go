package main

// DeltaOp is the kind of change one Delta entry describes.
type DeltaOp int

const (
	DeltaAdd DeltaOp = iota
	DeltaUpdate
	DeltaRemove
)

// Delta is one of {Add, Update{id, changes}, Remove{id}} describing one tick's
// transition for a single actor id (spec §4.2, Glossary).
type Delta struct {
	Op      DeltaOp           `json:"op"`
	ID      string            `json:"id"`
	Actor   *Actor            `json:"actor,omitempty"`   // set on Add
	Changes map[string]any    `json:"changes,omitempty"` // set on Update
}

// ComputeDeltas diffs the initial snapshot against the final actor map, emitting Remove
// for ids missing from final, Add for ids new to final, and Update (changed fields
// only, never "id") for ids present in both whose fields differ (spec §4.2).
func ComputeDeltas(initial, final map[string]*Actor) []Delta {
	var deltas []Delta

	for id, before := range initial {
		after, ok := final[id]
		if !ok {
			deltas = append(deltas, Delta{Op: DeltaRemove, ID: id})
			continue
		}
		if changes := diffActorFields(before, after); len(changes) > 0 {
			deltas = append(deltas, Delta{Op: DeltaUpdate, ID: id, Changes: changes})
		}
	}

	for id, after := range final {
		if _, ok := initial[id]; !ok {
			deltas = append(deltas, Delta{Op: DeltaAdd, ID: id, Actor: after.Clone()})
		}
	}

	return deltas
}

// ApplyDeltas reconstructs the committed grid's actor map by applying deltas to the
// previous committed actor map (spec I5, the round-trip law). The input map is not
// mutated; a new map is returned.
func ApplyDeltas(base map[string]*Actor, deltas []Delta) map[string]*Actor {
	result := make(map[string]*Actor, len(base))
	for id, a := range base {
		result[id] = a.Clone()
	}
	for _, d := range deltas {
		switch d.Op {
		case DeltaRemove:
			delete(result, d.ID)
		case DeltaAdd:
			result[d.ID] = d.Actor.Clone()
		case DeltaUpdate:
			existing, ok := result[d.ID]
			if !ok {
				continue
			}
			applyFieldChanges(existing, d.Changes)
		}
	}
	return result
}

// diffActorFields compares every field except ID, using deep equality for nested
// pointers (Pollen, Target, PatrolTarget) and strict equality for primitives, per
// spec §4.2.
func diffActorFields(before, after *Actor) map[string]any {
	changes := make(map[string]any)

	if before.Type != after.Type {
		changes["type"] = after.Type
	}
	if before.X != after.X {
		changes["x"] = after.X
	}
	if before.Y != after.Y {
		changes["y"] = after.Y
	}
	if before.Genome != after.Genome {
		changes["genome"] = after.Genome
	}
	if before.ImageBlob != after.ImageBlob {
		changes["image_blob"] = after.ImageBlob
	}
	if before.Health != after.Health {
		changes["health"] = after.Health
	}
	if before.MaxHealth != after.MaxHealth {
		changes["max_health"] = after.MaxHealth
	}
	if before.Stamina != after.Stamina {
		changes["stamina"] = after.Stamina
	}
	if before.MaxStamina != after.MaxStamina {
		changes["max_stamina"] = after.MaxStamina
	}
	if before.NutrientEfficiency != after.NutrientEfficiency {
		changes["nutrient_efficiency"] = after.NutrientEfficiency
	}
	if before.MinTemp != after.MinTemp {
		changes["min_temp"] = after.MinTemp
	}
	if before.MaxTemp != after.MaxTemp {
		changes["max_temp"] = after.MaxTemp
	}
	if before.MaturationPeriod != after.MaturationPeriod {
		changes["maturation_period"] = after.MaturationPeriod
	}
	if before.FlowerSex != after.FlowerSex {
		changes["sex"] = after.FlowerSex
	}
	if before.ToxicityRate != after.ToxicityRate {
		changes["toxicity_rate"] = after.ToxicityRate
	}
	if before.Effects != after.Effects {
		changes["effects"] = after.Effects
	}
	if before.Age != after.Age {
		changes["age"] = after.Age
	}
	if before.IsMature != after.IsMature {
		changes["is_mature"] = after.IsMature
	}
	if !pollenEqual(before.Pollen, after.Pollen) {
		changes["pollen"] = after.Pollen
	}
	if before.Emoji != after.Emoji {
		changes["emoji"] = after.Emoji
	}
	if before.Lifespan != after.Lifespan {
		changes["lifespan"] = after.Lifespan
	}
	if before.ReproductionCooldown != after.ReproductionCooldown {
		changes["reproduction_cooldown"] = after.ReproductionCooldown
	}
	if !coordEqual(before.Target, after.Target) {
		changes["target"] = after.Target
	}
	if !coordEqual(before.PatrolTarget, after.PatrolTarget) {
		changes["patrol_target"] = after.PatrolTarget
	}
	if before.HatchTimer != after.HatchTimer {
		changes["hatch_timer"] = after.HatchTimer
	}
	if before.InsectEmoji != after.InsectEmoji {
		changes["insect_emoji"] = after.InsectEmoji
	}
	if before.DX != after.DX || before.DY != after.DY {
		changes["dx"] = after.DX
		changes["dy"] = after.DY
	}
	if before.TurnDX != after.TurnDX || before.TurnDY != after.TurnDY {
		changes["turn_dx"] = after.TurnDX
		changes["turn_dy"] = after.TurnDY
	}
	if before.Stride != after.Stride {
		changes["stride"] = after.Stride
	}
	if before.CanBeExpanded != after.CanBeExpanded {
		changes["can_be_expanded"] = after.CanBeExpanded
	}

	return changes
}

// applyFieldChanges mutates an actor in place according to a changes map produced by
// diffActorFields, used to reconstruct the committed grid from deltas (spec I5).
func applyFieldChanges(a *Actor, changes map[string]any) {
	for field, value := range changes {
		switch field {
		case "type":
			a.Type = value.(ActorType)
		case "x":
			a.X = value.(int)
		case "y":
			a.Y = value.(int)
		case "genome":
			a.Genome = value.(string)
		case "image_blob":
			a.ImageBlob = value.(string)
		case "health":
			a.Health = value.(float64)
		case "max_health":
			a.MaxHealth = value.(float64)
		case "stamina":
			a.Stamina = value.(float64)
		case "max_stamina":
			a.MaxStamina = value.(float64)
		case "nutrient_efficiency":
			a.NutrientEfficiency = value.(float64)
		case "min_temp":
			a.MinTemp = value.(float64)
		case "max_temp":
			a.MaxTemp = value.(float64)
		case "maturation_period":
			a.MaturationPeriod = value.(int)
		case "sex":
			a.FlowerSex = value.(Sex)
		case "toxicity_rate":
			a.ToxicityRate = value.(float64)
		case "effects":
			a.Effects = value.(EffectStats)
		case "age":
			a.Age = value.(int)
		case "is_mature":
			a.IsMature = value.(bool)
		case "pollen":
			if value == nil {
				a.Pollen = nil
			} else {
				a.Pollen = value.(*Pollen)
			}
		case "emoji":
			a.Emoji = value.(string)
		case "lifespan":
			a.Lifespan = value.(int)
		case "reproduction_cooldown":
			a.ReproductionCooldown = value.(int)
		case "target":
			if value == nil {
				a.Target = nil
			} else {
				a.Target = value.(*Coord)
			}
		case "patrol_target":
			if value == nil {
				a.PatrolTarget = nil
			} else {
				a.PatrolTarget = value.(*Coord)
			}
		case "hatch_timer":
			a.HatchTimer = value.(int)
		case "insect_emoji":
			a.InsectEmoji = value.(string)
		case "dx":
			a.DX = value.(int)
		case "dy":
			a.DY = value.(int)
		case "turn_dx":
			a.TurnDX = value.(int)
		case "turn_dy":
			a.TurnDY = value.(int)
		case "stride":
			a.Stride = value.(int)
		case "can_be_expanded":
			a.CanBeExpanded = value.(bool)
		}
	}
}

func pollenEqual(a, b *Pollen) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func coordEqual(a, b *Coord) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
