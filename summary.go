package main

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var summaryPrinter = message.NewPrinter(language.English)

// TickSummary is the per-tick aggregate computed over next_actor_state (spec
// §4.8): counts per type, flower-health/stamina/toxicity/efficiency/maturation
// running stats, environment readouts, and timing.
type TickSummary struct {
	Tick int `json:"tick"`

	CountsByType map[string]int `json:"counts_by_type"`

	MaxFlowerAge int `json:"max_flower_age"`

	AvgHealth             float64 `json:"avg_health"`
	AvgStamina            float64 `json:"avg_stamina"`
	AvgToxicity           float64 `json:"avg_toxicity"`
	AvgNutrientEfficiency float64 `json:"avg_nutrient_efficiency"`
	AvgMaturationPeriod   float64 `json:"avg_maturation_period"`
	AvgVitality           float64 `json:"avg_vitality"`
	AvgAgility            float64 `json:"avg_agility"`
	AvgStrength           float64 `json:"avg_strength"`
	AvgIntelligence       float64 `json:"avg_intelligence"`
	AvgLuck               float64 `json:"avg_luck"`

	TickDurationMS float64 `json:"tick_duration_ms"`

	CurrentTemperature float64          `json:"current_temperature"`
	CurrentHumidity    float64          `json:"current_humidity"`
	Season             Season           `json:"season"`
	WeatherEvent       WeatherEventType `json:"weather_event"`
	FlowerDensity      float64          `json:"flower_density"`

	PendingFlowerRequests int `json:"pending_flower_requests"`
}

// computeTickSummary runs the single pass over next_actor_state described in
// spec §4.8.
func computeTickSummary(tick int, actors map[string]*Actor, env EnvironmentState, width, height int, tickDurationMS float64, pending int) TickSummary {
	summary := TickSummary{
		Tick:               tick,
		CountsByType:       make(map[string]int),
		CurrentTemperature: env.CurrentTemperature,
		CurrentHumidity:    env.CurrentHumidity,
		Season:             env.Season,
		WeatherEvent:       env.CurrentWeatherEvent.Type,
		TickDurationMS:     tickDurationMS,
		PendingFlowerRequests: pending,
	}

	var flowerCount int
	var sumHealth, sumStamina, sumToxicity, sumEfficiency float64
	var sumMaturation int
	var sumVitality, sumAgility, sumStrength, sumIntelligence, sumLuck float64

	for _, a := range actors {
		summary.CountsByType[a.Type.String()]++

		if a.Type != ActorFlower {
			continue
		}
		flowerCount++
		if a.Age > summary.MaxFlowerAge {
			summary.MaxFlowerAge = a.Age
		}
		sumHealth += a.Health
		sumStamina += a.Stamina
		sumToxicity += a.ToxicityRate
		sumEfficiency += a.NutrientEfficiency
		sumMaturation += a.MaturationPeriod
		sumVitality += a.Effects.Vitality
		sumAgility += a.Effects.Agility
		sumStrength += a.Effects.Strength
		sumIntelligence += a.Effects.Intelligence
		sumLuck += a.Effects.Luck
	}

	if flowerCount > 0 {
		n := float64(flowerCount)
		summary.AvgHealth = sumHealth / n
		summary.AvgStamina = sumStamina / n
		summary.AvgToxicity = sumToxicity / n
		summary.AvgNutrientEfficiency = sumEfficiency / n
		summary.AvgMaturationPeriod = float64(sumMaturation) / n
		summary.AvgVitality = sumVitality / n
		summary.AvgAgility = sumAgility / n
		summary.AvgStrength = sumStrength / n
		summary.AvgIntelligence = sumIntelligence / n
		summary.AvgLuck = sumLuck / n
	}

	flowerOrSeedCount := summary.CountsByType[ActorFlower.String()] + summary.CountsByType[ActorFlowerSeed.String()]
	summary.FlowerDensity = float64(flowerOrSeedCount) / float64(width*height)

	return summary
}

// String renders the summary as an operator-facing one-liner, with
// thousand-separated actor totals via x/text/message so a long-running
// garden's console log stays readable at high population counts.
func (s TickSummary) String() string {
	total := 0
	for _, c := range s.CountsByType {
		total += c
	}
	return summaryPrinter.Sprintf("tick %d: %d actors, density %.2f, %s/%s, %.1fms",
		s.Tick, total, s.FlowerDensity, s.Season, s.WeatherEvent, s.TickDurationMS)
}

var _ fmt.Stringer = TickSummary{}
