package main

import (
	"fmt"
	"math"
	"math/rand"
)

// Season is one of the four seasons driven by tick progress through the configured
// season length.
type Season int

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
)

func (s Season) String() string {
	switch s {
	case Spring:
		return "spring"
	case Summer:
		return "summer"
	case Autumn:
		return "autumn"
	case Winter:
		return "winter"
	default:
		return "unknown"
	}
}

// WeatherEventType tags the closed set of transient weather events.
type WeatherEventType int

const (
	WeatherNone WeatherEventType = iota
	WeatherHeatwave
	WeatherColdsnap
	WeatherHeavyRain
	WeatherDrought
)

func (w WeatherEventType) String() string {
	switch w {
	case WeatherNone:
		return "none"
	case WeatherHeatwave:
		return "heatwave"
	case WeatherColdsnap:
		return "coldsnap"
	case WeatherHeavyRain:
		return "heavyrain"
	case WeatherDrought:
		return "drought"
	default:
		return "unknown"
	}
}

// weatherChoices is the uniform selection pool used when a new event starts.
var weatherChoices = []WeatherEventType{WeatherHeatwave, WeatherColdsnap, WeatherHeavyRain, WeatherDrought}

// WeatherEvent is the currently active (or absent) weather event and its remaining
// duration in ticks.
type WeatherEvent struct {
	Type     WeatherEventType `json:"type"`
	Duration int              `json:"duration"`
}

// EnvironmentState is the per-tick climate snapshot (spec §3): current temperature,
// humidity, season, and any active weather event.
type EnvironmentState struct {
	CurrentTemperature float64      `json:"current_temperature"`
	CurrentHumidity    float64      `json:"current_humidity"`
	Season             Season       `json:"season"`
	CurrentWeatherEvent WeatherEvent `json:"current_weather_event"`
}

// EnvironmentManager runs the season/weather state machine (spec §4.4), modeled on
// the teacher's AdvancedTimeSystem: a small struct holding running state, advanced
// one field-group at a time by an Update method called once per tick.
type EnvironmentManager struct {
	params *SimulationParams
	state  EnvironmentState
	rng    *rand.Rand
}

// NewEnvironmentManager creates a manager seeded to season Spring with the
// temperature/humidity that tick 0 would produce.
func NewEnvironmentManager(params *SimulationParams, rng *rand.Rand) *EnvironmentManager {
	em := &EnvironmentManager{params: params, rng: rng}
	em.recomputeSeasonalBaseline(0)
	return em
}

// State returns the current environment snapshot.
func (em *EnvironmentManager) State() EnvironmentState {
	return em.state
}

// Update advances the environment by one tick (spec §4.4), returning any event
// records produced (weather event start/end).
func (em *EnvironmentManager) Update(tick int) []EventRecord {
	var events []EventRecord

	em.recomputeSeasonalBaseline(tick)

	// An event whose duration was decremented to zero on the previous call
	// still had its effect applied that tick (spec scenario 3: duration=5
	// means five ticks of elevated temperature); it only ends on entry to
	// the following call, before this tick's modifiers are applied.
	if em.state.CurrentWeatherEvent.Type != WeatherNone && em.state.CurrentWeatherEvent.Duration <= 0 {
		events = append(events, EventRecord{
			Message:    fmt.Sprintf("%s has ended", em.state.CurrentWeatherEvent.Type),
			Type:       EventInfo,
			Importance: ImportanceLow,
			Tick:       tick,
		})
		em.state.CurrentWeatherEvent = WeatherEvent{Type: WeatherNone}
	}

	if em.state.CurrentWeatherEvent.Type != WeatherNone {
		em.applyWeatherModifiers()
		em.state.CurrentWeatherEvent.Duration--
	} else if em.rng.Float64() < em.params.WeatherEventChance {
		chosen := weatherChoices[em.rng.Intn(len(weatherChoices))]
		duration := em.params.WeatherMinDuration
		if em.params.WeatherMaxDuration > em.params.WeatherMinDuration {
			duration += em.rng.Intn(em.params.WeatherMaxDuration - em.params.WeatherMinDuration + 1)
		}
		em.state.CurrentWeatherEvent = WeatherEvent{Type: chosen, Duration: duration}
		events = append(events, EventRecord{
			Message:    fmt.Sprintf("%s has begun", chosen),
			Type:       EventInfo,
			Importance: ImportanceHigh,
			Tick:       tick,
		})
		em.applyWeatherModifiers()
	}

	return events
}

// recomputeSeasonalBaseline derives temperature, humidity, and season from tick
// progress through the configured season length (spec §4.4).
func (em *EnvironmentManager) recomputeSeasonalBaseline(tick int) {
	progress := float64(tick%em.params.SeasonLengthTicks) / float64(em.params.SeasonLengthTicks)
	angle := 2 * math.Pi * progress

	em.state.CurrentTemperature = em.params.BaseTemperature + math.Sin(angle)*em.params.TemperatureAmplitude
	em.state.CurrentHumidity = clamp01(em.params.BaseHumidity + math.Sin(angle)*em.params.HumidityAmplitude)

	switch {
	case progress < 0.25:
		em.state.Season = Spring
	case progress < 0.5:
		em.state.Season = Summer
	case progress < 0.75:
		em.state.Season = Autumn
	default:
		em.state.Season = Winter
	}
}

// applyWeatherModifiers layers the active weather event's effect on top of the
// seasonal baseline already computed this tick.
func (em *EnvironmentManager) applyWeatherModifiers() {
	switch em.state.CurrentWeatherEvent.Type {
	case WeatherHeatwave:
		em.state.CurrentTemperature += em.params.HeatwaveTempIncrease
	case WeatherColdsnap:
		em.state.CurrentTemperature -= em.params.ColdsnapTempDecrease
	case WeatherHeavyRain:
		em.state.CurrentHumidity = clamp01(em.state.CurrentHumidity + em.params.HeavyRainHumidityIncrease)
	case WeatherDrought:
		em.state.CurrentHumidity = clamp01(em.state.CurrentHumidity - em.params.DroughtHumidityDecrease)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
