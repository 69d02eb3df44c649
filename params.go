package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SimulationParams is the immutable-during-a-tick configuration for one simulation run
// (spec §3). Mirrors the teacher's DefaultSimulationConfig/Validate pair in config.go,
// generalized to EvoGarden's actual knobs.
type SimulationParams struct {
	GridWidth  int `yaml:"grid_width"`
	GridHeight int `yaml:"grid_height"`

	InitialFlowers  int `yaml:"initial_flowers"`
	InitialInsects  int `yaml:"initial_insects"`

	BaseTemperature      float64 `yaml:"base_temperature"`
	TemperatureAmplitude float64 `yaml:"temperature_amplitude"`
	BaseHumidity         float64 `yaml:"base_humidity"`
	HumidityAmplitude    float64 `yaml:"humidity_amplitude"`

	WindDirection float64 `yaml:"wind_direction"`
	WindStrength  float64 `yaml:"wind_strength"`

	SeasonLengthTicks int `yaml:"season_length_ticks"`

	WeatherEventChance  float64 `yaml:"weather_event_chance"`
	WeatherMinDuration  int     `yaml:"weather_min_duration"`
	WeatherMaxDuration  int     `yaml:"weather_max_duration"`
	HeatwaveTempIncrease     float64 `yaml:"heatwave_temp_increase"`
	ColdsnapTempDecrease     float64 `yaml:"coldsnap_temp_decrease"`
	HeavyRainHumidityIncrease float64 `yaml:"heavy_rain_humidity_increase"`
	DroughtHumidityDecrease   float64 `yaml:"drought_humidity_decrease"`

	HerbicideDamage                float64 `yaml:"herbicide_damage"`
	HerbicideCooldown              int     `yaml:"herbicide_cooldown"`
	HerbicideFlowerDensityThreshold float64 `yaml:"herbicide_flower_density_threshold"`
	HerbicideSmokeLifespan         int     `yaml:"herbicide_smoke_lifespan"`

	MutationChance float64 `yaml:"mutation_chance"`
	MutationAmount float64 `yaml:"mutation_amount"`

	ReproductionCooldownTicks int `yaml:"reproduction_cooldown_ticks"`

	NotificationMode   string  `yaml:"notification_mode"`
	FlowerDetailRadius int     `yaml:"flower_detail_radius"`

	InsectVisionRadius  int `yaml:"insect_vision_radius"`
	BirdVisionRadius    int `yaml:"bird_vision_radius"`
	EagleVisionRadius   int `yaml:"eagle_vision_radius"`

	InsectPollinationChance  float64 `yaml:"insect_pollination_chance"`
	InsectReproductionChance float64 `yaml:"insect_reproduction_chance"`
	InsectDefaultLifespan    int     `yaml:"insect_default_lifespan"`

	BirdDropNutrientChance float64 `yaml:"bird_drop_nutrient_chance"`
	BirdSpawnCooldown      int     `yaml:"bird_spawn_cooldown"`
	EagleSpawnCooldown     int     `yaml:"eagle_spawn_cooldown"`

	NutrientFromPreyLifespan int     `yaml:"nutrient_from_prey_lifespan"`
	FlowerNutrientHeal       float64 `yaml:"flower_nutrient_heal"`

	PopulationTrendWindow   int     `yaml:"population_trend_window"`
	PopulationGrowthThreshold   float64 `yaml:"population_growth_threshold"`
	PopulationDeclineThreshold  float64 `yaml:"population_decline_threshold"`
}

// DefaultSimulationParams returns a ready-to-run configuration, the way the teacher's
// DefaultSimulationConfig seeds every subsystem with a sane starting point.
func DefaultSimulationParams() *SimulationParams {
	return &SimulationParams{
		GridWidth:  40,
		GridHeight: 25,

		InitialFlowers: 30,
		InitialInsects: 20,

		BaseTemperature:      20,
		TemperatureAmplitude: 10,
		BaseHumidity:         0.5,
		HumidityAmplitude:    0.2,

		WindDirection: 0,
		WindStrength:  1,

		SeasonLengthTicks: 400,

		WeatherEventChance: 0.01,
		WeatherMinDuration: 3,
		WeatherMaxDuration: 10,
		HeatwaveTempIncrease:      15,
		ColdsnapTempDecrease:      15,
		HeavyRainHumidityIncrease: 0.3,
		DroughtHumidityDecrease:   0.3,

		HerbicideDamage:                 10,
		HerbicideCooldown:               200,
		HerbicideFlowerDensityThreshold: 0.6,
		HerbicideSmokeLifespan:          5,

		MutationChance: 0.1,
		MutationAmount: 0.1,

		ReproductionCooldownTicks: 50,

		NotificationMode:   "normal",
		FlowerDetailRadius: 3,

		InsectVisionRadius: 6,
		BirdVisionRadius:   8,
		EagleVisionRadius:  10,

		InsectPollinationChance:  0.5,
		InsectReproductionChance: 0.5,
		InsectDefaultLifespan:    150,

		BirdDropNutrientChance: 0.02,
		BirdSpawnCooldown:      100,
		EagleSpawnCooldown:     150,

		NutrientFromPreyLifespan: 30,
		FlowerNutrientHeal:       20,

		PopulationTrendWindow:      10,
		PopulationGrowthThreshold:  0.1,
		PopulationDeclineThreshold: 0.1,
	}
}

// Validate ensures configuration values are within ranges the engine assumes hold,
// mirroring the teacher's config.Validate.
func (p *SimulationParams) Validate() error {
	if p.GridWidth <= 0 || p.GridHeight <= 0 {
		return fmt.Errorf("grid dimensions must be positive")
	}
	if p.SeasonLengthTicks <= 0 {
		return fmt.Errorf("season length must be positive")
	}
	if p.BaseHumidity < 0 || p.BaseHumidity > 1 {
		return fmt.Errorf("base humidity must be in [0,1]")
	}
	if p.WeatherMinDuration <= 0 || p.WeatherMaxDuration < p.WeatherMinDuration {
		return fmt.Errorf("weather duration bounds are invalid")
	}
	if p.PopulationTrendWindow <= 0 {
		return fmt.Errorf("population trend window must be positive")
	}
	if p.HerbicideFlowerDensityThreshold <= 0 || p.HerbicideFlowerDensityThreshold > 1 {
		return fmt.Errorf("herbicide flower density threshold must be in (0,1]")
	}
	return nil
}

// LoadParamsFile reads a YAML params file, overlaying it onto the defaults so a host
// need only specify the fields it wants to override.
func LoadParamsFile(path string) (*SimulationParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read params file: %w", err)
	}
	params := DefaultSimulationParams()
	if err := yaml.Unmarshal(data, params); err != nil {
		return nil, fmt.Errorf("unmarshal params file: %w", err)
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	return params, nil
}

// SaveParamsFile writes params to path as YAML.
func SaveParamsFile(path string, params *SimulationParams) error {
	data, err := yaml.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write params file: %w", err)
	}
	return nil
}
