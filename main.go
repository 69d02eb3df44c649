package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

func main() {
	var (
		help       = flag.Bool("help", false, "Show help message")
		version    = flag.Bool("version", false, "Show version information")
		paramsFile = flag.String("params", "", "Load SimulationParams from a YAML file")
		loadState  = flag.String("load", "", "Load simulation state from a save file")
		saveState  = flag.String("save", "", "Save simulation state to a file and exit")
		webPort    = flag.Int("port", 8080, "Port to serve the websocket/metrics interface on")
		seed       = flag.Int64("seed", 0, "Random seed (0 for current time)")
	)
	flag.Parse()

	if *help {
		fmt.Println("EvoGarden Simulation Core")
		fmt.Println("=========================")
		fmt.Println()
		fmt.Println("A tick-driven garden ecosystem: flowers, pollinating insects, hunting")
		fmt.Println("birds and eagles, and a population manager that spawns predators and")
		fmt.Println("herbicide planes in response to trend shifts.")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Printf("  %s [options]\n", os.Args[0])
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("External interface:")
		fmt.Println("  ws://localhost:<port>/ws   engine command/event channel")
		fmt.Println("  http://localhost:<port>/metrics   Prometheus metrics")
		return
	}

	if *version {
		fmt.Println("EvoGarden Simulation Core v1.0")
		return
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	engineSeed := *seed
	if engineSeed == 0 {
		engineSeed = time.Now().UnixNano()
	} else {
		logger.Info("using fixed random seed", zap.Int64("seed", engineSeed))
	}

	params := DefaultSimulationParams()
	if *paramsFile != "" {
		loaded, err := LoadParamsFile(*paramsFile)
		if err != nil {
			logger.Fatal("failed to load params file", zap.Error(err))
		}
		params = loaded
	}

	flowerFactory := NewFlowerFactory(64, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go flowerFactory.Run(ctx, synthesizeFlower)

	engine := NewEngine(params, logger, flowerFactory, engineSeed)
	stateManager := NewStateManager(engine, logger)

	if *loadState != "" {
		if err := stateManager.LoadFromFile(*loadState, drawFlowerPlaceholder); err != nil {
			logger.Fatal("failed to load state", zap.Error(err))
		}
	}

	if *saveState != "" {
		if err := stateManager.SaveToFile(*saveState); err != nil {
			logger.Fatal("failed to save state", zap.Error(err))
		}
		return
	}

	metrics := NewMetrics()
	server := NewServer(engine, stateManager, metrics, logger)
	engine.Start()
	server.Run()

	logger.Info("evogarden listening", zap.Int("port", *webPort))
	if err := http.ListenAndServe(fmt.Sprintf(":%d", *webPort), server.Handler()); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

// synthesizeFlower is the in-process stand-in for an external flower-image
// synthesis service (spec §4.6): it derives a plausible child genome from one
// or two parent genomes. A real deployment would call out to a drawing
// service; this keeps the factory's async/circuit-breaker machinery
// exercised without a network dependency.
func synthesizeFlower(req FlowerRequest) (*Actor, error) {
	genome := req.ParentGenome1
	if req.ParentGenome2 != "" {
		genome = crossGenome(req.ParentGenome1, req.ParentGenome2)
	}
	return &Actor{
		Type:               ActorFlower,
		Genome:             genome,
		ImageBlob:          drawFlowerPlaceholder(genome),
		Health:             100,
		MaxHealth:          100,
		Stamina:            100,
		MaxStamina:         100,
		NutrientEfficiency: 1,
		MinTemp:            0,
		MaxTemp:            40,
		MaturationPeriod:   20,
	}, nil
}

func crossGenome(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			out[i] = a[i]
		} else {
			out[i] = b[i]
		}
	}
	return string(out)
}

// drawFlowerPlaceholder regenerates the stripped image blob on load (spec §6).
func drawFlowerPlaceholder(genome string) string {
	return "flower:" + genome
}
