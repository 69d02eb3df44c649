package main

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// FlowerRequest is an outbound request for a new flower, carrying up to two
// parent genomes (spec §4.6).
type FlowerRequest struct {
	RequestID     string
	X, Y          int
	ParentGenome1 string
	ParentGenome2 string
}

// FlowerCompletion is the async result of a FlowerRequest. Flower is nil if
// synthesis failed (spec §4.9: discarded silently).
type FlowerCompletion struct {
	RequestID string
	Flower    *Actor
}

// FlowerFactory is the out-of-tick worker collaborator described in spec §4.6: it
// consumes requests off a channel and produces completions on another, modeled on
// the teacher's goroutine + channel pattern in web_interface.go's broadcast/
// simulation loops. A gobreaker circuit breaker wraps the synthesis call so a
// misbehaving downstream flower-image service degrades gracefully rather than
// stalling every request (spec §5 backpressure, §7 recoverable-failure table).
type FlowerFactory struct {
	requests   chan FlowerRequest
	completions chan FlowerCompletion
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
	stop       chan struct{}
}

// NewFlowerFactory creates a factory whose request and completion channels each
// buffer bufferSize entries. The actual (possibly slow, possibly failing)
// flower-synthesis call is passed to Run as synth; in production it talks to an
// external image/genome service, in tests it can be a deterministic stub.
func NewFlowerFactory(bufferSize int, logger *zap.Logger) *FlowerFactory {
	settings := gobreaker.Settings{
		Name:        "flower-factory",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	}
	return &FlowerFactory{
		requests:    make(chan FlowerRequest, bufferSize),
		completions: make(chan FlowerCompletion, bufferSize),
		breaker:     gobreaker.NewCircuitBreaker(settings),
		logger:      logger,
		stop:        make(chan struct{}),
	}
}

// Enqueue submits a flower request without blocking the caller. If the request
// buffer is full the request is dropped and logged, matching the spec's
// backpressure policy: "the seed queue grows but does not block ticks."
func (ff *FlowerFactory) Enqueue(req FlowerRequest) {
	select {
	case ff.requests <- req:
	default:
		ff.logger.Warn("flower factory request buffer full, dropping request", zap.String("request_id", req.RequestID))
	}
}

// Run processes requests until ctx is cancelled or Stop is called, pushing each
// completion onto the completions channel. It is the factory's "out-of-tick"
// worker loop and is meant to run in its own goroutine.
func (ff *FlowerFactory) Run(ctx context.Context, synth func(FlowerRequest) (*Actor, error)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-ff.stop:
			return
		case req := <-ff.requests:
			result, err := ff.breaker.Execute(func() (interface{}, error) {
				return synth(req)
			})
			if err != nil {
				ff.logger.Debug("flower synthesis failed, discarding seed", zap.String("request_id", req.RequestID), zap.Error(err))
				ff.completions <- FlowerCompletion{RequestID: req.RequestID}
				continue
			}
			flower, _ := result.(*Actor)
			ff.completions <- FlowerCompletion{RequestID: req.RequestID, Flower: flower}
		}
	}
}

// Stop halts the worker loop.
func (ff *FlowerFactory) Stop() {
	close(ff.stop)
}

// Drain removes and returns every completion currently buffered, the engine's
// single suspension point at the top of each tick (spec §4.6, §5).
func (ff *FlowerFactory) Drain() []FlowerCompletion {
	var completions []FlowerCompletion
	for {
		select {
		case c := <-ff.completions:
			completions = append(completions, c)
		default:
			return completions
		}
	}
}

// PendingCount reports the number of requests still queued, exposed for
// observability per spec §5 ("a counter of pending requests is exposed in the
// summary").
func (ff *FlowerFactory) PendingCount() int {
	return len(ff.requests)
}

// EstimateSeedHealth computes the health a new seed placeholder starts with: the
// average health of existing flowers, floored at 1 (spec §4.6).
func EstimateSeedHealth(actors map[string]*Actor) float64 {
	sum := 0.0
	count := 0
	for _, a := range actors {
		if a.Type == ActorFlower {
			sum += a.Health
			count++
		}
	}
	if count == 0 {
		return 1
	}
	avg := sum / float64(count)
	if avg < 1 {
		return 1
	}
	return avg
}
