package main

import (
	"os"

	"github.com/gocarina/gocsv"
)

// EventType is one of the three surfaces an EventRecord can carry (spec §6).
type EventType string

const (
	EventInfo    EventType = "info"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

// Importance tags whether an event is worth a user-facing toast or just a log line.
type Importance string

const (
	ImportanceLow  Importance = "low"
	ImportanceHigh Importance = "high"
)

// EventRecord is the structured event emitted by behaviors and managers (spec §6).
type EventRecord struct {
	Message    string     `json:"message" csv:"message"`
	Type       EventType  `json:"type" csv:"type"`
	Importance Importance `json:"importance" csv:"importance"`
	Tick       int        `json:"tick" csv:"tick"`
}

// EventCollector accumulates events across ticks, bounded to a maximum retained
// count. Grounded on the teacher's EventLogger ring-buffer trimming (eventlog.go),
// but carries the spec's four-field EventRecord instead of the teacher's
// free-form Data map.
type EventCollector struct {
	events    []EventRecord
	maxEvents int
}

// NewEventCollector creates a collector retaining at most maxEvents records.
func NewEventCollector(maxEvents int) *EventCollector {
	return &EventCollector{maxEvents: maxEvents}
}

// Add appends one or more records, trimming the oldest if over capacity.
func (ec *EventCollector) Add(records ...EventRecord) {
	ec.events = append(ec.events, records...)
	if ec.maxEvents > 0 && len(ec.events) > ec.maxEvents {
		ec.events = ec.events[len(ec.events)-ec.maxEvents:]
	}
}

// Since returns every retained record at or after the given tick.
func (ec *EventCollector) Since(tick int) []EventRecord {
	var filtered []EventRecord
	for _, e := range ec.events {
		if e.Tick >= tick {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// All returns every retained record.
func (ec *EventCollector) All() []EventRecord {
	return ec.events
}

// ExportCSV writes the full retained event log to path as CSV, one row per
// EventRecord, via gocsv's struct-tag marshaling.
func (ec *EventCollector) ExportCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&ec.events, f)
}
