// Package memory implements telemetry.Backend in process memory.
package memory

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/RaggarDK/ArcadeRaycastVehicle/telemetry"
)

// RunRecord groups a run with its samples in tick order.
type RunRecord struct {
	Run   telemetry.Run
	Ticks []telemetry.TickSample
}

// Backend keeps every run in memory.
type Backend struct {
	mu      sync.RWMutex
	runs    map[string]*RunRecord
	order   []string
	current *RunRecord
	nextID  uint
}

// New creates a new memory backend.
func New() *Backend {
	return &Backend{runs: make(map[string]*RunRecord)}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources.
func (b *Backend) Close() error {
	return nil
}

// StartRun begins recording a new run.
func (b *Backend) StartRun(run *telemetry.Run) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.runs[run.ID]; ok {
		return errors.Errorf("run %q already exists", run.ID)
	}
	rec := &RunRecord{Run: *run}
	b.runs[run.ID] = rec
	b.order = append(b.order, run.ID)
	b.current = rec
	return nil
}

// RecordTick appends sample to the current run.
func (b *Backend) RecordTick(sample *telemetry.TickSample) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return errors.New("no run started")
	}
	b.nextID++
	sample.ID = b.nextID
	sample.RunID = b.current.Run.ID
	stored := *sample
	stored.Wheels = append([]telemetry.WheelSample(nil), sample.Wheels...)
	for i := range stored.Wheels {
		stored.Wheels[i].TickSampleID = sample.ID
	}
	b.current.Ticks = append(b.current.Ticks, stored)
	return nil
}

// Runs returns the runs in the order they were started.
func (b *Backend) Runs() []telemetry.Run {
	b.mu.RLock()
	defer b.mu.RUnlock()

	runs := make([]telemetry.Run, 0, len(b.order))
	for _, id := range b.order {
		runs = append(runs, b.runs[id].Run)
	}
	return runs
}

// Ticks returns the samples of run id.
func (b *Backend) Ticks(runID string) ([]telemetry.TickSample, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rec, ok := b.runs[runID]
	if !ok {
		return nil, errors.Errorf("unknown run %q", runID)
	}
	return append([]telemetry.TickSample(nil), rec.Ticks...), nil
}
