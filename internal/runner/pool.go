// Package runner dispatches a batch of independent simulation tasks — the
// Cartesian product of zero-patient indices and repetition ids — across a
// worker pool. Tasks share no mutable state: each owns its SimulationState,
// its seeded random generator, and its output sinks, so the pool needs no
// synchronization beyond the task channel itself.
package runner

import (
	"log/slog"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/talgya/classroomsim/internal/entropy"
	"github.com/talgya/classroomsim/internal/output"
	"github.com/talgya/classroomsim/internal/sim"
)

// Task is one independent simulation run.
type Task struct {
	ZeroPatient int
	Rep         int
}

// Runner executes one batch.
type Runner struct {
	Scenario    *sim.Scenario
	Simulations int           // repetitions per zero patient
	Workers     int           // 0 = one per CPU
	Seed        int64         // batch seed; per-task seeds are derived from it
	OutputRoot  string        // CSV output root; empty disables CSV output
	Store       *output.Store // optional results store
}

// Summary reports the finished batch.
type Summary struct {
	BatchID   string
	Completed int
	Failed    int
	Extinct   int
	Horizon   int
	Elapsed   time.Duration
}

// Run executes every task and returns the batch summary. A failure inside
// one task aborts only that task; the rest of the batch keeps going.
func (r *Runner) Run() Summary {
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	batchID := uuid.NewString()
	kids := r.Scenario.Info.KidIndices()
	total := len(kids) * r.Simulations

	if r.Store != nil {
		if err := r.Store.CreateBatch(output.BatchMeta{
			ID:          batchID,
			Seed:        r.Seed,
			HalfClass:   r.Scenario.HalfClass,
			Simulations: r.Simulations,
		}); err != nil {
			slog.Warn("batch record not stored", "batch", batchID, "error", err)
		}
	}

	slog.Info("batch started",
		"batch", batchID,
		"zero_patients", len(kids),
		"repetitions", r.Simulations,
		"tasks", humanize.Comma(int64(total)),
		"workers", workers,
		"seed", r.Seed,
	)

	start := time.Now()
	tasks := make(chan Task)
	var completed, failed, extinct int64

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range tasks {
				outcome, err := r.runOne(batchID, task)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					slog.Error("run failed",
						"zero_patient", task.ZeroPatient, "rep", task.Rep, "error", err)
					continue
				}
				atomic.AddInt64(&completed, 1)
				if outcome == sim.OutcomeExtinct {
					atomic.AddInt64(&extinct, 1)
				}
			}
		}()
	}

	for _, zp := range kids {
		for rep := 0; rep < r.Simulations; rep++ {
			tasks <- Task{ZeroPatient: zp, Rep: rep}
		}
	}
	close(tasks)
	wg.Wait()

	s := Summary{
		BatchID:   batchID,
		Completed: int(completed),
		Failed:    int(failed),
		Extinct:   int(extinct),
		Horizon:   int(completed - extinct),
		Elapsed:   time.Since(start),
	}
	slog.Info("batch finished",
		"batch", s.BatchID,
		"completed", humanize.Comma(int64(s.Completed)),
		"failed", s.Failed,
		"extinct", s.Extinct,
		"horizon", s.Horizon,
		"elapsed", s.Elapsed.Round(time.Millisecond),
	)
	return s
}

// runOne executes a single task with its own derived seed and sinks.
func (r *Runner) runOne(batchID string, task Task) (sim.Outcome, error) {
	seed := entropy.TaskSeed(r.Seed, task.ZeroPatient, task.Rep)
	rng := rand.New(rand.NewSource(seed))
	runID := uuid.NewString()

	slog.Info("run started", "zero_patient", task.ZeroPatient, "rep", task.Rep, "seed", seed)

	var sinks output.Multi
	var csv *output.CSVWriter
	if r.OutputRoot != "" {
		path, err := output.RunPath(r.OutputRoot, r.Scenario.HalfClass, task.ZeroPatient, task.Rep)
		if err != nil {
			return 0, err
		}
		csv, err = output.NewCSVWriter(path)
		if err != nil {
			return 0, err
		}
		sinks = append(sinks, csv)
	}

	var storeSink *output.RunSink
	if r.Store != nil {
		storeSink = r.Store.NewRunSink(runID)
		sinks = append(sinks, storeSink)
	}

	outcome, err := r.Scenario.Run(task.ZeroPatient, rng, sinks)
	if csv != nil {
		if cerr := csv.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		return 0, err
	}
	if storeSink != nil {
		if err := storeSink.Flush(output.RunResult{
			RunID:       runID,
			BatchID:     batchID,
			ZeroPatient: task.ZeroPatient,
			Rep:         task.Rep,
			Seed:        seed,
			Outcome:     outcome,
		}); err != nil {
			return 0, err
		}
	}

	slog.Info("run finished",
		"zero_patient", task.ZeroPatient, "rep", task.Rep, "outcome", outcome.String())
	return outcome, nil
}
