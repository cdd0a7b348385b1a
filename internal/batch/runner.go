// Package batch runs many independently seeded simulations in parallel and
// summarises their outcomes.
package batch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/zappabad/budgetsim/internal/simulation"
)

// Outcome is one finished simulation of a batch.
type Outcome struct {
	Index  int
	Seed   int64
	Result simulation.Result
}

// Runner executes a batch of simulations on a pool of workers.
type Runner struct {
	cfg    Config
	params simulation.Params

	jobs      chan int
	outcomes  chan Outcome
	completed atomic.Int64

	closed    chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewRunner starts cfg.Workers workers simulating params cfg.Runs times.
// Outcomes arrive on Outcomes in completion order; the channel is closed
// when the batch finishes or the runner is closed.
func NewRunner(cfg Config, params simulation.Params) *Runner {
	def := DefaultConfig()
	if cfg.Runs < 0 {
		cfg.Runs = 0
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.Workers > cfg.Runs && cfg.Runs > 0 {
		cfg.Workers = cfg.Runs
	}
	if cfg.ResultBuffer <= 0 {
		cfg.ResultBuffer = def.ResultBuffer
	}

	r := &Runner{
		cfg:      cfg,
		params:   params,
		jobs:     make(chan int),
		outcomes: make(chan Outcome, cfg.ResultBuffer),
		closed:   make(chan struct{}),
	}

	r.wg.Add(1)
	go r.feed()
	for i := 0; i < cfg.Workers; i++ {
		r.wg.Add(1)
		go r.work()
	}
	go func() {
		r.wg.Wait()
		close(r.outcomes)
	}()

	return r
}

func (r *Runner) feed() {
	defer r.wg.Done()
	defer close(r.jobs)

	for i := 0; i < r.cfg.Runs; i++ {
		select {
		case r.jobs <- i:
		case <-r.closed:
			return
		}
	}
}

func (r *Runner) work() {
	defer r.wg.Done()

	for i := range r.jobs {
		seed := r.Seed(i)
		// Simulators are not safe for concurrent use, so each run gets its own.
		sim := simulation.NewSimulator(simulation.Config{
			Seed:   seed,
			Logger: r.cfg.Logger,
		})
		out := Outcome{Index: i, Seed: seed, Result: sim.Run(r.params)}

		select {
		case r.outcomes <- out:
			r.completed.Add(1)
		case <-r.closed:
			return
		}
	}
}

// Seed returns the seed used for run i.
func (r *Runner) Seed(i int) int64 {
	return r.cfg.BaseSeed + int64(i) + 1
}

// Outcomes returns the outcomes channel.
func (r *Runner) Outcomes() <-chan Outcome {
	return r.outcomes
}

// Completed returns the number of outcomes delivered so far.
func (r *Runner) Completed() int64 {
	return r.completed.Load()
}

// Close stops the batch and waits for the workers to exit.
func (r *Runner) Close() {
	r.closeOnce.Do(func() {
		close(r.closed)
	})
	r.wg.Wait()
}

// Run executes a whole batch and summarises it. Outcomes are summarised in
// run order so the summary does not depend on scheduling.
func Run(ctx context.Context, cfg Config, params simulation.Params) (Summary, error) {
	r := NewRunner(cfg, params)
	defer r.Close()

	outcomes := make([]Outcome, r.cfg.Runs)
	received := 0
	for received < r.cfg.Runs {
		select {
		case <-ctx.Done():
			return Summary{}, ctx.Err()
		case out, ok := <-r.Outcomes():
			if !ok {
				return Summary{}, errors.New("batch: runner stopped before all runs finished")
			}
			outcomes[out.Index] = out
			received++
		}
	}
	return Summarize(params, outcomes), nil
}
