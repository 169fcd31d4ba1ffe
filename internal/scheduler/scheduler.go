// Package scheduler runs recurring background jobs on cron schedules, such
// as periodic re-scoring of unscored leads and daily analytics snapshots.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// JobFunc is the work a scheduled job performs on each tick
type JobFunc func(ctx context.Context) error

type job struct {
	name     string
	schedule cron.Schedule
	spec     string
	run      JobFunc
}

// Scheduler runs registered jobs on their cron schedules until stopped.
// Jobs must be added before Start is called.
type Scheduler struct {
	parser  cron.Parser
	jobs    []job
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
	mu      sync.Mutex
}

// New creates a new Scheduler instance. Schedules use standard 5-field cron
// expressions (minute hour day-of-month month day-of-week), for example
// "0 3 * * *" for daily at 3am.
func New() *Scheduler {
	return &Scheduler{
		parser: cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
	}
}

// Add registers a job under the given cron expression
func (s *Scheduler) Add(name, spec string, run JobFunc) error {
	if name == "" {
		return fmt.Errorf("job name is required")
	}
	if run == nil {
		return fmt.Errorf("job func is required")
	}

	schedule, err := s.parser.Parse(spec)
	if err != nil {
		return fmt.Errorf("invalid cron expression %q for job %s: %w", spec, name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return fmt.Errorf("scheduler already started")
	}
	s.jobs = append(s.jobs, job{name: name, schedule: schedule, spec: spec, run: run})
	return nil
}

// Jobs returns the names of the registered jobs
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.jobs))
	for i, j := range s.jobs {
		names[i] = j.name
	}
	return names
}

// Start launches one goroutine per registered job. It returns immediately;
// use Stop to shut the scheduler down.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	for _, j := range s.jobs {
		log.Printf("[Scheduler] Job registered: name=%s, cron=%s", j.name, j.spec)
		s.wg.Add(1)
		go s.runLoop(ctx, j)
	}
}

// Stop cancels all job loops and waits for in-flight runs to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) runLoop(ctx context.Context, j job) {
	defer s.wg.Done()

	for {
		now := time.Now()
		next := j.schedule.Next(now)
		timer := time.NewTimer(next.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		start := time.Now()
		if err := j.run(ctx); err != nil {
			log.Printf("[Scheduler] Job failed: name=%s, error=%v", j.name, err)
		} else {
			log.Printf("[Scheduler] Job completed: name=%s, duration=%v", j.name, time.Since(start).Round(time.Millisecond))
		}
	}
}
