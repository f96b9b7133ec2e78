package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Job is one step of a refresh run.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Scheduler runs its jobs once at startup and then on every interval tick
type Scheduler struct {
	jobs     []Job
	interval time.Duration
	logger   *logrus.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	jobMutex sync.Mutex // Ensures sequential job execution
	runs     atomic.Int64
}

// NewScheduler creates a scheduler. A non-positive interval runs the jobs only at startup.
func NewScheduler(interval time.Duration, logger *logrus.Logger, jobs ...Job) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:     jobs,
		interval: interval,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.runScheduler()
}

func (s *Scheduler) runScheduler() {
	defer s.wg.Done()

	s.logger.Info("Running startup refresh jobs")
	s.RunNow()

	if s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.logger.Info("Starting scheduled refresh jobs")
			s.RunNow()
		}
	}
}

// RunNow runs every job in order. A failing job is logged and the rest still run;
// cancellation skips the remaining jobs.
func (s *Scheduler) RunNow() {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	for _, job := range s.jobs {
		if s.ctx.Err() != nil {
			return
		}

		start := time.Now()
		err := job.Run(s.ctx)
		entry := s.logger.WithFields(logrus.Fields{
			"job":      job.Name,
			"duration": time.Since(start).String(),
		})
		if err != nil {
			entry.WithError(err).Error("Refresh job failed")
			continue
		}
		entry.Info("Refresh job completed successfully")
	}
	s.runs.Add(1)
}

// Runs reports how many refresh runs have finished.
func (s *Scheduler) Runs() int64 {
	return s.runs.Load()
}

// Stop cancels a run in progress and waits for the scheduler to exit
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}
