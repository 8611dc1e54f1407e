package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is one sweep run.
type Task func(context.Context) error

// SweeperConfig configures a Sweeper.
type SweeperConfig struct {
	Interval time.Duration
	// RunOnStart triggers a sweep as soon as Start is called.
	RunOnStart bool
	Logger     *zap.Logger
}

// Sweeper runs a task on a fixed interval in a single goroutine.
type Sweeper struct {
	name       string
	task       Task
	interval   time.Duration
	runOnStart bool
	logger     *zap.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	runs    int
}

// NewSweeper builds a sweeper; the interval defaults to one hour.
func NewSweeper(name string, task Task, cfg SweeperConfig) *Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Sweeper{
		name:       name,
		task:       task,
		interval:   cfg.Interval,
		runOnStart: cfg.RunOnStart,
		logger:     cfg.Logger,
	}
}

// Start launches the sweep loop. Safe to call once.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.loop()
	s.started = true
	s.logger.Sugar().Infow("sweeper started", "sweeper", s.name, "interval", s.interval.String())
}

// Stop cancels the loop and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.mu.Unlock()
	s.wg.Wait()
	s.logger.Sugar().Infow("sweeper stopped", "sweeper", s.name)
}

// Runs reports how many sweeps have completed.
func (s *Sweeper) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

func (s *Sweeper) loop() {
	defer s.wg.Done()
	if s.runOnStart {
		s.run()
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.run()
		}
	}
}

func (s *Sweeper) run() {
	if err := s.task(s.ctx); err != nil {
		s.logger.Sugar().Warnw("sweep failed", "sweeper", s.name, "error", err)
	}
	s.mu.Lock()
	s.runs++
	s.mu.Unlock()
}
