package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"TradeCraft/internal/dashboard"
	"TradeCraft/internal/recorder"
	"TradeCraft/internal/symbol"
	"TradeCraft/internal/youtube"
)

// Task is a handle to one registered job.
type Task struct {
	Name string

	s    *Scheduler
	id   cron.EntryID
	once sync.Once
}

// Stop removes the task so it never runs again. Safe to call repeatedly.
func (t *Task) Stop() {
	if t == nil {
		return
	}
	t.once.Do(func() {
		t.s.Cron.Remove(t.id)
		t.s.forget(t.Name)
		t.s.logger.Info("task stopped", zap.String("task", t.Name))
	})
}

// Intervals configures RegisterAll.
type Intervals struct {
	Dashboard  time.Duration
	Checkpoint time.Duration
	Videos     time.Duration
	PruneCron  string
	Retention  time.Duration
}

// Scheduler manages the polling tasks.
type Scheduler struct {
	Cron        *cron.Cron
	Dashboard   *dashboard.Dashboard
	Checkpoints *dashboard.CheckpointBoard
	Feed        *youtube.Feed
	Recorder    recorder.Recorder
	Symbols     *symbol.Store
	Ctx         context.Context

	logger *zap.Logger
	mu     sync.Mutex
	tasks  map[string]*Task
}

// NewScheduler creates a new Scheduler. Any component may be nil, in which
// case RegisterAll skips its task.
func NewScheduler(ctx context.Context, d *dashboard.Dashboard, cb *dashboard.CheckpointBoard, feed *youtube.Feed, rec recorder.Recorder, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Dashboard:   d,
		Checkpoints: cb,
		Feed:        feed,
		Recorder:    rec,
		Ctx:         ctx,
		logger:      logger.Named("scheduler"),
		tasks:       make(map[string]*Task),
	}
}

// Every registers fn to run every interval.
func (s *Scheduler) Every(interval time.Duration, name string, fn func(ctx context.Context)) (*Task, error) {
	if interval < time.Second {
		return nil, fmt.Errorf("task %s: interval %v below 1s", name, interval)
	}
	return s.add(name, cron.Every(interval), fn)
}

// CronTask registers fn on a six-field cron spec (seconds first).
func (s *Scheduler) CronTask(spec, name string, fn func(ctx context.Context)) (*Task, error) {
	sched, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor).Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("task %s: parse %q: %w", name, spec, err)
	}
	return s.add(name, sched, fn)
}

func (s *Scheduler) add(name string, sched cron.Schedule, fn func(ctx context.Context)) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.tasks[name]; dup {
		return nil, fmt.Errorf("task %s already registered", name)
	}
	t := &Task{Name: name, s: s}
	t.id = s.Cron.Schedule(sched, cron.FuncJob(func() { s.run(name, fn) }))
	s.tasks[name] = t
	return t, nil
}

func (s *Scheduler) forget(name string) {
	s.mu.Lock()
	delete(s.tasks, name)
	s.mu.Unlock()
}

// Task returns the handle registered under name.
func (s *Scheduler) Task(name string) (*Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[name]
	return t, ok
}

func (s *Scheduler) run(name string, fn func(ctx context.Context)) {
	if s.Ctx.Err() != nil {
		return
	}
	s.logger.Debug("running task", zap.String("task", name))
	fn(s.Ctx)
}

// RegisterAll registers the dashboard, checkpoint, video and prune tasks.
func (s *Scheduler) RegisterAll(iv Intervals) error {
	if s.Dashboard != nil {
		if _, err := s.Every(iv.Dashboard, "dashboard", s.dashboardTask); err != nil {
			return fmt.Errorf("register dashboard task: %w", err)
		}
	}
	if s.Checkpoints != nil {
		if _, err := s.Every(iv.Checkpoint, "checkpoints", s.Checkpoints.Refresh); err != nil {
			return fmt.Errorf("register checkpoint task: %w", err)
		}
	}
	if s.Feed != nil {
		if _, err := s.Every(iv.Videos, "videos", s.videoTask); err != nil {
			return fmt.Errorf("register video task: %w", err)
		}
	}
	if s.Recorder != nil && iv.PruneCron != "" && iv.Retention > 0 {
		retention := iv.Retention
		if _, err := s.CronTask(iv.PruneCron, "prune", func(context.Context) { s.pruneTask(retention) }); err != nil {
			return fmt.Errorf("register prune task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info("scheduler started", zap.Int("tasks", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// RunNow refreshes the dashboard immediately (manual refresh / RUN_ON_START).
func (s *Scheduler) RunNow() error {
	if s.Dashboard == nil {
		return nil
	}
	return s.Dashboard.Refresh(s.Ctx)
}

func (s *Scheduler) dashboardTask(ctx context.Context) {
	// Failures are already reflected in the dashboard banner.
	_ = s.Dashboard.Refresh(ctx)
}

func (s *Scheduler) videoTask(ctx context.Context) {
	st := s.Feed.Refresh(ctx)
	s.logger.Debug("video feed refreshed",
		zap.Int("videos", len(st.Videos)), zap.Bool("fallback", st.UsedFallback))
}

func (s *Scheduler) pruneTask(retention time.Duration) {
	n, err := s.Recorder.Prune(time.Now().Add(-retention))
	if err != nil {
		s.logger.Error("prune history", zap.Error(err))
		return
	}
	s.logger.Info("history pruned", zap.Int64("rows", n))
}
