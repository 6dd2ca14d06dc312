package scheduler

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// TaskFn is a scheduled unit of work.
type TaskFn func()

// Scheduler runs named periodic and one-shot background tasks. Registering
// a name twice replaces the earlier task.
type Scheduler struct {
	mu     sync.Mutex
	tasks  map[string]func() // cancel funcs by name
	logger *zap.Logger
	stopCh chan struct{}
}

// New creates a Scheduler.
func New(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		tasks:  make(map[string]func()),
		stopCh: make(chan struct{}),
		logger: logger,
	}
}

// AddTicker runs fn every interval until removed or the scheduler stops.
func (s *Scheduler) AddTicker(name string, interval time.Duration, fn TaskFn) {
	done := make(chan struct{})
	s.register(name, func() { close(done) })

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.run(name, fn)
			case <-done:
				return
			case <-s.stopCh:
				return
			}
		}
	}()
	s.logger.Info("scheduler task registered",
		zap.String("name", name), zap.Duration("interval", interval))
}

// AddDelay runs fn once after delay unless removed first.
func (s *Scheduler) AddDelay(name string, delay time.Duration, fn TaskFn) {
	timer := time.AfterFunc(delay, func() {
		s.run(name, fn)
		s.mu.Lock()
		delete(s.tasks, name)
		s.mu.Unlock()
	})
	s.register(name, func() { timer.Stop() })
}

// Remove cancels the named task. Unknown names are a no-op.
func (s *Scheduler) Remove(name string) {
	s.mu.Lock()
	cancel, ok := s.tasks[name]
	delete(s.tasks, name)
	s.mu.Unlock()
	if ok {
		cancel()
	}
}

// Stop cancels every task. Safe to call more than once.
func (s *Scheduler) Stop() {
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
}

// ListTasks returns the names of all registered tasks.
func (s *Scheduler) ListTasks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.tasks))
	for name := range s.tasks {
		names = append(names, name)
	}
	return names
}

func (s *Scheduler) register(name string, cancel func()) {
	s.mu.Lock()
	old, ok := s.tasks[name]
	s.tasks[name] = cancel
	s.mu.Unlock()
	if ok {
		old()
	}
}

// run shields the scheduler from task panics.
func (s *Scheduler) run(name string, fn TaskFn) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduler task panicked",
				zap.String("task", name), zap.Any("recover", r))
		}
	}()
	fn()
}
