package notifier

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"

	"github.com/NordCoder/Expirus/internal/domain/notification"
	"github.com/NordCoder/Expirus/internal/obs"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrLauncherClosed = errors.New("launcher is shut down")

type JobRunner interface {
	Run(ctx context.Context, job notification.Job) error
}

// Run is the handle of one launched job.
type Run struct {
	ID     uuid.UUID
	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel stops the job before its next tick. Each call after the first is a no-op.
func (r *Run) Cancel() { r.cancel() }

func (r *Run) Done() <-chan struct{} { return r.done }

// Launcher starts one goroutine per job, detached from the request that created it.
type Launcher struct {
	runner JobRunner
	log    *zap.Logger

	base    context.Context
	stopAll context.CancelFunc

	mu     sync.Mutex
	closed bool
	runs   map[uuid.UUID]*Run
	wg     sync.WaitGroup
}

func NewLauncher(runner JobRunner, log *zap.Logger) *Launcher {
	base, stop := context.WithCancel(context.Background())
	return &Launcher{
		runner:  runner,
		log:     obs.Component(log, "notifier.launcher"),
		base:    base,
		stopAll: stop,
		runs:    make(map[uuid.UUID]*Run),
	}
}

func (l *Launcher) Launch(job notification.Job) (*Run, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil, ErrLauncherClosed
	}

	ctx, cancel := context.WithCancel(l.base)
	run := &Run{ID: job.ID, cancel: cancel, done: make(chan struct{})}
	l.runs[job.ID] = run
	l.wg.Add(1)
	mActiveJobs.Inc()

	go l.work(ctx, run, job)
	return run, nil
}

func (l *Launcher) work(ctx context.Context, run *Run, job notification.Job) {
	log := l.log.With(zap.String("job_id", job.ID.String()))
	defer func() {
		if r := recover(); r != nil {
			mJobs.WithLabelValues("panic").Inc()
			log.Error("job panicked", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
		}
		run.cancel()
		l.mu.Lock()
		delete(l.runs, run.ID)
		l.mu.Unlock()
		mActiveJobs.Dec()
		close(run.done)
		l.wg.Done()
	}()

	if err := l.runner.Run(ctx, job); err != nil {
		mJobs.WithLabelValues("cancelled").Inc()
		log.Info("job stopped early", zap.Error(err))
		return
	}
	mJobs.WithLabelValues("completed").Inc()
}

func (l *Launcher) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.runs)
}

// Health fails once the launcher no longer accepts jobs.
func (l *Launcher) Health(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrLauncherClosed
	}
	return nil
}

// Shutdown refuses new jobs, cancels the running ones and waits for them until ctx is done.
func (l *Launcher) Shutdown(ctx context.Context) error {
	l.mu.Lock()
	l.closed = true
	pending := len(l.runs)
	l.mu.Unlock()

	l.stopAll()
	if pending > 0 {
		l.log.Info("cancelling pending jobs", zap.Int("jobs", pending))
	}

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
