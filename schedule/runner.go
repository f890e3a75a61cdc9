package schedule

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Entry is a scheduled job and its next activation.
type Entry struct {
	ID   cron.EntryID
	Name string
	Next time.Time
}

// Runner runs named jobs on cron schedules and logs each activation.
type Runner struct {
	cron *cron.Cron
	log  *zap.Logger

	mu    sync.Mutex
	names map[cron.EntryID]string
}

// NewRunner returns a stopped Runner whose schedules are evaluated in loc.
func NewRunner(log *zap.Logger, loc *time.Location) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Runner{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cronLogger{log.Sugar()}),
		),
		log:   log,
		names: make(map[cron.EntryID]string),
	}
}

// Add registers fn under name. fn may be nil, in which case the activation
// is only logged along with message.
func (r *Runner) Add(name, message string, sched cron.Schedule, fn func()) cron.EntryID {
	job := cron.FuncJob(func() {
		r.log.Info("event fired",
			zap.String("job", name),
			zap.String("message", message),
		)
		if fn != nil {
			fn()
		}
	})

	id := r.cron.Schedule(sched, job)

	r.mu.Lock()
	r.names[id] = name
	r.mu.Unlock()

	r.log.Debug("job scheduled",
		zap.String("job", name),
		zap.Time("next", sched.Next(time.Now())),
	)
	return id
}

// Entries lists jobs ordered by their next activation; jobs that never
// fire again sort last.
func (r *Runner) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	var out []Entry
	for _, e := range r.cron.Entries() {
		next := e.Next
		if next.IsZero() {
			next = e.Schedule.Next(now)
		}
		out = append(out, Entry{ID: e.ID, Name: r.names[e.ID], Next: next})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Next, out[j].Next
		if a.IsZero() != b.IsZero() {
			return b.IsZero()
		}
		return a.Before(b)
	})
	return out
}

// Start runs the scheduler in its own goroutine.
func (r *Runner) Start() {
	r.log.Info("scheduler started", zap.Int("jobs", len(r.cron.Entries())))
	r.cron.Start()
}

// Stop halts the scheduler; the returned context is done once running
// jobs finish.
func (r *Runner) Stop() context.Context {
	ctx := r.cron.Stop()
	r.log.Info("scheduler stopped")
	return ctx
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
