package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/saulo-duarte/academy-lambda/internal/config"
	"github.com/sirupsen/logrus"
)

// Job is a unit of background work such as a reconciliation sweep.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

type Scheduler struct {
	cron   *cron.Cron
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
}

func NewScheduler() *Scheduler {
	logger := cronLogger{entry: config.Log.WithField("component", "scheduler")}
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register runs job on spec (standard cron or "@every 15m" descriptors).
func (s *Scheduler) Register(spec string, job Job) error {
	if _, err := s.cron.AddFunc(spec, func() { _ = RunJob(s.ctx, job) }); err != nil {
		return fmt.Errorf("schedule %s on %q: %w", job.Name(), spec, err)
	}
	s.jobs = append(s.jobs, job)
	return nil
}

func (s *Scheduler) Jobs() []Job {
	return s.jobs
}

func (s *Scheduler) Start() {
	s.cron.Start()
	config.Log.WithField("jobs", len(s.jobs)).Info("Scheduler started")
}

// Stop prevents new runs, cancels running ones and waits for them until ctx
// expires.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	s.cancel()

	select {
	case <-done.Done():
		config.Log.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func RunJob(ctx context.Context, job Job) error {
	log := config.WithContext(ctx).WithField("job", job.Name())

	start := time.Now()
	err := job.Run(ctx)
	log = log.WithField("duration_ms", time.Since(start).Milliseconds())
	if err != nil {
		log.WithError(err).Error("Job failed")
		return err
	}
	log.Info("Job finished")
	return nil
}

// RunAll runs each job once, in order, and joins their errors.
func RunAll(ctx context.Context, jobs ...Job) error {
	var errs []error
	for _, job := range jobs {
		if err := RunJob(ctx, job); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", job.Name(), err))
		}
	}
	return errors.Join(errs...)
}

type cronLogger struct {
	entry *logrus.Entry
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).WithError(err).Error(msg)
}

func fields(kv []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		f[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return f
}
