package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Job фоновая задача; возвращает число обработанных записей
type Job func(ctx context.Context) (int, error)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler запускает фоновые задачи по cron расписанию.
// Пока задача выполняется, следующий запуск той же задачи пропускается.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	log    Logger
}

// New создает планировщик; задачи не запускаются до Start
func New(log Logger) *Scheduler {
	adapter := cronLogger{log: log}
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(adapter),
			cron.SkipIfStillRunning(adapter),
		)),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}
}

// Add регистрирует задачу. schedule в формате cron или "@every 1m".
// timeout ограничивает один запуск задачи.
func (s *Scheduler) Add(name, schedule string, timeout time.Duration, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.run(name, timeout, job)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s with schedule %q: %w", name, schedule, err)
	}
	s.log.Info("Job %s scheduled: schedule=%s", name, schedule)
	return nil
}

func (s *Scheduler) run(name string, timeout time.Duration, job Job) {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	started := time.Now()
	processed, err := job(ctx)
	if err != nil {
		s.log.Error("Job %s failed after %s: processed=%d, error=%v", name, time.Since(started), processed, err)
		return
	}
	if processed > 0 {
		s.log.Info("Job %s finished: processed=%d, duration=%s", name, processed, time.Since(started))
	}
}

// Start запускает планировщик в фоне
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop останавливает планировщик и ждет завершения запущенных задач.
// По истечении ctx выполняющиеся задачи отменяются.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()

	select {
	case <-done.Done():
		s.cancel()
		return nil
	case <-ctx.Done():
		s.cancel()
		<-done.Done()
		return ctx.Err()
	}
}

// cronLogger направляет ошибки cron в логгер приложения
type cronLogger struct {
	log Logger
}

func (l cronLogger) Info(string, ...interface{}) {}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("Scheduler: %s: %v %v", msg, err, keysAndValues)
}
