package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"birthday_notification_bot/internal/app"
)

const checkTimeout = 5 * time.Minute

// BirthdayScheduler drives the periodic birthday check. One check runs
// immediately on Start, then repeats at the configured interval. Overlapping
// runs are skipped rather than queued.
type BirthdayScheduler struct {
	cronEngine *cron.Cron
	checker    app.BirthdayChecker
	logger     *logrus.Entry
	interval   time.Duration

	mu      sync.Mutex
	running bool
	entryID cron.EntryID
}

func NewBirthdayScheduler(checker app.BirthdayChecker, logger *logrus.Entry, interval time.Duration) *BirthdayScheduler {
	return &BirthdayScheduler{
		cronEngine: cron.New(
			cron.WithLocation(time.Local),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		checker:  checker,
		logger:   logger,
		interval: interval,
	}
}

// Start begins the periodic checks. Calling Start on a running scheduler is
// a no-op.
func (s *BirthdayScheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Warn("Scheduler already running, ignoring Start")
		return
	}
	s.running = true
	needsEntry := s.entryID == 0
	s.mu.Unlock()

	if needsEntry {
		entryID := s.cronEngine.Schedule(cron.Every(s.interval), cron.FuncJob(s.runCycle))
		s.mu.Lock()
		s.entryID = entryID
		s.mu.Unlock()
	}

	s.cronEngine.Start()
	s.logger.WithField("interval", s.interval.String()).Info("Birthday scheduler started")

	// First check runs right away rather than waiting a full interval.
	go s.runCycle()
}

func (s *BirthdayScheduler) runCycle() {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	today := time.Now()
	if err := s.checker.CheckBirthdays(ctx, today); err != nil {
		s.logger.WithError(err).Error("Birthday check cycle failed")
		return
	}
	s.logger.WithField("date", today.Format("2006-01-02")).Debug("Birthday check cycle completed")
}

// Stop halts scheduling and waits for any in-flight check to finish. Safe to
// call more than once.
func (s *BirthdayScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info("Stopping birthday scheduler...")
	<-s.cronEngine.Stop().Done()
	s.logger.Info("Birthday scheduler stopped")
}
