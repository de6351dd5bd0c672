package scheduler

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type stubChecker struct {
	calls   atomic.Int64
	checked chan struct{}
}

func newStubChecker() *stubChecker {
	return &stubChecker{checked: make(chan struct{}, 16)}
}

func (c *stubChecker) CheckBirthdays(_ context.Context, _ time.Time) error {
	c.calls.Add(1)
	select {
	case c.checked <- struct{}{}:
	default:
	}
	return nil
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.PanicLevel)
	return l.WithField("component", "test")
}

func waitForCheck(t *testing.T, c *stubChecker) {
	t.Helper()
	select {
	case <-c.checked:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a check cycle")
	}
}

func TestSchedulerRunsImmediateCheckOnStart(t *testing.T) {
	checker := newStubChecker()
	s := NewBirthdayScheduler(checker, testLogger(), time.Hour)

	s.Start()
	defer s.Stop()

	waitForCheck(t, checker)
	assert.GreaterOrEqual(t, checker.calls.Load(), int64(1))
}

func TestSchedulerStartIsIdempotent(t *testing.T) {
	checker := newStubChecker()
	s := NewBirthdayScheduler(checker, testLogger(), time.Hour)

	s.Start()
	waitForCheck(t, checker)
	before := checker.calls.Load()

	s.Start()
	s.Stop()

	// The second Start must not schedule another immediate run.
	assert.Equal(t, before, checker.calls.Load())
}

func TestSchedulerStopIsIdempotent(t *testing.T) {
	checker := newStubChecker()
	s := NewBirthdayScheduler(checker, testLogger(), time.Hour)

	s.Start()
	waitForCheck(t, checker)
	s.Stop()
	s.Stop()
}
