// Package timer implements the background supervisor that counts down
// cooking timers and alerts the user when one runs out.
package timer

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hammamikhairi/whatscooking/internal/domain"
	"github.com/hammamikhairi/whatscooking/internal/logger"
)

// Status is the lifecycle state of one countdown.
type Status string

const (
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
	StatusFired   Status = "fired"
)

// Timer is a snapshot of one countdown. Timers are keyed by recipe id.
type Timer struct {
	ID        string
	Label     string
	Duration  time.Duration
	Remaining time.Duration
	Status    Status

	warnedAlmost    bool
	lastRemindedAt  time.Time
	lastNotified    time.Time
	escalationLevel int
}

// Option configures the supervisor.
type Option func(*Supervisor)

// WithTickInterval sets how often the supervisor counts down.
func WithTickInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.tickInterval = d
	}
}

// WithNotifyCooldown sets the minimum time between repeated alerts for a
// fired timer.
func WithNotifyCooldown(d time.Duration) Option {
	return func(s *Supervisor) {
		s.notifyCooldown = d
	}
}

// WithMaxEscalation sets how many follow-up alerts a fired timer gets
// before it is cleared.
func WithMaxEscalation(level int) Option {
	return func(s *Supervisor) {
		s.maxEscalation = level
	}
}

// WithReminderInterval sets how often running timers send "X remaining"
// reminders. Zero disables them.
func WithReminderInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.reminderInterval = d
	}
}

// WithAlmostDoneThreshold sets how close to expiry a timer must be to
// trigger the "almost done" warning.
func WithAlmostDoneThreshold(d time.Duration) Option {
	return func(s *Supervisor) {
		s.almostDoneThreshold = d
	}
}

// WithClock overrides time.Now for cooldown bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(s *Supervisor) {
		s.now = now
	}
}

// Supervisor runs in the background and manages countdowns + alerts.
type Supervisor struct {
	notifier            domain.Notifier
	chimer              domain.Chimer
	log                 *logger.Logger
	now                 func() time.Time
	tickInterval        time.Duration
	notifyCooldown      time.Duration
	maxEscalation       int
	reminderInterval    time.Duration
	almostDoneThreshold time.Duration

	mu      sync.Mutex
	timers  map[string]*Timer
	running bool
	cancel  context.CancelFunc
	chimes  sync.WaitGroup
}

// New creates a timer supervisor with the given dependencies and options.
func New(notifier domain.Notifier, chimer domain.Chimer, log *logger.Logger, opts ...Option) *Supervisor {
	s := &Supervisor{
		notifier:            notifier,
		chimer:              chimer,
		log:                 log,
		now:                 time.Now,
		tickInterval:        1 * time.Second,
		notifyCooldown:      15 * time.Second,
		maxEscalation:       3,
		reminderInterval:    5 * time.Minute,
		almostDoneThreshold: 1 * time.Minute,
		timers:              make(map[string]*Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the background supervisor loop. Non-blocking.
func (s *Supervisor) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Warn("timer supervisor already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	go s.loop(childCtx)

	s.log.Info("timer supervisor started (tick=%s, cooldown=%s)", s.tickInterval, s.notifyCooldown)
}

// Stop shuts down the loop, if running, and waits for any chime in
// progress.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	wasRunning := s.running
	if wasRunning {
		s.cancel()
		s.running = false
	}
	s.mu.Unlock()

	s.chimes.Wait()
	if wasRunning {
		s.log.Info("timer supervisor stopped")
	}
}

// Set starts (or restarts) the countdown for id.
func (s *Supervisor) Set(id, label string, d time.Duration) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &Timer{ID: id, Label: label, Duration: d, Remaining: d, Status: StatusRunning}
	s.timers[id] = t
	s.log.Debug("timer %s set: %s for %s", id, label, d)
	return *t
}

// Cancel removes the countdown for id. Reports whether one existed.
func (s *Supervisor) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.timers[id]; !ok {
		return false
	}
	delete(s.timers, id)
	s.log.Debug("timer %s cancelled", id)
	return true
}

// Pause freezes a running countdown.
func (s *Supervisor) Pause(id string) bool {
	return s.transition(id, StatusRunning, StatusPaused)
}

// Resume continues a paused countdown.
func (s *Supervisor) Resume(id string) bool {
	return s.transition(id, StatusPaused, StatusRunning)
}

func (s *Supervisor) transition(id string, from, to Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.timers[id]
	if !ok || t.Status != from {
		return false
	}
	t.Status = to
	return true
}

// Get returns the countdown for id.
func (s *Supervisor) Get(id string) (Timer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.timers[id]
	if !ok {
		return Timer{}, false
	}
	return *t, true
}

// Snapshot returns every countdown, soonest first.
func (s *Supervisor) Snapshot() []Timer {
	s.mu.Lock()
	out := make([]Timer, 0, len(s.timers))
	for _, t := range s.timers {
		out = append(out, *t)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Remaining != out[j].Remaining {
			return out[i].Remaining < out[j].Remaining
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// loop is the main tick loop.
func (s *Supervisor) loop(ctx context.Context) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick runs one cycle: decrement timers, collect alerts, then deliver them
// outside the lock.
func (s *Supervisor) tick(ctx context.Context) {
	now := s.now()

	var urgent, normal []string
	fired := false

	s.mu.Lock()
	for id, t := range s.timers {
		switch t.Status {
		case StatusRunning:
			t.Remaining -= s.tickInterval
			if t.Remaining <= 0 {
				t.Remaining = 0
				t.Status = StatusFired
				t.lastNotified = now
				t.escalationLevel = 1
				fired = true
				urgent = append(urgent, firedMessage(t))
				s.log.Debug("timer %s fired", id)
				continue
			}
			if msg, ok := s.reminder(t, now); ok {
				normal = append(normal, msg)
			}

		case StatusFired:
			if t.escalationLevel > s.maxEscalation {
				delete(s.timers, id)
				s.log.Debug("timer %s cleared after %d alerts", id, s.maxEscalation)
				continue
			}
			if now.Sub(t.lastNotified) < s.notifyCooldown {
				continue
			}
			normal = append(normal, escalationMessage(t))
			t.lastNotified = now
			t.escalationLevel++
		}
	}
	s.mu.Unlock()

	if fired {
		s.ring(ctx)
	}
	for _, msg := range urgent {
		if err := s.notifier.NotifyUrgent(ctx, msg); err != nil {
			s.log.Error("supervisor: notifying timer fire: %v", err)
		}
	}
	for _, msg := range normal {
		if err := s.notifier.Notify(ctx, msg); err != nil {
			s.log.Error("supervisor: notify: %v", err)
		}
	}
}

// reminder returns the "almost done" warning once, then periodic
// "X remaining" nudges for long timers.
func (s *Supervisor) reminder(t *Timer, now time.Time) (string, bool) {
	if !t.warnedAlmost && t.Remaining <= s.almostDoneThreshold && t.Duration > s.almostDoneThreshold*2 {
		t.warnedAlmost = true
		t.lastRemindedAt = now
		return fmt.Sprintf("[Timer] %s: almost done, %s left.", t.Label, formatRemaining(t.Remaining)), true
	}

	if s.reminderInterval <= 0 || t.Duration <= s.reminderInterval {
		return "", false
	}
	if t.lastRemindedAt.IsZero() {
		if t.Duration-t.Remaining < s.reminderInterval {
			return "", false
		}
	} else if now.Sub(t.lastRemindedAt) < s.reminderInterval {
		return "", false
	}
	t.lastRemindedAt = now
	return fmt.Sprintf("[Timer] %s: %s remaining.", t.Label, formatRemaining(t.Remaining)), true
}

func (s *Supervisor) ring(ctx context.Context) {
	s.chimes.Add(1)
	go func() {
		defer s.chimes.Done()
		if err := s.chimer.Chime(ctx); err != nil {
			s.log.Warn("supervisor: chime: %v", err)
		}
	}()
}

func firedMessage(t *Timer) string {
	return fmt.Sprintf("Timer Complete! Your cooking time is up! (%s)", t.Label)
}

// escalationMessage returns a follow-up based on how many alerts went out.
func escalationMessage(t *Timer) string {
	switch t.escalationLevel {
	case 1:
		return fmt.Sprintf("[Timer] %s: check it now.", t.Label)
	case 2:
		return fmt.Sprintf("[Timer] %s. Now.", t.Label)
	default:
		return fmt.Sprintf("[Timer] %s.", t.Label)
	}
}

// formatRemaining returns a human-friendly duration for reminders.
// Rounds to the nearest minute once there's at least 1 minute left.
func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	totalSec := int(d.Seconds())
	if totalSec < 60 {
		if totalSec == 1 {
			return "1 second"
		}
		return fmt.Sprintf("%d seconds", totalSec)
	}
	m := (totalSec + 30) / 60
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}

// FormatClock renders d as mm:ss, or h:mm:ss past the hour.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	h, m, sec := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}
