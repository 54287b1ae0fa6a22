// Package scheduler runs the recurring background tasks: the daily quote
// refresh and the hourly hydration/walk reminder.
package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/clock"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/logging"
)

type EventKind int

const (
	QuoteRefreshed EventKind = iota
	ReminderShown
	ReminderHidden
)

func (k EventKind) String() string {
	switch k {
	case QuoteRefreshed:
		return "quote"
	case ReminderShown:
		return "reminder-shown"
	case ReminderHidden:
		return "reminder-hidden"
	default:
		return "unknown"
	}
}

type Event struct {
	Kind  EventKind
	At    time.Time
	Texts []string
}

const (
	DefaultQuoteHour       = 10
	DefaultQuoteEvery      = 24 * time.Hour
	DefaultReminderEvery   = time.Hour
	DefaultReminderVisible = 3 * time.Minute
)

var ErrAlreadyRunning = errors.New("scheduler already running")

type Config struct {
	// QuoteHour is the local hour of the first scheduled refresh after
	// start. Nil means DefaultQuoteHour.
	QuoteHour       *int
	QuoteEvery      time.Duration
	ReminderEvery   time.Duration
	ReminderVisible time.Duration
	ReminderTexts   []string

	// Quote produces the text for a refresh. An empty result means the
	// refresh failed and FallbackQuote is used instead.
	Quote         func(ctx context.Context) string
	FallbackQuote string

	Notify func(Event)
	Clock  clock.Clock
}

type Scheduler struct {
	cfg Config

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(cfg Config) *Scheduler {
	if cfg.QuoteEvery <= 0 {
		cfg.QuoteEvery = DefaultQuoteEvery
	}
	if cfg.ReminderEvery <= 0 {
		cfg.ReminderEvery = DefaultReminderEvery
	}
	if cfg.ReminderVisible <= 0 {
		cfg.ReminderVisible = DefaultReminderVisible
	}
	if cfg.QuoteHour == nil || *cfg.QuoteHour < 0 || *cfg.QuoteHour > 23 {
		cfg.QuoteHour = Hour(DefaultQuoteHour)
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.System{}
	}
	if cfg.Notify == nil {
		cfg.Notify = func(Event) {}
	}
	return &Scheduler{cfg: cfg}
}

// Start launches the quote and reminder loops. They run until ctx is done or
// Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		s.quoteLoop(ctx)
	}()
	go func() {
		defer s.wg.Done()
		s.reminderLoop(ctx)
	}()
	logging.Log.Debug("scheduler started")
	return nil
}

// Stop cancels both loops and waits for them to return. It is safe to call
// more than once, and Start may be called again afterwards.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
	logging.Log.Debug("scheduler stopped")
}

// NextAt returns the first moment at hour:00 local time strictly after now.
func NextAt(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Hour returns a pointer to h for Config.QuoteHour.
func Hour(h int) *int {
	return &h
}

// NextQuote returns when the first scheduled refresh after now fires.
func (s *Scheduler) NextQuote(now time.Time) time.Time {
	return NextAt(now, *s.cfg.QuoteHour)
}

func (s *Scheduler) quoteLoop(ctx context.Context) {
	s.refreshQuote(ctx)

	now := s.cfg.Clock.Now()
	timer := time.NewTimer(s.NextQuote(now).Sub(now))
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			s.refreshQuote(ctx)
			timer.Reset(s.cfg.QuoteEvery)
		}
	}
}

func (s *Scheduler) refreshQuote(ctx context.Context) {
	text := ""
	if s.cfg.Quote != nil {
		text = strings.TrimSpace(s.cfg.Quote(ctx))
	}
	if ctx.Err() != nil {
		return
	}
	if text == "" {
		logging.Log.Debug("quote refresh produced nothing, using fallback")
		text = s.cfg.FallbackQuote
	}
	s.cfg.Notify(Event{Kind: QuoteRefreshed, At: s.cfg.Clock.Now(), Texts: []string{text}})
}

func (s *Scheduler) reminderLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.ReminderEvery)
	defer ticker.Stop()
	hide := time.NewTimer(s.cfg.ReminderVisible)
	hide.Stop()
	defer hide.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			texts := make([]string, len(s.cfg.ReminderTexts))
			copy(texts, s.cfg.ReminderTexts)
			s.cfg.Notify(Event{Kind: ReminderShown, At: s.cfg.Clock.Now(), Texts: texts})
			// Reset discards a pending hide from the previous pulse.
			hide.Reset(s.cfg.ReminderVisible)
		case <-hide.C:
			s.cfg.Notify(Event{Kind: ReminderHidden, At: s.cfg.Clock.Now()})
		}
	}
}
