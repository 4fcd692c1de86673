// Package toast schedules transient player notifications. Each toast moves
// Visible -> Fading -> Removed; one scheduler drives every transition.
package toast

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"geminus.dev/internal/models"
)

// Phase is the lifecycle stage of a toast
type Phase string

const (
	Visible Phase = "visible"
	Fading  Phase = "fading"
	Removed Phase = "removed"
)

// Defaults used by NewScheduler
const (
	DefaultVisibleFor = 3 * time.Second
	DefaultFadeFor    = 400 * time.Millisecond
	DefaultMaxVisible = 4
)

// Toast is a scheduled notification with its current phase
type Toast struct {
	models.ToastMessage
	Phase Phase `json:"phase"`

	phaseAt time.Time
}

// Listener receives every phase transition, including the initial Visible
type Listener func(Toast)

// Scheduler owns the live toasts
type Scheduler struct {
	mu         sync.Mutex
	toasts     []*Toast
	visibleFor time.Duration
	fadeFor    time.Duration
	maxVisible int
	listeners  []Listener
	now        func() time.Time
}

// NewScheduler creates a scheduler with the default timings
func NewScheduler() *Scheduler {
	return &Scheduler{
		visibleFor: DefaultVisibleFor,
		fadeFor:    DefaultFadeFor,
		maxVisible: DefaultMaxVisible,
		now:        time.Now,
	}
}

// OnChange registers a listener. Listeners run outside the scheduler lock.
func (s *Scheduler) OnChange(fn Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Push shows a new toast. When more than maxVisible toasts are visible the
// oldest starts fading early.
func (s *Scheduler) Push(message string, kind models.ToastKind) models.ToastMessage {
	s.mu.Lock()
	now := s.now()
	t := &Toast{
		ToastMessage: models.ToastMessage{ID: uuid.NewString(), Message: message, Kind: kind},
		Phase:        Visible,
		phaseAt:      now,
	}
	s.toasts = append(s.toasts, t)
	changed := []Toast{*t}

	visible := 0
	for i := len(s.toasts) - 1; i >= 0; i-- {
		old := s.toasts[i]
		if old.Phase != Visible {
			continue
		}
		visible++
		if visible > s.maxVisible {
			old.Phase, old.phaseAt = Fading, now
			changed = append(changed, *old)
		}
	}
	listeners := s.listeners
	s.mu.Unlock()

	notify(listeners, changed)
	return t.ToastMessage
}

// Info, Success, Warning and Error are shorthands for Push

func (s *Scheduler) Info(message string) models.ToastMessage {
	return s.Push(message, models.ToastInfo)
}

func (s *Scheduler) Success(message string) models.ToastMessage {
	return s.Push(message, models.ToastSuccess)
}

func (s *Scheduler) Warning(message string) models.ToastMessage {
	return s.Push(message, models.ToastWarning)
}

func (s *Scheduler) Error(message string) models.ToastMessage {
	return s.Push(message, models.ToastError)
}

// Dismiss starts fading a visible toast. Unknown or already fading ids are ignored.
func (s *Scheduler) Dismiss(id string) bool {
	s.mu.Lock()
	var changed []Toast
	for _, t := range s.toasts {
		if t.ID == id && t.Phase == Visible {
			t.Phase, t.phaseAt = Fading, s.now()
			changed = append(changed, *t)
		}
	}
	listeners := s.listeners
	s.mu.Unlock()

	notify(listeners, changed)
	return len(changed) > 0
}

// Active returns the toasts that are still on screen, oldest first
func (s *Scheduler) Active() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Toast, 0, len(s.toasts))
	for _, t := range s.toasts {
		out = append(out, *t)
	}
	return out
}

// Tick advances every toast whose phase has expired at now
func (s *Scheduler) Tick(now time.Time) {
	s.mu.Lock()
	var changed []Toast
	kept := s.toasts[:0]
	for _, t := range s.toasts {
		switch {
		case t.Phase == Visible && now.Sub(t.phaseAt) >= s.visibleFor:
			t.Phase, t.phaseAt = Fading, now
			changed = append(changed, *t)
		case t.Phase == Fading && now.Sub(t.phaseAt) >= s.fadeFor:
			t.Phase = Removed
			changed = append(changed, *t)
			continue
		}
		kept = append(kept, t)
	}
	clear(s.toasts[len(kept):])
	s.toasts = kept
	listeners := s.listeners
	s.mu.Unlock()

	notify(listeners, changed)
}

// Run ticks the scheduler until ctx is done
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(s.now())
		}
	}
}

func notify(listeners []Listener, changed []Toast) {
	for _, t := range changed {
		for _, fn := range listeners {
			fn(t)
		}
	}
}
