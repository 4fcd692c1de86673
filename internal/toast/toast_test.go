package toast

import (
	"sync"
	"testing"
	"time"

	"geminus.dev/internal/models"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
	return c.t
}

func newTestScheduler() (*Scheduler, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewScheduler()
	s.now = clock.Now
	return s, clock
}

func TestLifecycle(t *testing.T) {
	s, clock := newTestScheduler()
	var phases []Phase
	s.OnChange(func(t Toast) { phases = append(phases, t.Phase) })

	msg := s.Warning("Server unreachable")
	if msg.ID == "" || msg.Kind != models.ToastWarning {
		t.Fatalf("pushed %+v", msg)
	}

	s.Tick(clock.Advance(DefaultVisibleFor - time.Millisecond))
	if got := s.Active(); len(got) != 1 || got[0].Phase != Visible {
		t.Fatalf("before expiry: %+v", got)
	}

	s.Tick(clock.Advance(time.Millisecond))
	if got := s.Active(); len(got) != 1 || got[0].Phase != Fading {
		t.Fatalf("after expiry: %+v", got)
	}

	s.Tick(clock.Advance(DefaultFadeFor))
	if got := s.Active(); len(got) != 0 {
		t.Fatalf("after fade: %+v", got)
	}

	want := []Phase{Visible, Fading, Removed}
	if len(phases) != len(want) {
		t.Fatalf("phases = %v", phases)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Fatalf("phases = %v, want %v", phases, want)
		}
	}
}

func TestDismiss(t *testing.T) {
	s, clock := newTestScheduler()
	msg := s.Info("Saved")

	if !s.Dismiss(msg.ID) {
		t.Fatal("dismiss of visible toast returned false")
	}
	if s.Dismiss(msg.ID) {
		t.Fatal("second dismiss should be ignored")
	}
	if s.Dismiss("nope") {
		t.Fatal("unknown id should be ignored")
	}

	s.Tick(clock.Advance(DefaultFadeFor))
	if len(s.Active()) != 0 {
		t.Fatal("dismissed toast not removed after fade")
	}
}

func TestOverflowFadesOldest(t *testing.T) {
	s, _ := newTestScheduler()
	var first models.ToastMessage
	for i := 0; i < DefaultMaxVisible+1; i++ {
		msg := s.Success("ok")
		if i == 0 {
			first = msg
		}
	}

	visible := 0
	for _, toast := range s.Active() {
		if toast.Phase == Visible {
			visible++
		}
		if toast.ID == first.ID && toast.Phase != Fading {
			t.Fatalf("oldest toast phase = %s, want fading", toast.Phase)
		}
	}
	if visible != DefaultMaxVisible {
		t.Fatalf("visible = %d, want %d", visible, DefaultMaxVisible)
	}
}

func TestIDsUnique(t *testing.T) {
	s, _ := newTestScheduler()
	a, b := s.Error("a"), s.Error("b")
	if a.ID == b.ID {
		t.Fatal("toast ids collide")
	}
}
