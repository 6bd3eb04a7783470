package schedule

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestTimersReplaceCancelsPending(t *testing.T) {
	s := NewTimers()
	defer s.Stop()

	var stale, fresh atomic.Int32
	done := make(chan struct{})

	s.After("sid|results", 20*time.Millisecond, func() { stale.Add(1) })
	s.After("sid|results", 40*time.Millisecond, func() {
		fresh.Add(1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("replacement task never fired")
	}
	time.Sleep(30 * time.Millisecond)

	if stale.Load() != 0 {
		t.Fatal("stale task fired after being replaced")
	}
	if fresh.Load() != 1 {
		t.Fatalf("fresh task fired %d times", fresh.Load())
	}
	if s.Pending() != 0 {
		t.Fatalf("Pending() = %d after firing", s.Pending())
	}
}

func TestTimersCancel(t *testing.T) {
	s := NewTimers()
	var fired atomic.Bool
	s.After("k", 10*time.Millisecond, func() { fired.Store(true) })
	s.Cancel("k")
	time.Sleep(40 * time.Millisecond)
	if fired.Load() {
		t.Fatal("cancelled task fired")
	}
}

func TestTimersIndependentKeys(t *testing.T) {
	s := NewTimers()
	defer s.Stop()

	var n atomic.Int32
	done := make(chan struct{}, 2)
	for _, k := range []string{Key("a", "bars"), Key("b", "bars")} {
		s.After(k, 5*time.Millisecond, func() {
			n.Add(1)
			done <- struct{}{}
		})
	}
	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for tasks")
		}
	}
	if n.Load() != 2 {
		t.Fatalf("fired %d tasks, want 2", n.Load())
	}
}

func TestTimersCancelWaitsForRunningTask(t *testing.T) {
	s := NewTimers()
	started := make(chan struct{})
	release := make(chan struct{})
	s.After("k", 0, func() {
		close(started)
		<-release
	})
	<-started

	done := make(chan struct{})
	go func() {
		s.Cancel("k")
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Cancel returned while the task was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Cancel never returned")
	}
	if s.Pending() != 0 {
		t.Fatalf("Pending() = %d", s.Pending())
	}
}

// uma tarefa que já disparou não pode aplicar seu efeito depois que a chave
// foi reagendada e o novo ciclo já escreveu
func TestTimersFiredTaskNeverLandsAfterReschedule(t *testing.T) {
	s := NewTimers()
	defer s.Stop()

	for i := 0; i < 200; i++ {
		var mu sync.Mutex
		var log []string
		push := func(v string) {
			mu.Lock()
			log = append(log, v)
			mu.Unlock()
		}

		s.After("sid|results", 0, func() { push("none") })
		if i%2 == 0 {
			time.Sleep(time.Duration(i%5) * 10 * time.Microsecond)
		}
		s.Cancel("sid|results")
		push("block")
		s.After("sid|results", time.Hour, func() { push("visible") })
		time.Sleep(200 * time.Microsecond)

		mu.Lock()
		last := log[len(log)-1]
		mu.Unlock()
		if last != "block" {
			t.Fatalf("iteration %d: log = %v, stale task landed after reschedule", i, log)
		}
		s.Cancel("sid|results")
	}
}

func TestTimersReleaseSlots(t *testing.T) {
	s := NewTimers()
	done := make(chan struct{}, 3)
	for _, k := range []string{"a", "b", "c"} {
		s.After(k, time.Millisecond, func() { done <- struct{}{} })
	}
	for i := 0; i < 3; i++ {
		<-done
	}

	deadline := time.Now().Add(time.Second)
	for s.Pending() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("Pending() = %d, slots not released", s.Pending())
		}
		time.Sleep(time.Millisecond)
	}
}
