package resilience

import (
	"errors"
	"testing"
	"time"
)

func testBreaker(threshold int, openTimeout time.Duration, halfOpen int, opts ...BreakerOption) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpen,
	}, opts...)
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreaker_Transitions(t *testing.T) {
	var transitions []string
	b, now := testBreaker(2, 5*time.Second, 1, WithStateListener(func(from, to CircuitState) {
		transitions = append(transitions, string(from)+">"+string(to))
	}))

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}
	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}
	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open at threshold, got %s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	*now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second probe to be rejected, got %v", err)
	}
	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}

	want := []string{"closed>open", "open>half_open", "half_open>closed"}
	if len(transitions) != len(want) {
		t.Fatalf("unexpected transitions: %v", transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("transition %d: want %s, got %s", i, want[i], transitions[i])
		}
	}
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	b, now := testBreaker(1, time.Second, 1)

	b.RecordFailure()
	*now = now.Add(2 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe, got %v", err)
	}
	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected reopened breaker, got %s", state)
	}
}

func TestCircuitBreaker_Execute(t *testing.T) {
	b, _ := testBreaker(1, time.Minute, 1)
	boom := errors.New("connection refused")

	calls := 0
	fn := func() error {
		calls++
		return boom
	}
	if err := b.Execute(fn); !errors.Is(err, boom) {
		t.Fatalf("expected call error, got %v", err)
	}
	if err := b.Execute(fn); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open breaker, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one call through the breaker, got %d", calls)
	}
}

func TestNormalizeCircuitBreakerConfig(t *testing.T) {
	cfg := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{FailureThreshold: -1, HalfOpenMaxReq: 3})
	if cfg.FailureThreshold != 5 || cfg.OpenTimeout != 15*time.Second || cfg.HalfOpenMaxReq != 3 {
		t.Fatalf("unexpected normalized config: %+v", cfg)
	}
}

func TestCircuitStateLevel(t *testing.T) {
	if CircuitStateClosed.Level() != 0 || CircuitStateHalfOpen.Level() != 1 || CircuitStateOpen.Level() != 2 {
		t.Fatalf("unexpected state levels")
	}
}
