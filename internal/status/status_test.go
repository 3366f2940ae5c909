package status

import (
	"context"
	"errors"
	"testing"
)

type fakeChecker struct {
	alive bool
	err   error
	calls int
}

func (f *fakeChecker) Health(ctx context.Context) (bool, error) {
	f.calls++
	return f.alive, f.err
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		checker  *fakeChecker
		expected Status
	}{
		{name: "alive", checker: &fakeChecker{alive: true}, expected: Online},
		{name: "unexpected payload", checker: &fakeChecker{alive: false}, expected: Offline},
		{name: "network error", checker: &fakeChecker{err: errors.New("connection refused")}, expected: Offline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMonitor(tt.checker, nil)
			if m.Status() != Checking {
				t.Fatalf("initial status = %v, expected Checking", m.Status())
			}
			if got := m.Check(context.Background()); got != tt.expected {
				t.Errorf("Check() = %v, expected %v", got, tt.expected)
			}
			if m.Status() != tt.expected {
				t.Errorf("Status() = %v after Check, expected %v", m.Status(), tt.expected)
			}
			if tt.checker.calls != 1 {
				t.Errorf("expected exactly one health request, got %d", tt.checker.calls)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	for s, want := range map[Status]string{Checking: "Checking...", Online: "Online", Offline: "Offline"} {
		if s.String() != want {
			t.Errorf("%d.String() = %q, expected %q", s, s.String(), want)
		}
	}
}
