package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestFixedWindow(t *testing.T) {
	now := time.Date(2026, time.March, 14, 10, 15, 30, 0, time.UTC)
	lim := NewWithClock(time.Minute, 3, func() time.Time { return now })

	for i := 0; i < 3; i++ {
		if !lim.Allow("client-a") {
			t.Fatalf("request %d rejected, want admitted", i+1)
		}
	}
	if lim.Allow("client-a") {
		t.Error("4th request admitted within window, want rejected")
	}

	// still inside the window
	now = now.Add(59 * time.Second)
	if lim.Allow("client-a") {
		t.Error("request admitted at 59s, want rejected")
	}

	// window rolled over: counter resets to 1
	now = now.Add(2 * time.Second)
	if !lim.Allow("client-a") {
		t.Error("request rejected after window elapsed, want admitted")
	}
	if !lim.Allow("client-a") {
		t.Error("2nd request of fresh window rejected, want admitted")
	}
}

func TestKeysIndependent(t *testing.T) {
	now := time.Date(2026, time.March, 14, 10, 15, 30, 0, time.UTC)
	lim := NewWithClock(time.Minute, 2, func() time.Time { return now })

	lim.Allow("client-a")
	lim.Allow("client-a")
	if lim.Allow("client-a") {
		t.Fatal("client-a should be exhausted")
	}
	if !lim.Allow("client-b") {
		t.Error("client-b rejected although only client-a is exhausted")
	}
}

func TestDefaults(t *testing.T) {
	lim := New(0, 0)
	for i := 0; i < DefaultMaxRequests; i++ {
		if !lim.Allow("k") {
			t.Fatalf("request %d rejected under default allowance", i+1)
		}
	}
	if lim.Allow("k") {
		t.Errorf("request %d admitted, want rejected", DefaultMaxRequests+1)
	}
}

func TestSize(t *testing.T) {
	lim := New(time.Minute, 5)
	if lim.Size() != 0 {
		t.Errorf("Size() = %d, want 0", lim.Size())
	}
	for i := 0; i < 10; i++ {
		lim.Allow(fmt.Sprintf("client-%d", i))
	}
	// entries persist for the process lifetime, exhausted or not
	if lim.Size() != 10 {
		t.Errorf("Size() = %d, want 10", lim.Size())
	}
}

// Concurrent callers racing on one key must never over-admit: the window
// check and the increment hold the shard lock together.
func TestConcurrentAllowSingleKey(t *testing.T) {
	now := time.Date(2026, time.March, 14, 10, 15, 30, 0, time.UTC)
	lim := NewWithClock(time.Minute, 50, func() time.Time { return now })

	var admitted atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if lim.Allow("shared") {
					admitted.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	if got := admitted.Load(); got != 50 {
		t.Errorf("admitted %d requests, want exactly 50", got)
	}
}

func TestClientKey(t *testing.T) {
	testCases := []struct {
		desc     string
		header   string
		fallback string
		want     string
	}{
		{"single address", "1.2.3.4", "9.9.9.9", "1.2.3.4"},
		{"first of forwarded chain", "1.2.3.4, 5.6.7.8", "9.9.9.9", "1.2.3.4"},
		{"whitespace trimmed", "  1.2.3.4 ,5.6.7.8", "9.9.9.9", "1.2.3.4"},
		{"absent header uses fallback", "", "9.9.9.9", "9.9.9.9"},
		{"nothing at all", "", "", UnknownClient},
		{"header of only commas", ",,", "9.9.9.9", "9.9.9.9"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			if got := ClientKey(tc.header, tc.fallback); got != tc.want {
				t.Errorf("ClientKey(%q, %q) = %q, want %q", tc.header, tc.fallback, got, tc.want)
			}
		})
	}
}
