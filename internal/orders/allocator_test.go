package orders

import (
	"fmt"
	"testing"
	"time"
)

func TestNextOrderNumberContinuesSuffix(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	got := NextOrderNumber("ORD-20240101-000007", now)
	want := "ORD-20240305-000008"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestNextOrderNumberFirstOrder(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	if got := NextOrderNumber("", now); got != "ORD-20240305-000001" {
		t.Fatalf("expected sequence to start at one, got %s", got)
	}
}

func TestNextOrderNumberMalformedLatest(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	cases := []string{
		"ORD-2024-1",
		"garbage",
		"ORD-20240101-ABCDEF",
		"ORD-20240101-00007",
	}
	for _, latest := range cases {
		if got := NextOrderNumber(latest, now); got != "ORD-20240305-000001" {
			t.Fatalf("expected reset for %q, got %s", latest, got)
		}
	}
}

func TestNextOrderNumberSequence(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	latest := ""
	for i := 1; i <= 3; i++ {
		latest = NextOrderNumber(latest, now)
		want := fmt.Sprintf("ORD-20240601-%06d", i)
		if latest != want {
			t.Fatalf("step %d: expected %s, got %s", i, want, latest)
		}
	}
}
