package core

import (
	"math"
	"testing"
)

func TestRangeStaysInHalfOpenInterval(t *testing.T) {
	r := NewRNG(42)
	for i := 0; i < 10_000; i++ {
		v := r.Range(0.05, 0.1)
		if v < 0.05 || v >= 0.1 {
			t.Fatalf("Range produced %v outside [0.05, 0.1)", v)
		}
		a := r.Angle()
		if a < -math.Pi || a >= math.Pi {
			t.Fatalf("Angle produced %v outside [-π, π)", a)
		}
	}
	if got := r.Range(3, 3); got != 3 {
		t.Fatalf("empty range = %v, want lower bound", got)
	}
	if got := r.IntN(0); got != 0 {
		t.Fatalf("IntN(0) = %d, want 0", got)
	}
}

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(9), NewRNG(9)
	for i := 0; i < 100; i++ {
		if a.Range(0, 400) != b.Range(0, 400) {
			t.Fatalf("draw %d differs for equal seeds", i)
		}
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	Register("zz-test", func(map[string]string) Effect { return nil })
	Register("aa-test", func(map[string]string) Effect { return nil })
	Register("", func(map[string]string) Effect { return nil })
	defer delete(effects, "zz-test")
	defer delete(effects, "aa-test")

	names := Names()
	var ai, zi = -1, -1
	for i, n := range names {
		switch n {
		case "aa-test":
			ai = i
		case "zz-test":
			zi = i
		case "":
			t.Fatal("empty name must not register")
		}
	}
	if ai < 0 || zi < 0 || ai > zi {
		t.Fatalf("names = %v, want both test effects in sorted order", names)
	}
}
