package cover

import "testing"

func TestIntervalDuration(t *testing.T) {
	if d := (Interval{Start: 2, End: 8}).Duration(); d != 6 {
		t.Fatalf("duration: got %v, want 6", d)
	}
	if d := (Interval{Start: 5, End: 5}).Duration(); d != 0 {
		t.Fatalf("zero-length duration: got %v", d)
	}
}

func TestIntervalOverlaps(t *testing.T) {
	a := Interval{Start: 0, End: 6}
	cases := []struct {
		b    Interval
		want bool
	}{
		{Interval{Start: 4, End: 10}, true},
		{Interval{Start: 6, End: 10}, false}, // touching endpoints do not overlap
		{Interval{Start: -2, End: 0}, false},
		{Interval{Start: 1, End: 2}, true}, // contained
		{Interval{Start: -5, End: 20}, true},
	}
	for _, c := range cases {
		if got := a.Overlaps(c.b); got != c.want {
			t.Fatalf("%v.Overlaps(%v): got %v, want %v", a, c.b, got, c.want)
		}
		if got := c.b.Overlaps(a); got != c.want {
			t.Fatalf("overlap not symmetric for %v and %v", a, c.b)
		}
	}
}

func TestIntervalOverlapWith(t *testing.T) {
	w := Interval{Start: 0, End: 24}
	if got := (Interval{Start: 20, End: 30}).OverlapWith(w); got != 4 {
		t.Fatalf("clipped overlap: got %v, want 4", got)
	}
	if got := (Interval{Start: 30, End: 40}).OverlapWith(w); got != 0 {
		t.Fatalf("disjoint overlap: got %v, want 0", got)
	}
	if got := (Interval{Start: 2, End: 8}).OverlapWith(w); got != 6 {
		t.Fatalf("contained overlap: got %v, want 6", got)
	}
}
