package model

import "testing"

func TestTotalSeconds(t *testing.T) {
	cases := []struct {
		unit TimeUnit
		want float64
	}{
		{Seconds, 1.5},
		{Minutes, 90},
		{Hours, 5400},
	}
	for _, tc := range cases {
		p := Phase{Name: "x", Duration: 1.5, Unit: tc.unit}
		if got := p.TotalSeconds(); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.unit, tc.want, got)
		}
	}
}

func TestParseTimeUnit(t *testing.T) {
	cases := map[string]TimeUnit{
		"s":       Seconds,
		"Seconds": Seconds,
		"min":     Minutes,
		"":        Minutes,
		" h ":     Hours,
		"hours":   Hours,
	}
	for input, want := range cases {
		got, err := ParseTimeUnit(input)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %s, got %s", input, want, got)
		}
	}
	if _, err := ParseTimeUnit("days"); err == nil {
		t.Fatalf("expected error for unknown unit")
	}
}

func TestDefaultPhases(t *testing.T) {
	phases := DefaultPhases()
	if len(phases) != 2 {
		t.Fatalf("expected 2 default phases, got %d", len(phases))
	}
	if phases[0].Name != "Work" || phases[0].TotalSeconds() != 1500 {
		t.Fatalf("unexpected work phase: %+v", phases[0])
	}
	if phases[1].Name != "Rest" || phases[1].TotalSeconds() != 300 {
		t.Fatalf("unexpected rest phase: %+v", phases[1])
	}
}
