package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Phase", "Runs", "Time"}
	rows := [][]string{
		{"Work", "12", "05:00:00"},
		{"Long rest", "3", "45:00"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Phase     Runs     Time" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Work        12 05:00:00" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Long rest    3    45:00" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableUsesDisplayWidth(t *testing.T) {
	lines := formatTable([]string{"Phase", "Runs"}, [][]string{{"休憩", "1"}}, map[int]bool{1: true})
	if lines[1] != "休憩     1" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
}
