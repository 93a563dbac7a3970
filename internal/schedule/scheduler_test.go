package schedule

import (
	"testing"

	"github.com/verte-zerg/pomotui/internal/model"
)

func TestAdvanceCycles(t *testing.T) {
	a := model.Phase{Name: "A", Duration: 1, Unit: model.Seconds}
	b := model.Phase{Name: "B", Duration: 2, Unit: model.Seconds}
	s, err := New([]model.Phase{a, b})
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	if got := s.Current(); got.Name != "A" {
		t.Fatalf("expected A first, got %s", got.Name)
	}
	if got := s.Advance(); got.Name != "B" {
		t.Fatalf("expected B after first advance, got %s", got.Name)
	}
	if got := s.Advance(); got.Name != "A" {
		t.Fatalf("expected A after second advance, got %s", got.Name)
	}
	if s.Index() != 0 {
		t.Fatalf("expected index 0, got %d", s.Index())
	}
}

func TestSinglePhaseRepeats(t *testing.T) {
	s, err := New([]model.Phase{{Name: "Only", Duration: 1}})
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	for i := 0; i < 3; i++ {
		if got := s.Advance(); got.Name != "Only" {
			t.Fatalf("expected Only, got %s", got.Name)
		}
	}
}

func TestNewRejectsEmpty(t *testing.T) {
	if _, err := New(nil); err != ErrNoPhases {
		t.Fatalf("expected ErrNoPhases, got %v", err)
	}
}

func TestNewCopiesPhases(t *testing.T) {
	phases := []model.Phase{{Name: "A"}, {Name: "B"}}
	s, err := New(phases)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	phases[0].Name = "changed"
	if s.Current().Name != "A" {
		t.Fatalf("scheduler shares caller slice")
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 phases, got %d", s.Len())
	}
}
