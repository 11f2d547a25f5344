package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame(ActionLeft, ActionNone, ActionLeft)

	if len(f.Actions) != 2 {
		t.Fatalf("expected 2 actions (None dropped), got %v", f.Actions)
	}
	if !f.Has(ActionLeft) || f.Has(ActionDrop) {
		t.Error("Has() mismatch")
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() {
		t.Error("Clear() should empty the frame")
	}
	if clone.Empty() {
		t.Error("Clone() must not share storage with the original")
	}
}

func TestActionString(t *testing.T) {
	if ActionPowerUp.String() != "PowerUp" {
		t.Errorf("String() = %q", ActionPowerUp.String())
	}
	if Action(99).String() != "Unknown" {
		t.Error("unknown actions should stringify as Unknown")
	}
}
