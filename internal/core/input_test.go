package core

import "testing"

func TestToolActionRoundTrip(t *testing.T) {
	for i := 0; i < 9; i++ {
		a := ToolAction(i)
		idx, ok := a.ToolIndex()
		if !ok || idx != i {
			t.Errorf("ToolAction(%d).ToolIndex() = %d, %v", i, idx, ok)
		}
	}

	if ToolAction(9) != ActionNone {
		t.Error("ToolAction(9) should be ActionNone")
	}
	if _, ok := ActionUp.ToolIndex(); ok {
		t.Error("ActionUp is not a tool action")
	}
	if ActionTool3.String() != "Tool3" {
		t.Errorf("ActionTool3.String() = %q", ActionTool3.String())
	}
}

func TestInputFrameKeepsOrderAndRepeats(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionRight)
	f.Set(ActionDown)
	f.Set(ActionRight)

	got := f.Ordered()
	want := []Action{ActionRight, ActionDown, ActionRight}
	if len(got) != len(want) {
		t.Fatalf("Ordered() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ordered()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if !f.Has(ActionDown) {
		t.Error("Has(ActionDown) should be true")
	}

	f.Clear()
	if f.Has(ActionRight) || len(f.Ordered()) != 0 {
		t.Error("Clear should reset the frame")
	}
}
