package pipeline

import "testing"

func TestMachine_ForwardPath(t *testing.T) {
	var m Machine
	if m.Stage() != StageIdle {
		t.Fatalf("initial stage = %q, want idle", m.Stage())
	}

	for _, s := range []Stage{StageScraping, StageAnalyzing, StageGenerating, StageSynthesizing, StageComplete} {
		if err := m.Advance(s); err != nil {
			t.Fatalf("Advance(%q) error = %v", s, err)
		}
		if m.Stage() != s {
			t.Fatalf("Stage() = %q, want %q", m.Stage(), s)
		}
	}
}

func TestMachine_RejectsSkip(t *testing.T) {
	var m Machine
	if err := m.Advance(StageAnalyzing); err == nil {
		t.Error("Advance(analyzing) from idle should fail")
	}
}

func TestMachine_RejectsBackward(t *testing.T) {
	var m Machine
	m.Advance(StageScraping)
	m.Advance(StageAnalyzing)
	if err := m.Advance(StageScraping); err == nil {
		t.Error("backward transition should fail")
	}
}

func TestMachine_FailFromAnyNonIdleStage(t *testing.T) {
	var m Machine
	m.Advance(StageScraping)
	m.Advance(StageAnalyzing)
	if err := m.Fail(); err != nil {
		t.Fatalf("Fail() error = %v", err)
	}
	if m.Stage() != StageFailed {
		t.Errorf("Stage() = %q, want failed", m.Stage())
	}
	if err := m.Advance(StageGenerating); err == nil {
		t.Error("Advance after Fail should be rejected")
	}
}

func TestMachine_FailFromIdleRejected(t *testing.T) {
	var m Machine
	if err := m.Fail(); err == nil {
		t.Error("Fail() from idle should be rejected")
	}
}

func TestMachine_CompleteIsTerminal(t *testing.T) {
	var m Machine
	for _, s := range []Stage{StageScraping, StageAnalyzing, StageGenerating, StageSynthesizing, StageComplete} {
		m.Advance(s)
	}
	if err := m.Fail(); err == nil {
		t.Error("Fail() after complete should be rejected")
	}
}
