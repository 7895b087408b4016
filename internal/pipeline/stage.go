package pipeline

import "fmt"

// Stage identifies where a pipeline run currently is. Transitions are
// forward-only, plus a terminal failure transition from any non-idle stage.
type Stage string

const (
	StageIdle         Stage = "idle"
	StageScraping     Stage = "scraping"
	StageAnalyzing    Stage = "analyzing"
	StageGenerating   Stage = "generating"
	StageSynthesizing Stage = "synthesizing"
	StageComplete     Stage = "complete"
	StageFailed       Stage = "failed"
)

var stageOrder = map[Stage]int{
	StageIdle:         0,
	StageScraping:     1,
	StageAnalyzing:    2,
	StageGenerating:   3,
	StageSynthesizing: 4,
	StageComplete:     5,
}

// Machine tracks a single run's progress. The zero value starts at idle.
type Machine struct {
	stage Stage
}

// Stage returns the current stage.
func (m *Machine) Stage() Stage {
	if m.stage == "" {
		return StageIdle
	}
	return m.stage
}

// Advance moves to the next stage. Only the immediate successor is legal;
// skipping or moving backward is a programming error.
func (m *Machine) Advance(to Stage) error {
	cur := m.Stage()
	if cur == StageFailed || cur == StageComplete {
		return fmt.Errorf("pipeline already terminal in stage %q", cur)
	}
	next, ok := stageOrder[to]
	if !ok || next != stageOrder[cur]+1 {
		return fmt.Errorf("illegal stage transition %q -> %q", cur, to)
	}
	m.stage = to
	return nil
}

// Fail moves to the terminal failed stage. Failing from idle is illegal:
// a run that never started has nothing to fail.
func (m *Machine) Fail() error {
	cur := m.Stage()
	if cur == StageIdle {
		return fmt.Errorf("cannot fail from idle")
	}
	if cur == StageComplete || cur == StageFailed {
		return fmt.Errorf("pipeline already terminal in stage %q", cur)
	}
	m.stage = StageFailed
	return nil
}

// StageError records which stage a run failed in. Error() returns the
// underlying message unmodified so substring-based classification at the
// HTTP boundary keeps working.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }
