// Package buildpipeline defines the stages a compilation moves through and
// the progress events reported for each file.
package buildpipeline

import "time"

// Stage is one step of the compiler pipeline.
type Stage string

const (
	StageRead     Stage = "read"
	StageParse    Stage = "parse"
	StageValidate Stage = "validate"
	StageSafety   Stage = "safety"
	StageLower    Stage = "lower"
	StageEmit     Stage = "emit"
	StageVerify   Stage = "verify"
	StageWrite    Stage = "write"
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageRead, StageParse, StageValidate, StageSafety, StageLower, StageEmit, StageVerify, StageWrite}

// Index returns the position of s in Stages, or -1.
func (s Stage) Index() int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return -1
}

// Status is the state of a file within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusCached  Status = "cached"
	StatusError   Status = "error"
)

// Event reports progress for a file, or for the whole build when File is empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Sinks must tolerate calls from
// several goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds per-stage durations for one file.
type Timings struct {
	stages map[Stage]time.Duration
}

// Set records dur for stage, accumulating repeated stages.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
	t.stages[stage] += dur
}

func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Total sums every recorded stage.
func (t Timings) Total() time.Duration {
	var total time.Duration
	for _, st := range Stages {
		total += t.stages[st]
	}
	return total
}
