// Defines the Task struct that models a unit of work ("cloudlet") in the
// simulation. Tracks remaining length, lifecycle status, and the
// submission/start/finish timestamps used for latency and cost reporting.

package sim

import "fmt"

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskCreated   TaskStatus = "CREATED"
	TaskQueued    TaskStatus = "QUEUED"
	TaskExecuting TaskStatus = "EXECUTING"
	TaskFinished  TaskStatus = "FINISHED"
	TaskFailed    TaskStatus = "FAILED"
)

// taskStatusRank orders states so transitions can only move forward.
var taskStatusRank = map[TaskStatus]int{
	TaskCreated:   0,
	TaskQueued:    1,
	TaskExecuting: 2,
	TaskFinished:  3,
	TaskFailed:    3,
}

// lengthEpsilon absorbs floating-point residue when a task's remaining
// length is integrated down to zero at its analytically derived finish time.
const lengthEpsilon = 1e-6

// Task models a single unit of work executed on a VirtualMachine.
type Task struct {
	ID            int
	Length        float64 // total work in abstract instructions, > 0
	PERequirement int     // PE slots occupied while executing (min 1)
	FileSize      float64 // input size
	OutputSize    float64 // output size

	Status     TaskStatus
	SubmitTime float64
	StartTime  float64
	FinishTime float64
	VMID       int // owning VM, -1 until bound by the broker

	Remaining float64 // instructions left to execute
}

// NewTask creates a task in the Created state. Length validity is checked by
// Broker.start before any event is processed.
func NewTask(id int, length float64, peRequirement int, fileSize, outputSize float64) *Task {
	return &Task{
		ID:            id,
		Length:        length,
		PERequirement: peRequirement,
		FileSize:      fileSize,
		OutputSize:    outputSize,
		Status:        TaskCreated,
		VMID:          -1,
		Remaining:     length,
	}
}

func (t *Task) String() string {
	return fmt.Sprintf("Task: (ID: %d, Status: %s, VM: %d, Remaining: %.2f)", t.ID, t.Status, t.VMID, t.Remaining)
}

// slots returns the PE slots this task occupies while executing.
func (t *Task) slots() int {
	if t.PERequirement < 1 {
		return 1
	}
	return t.PERequirement
}

// setStatus enforces forward-only lifecycle transitions. A backward
// transition is a scheduling inconsistency and panics with context.
func (t *Task) setStatus(next TaskStatus) {
	if taskStatusRank[next] <= taskStatusRank[t.Status] {
		panic(fmt.Sprintf("task %d: illegal status transition %s -> %s", t.ID, t.Status, next))
	}
	t.Status = next
}

// progress consumes executed work. Remaining length is non-increasing; a
// drop below zero beyond float residue is a scheduling inconsistency.
func (t *Task) progress(work float64) {
	if work < 0 {
		panic(fmt.Sprintf("task %d: negative progress %f", t.ID, work))
	}
	t.Remaining -= work
	if t.Remaining < 0 {
		if t.Remaining < -lengthEpsilon {
			panic(fmt.Sprintf("task %d: remaining length went negative (%g)", t.ID, t.Remaining))
		}
		t.Remaining = 0
	}
}

// start marks the task Executing and records its start time.
func (t *Task) start(now float64) {
	t.setStatus(TaskExecuting)
	t.StartTime = now
}

// finish marks the task Finished at its completion instant. The task is
// never mutated afterwards.
func (t *Task) finish(now float64) {
	if now < t.StartTime {
		panic(fmt.Sprintf("task %d: finish time %f before start time %f", t.ID, now, t.StartTime))
	}
	t.setStatus(TaskFinished)
	t.FinishTime = now
}

// fail marks the task Failed. Used for admission failures: final for this
// submission, never retried.
func (t *Task) fail() {
	t.setStatus(TaskFailed)
}

// ExecutionTime returns the wall of simulated seconds the task spent between
// entering Executing and finishing (the "actual CPU time" of the report).
// Zero for tasks that never finished.
func (t *Task) ExecutionTime() float64 {
	if t.Status != TaskFinished {
		return 0
	}
	return t.FinishTime - t.StartTime
}
