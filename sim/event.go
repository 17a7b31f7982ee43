package sim

// EventKind enumerates every state change the simulation can schedule.
// Dispatch is an exhaustive switch in Simulation.dispatch; adding a kind
// without a handler arm panics at the first occurrence rather than being
// silently ignored.
type EventKind int

const (
	// EventVMAllocationRequest asks the placement policy to admit a VM
	// onto one of the simulation's machines.
	EventVMAllocationRequest EventKind = iota
	// EventVMAllocationComplete acknowledges a placement attempt (success
	// or failure) back to the broker.
	EventVMAllocationComplete
	// EventTaskSubmit hands a task to its target VM's task scheduler.
	EventTaskSubmit
	// EventTaskCompletion fires at the analytically derived instant the
	// earliest executing task on a VM runs out of remaining length.
	EventTaskCompletion
	// EventTaskAllocationChange recomputes a VM's per-task rates after its
	// resident-task set (or its delivered machine rate) changed, and
	// re-derives the projected completion event.
	EventTaskAllocationChange
)

func (k EventKind) String() string {
	switch k {
	case EventVMAllocationRequest:
		return "VMAllocationRequest"
	case EventVMAllocationComplete:
		return "VMAllocationComplete"
	case EventTaskSubmit:
		return "TaskSubmit"
	case EventTaskCompletion:
		return "TaskCompletion"
	case EventTaskAllocationChange:
		return "TaskAllocationChange"
	default:
		return "Unknown"
	}
}

// Event is a scheduled state change. Time is in simulated seconds. Seq is
// assigned at enqueue and breaks timestamp ties in insertion order, which
// keeps runs reproducible. Version carries the task scheduler's reschedule
// generation for TaskCompletion events; a completion whose version no longer
// matches the scheduler's is stale and dropped.
type Event struct {
	Time    float64
	Seq     uint64
	Kind    EventKind
	VM      *VirtualMachine
	Task    *Task
	Version uint64
}
