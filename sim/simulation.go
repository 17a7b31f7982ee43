// sim/simulation.go
//
// The Simulation is an explicit per-run context: clock, event heap, machines,
// and broker. There is no process-wide state, so independent scenarios can
// run concurrently in isolated instances.

package sim

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Simulation holds one run's logical clock, event queue, and entity graph.
// All state transitions happen sequentially on the event-dispatch path.
type Simulation struct {
	clock     float64
	heap      *EventHeap
	nextSeq   uint64
	machines  []*Machine
	broker    *Broker
	placement PlacementPolicy
	started   bool

	// AfterEvent, when set, runs after each dispatched event. Tests use it
	// to check capacity invariants at event boundaries.
	AfterEvent func(*Simulation, *Event)
}

// NewSimulation creates an isolated simulation over the given machines and
// broker, with first-fit VM placement.
func NewSimulation(machines []*Machine, broker *Broker) *Simulation {
	return &Simulation{
		heap:      NewEventHeap(),
		machines:  machines,
		broker:    broker,
		placement: FirstFit{},
	}
}

// WithPlacement swaps the VM placement policy. Must be called before Run.
func (s *Simulation) WithPlacement(p PlacementPolicy) *Simulation {
	if s.started {
		panic("simulation: cannot swap placement policy after Run")
	}
	s.placement = p
	return s
}

// Clock returns the current simulated time in seconds.
func (s *Simulation) Clock() float64 { return s.clock }

// Broker returns the simulation's broker.
func (s *Simulation) Broker() *Broker { return s.broker }

// Machines returns the simulated hosts.
func (s *Simulation) Machines() []*Machine { return s.machines }

// schedule enqueues an event, stamping it with the next insertion sequence.
// Scheduling into the past is a scheduling inconsistency.
func (s *Simulation) schedule(ev *Event) {
	if ev.Time < s.clock-timeEpsilon {
		panic(fmt.Sprintf("simulation: %s scheduled at %.9f behind clock %.9f", ev.Kind, ev.Time, s.clock))
	}
	s.nextSeq++
	ev.Seq = s.nextSeq
	s.heap.Schedule(ev)
}

// Run drives the event loop to completion. It returns a configuration error
// either before the first event (invalid submission) or after the queue
// drains with tasks that never reached a terminal state. Cancellation is
// cooperative: ctx is checked at every event dequeue and partial results up
// to the abort point remain valid.
func (s *Simulation) Run(ctx context.Context) error {
	if s.started {
		return fmt.Errorf("simulation: Run called twice")
	}
	s.started = true

	if err := s.broker.start(s); err != nil {
		return err
	}

	for s.heap.Len() > 0 {
		if err := ctx.Err(); err != nil {
			logrus.Warnf("[t=%010.4f] simulation aborted: %v", s.clock, err)
			return err
		}
		ev := s.heap.PopNext()
		if ev.Time < s.clock-timeEpsilon {
			panic(fmt.Sprintf("simulation: clock went backwards, %s at %.9f behind %.9f", ev.Kind, ev.Time, s.clock))
		}
		if ev.Time > s.clock {
			s.clock = ev.Time
		}
		logrus.Infof("[t=%010.4f] executing %s", s.clock, ev.Kind)
		s.dispatch(ev)
		if s.AfterEvent != nil {
			s.AfterEvent(s, ev)
		}
	}

	if pending := s.broker.pendingTasks(); len(pending) > 0 {
		ids := make([]int, 0, len(pending))
		for _, t := range pending {
			ids = append(ids, t.ID)
		}
		return fmt.Errorf("simulation stalled: %d task(s) never reach a terminal state (ids %v); check VM capacity configuration", len(pending), ids)
	}
	logrus.Infof("[t=%010.4f] simulation ended", s.clock)
	return nil
}

// dispatch is the exhaustive handler over event kinds. An unknown kind can
// only mean a new kind was added without a handler arm.
func (s *Simulation) dispatch(ev *Event) {
	switch ev.Kind {
	case EventVMAllocationRequest:
		s.handleVMAllocationRequest(ev)
	case EventVMAllocationComplete:
		s.handleVMAllocationComplete(ev)
	case EventTaskSubmit:
		s.handleTaskSubmit(ev)
	case EventTaskCompletion:
		s.handleTaskCompletion(ev)
	case EventTaskAllocationChange:
		s.handleTaskAllocationChange(ev)
	default:
		panic(fmt.Sprintf("simulation: unhandled event kind %d", ev.Kind))
	}
}

func (s *Simulation) handleVMAllocationRequest(ev *Event) {
	vm := ev.VM
	placed := false
	if m := s.placement.Select(s.machines, vm); m != nil {
		placed = m.Admit(vm, s.clock)
		if placed {
			logrus.Infof("[t=%010.4f] vm %d placed on machine %d, delivered rate %.2f", s.clock, vm.ID, m.ID, vm.DeliveredRate())
			// Admission shifted every resident's delivered rate; their
			// projected completions must be re-derived.
			for _, res := range m.Residents() {
				s.schedule(&Event{Time: s.clock, Kind: EventTaskAllocationChange, VM: res})
			}
		}
	}
	if !placed {
		vm.PlacementFailed = true
		logrus.Warnf("[t=%010.4f] vm %d: placement failed (rate %.0fx%d, ram %.0f)", s.clock, vm.ID, vm.Rate, vm.PECount, vm.RAM)
	}
	s.schedule(&Event{Time: s.clock, Kind: EventVMAllocationComplete, VM: vm})
}

func (s *Simulation) handleVMAllocationComplete(ev *Event) {
	s.broker.onVMAllocationComplete(s, ev.VM)
}

func (s *Simulation) handleTaskSubmit(ev *Event) {
	vm, task := ev.VM, ev.Task
	vm.Scheduler.Advance(s.clock)
	vm.Scheduler.Submit(task, s.clock)
	logrus.Infof("[t=%010.4f] task %d submitted to vm %d", s.clock, task.ID, vm.ID)
	s.schedule(&Event{Time: s.clock, Kind: EventTaskAllocationChange, VM: vm})
}

func (s *Simulation) handleTaskCompletion(ev *Event) {
	vm := ev.VM
	if ev.Version != vm.Scheduler.Version() {
		// Stale: the executing set changed after this completion was
		// projected and a fresher event is already queued.
		return
	}
	vm.Scheduler.Advance(s.clock)
	s.schedule(&Event{Time: s.clock, Kind: EventTaskAllocationChange, VM: vm})
}

func (s *Simulation) handleTaskAllocationChange(ev *Event) {
	vm := ev.VM
	vm.Scheduler.Advance(s.clock)
	for _, t := range vm.Scheduler.Reschedule(s.clock) {
		logrus.Infof("[t=%010.4f] task %d finished on vm %d", s.clock, t.ID, vm.ID)
		s.broker.onTaskFinished(t)
	}
	if at, ok := vm.Scheduler.NextCompletion(s.clock); ok {
		s.schedule(&Event{Time: at, Kind: EventTaskCompletion, VM: vm, Version: vm.Scheduler.Version()})
	}
}
