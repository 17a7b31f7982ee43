// VM-level task schedulers. A TaskScheduler divides the compute rate the
// machine delivers to one VM among that VM's resident tasks. Two disciplines
// are provided, selected at VM construction:
//
//   - time-shared: executing tasks split the delivered rate equally
//   - space-shared: each executing task gets its PE slots exclusively
//
// Both cap the executing set at the VM's PE slots; surplus tasks wait FIFO.
// Progress is integrated analytically between events, so completion
// timestamps carry no time-stepping error.

package sim

import (
	"fmt"
	"math"
)

// timeEpsilon tolerates float residue when comparing event timestamps.
const timeEpsilon = 1e-9

// TaskScheduler is the per-VM scheduling capability. All mutating calls
// happen on the single simulation thread in response to dequeued events.
type TaskScheduler interface {
	// Submit enqueues a task in the Created state; it becomes Queued
	// immediately and Executing at the next Reschedule if a slot is free.
	Submit(t *Task, now float64)
	// Advance integrates executing tasks' progress from the last update
	// up to now at the current rates.
	Advance(now float64)
	// Reschedule sweeps tasks whose remaining length reached zero
	// (returning them Finished), promotes waiting tasks into free slots,
	// recomputes rates, and bumps the reschedule version.
	Reschedule(now float64) []*Task
	// NextCompletion returns the projected timestamp of the earliest task
	// completion under current rates, or false when nothing is running or
	// no capacity is delivered.
	NextCompletion(now float64) (float64, bool)
	// SetDeliveredRate updates the total rate the machine delivers to
	// this VM, integrating progress up to now first.
	SetDeliveredRate(rate float64, now float64)
	// Version is the reschedule generation; completion events scheduled
	// under an older version are stale.
	Version() uint64
	// Executing returns the tasks currently holding PE slots.
	Executing() []*Task
	// Waiting returns the FIFO backlog.
	Waiting() []*Task
}

// schedulerCore holds the state shared by both disciplines.
type schedulerCore struct {
	peCount   int
	executing []*Task
	waiting   []*Task
	delivered float64
	last      float64 // time progress was last integrated to
	version   uint64
	slotsUsed int
}

func (c *schedulerCore) Submit(t *Task, now float64) {
	t.SubmitTime = now
	t.setStatus(TaskQueued)
	c.waiting = append(c.waiting, t)
}

func (c *schedulerCore) Version() uint64    { return c.version }
func (c *schedulerCore) Executing() []*Task { return c.executing }
func (c *schedulerCore) Waiting() []*Task   { return c.waiting }

// advanceAt integrates progress to now, charging each executing task its
// rate as computed by rateFor.
func (c *schedulerCore) advanceAt(now float64, rateFor func(*Task) float64) {
	dt := now - c.last
	if dt < -timeEpsilon {
		panic(fmt.Sprintf("task scheduler: time went backwards (%f -> %f)", c.last, now))
	}
	if dt > 0 {
		for _, t := range c.executing {
			t.progress(rateFor(t) * dt)
		}
	}
	c.last = now
}

// rescheduleAt sweeps finished tasks and promotes the FIFO backlog into free
// slots. Must be called after advanceAt for the same instant.
func (c *schedulerCore) rescheduleAt(now float64) []*Task {
	var finished []*Task
	keep := c.executing[:0]
	for _, t := range c.executing {
		if t.Remaining <= lengthEpsilon {
			t.Remaining = 0
			t.finish(now)
			c.slotsUsed -= t.slots()
			finished = append(finished, t)
		} else {
			keep = append(keep, t)
		}
	}
	c.executing = keep

	// FIFO promotion: head-of-line order is preserved even when a later
	// task would fit the free slots.
	for len(c.waiting) > 0 && c.slotsUsed+c.waiting[0].slots() <= c.peCount {
		t := c.waiting[0]
		c.waiting = c.waiting[1:]
		t.start(now)
		c.slotsUsed += t.slots()
		c.executing = append(c.executing, t)
	}

	c.version++
	return finished
}

// nextCompletionAt projects the earliest finish under per-task rates.
func (c *schedulerCore) nextCompletionAt(now float64, rateFor func(*Task) float64) (float64, bool) {
	best := math.Inf(1)
	for _, t := range c.executing {
		rate := rateFor(t)
		if rate <= 0 {
			continue
		}
		if eta := t.Remaining / rate; eta < best {
			best = eta
		}
	}
	if math.IsInf(best, 1) {
		return 0, false
	}
	return now + best, true
}

// TimeSharedTaskScheduler splits the delivered rate equally among executing
// tasks: rate_per_task = delivered / count_executing.
type TimeSharedTaskScheduler struct {
	schedulerCore
}

// NewTimeSharedTaskScheduler creates the default task scheduling discipline.
func NewTimeSharedTaskScheduler(peCount int) *TimeSharedTaskScheduler {
	return &TimeSharedTaskScheduler{schedulerCore{peCount: peCount}}
}

func (ts *TimeSharedTaskScheduler) rateFor(*Task) float64 {
	n := len(ts.executing)
	if n == 0 || ts.delivered <= 0 {
		return 0
	}
	return ts.delivered / float64(n)
}

func (ts *TimeSharedTaskScheduler) Advance(now float64) {
	ts.advanceAt(now, ts.rateFor)
}

func (ts *TimeSharedTaskScheduler) Reschedule(now float64) []*Task {
	return ts.rescheduleAt(now)
}

func (ts *TimeSharedTaskScheduler) NextCompletion(now float64) (float64, bool) {
	return ts.nextCompletionAt(now, ts.rateFor)
}

func (ts *TimeSharedTaskScheduler) SetDeliveredRate(rate float64, now float64) {
	ts.Advance(now)
	ts.delivered = rate
}

// SpaceSharedTaskScheduler gives each executing task its PE slots
// exclusively at the VM's per-PE delivered rate; surplus tasks run strictly
// after a slot frees.
type SpaceSharedTaskScheduler struct {
	schedulerCore
}

// NewSpaceSharedTaskScheduler creates the space-shared discipline.
func NewSpaceSharedTaskScheduler(peCount int) *SpaceSharedTaskScheduler {
	return &SpaceSharedTaskScheduler{schedulerCore{peCount: peCount}}
}

func (ss *SpaceSharedTaskScheduler) rateFor(t *Task) float64 {
	if ss.delivered <= 0 || ss.peCount == 0 {
		return 0
	}
	perPE := ss.delivered / float64(ss.peCount)
	return perPE * float64(t.slots())
}

func (ss *SpaceSharedTaskScheduler) Advance(now float64) {
	ss.advanceAt(now, ss.rateFor)
}

func (ss *SpaceSharedTaskScheduler) Reschedule(now float64) []*Task {
	return ss.rescheduleAt(now)
}

func (ss *SpaceSharedTaskScheduler) NextCompletion(now float64) (float64, bool) {
	return ss.nextCompletionAt(now, ss.rateFor)
}

func (ss *SpaceSharedTaskScheduler) SetDeliveredRate(rate float64, now float64) {
	ss.Advance(now)
	ss.delivered = rate
}
