// Package sim provides the core discrete-event simulation engine for the
// datacenter cost/latency simulator.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - task.go: Task lifecycle (created → queued → executing → finished/failed)
//   - event.go: the event kinds that drive the simulation
//   - simulation.go: the event loop and the handlers for each kind
//
// # Architecture
//
// A Simulation is an explicit per-run context (no global clock or event
// list), so independent scenario runs can execute concurrently in one
// process. Within one run all state transitions are sequential, driven by
// event dequeue from a heap ordered by (timestamp, insertion sequence).
//
// The resource hierarchy is Machine → ProcessingElement → VirtualMachine →
// Task. Capacity flows down through two scheduling levels:
//   - VMScheduler (vm_scheduler.go): time-shares a machine's PE capacity
//     among resident VMs, rate-proportional and capped at each request
//   - TaskScheduler (task_scheduler.go): divides one VM's delivered rate
//     among its executing tasks (time-shared or space-shared discipline)
//
// Progress is integrated analytically between events; completion instants
// are derived in closed form, never time-stepped.
//
// # Key Interfaces
//
// The extension points are small interfaces with variants selected at
// construction time:
//   - TaskScheduler: time-shared (default) or space-shared task discipline
//   - VMScheduler: how a machine divides PE capacity among VMs
//   - PlacementPolicy: which machine a VM-allocation request lands on
//
// Costing (cost.go) is a pure layer over the run's outputs: it classifies
// VMs against a pricing table and amortizes hourly rates over active
// seconds.
package sim
