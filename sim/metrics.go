// Aggregates per-run results for final reporting: total cost, average task
// completion time, and per-task detail rows.

package sim

import "fmt"

// Summary bundles the numbers used to compare allocation strategies.
type Summary struct {
	Strategy          string
	TotalCost         float64
	AvgCompletionTime float64 // mean execution time over finished tasks, seconds
	VMsUsed           int
	FinishedTasks     int
	FailedTasks       int
	SimEndTime        float64
}

// Summarize derives a Summary from a finished (or aborted) run. received is
// the broker's completion-ordered task list.
func Summarize(strategy string, types []VMType, vms []*VirtualMachine, received []*Task, endTime float64) Summary {
	sum := Summary{Strategy: strategy, VMsUsed: len(vms), SimEndTime: endTime}

	var totalExec float64
	for _, t := range received {
		switch t.Status {
		case TaskFinished:
			sum.FinishedTasks++
			totalExec += t.ExecutionTime()
		case TaskFailed:
			sum.FailedTasks++
		}
	}
	if sum.FinishedTasks > 0 {
		sum.AvgCompletionTime = totalExec / float64(sum.FinishedTasks)
	}
	sum.TotalCost = TotalCost(types, vms, received)
	return sum
}

// Print displays the summary in the per-run report format.
func (s Summary) Print() {
	fmt.Printf("\nResults - Cost: $%.4f | Avg Time: %.2f sec | VMs Used: %d\n",
		s.TotalCost, s.AvgCompletionTime, s.VMsUsed)
	if s.FailedTasks > 0 {
		fmt.Printf("Failed tasks       : %d\n", s.FailedTasks)
	}
}

// PrintTaskDetails displays the per-task diagnostic table.
func PrintTaskDetails(tasks []*Task) {
	fmt.Println("\nDetailed Task Results:")
	fmt.Println("TaskID\tStatus\t\tVM ID\tTime\tStart\tFinish")
	for _, t := range tasks {
		fmt.Printf("%d\t%s\t%d\t%.2f\t%.2f\t%.2f\n",
			t.ID, t.Status, t.VMID, t.ExecutionTime(), t.StartTime, t.FinishTime)
	}
}
