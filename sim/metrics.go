// Aggregates end-of-run statistics from thread timelines, the headless
// counterpart of the timeline chart a UI would draw.

package sim

import "fmt"

// ThreadMetrics summarizes one thread's trip through the scheduler.
type ThreadMetrics struct {
	ID             string
	BusyTicks      int   // ticks spent on a core
	FirstRunTick   int64 // first tick the thread ran (0 if it never ran)
	CompletionTick int64 // last tick the thread ran (its termination tick once Terminated)
}

// Metrics aggregates statistics about a finished (or stopped) simulation
// for final reporting.
type Metrics struct {
	Ticks          int64
	Cores          int
	Terminated     int
	TotalBusyTicks int
	Utilization    float64 // busy ticks / (ticks * cores)
	AvgTurnaround  float64 // mean completion tick across terminated threads
	PerThread      []ThreadMetrics
}

// CollectMetrics derives run statistics from a scheduler snapshot.
func CollectMetrics(snap SchedulerSnapshot) Metrics {
	m := Metrics{
		Ticks: snap.Tick,
		Cores: snap.Cores,
	}

	var turnaroundSum int64
	for _, ts := range snap.Threads {
		tm := ThreadMetrics{ID: ts.ID, BusyTicks: len(ts.Timeline)}
		if len(ts.Timeline) > 0 {
			tm.FirstRunTick = ts.Timeline[0].Tick
			tm.CompletionTick = ts.Timeline[len(ts.Timeline)-1].Tick
		}
		if ts.State == StateTerminated {
			m.Terminated++
			turnaroundSum += tm.CompletionTick
		}
		m.TotalBusyTicks += tm.BusyTicks
		m.PerThread = append(m.PerThread, tm)
	}

	if snap.Tick > 0 && snap.Cores > 0 {
		m.Utilization = float64(m.TotalBusyTicks) / float64(snap.Tick*int64(snap.Cores))
	}
	if m.Terminated > 0 {
		m.AvgTurnaround = float64(turnaroundSum) / float64(m.Terminated)
	}
	return m
}

// Print displays aggregated metrics at the end of the simulation.
func (m Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Ticks                : %d\n", m.Ticks)
	fmt.Printf("Cores                : %d\n", m.Cores)
	fmt.Printf("Terminated Threads   : %d\n", m.Terminated)
	fmt.Printf("CPU Utilization      : %.2f%%\n", m.Utilization*100)
	if m.Terminated > 0 {
		fmt.Printf("Average Turnaround   : %.2f ticks\n", m.AvgTurnaround)
	}
	for _, tm := range m.PerThread {
		fmt.Printf("  %-8s busy=%-4d first=%-4d done=%d\n",
			tm.ID, tm.BusyTicks, tm.FirstRunTick, tm.CompletionTick)
	}
}
