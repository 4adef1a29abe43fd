package main

import (
	"fmt"
	"io"
	"time"

	"jsslice/internal/pipeline"
)

// printStageTimings prints per-stage totals summed over all files.
func printStageTimings(out io.Writer, timings *pipeline.Timings, wall time.Duration) {
	if out == nil || timings == nil {
		return
	}
	for _, stage := range pipeline.Stages() {
		if timings.Has(stage) {
			fmt.Fprintf(out, "%-6s %8.2f ms\n", stage, toMillis(timings.Duration(stage)))
		}
	}
	fmt.Fprintf(out, "%-6s %8.2f ms (wall %.2f ms)\n", "total", toMillis(timings.Sum()), toMillis(wall))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
