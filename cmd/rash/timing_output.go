package main

import (
	"fmt"
	"io"
	"time"

	"rash/internal/buildpipeline"
	"rash/internal/observ"
)

// printStageTimings writes one line per stage that ran.
func printStageTimings(out io.Writer, timings buildpipeline.Timings) {
	for _, st := range buildpipeline.Stages {
		if timings.Has(st) {
			fmt.Fprintf(out, "%-9s %.1f ms\n", st, toMillis(timings.Duration(st)))
		}
	}
	if total := timings.Total(); total > 0 {
		fmt.Fprintf(out, "%-9s %.1f ms\n", "total", toMillis(total))
	}
}

func printTimerSummary(out io.Writer, timer *observ.Timer) {
	if timer == nil {
		return
	}
	fmt.Fprint(out, timer.Summary())
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
