// Package planparse extracts the add/change/destroy summary from a plan
// run's captured stdout.
package planparse

import (
	"regexp"
	"strconv"

	"github.com/RishabhK9/cloudist/internal/model"
)

var planLine = regexp.MustCompile(`Plan: (\d+) to add, (\d+) to change, (\d+) to destroy`)

// Interpret scans stdout in a single pass over the whole capture, so no
// line length can abort it short of the summary. When several summary
// lines appear (re-runs concatenated into one capture), the last one wins.
// Absence of a match yields all-zero counts; Interpret never fails.
func Interpret(stdout string) model.PlanSummary {
	summary := model.PlanSummary{RawOutput: stdout}

	if matches := planLine.FindAllStringSubmatch(stdout, -1); len(matches) > 0 {
		m := matches[len(matches)-1]
		summary.ToAdd, _ = strconv.Atoi(m[1])
		summary.ToChange, _ = strconv.Atoi(m[2])
		summary.ToDestroy, _ = strconv.Atoi(m[3])
	}

	summary.TotalChanges = summary.ToAdd + summary.ToChange + summary.ToDestroy
	return summary
}
