package model

// PlanSummary carries the add/change/destroy counts extracted from a plan
// run's stdout. All counts are zero when the output contained no summary
// line; that is not an error condition.
type PlanSummary struct {
	ToAdd     int
	ToChange  int
	ToDestroy int

	// TotalChanges is always ToAdd + ToChange + ToDestroy.
	TotalChanges int

	// RawOutput is the full captured stdout the summary was extracted from.
	RawOutput string
}

// HasChanges reports whether the plan proposes any change at all.
func (s PlanSummary) HasChanges() bool {
	return s.TotalChanges > 0
}
