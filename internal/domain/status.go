package domain

// Status is a RAG (red/amber/green) traffic-light health indicator.
// Profession assessments use the five point scale including the
// intermediate AMBER_RED and GREEN_AMBER values; project level statuses
// use the collapsed three point scale.
type Status string

const (
	StatusRed        Status = "RED"
	StatusAmberRed   Status = "AMBER_RED"
	StatusAmber      Status = "AMBER"
	StatusGreenAmber Status = "GREEN_AMBER"
	StatusGreen      Status = "GREEN"
	StatusTBC        Status = "TBC"

	// StatusNotUpdated is the sentinel returned when a rollup has no
	// contributing statuses at all.
	StatusNotUpdated Status = "NOT_UPDATED"
)

// ProjectStatuses lists the statuses accepted on a project record.
var ProjectStatuses = []Status{StatusRed, StatusAmber, StatusGreen, StatusTBC}

// AssessmentStatuses lists the statuses accepted on a profession assessment.
var AssessmentStatuses = []Status{StatusRed, StatusAmberRed, StatusAmber, StatusGreenAmber, StatusGreen, StatusTBC}

// severity order for the collapsed scale, worst first
var statusSeverity = map[Status]int{
	StatusRed:   0,
	StatusAmber: 1,
	StatusGreen: 2,
	StatusTBC:   3,
}

// Collapse maps the five point scale onto the three point scale. The
// intermediate values both fold into AMBER; everything else is unchanged.
func (s Status) Collapse() Status {
	switch s {
	case StatusAmberRed, StatusGreenAmber:
		return StatusAmber
	default:
		return s
	}
}

// ValidProjectStatus reports whether s is accepted on a project record.
func ValidProjectStatus(s Status) bool {
	for _, candidate := range ProjectStatuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// ValidAssessmentStatus reports whether s is accepted on an assessment.
func ValidAssessmentStatus(s Status) bool {
	for _, candidate := range AssessmentStatuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// ReduceStatuses rolls a collection of statuses up into the single most
// severe one. Each input is collapsed onto the three point scale first, so
// five point and three point call sites behave identically. An empty input
// yields StatusNotUpdated. Unrecognized values have no severity ranking and
// sort after TBC, so they never win over a known status; callers are
// expected to reject them at the validation boundary before they get here.
func ReduceStatuses(statuses []Status) Status {
	if len(statuses) == 0 {
		return StatusNotUpdated
	}

	worst := statuses[0].Collapse()
	worstRank := severityRank(worst)
	for _, status := range statuses[1:] {
		collapsed := status.Collapse()
		if rank := severityRank(collapsed); rank < worstRank {
			worst = collapsed
			worstRank = rank
		}
	}

	return worst
}

func severityRank(s Status) int {
	if rank, ok := statusSeverity[s]; ok {
		return rank
	}
	return len(statusSeverity)
}
