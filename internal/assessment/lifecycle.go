package assessment

// SubjectStatus is a subject's position in the assessment lifecycle.
type SubjectStatus string

const (
	StatusGettingToKnowYou SubjectStatus = "getting_to_know_you"
	StatusLetsBridgeGaps   SubjectStatus = "lets_bridge_gaps"
)

// ParseStatus maps a stored status string to a SubjectStatus.
// Unknown or empty values are treated as the initial status.
func ParseStatus(s string) SubjectStatus {
	if SubjectStatus(s) == StatusLetsBridgeGaps {
		return StatusLetsBridgeGaps
	}
	return StatusGettingToKnowYou
}

// Advance returns the status after a completed grading run and whether it
// changed. Every completed run lands in lets_bridge_gaps; there is no way back,
// and re-grading a subject already there is a no-op transition.
func Advance(current SubjectStatus) (SubjectStatus, bool) {
	if current == StatusLetsBridgeGaps {
		return current, false
	}
	return StatusLetsBridgeGaps, true
}

// MasteryPercent is the subject mastery value recorded for a grading result.
func MasteryPercent(r *GradingResult) int {
	if r == nil {
		return 0
	}
	return r.ScorePercent
}
