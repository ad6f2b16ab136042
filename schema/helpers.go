package schema

// TallyHits computes the per-severity and per-category hit counts for a
// report. Zero is a valid, meaningful value for every count, so callers
// never need to special-case "scan found nothing".
func TallyHits(hits []AntiPatternHit) (map[Severity]int, map[Category]int) {
	bySeverity := map[Severity]int{
		SeverityCritical: 0,
		SeverityWarning:  0,
		SeverityInfo:     0,
	}
	byCategory := make(map[Category]int, len(AllCategories))
	for _, c := range AllCategories {
		byCategory[c] = 0
	}
	for _, h := range hits {
		bySeverity[h.Severity]++
		byCategory[h.Category]++
	}
	return bySeverity, byCategory
}

// AssignHitIDs numbers hits sequentially starting at 1. IDs are
// report-local: detectors emit unnumbered hits and the orchestrator calls
// this exactly once at assembly time, so concurrent scans never share a
// counter.
func AssignHitIDs(hits []AntiPatternHit) {
	for i := range hits {
		hits[i].ID = i + 1
	}
}
