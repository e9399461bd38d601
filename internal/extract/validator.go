package extract

// Admissible reports whether a record qualifies for queuing: a valid full
// name and a saved mugshot. Charge and bail never gate admissibility; they
// only contribute to Priority.
func Admissible(r Record) (bool, []string) {
	var issues []string
	if !ValidName(r.FullName) {
		issues = append(issues, "missing or invalid name")
	}
	if !r.HasMugshot() {
		issues = append(issues, "missing mugshot")
	}
	return len(issues) == 0, issues
}

// Priority scores a record 0-2 from the presence of its optional fields:
// +1 for an admissible charge, +1 for admissible bail.
func Priority(r Record) int {
	priority := 0
	if r.HasCharge() {
		priority++
	}
	if r.HasBail() {
		priority++
	}
	return priority
}
