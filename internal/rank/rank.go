package rank

import (
	"fmt"
	"sort"

	"rosterpost/internal/extract"
)

// Strategy names a batch prioritization policy.
type Strategy string

const (
	// StrategyPriorityBail sorts by descending field-presence priority, then
	// by descending bail amount as the tie-break. This is the canonical
	// policy.
	StrategyPriorityBail Strategy = "priority-bail"
	// StrategyBailOnly drops records without bail text, then sorts purely by
	// descending bail amount. Superseded by StrategyPriorityBail but kept
	// selectable until the owner settles on one policy.
	StrategyBailOnly Strategy = "bail-only"
)

// ParseStrategy maps a configuration string onto a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case StrategyPriorityBail:
		return StrategyPriorityBail, nil
	case StrategyBailOnly:
		return StrategyBailOnly, nil
	default:
		return "", fmt.Errorf("unknown ranking strategy %q", name)
	}
}

// Rank orders a batch of records under the given strategy and truncates it to
// the first topN. The sort is stable: records with equal keys keep their
// original scrape order. Empty input yields an empty (non-nil) slice.
func Rank(records []extract.Record, strategy Strategy, topN int) []extract.Record {
	if topN < 0 {
		topN = 0
	}

	var ranked []extract.Record
	switch strategy {
	case StrategyBailOnly:
		ranked = make([]extract.Record, 0, len(records))
		for _, r := range records {
			if r.HasBail() && extract.ParseBailAmount(r.Bail) > 0 {
				ranked = append(ranked, r)
			}
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return extract.ParseBailAmount(ranked[i].Bail) > extract.ParseBailAmount(ranked[j].Bail)
		})
	default:
		ranked = append(make([]extract.Record, 0, len(records)), records...)
		sort.SliceStable(ranked, func(i, j int) bool {
			pi, pj := extract.Priority(ranked[i]), extract.Priority(ranked[j])
			if pi != pj {
				return pi > pj
			}
			return extract.ParseBailAmount(ranked[i].Bail) > extract.ParseBailAmount(ranked[j].Bail)
		})
	}

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
