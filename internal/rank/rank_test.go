package rank_test

import (
	"fmt"
	"reflect"
	"testing"

	"rosterpost/internal/extract"
	"rosterpost/internal/rank"
)

func record(name, charge, bail string) extract.Record {
	return extract.Record{FullName: name, Charge: charge, Bail: bail, MugshotRef: "mugshots/" + name + ".jpg"}
}

func names(records []extract.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.FullName
	}
	return out
}

func TestRankPriorityDominatesBail(t *testing.T) {
	// Scenario B from the pipeline history: a hold-without-bail record still
	// ranks below a record carrying both charge and bail.
	a := record("PUBLIC, JANE Q", "THEFT", "$2,500.00")
	b := record("DOE, JOHN", "", "HOLD WITHOUT BAIL")

	ranked := rank.Rank([]extract.Record{b, a}, rank.StrategyPriorityBail, 10)
	if got := names(ranked); !reflect.DeepEqual(got, []string{"PUBLIC, JANE Q", "DOE, JOHN"}) {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestRankBailTieBreakWithinPriority(t *testing.T) {
	low := record("LOW BAIL", "THEFT", "$500.00")
	high := record("HIGH BAIL", "ASSAULT", "$50,000.00")
	hold := record("NO BAIL HOLD", "MURDER", "HOLD WITHOUT BAIL")

	ranked := rank.Rank([]extract.Record{low, high, hold}, rank.StrategyPriorityBail, 10)
	if got := names(ranked); !reflect.DeepEqual(got, []string{"NO BAIL HOLD", "HIGH BAIL", "LOW BAIL"}) {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestRankStableForEqualKeys(t *testing.T) {
	batch := []extract.Record{
		record("FIRST SEEN", "THEFT", "$1,000.00"),
		record("SECOND SEEN", "FRAUD", "$1,000.00"),
		record("THIRD SEEN", "ARSON", "$1,000.00"),
	}

	once := rank.Rank(batch, rank.StrategyPriorityBail, 10)
	twice := rank.Rank(batch, rank.StrategyPriorityBail, 10)
	if !reflect.DeepEqual(once, twice) {
		t.Fatal("ranking must be deterministic")
	}
	if got := names(once); !reflect.DeepEqual(got, []string{"FIRST SEEN", "SECOND SEEN", "THIRD SEEN"}) {
		t.Fatalf("equal keys must preserve scrape order, got %v", got)
	}
}

func TestRankTruncation(t *testing.T) {
	var batch []extract.Record
	for i := 0; i < 15; i++ {
		batch = append(batch, record(fmt.Sprintf("INMATE %02d", i), "THEFT", fmt.Sprintf("$%d.00", 100*(i+1))))
	}

	ranked := rank.Rank(batch, rank.StrategyPriorityBail, 10)
	if len(ranked) != 10 {
		t.Fatalf("expected 10 records, got %d", len(ranked))
	}
	if ranked[0].FullName != "INMATE 14" {
		t.Fatalf("expected highest bail first, got %q", ranked[0].FullName)
	}
}

func TestRankEmptyAndOversizedInput(t *testing.T) {
	if got := rank.Rank(nil, rank.StrategyPriorityBail, 10); len(got) != 0 {
		t.Fatalf("expected empty output, got %v", got)
	}
	batch := []extract.Record{record("ONLY ONE", "", "")}
	if got := rank.Rank(batch, rank.StrategyPriorityBail, 10); len(got) != 1 {
		t.Fatalf("topN above input size must return all records, got %d", len(got))
	}
}

func TestRankInputUnmodified(t *testing.T) {
	batch := []extract.Record{
		record("ZERO PRIORITY", "", ""),
		record("FULL PRIORITY", "THEFT", "$9,000.00"),
	}
	rank.Rank(batch, rank.StrategyPriorityBail, 10)
	if batch[0].FullName != "ZERO PRIORITY" {
		t.Fatal("Rank must not reorder its input slice")
	}
}

func TestBailOnlyStrategyExcludesBailAbsentRecords(t *testing.T) {
	batch := []extract.Record{
		record("NO BAIL TEXT", "THEFT", ""),
		record("RELEASED ALREADY", "THEFT", "RELEASED TO CUSTODY BOND"),
		record("REAL BAIL", "", "$750.00"),
	}

	ranked := rank.Rank(batch, rank.StrategyBailOnly, 10)
	if got := names(ranked); !reflect.DeepEqual(got, []string{"REAL BAIL"}) {
		t.Fatalf("expected only records with positive bail, got %v", got)
	}
}

func TestParseStrategy(t *testing.T) {
	if _, err := rank.ParseStrategy("priority-bail"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := rank.ParseStrategy("alphabetical"); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}
